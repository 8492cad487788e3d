package screening

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCandidateNotFound    = errors.New("candidato não encontrado")
	ErrNameRequired         = errors.New("nome é obrigatório")
	ErrInvalidStage         = errors.New("etapa inválida")
	ErrArchiveReasonInvalid = errors.New("motivo de arquivamento inválido")
	ErrNotArchived          = errors.New("somente processos arquivados podem ser reabertos")
	ErrAlreadyTerminal      = errors.New("processo já encerrado")
)

type Service struct {
	db        *gorm.DB
	residents *residents.Service
}

func NewService(db *gorm.DB, residentService *residents.Service) *Service {
	return &Service{db: db, residents: residentService}
}

// Create registers a new screening process. Every process enters the
// pipeline at the scheduling stage regardless of what the caller sent.
func (s *Service) Create(c *Candidate) (*Candidate, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}
	c.ID = uuid.New()
	c.Stage = StageAgendamentos
	c.ArchiveReason = ""
	c.AdmissionDate = ""
	if c.Priority == "" {
		c.Priority = PriorityPadrao
	}
	if err := s.db.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return c, nil
}

// List filters by free-text name match and, when given, by stage.
func (s *Service) List(term string, stage Stage) ([]Candidate, error) {
	query := s.db.Order("created_at ASC")
	if term != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if stage != "" {
		if !stage.Valid() {
			return nil, ErrInvalidStage
		}
		query = query.Where("stage = ?", stage)
	}
	var found []Candidate
	err := query.Find(&found).Error
	return found, err
}

// Board groups the open processes per stage for the pipeline dashboard.
// Archived processes are reported apart from the progression columns.
func (s *Service) Board(term string) (map[Stage][]Candidate, error) {
	all, err := s.List(term, "")
	if err != nil {
		return nil, err
	}
	board := make(map[Stage][]Candidate, len(Stages()))
	for _, stage := range Stages() {
		board[stage] = []Candidate{}
	}
	for _, c := range all {
		board[c.Stage] = append(board[c.Stage], c)
	}
	return board, nil
}

func (s *Service) Get(id uuid.UUID) (*Candidate, error) {
	var candidate Candidate
	if err := s.db.First(&candidate, "id = ?", id).Error; err != nil {
		return nil, ErrCandidateNotFound
	}
	return &candidate, nil
}

// Update replaces the editable fields of a process. The stage and its
// bookkeeping (archive reason, admission date) are owned by the transition
// operations and survive any generic update.
func (s *Service) Update(id uuid.UUID, in *Candidate) (*Candidate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	in.ID = id
	in.Stage = existing.Stage
	in.ArchiveReason = existing.ArchiveReason
	in.AdmissionDate = existing.AdmissionDate
	in.CreatedAt = existing.CreatedAt
	if in.Priority == "" {
		in.Priority = existing.Priority
	}
	if err := s.db.Omit(clause.Associations).Save(in).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Advance moves a process to the next pipeline stage when its guard holds.
// Reaching acolhido also creates the resident case file in the same
// transaction; a failed guard leaves the record untouched.
func (s *Service) Advance(id uuid.UUID) (*Candidate, error) {
	candidate, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := candidate.AdvanceGuard(); err != nil {
		return nil, err
	}
	next, ok := candidate.Stage.Next()
	if !ok {
		return nil, ErrTerminalStage
	}

	if next == StageAcolhido {
		return s.admit(candidate)
	}

	if err := s.db.Model(candidate).Update("stage", next).Error; err != nil {
		return nil, err
	}
	candidate.Stage = next
	return candidate, nil
}

// admit finishes the pipeline: stamps the admission date, moves the process
// to acolhido and opens a resident case file copied from the candidate.
func (s *Service) admit(candidate *Candidate) (*Candidate, error) {
	admissionDate := time.Now().Format("2006-01-02")

	resident := residentFromCandidate(candidate, admissionDate)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(candidate).Updates(map[string]interface{}{
			"stage":          StageAcolhido,
			"admission_date": admissionDate,
		}).Error; err != nil {
			return err
		}
		return s.residents.CreateTx(tx, resident)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to admit candidate: %w", err)
	}

	candidate.Stage = StageAcolhido
	candidate.AdmissionDate = admissionDate
	slog.Info("candidate admitted", "candidate_id", candidate.ID, "resident_id", resident.ID)
	return candidate, nil
}

// Archive closes a process under one of the fixed reasons. Terminal
// processes cannot be archived again.
func (s *Service) Archive(id uuid.UUID, reason string) (*Candidate, error) {
	if !ValidArchiveReason(reason) {
		return nil, ErrArchiveReasonInvalid
	}
	candidate, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if candidate.Stage.Terminal() {
		return nil, ErrAlreadyTerminal
	}

	if err := s.db.Model(candidate).Updates(map[string]interface{}{
		"stage":          StageArquivado,
		"archive_reason": reason,
	}).Error; err != nil {
		return nil, err
	}
	candidate.Stage = StageArquivado
	candidate.ArchiveReason = reason
	return candidate, nil
}

// Reopen returns an archived process to the interview stage.
func (s *Service) Reopen(id uuid.UUID) (*Candidate, error) {
	candidate, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if candidate.Stage != StageArquivado {
		return nil, ErrNotArchived
	}

	if err := s.db.Model(candidate).Updates(map[string]interface{}{
		"stage":          StageEntrevista,
		"archive_reason": "",
	}).Error; err != nil {
		return nil, err
	}
	candidate.Stage = StageEntrevista
	candidate.ArchiveReason = ""
	return candidate, nil
}

// residentFromCandidate maps the overlapping fields onto a fresh case file.
func residentFromCandidate(c *Candidate, admissionDate string) *residents.Resident {
	screeningDate := c.CreatedAt.Format("2006-01-02")
	return &residents.Resident{
		Name:            c.Name,
		BirthDate:       c.BirthDate,
		Gender:          c.Gender,
		MaritalStatus:   c.MaritalStatus,
		CPF:             c.CPF,
		RG:              c.RG,
		Address:         c.Address,
		AdmissionDate:   admissionDate,
		AdmissionReason: c.AdmissionReason,
		Observations:    fmt.Sprintf("Oriundo da triagem realizada em %s.", screeningDate),
	}
}
