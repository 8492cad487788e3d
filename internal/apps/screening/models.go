package screening

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stage is the candidate's current step in the admission pipeline.
type Stage string

const (
	StageAgendamentos     Stage = "agendamentos"
	StageEntrevista       Stage = "entrevista"
	StageAguardandoVaga   Stage = "aguardando_vaga"
	StageDecisaoDiretoria Stage = "decisao_diretoria"
	StageAvaliacaoMedica  Stage = "avaliacao_medica"
	StageIntegracao       Stage = "integracao"
	StageAcolhido         Stage = "acolhido"
	StageArquivado        Stage = "arquivado"
)

// stageOrder is the forward progression; the two terminals close the
// pipeline (acolhido on success, arquivado on withdrawal).
var stageOrder = []Stage{
	StageAgendamentos,
	StageEntrevista,
	StageAguardandoVaga,
	StageDecisaoDiretoria,
	StageAvaliacaoMedica,
	StageIntegracao,
	StageAcolhido,
}

// Stages returns the ordered pipeline including the archive terminal.
func Stages() []Stage {
	return append(append([]Stage{}, stageOrder...), StageArquivado)
}

func (s Stage) Valid() bool {
	for _, stage := range Stages() {
		if s == stage {
			return true
		}
	}
	return false
}

func (s Stage) Terminal() bool {
	return s == StageAcolhido || s == StageArquivado
}

// Next returns the following pipeline stage; ok is false on terminals and
// unknown values.
func (s Stage) Next() (Stage, bool) {
	for i, stage := range stageOrder {
		if s == stage && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

// Priority is the waitlist triage tier, most urgent first.
type Priority string

const (
	PrioritySocialUrgente       Priority = "social_urgente"
	PriorityDependenciaDuvidosa Priority = "dependencia_duvidosa"
	PriorityPadrao              Priority = "padrao"
)

// PriorityRank orders tiers for display and exports; lower is more urgent.
func PriorityRank(p Priority) int {
	switch p {
	case PrioritySocialUrgente:
		return 0
	case PriorityDependenciaDuvidosa:
		return 1
	default:
		return 2
	}
}

// Medical evaluation outcomes.
const (
	MedicalFavoravel    = "favoravel"
	MedicalDesfavoravel = "desfavoravel"
)

// Contract states during integration.
const (
	ContractPendente = "pendente"
	ContractAssinado = "assinado"
)

// ArchiveReasons is the closed list a process can be archived under.
var ArchiveReasons = []string{
	"Inapto Saúde",
	"Inapto Financeiro",
	"Inapto Familiar",
	"Não há Vagas",
	"Desistência Familiar",
	"Desistência Idoso",
	"Falecimento",
	"Outra ILPI",
}

func ValidArchiveReason(reason string) bool {
	for _, r := range ArchiveReasons {
		if reason == r {
			return true
		}
	}
	return false
}

// FamilyMemberRecord is one row of the interview's family table.
type FamilyMemberRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Kinship string `json:"kinship"`
	Age     string `json:"age"`
	Job     string `json:"job"`
	Income  string `json:"income"`
}

// InterviewData holds the social-work questionnaire filled during the
// entrevista stage. Field groups follow the sections of the official form.
type InterviewData struct {
	// Household and support network
	ResidesWith           string `json:"resides_with"`
	HasChildren           string `json:"has_children"`
	ChildrenCount         string `json:"children_count"`
	HasCaregiver          string `json:"has_caregiver"`
	HasSupportNetwork     string `json:"has_support_network"`
	SupportNetworkDetails string `json:"support_network_details"`

	FamilyTable []FamilyMemberRecord `json:"family_table"`

	// Housing
	HousingType string `json:"housing_type"`
	RentValue   string `json:"rent_value"`

	// Socioeconomic
	IncomeSource  string `json:"income_source"`
	IncomeValue   string `json:"income_value"`
	HasLoan       string `json:"has_loan"`
	LoanValue     string `json:"loan_value"`
	CanAffordCare string `json:"can_afford_care"`

	// Health
	MedicalDiagnoses       string `json:"medical_diagnoses"`
	ContinuousMedication   string `json:"continuous_medication"`
	MedicationDetails      string `json:"medication_details"`
	RegularMedicalFollowup string `json:"regular_medical_followup"`
	CognitiveImpairment    string `json:"cognitive_impairment"`
	CognitiveDetails       string `json:"cognitive_details"`

	// Dependency axes ("can perform alone")
	DepHygiene    string `json:"dep_hygiene"`
	DepFeeding    string `json:"dep_feeding"`
	DepMobility   string `json:"dep_mobility"`
	DepBathroom   string `json:"dep_bathroom"`
	DepMedication string `json:"dep_medication"`

	NeedsFullTimeCare string `json:"needs_full_time_care"`

	// Psychosocial
	FamilyConflicts string `json:"family_conflicts"`
	ConflictDetails string `json:"conflict_details"`
	ElderlyAgrees   string `json:"elderly_agrees"`
	FamilyAgrees    string `json:"family_agrees"`

	RequestReason  string `json:"request_reason"`
	SocialAnalysis string `json:"social_analysis"`
}

// Candidate is a prospective resident moving through the admission
// pipeline. Stage is the single source of truth for which step the case is
// at; the stage-specific fields are only meaningful while the process sits
// at their owning step.
type Candidate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Stage    Stage     `gorm:"size:30;not null;default:'agendamentos';index" json:"stage"`
	Priority Priority  `gorm:"size:30;default:'padrao'" json:"priority"`

	ArchiveReason string `gorm:"size:50" json:"archive_reason,omitempty"`

	// Scheduling
	ScheduledDate   string `gorm:"size:10" json:"scheduled_date,omitempty"`
	ScheduledPeriod string `gorm:"size:10" json:"scheduled_period,omitempty"` // manha | tarde | noite
	ScheduledNotes  string `gorm:"size:255" json:"scheduled_notes,omitempty"`

	// Decision levels
	BoardOpinion            string `gorm:"type:text" json:"board_opinion,omitempty"`
	MedicalOpinion          string `gorm:"type:text" json:"medical_opinion,omitempty"`
	MedicalStatus           string `gorm:"size:20" json:"medical_status,omitempty"`
	IntegrationDate         string `gorm:"size:10" json:"integration_date,omitempty"`
	IntegrationReport       string `gorm:"type:text" json:"integration_report,omitempty"`
	IntegrationObservations string `gorm:"type:text" json:"integration_observations,omitempty"`
	ContractStatus          string `gorm:"size:10" json:"contract_status,omitempty"`
	AdmissionDate           string `gorm:"size:10" json:"admission_date,omitempty"`

	// Identification
	Name          string `gorm:"size:255;not null;index" json:"name"`
	BirthDate     string `gorm:"size:10" json:"birth_date"`
	Age           string `gorm:"size:10" json:"age"`
	Gender        string `gorm:"size:20" json:"gender"`
	MaritalStatus string `gorm:"size:50" json:"marital_status"`
	RG            string `gorm:"size:20" json:"rg"`
	CPF           string `gorm:"size:14" json:"cpf"`
	Address       string `gorm:"size:255" json:"address"`
	Phone         string `gorm:"size:20" json:"phone"`

	// Legal representative
	RepName    string `gorm:"size:255" json:"rep_name"`
	RepKinship string `gorm:"size:50" json:"rep_kinship"`
	RepPhone   string `gorm:"size:20" json:"rep_phone"`
	RepAddress string `gorm:"size:255" json:"rep_address"`

	AdmissionReason string `gorm:"type:text" json:"admission_reason"`
	SocialOpinion   string `gorm:"type:text" json:"social_opinion"`

	Interview datatypes.JSONType[InterviewData] `gorm:"type:jsonb" json:"interview"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Guard errors returned when a forward transition is not available.
var (
	ErrTerminalStage        = errors.New("processo encerrado não pode avançar")
	ErrBoardOpinionRequired = errors.New("parecer da diretoria é obrigatório para avançar")
	ErrMedicalNotFavorable  = errors.New("avaliação médica favorável é obrigatória para avançar")
	ErrContractNotSigned    = errors.New("contrato assinado é obrigatório para concluir o acolhimento")
)

// AdvanceGuard reports whether the candidate may leave its current stage on
// the forward path. A nil result allows the transition to Stage.Next().
func (c *Candidate) AdvanceGuard() error {
	switch c.Stage {
	case StageAcolhido, StageArquivado:
		return ErrTerminalStage
	case StageDecisaoDiretoria:
		if c.BoardOpinion == "" {
			return ErrBoardOpinionRequired
		}
	case StageAvaliacaoMedica:
		if c.MedicalStatus != MedicalFavoravel {
			return ErrMedicalNotFavorable
		}
	case StageIntegracao:
		if c.ContractStatus != ContractAssinado {
			return ErrContractNotSigned
		}
	}
	return nil
}
