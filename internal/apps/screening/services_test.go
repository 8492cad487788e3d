package screening

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestService(t *testing.T) (*Service, *residents.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        filepath.Join(t.TempDir(), "screening.db"),
	}, &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Candidate{},
		&residents.Resident{},
		&residents.Relative{},
		&residents.VisitRecord{},
		&residents.FinancialTransaction{},
		&residents.PersonalItem{},
		&residents.HealthUpdate{},
		&residents.Medication{},
	))

	residentService := residents.NewService(db)
	return NewService(db, residentService), residentService
}

func TestCreateStartsAtScheduling(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{
		Name:          "Maria Souza",
		Stage:         StageIntegracao, // ignored
		ArchiveReason: "Falecimento",   // ignored
		AdmissionDate: "2020-01-01",    // ignored
	})
	require.NoError(t, err)

	assert.Equal(t, StageAgendamentos, created.Stage)
	assert.Empty(t, created.ArchiveReason)
	assert.Empty(t, created.AdmissionDate)
	assert.Equal(t, PriorityPadrao, created.Priority)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(&Candidate{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAdvanceChangesOnlyStage(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{Name: "Maria Souza", CPF: "111.222.333-44"})
	require.NoError(t, err)

	advanced, err := svc.Advance(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageEntrevista, advanced.Stage)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageEntrevista, reloaded.Stage)
	assert.Equal(t, "Maria Souza", reloaded.Name)
	assert.Equal(t, "111.222.333-44", reloaded.CPF)
	assert.Empty(t, reloaded.AdmissionDate)
}

func TestBoardOpinionGuard(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{Name: "Maria Souza"})
	require.NoError(t, err)

	// agendamentos -> entrevista -> aguardando_vaga -> decisao_diretoria
	for i := 0; i < 3; i++ {
		_, err = svc.Advance(created.ID)
		require.NoError(t, err)
	}

	_, err = svc.Advance(created.ID)
	assert.ErrorIs(t, err, ErrBoardOpinionRequired)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageDecisaoDiretoria, reloaded.Stage)

	reloaded.BoardOpinion = "Aprovado por unanimidade."
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)

	advanced, err := svc.Advance(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageAvaliacaoMedica, advanced.Stage)
}

func TestMedicalGuard(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{Name: "Maria Souza"})
	require.NoError(t, err)
	seedApprovals(t, svc, created.ID)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, StageAvaliacaoMedica, reloaded.Stage)

	reloaded.MedicalStatus = MedicalDesfavoravel
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)

	_, err = svc.Advance(created.ID)
	assert.ErrorIs(t, err, ErrMedicalNotFavorable)

	reloaded, err = svc.Get(created.ID)
	require.NoError(t, err)
	reloaded.MedicalStatus = MedicalFavoravel
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)

	advanced, err := svc.Advance(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageIntegracao, advanced.Stage)
}

func TestContractGuardAndAdmission(t *testing.T) {
	svc, residentService := newTestService(t)

	created, err := svc.Create(&Candidate{
		Name:            "Maria Souza",
		BirthDate:       "1940-05-12",
		Gender:          "feminino",
		MaritalStatus:   "viúva",
		CPF:             "111.222.333-44",
		RG:              "12.345.678-9",
		Address:         "Rua das Flores, 10",
		AdmissionReason: "Sem rede de apoio.",
	})
	require.NoError(t, err)
	seedApprovals(t, svc, created.ID)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	reloaded.MedicalStatus = MedicalFavoravel
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)
	_, err = svc.Advance(created.ID)
	require.NoError(t, err)

	// Contract still pending: admission is blocked and the stage holds.
	reloaded, err = svc.Get(created.ID)
	require.NoError(t, err)
	reloaded.ContractStatus = ContractPendente
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)

	_, err = svc.Advance(created.ID)
	assert.ErrorIs(t, err, ErrContractNotSigned)
	reloaded, err = svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageIntegracao, reloaded.Stage)
	assert.Empty(t, reloaded.AdmissionDate)

	// Signed contract completes the pipeline.
	reloaded.ContractStatus = ContractAssinado
	_, err = svc.Update(created.ID, reloaded)
	require.NoError(t, err)

	admitted, err := svc.Advance(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageAcolhido, admitted.Stage)
	assert.Equal(t, time.Now().Format("2006-01-02"), admitted.AdmissionDate)

	// A resident case file was opened with the candidate's data.
	rows, err := residentService.List("")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria Souza", rows[0].Name)
	assert.Equal(t, "1940-05-12", rows[0].BirthDate)
	assert.Equal(t, "111.222.333-44", rows[0].CPF)
	assert.Equal(t, admitted.AdmissionDate, rows[0].AdmissionDate)
	assert.Contains(t, rows[0].Observations, "Oriundo da triagem")

	// Terminal: no further transitions.
	_, err = svc.Advance(created.ID)
	assert.ErrorIs(t, err, ErrTerminalStage)
	_, err = svc.Archive(created.ID, "Falecimento")
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestArchiveAndReopen(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{Name: "José Oliveira"})
	require.NoError(t, err)

	_, err = svc.Archive(created.ID, "motivo livre")
	assert.ErrorIs(t, err, ErrArchiveReasonInvalid)

	archived, err := svc.Archive(created.ID, "Falecimento")
	require.NoError(t, err)
	assert.Equal(t, StageArquivado, archived.Stage)
	assert.Equal(t, "Falecimento", archived.ArchiveReason)

	board, err := svc.Board("")
	require.NoError(t, err)
	assert.Empty(t, board[StageAgendamentos])
	assert.Len(t, board[StageArquivado], 1)

	reopened, err := svc.Reopen(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StageEntrevista, reopened.Stage)
	assert.Empty(t, reopened.ArchiveReason)

	_, err = svc.Reopen(created.ID)
	assert.ErrorIs(t, err, ErrNotArchived)
}

func TestUpdatePreservesPipelineFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(&Candidate{Name: "Maria Souza"})
	require.NoError(t, err)
	_, err = svc.Advance(created.ID)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, &Candidate{
		Name:          "Maria de Souza",
		Stage:         StageAcolhido, // ignored
		ArchiveReason: "Falecimento", // ignored
		Priority:      PrioritySocialUrgente,
	})
	require.NoError(t, err)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria de Souza", reloaded.Name)
	assert.Equal(t, StageEntrevista, reloaded.Stage)
	assert.Empty(t, reloaded.ArchiveReason)
	assert.Equal(t, PrioritySocialUrgente, reloaded.Priority)
}

func TestListFiltersByNameAndStage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(&Candidate{Name: "Maria Souza"})
	require.NoError(t, err)
	second, err := svc.Create(&Candidate{Name: "João Pereira"})
	require.NoError(t, err)
	_, err = svc.Advance(second.ID)
	require.NoError(t, err)

	byName, err := svc.List("maria", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Maria Souza", byName[0].Name)

	byStage, err := svc.List("", StageEntrevista)
	require.NoError(t, err)
	require.Len(t, byStage, 1)
	assert.Equal(t, "João Pereira", byStage[0].Name)

	_, err = svc.List("", Stage("inexistente"))
	assert.ErrorIs(t, err, ErrInvalidStage)
}

// seedApprovals walks a fresh process up to avaliacao_medica, filling the
// board opinion on the way.
func seedApprovals(t *testing.T, svc *Service, candidateID uuid.UUID) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := svc.Advance(candidateID)
		require.NoError(t, err)
	}
	candidate, err := svc.Get(candidateID)
	require.NoError(t, err)
	candidate.BoardOpinion = "Aprovado."
	_, err = svc.Update(candidateID, candidate)
	require.NoError(t, err)
	_, err = svc.Advance(candidateID)
	require.NoError(t, err)
}
