package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 8)
	assert.Equal(t, StageAgendamentos, stages[0])
	assert.Equal(t, StageAcolhido, stages[6])
	assert.Equal(t, StageArquivado, stages[7])

	for _, s := range stages {
		assert.True(t, s.Valid(), "stage %q should be valid", s)
	}
	assert.False(t, Stage("inexistente").Valid())
}

func TestStageNext(t *testing.T) {
	tests := []struct {
		from Stage
		want Stage
		ok   bool
	}{
		{StageAgendamentos, StageEntrevista, true},
		{StageEntrevista, StageAguardandoVaga, true},
		{StageAguardandoVaga, StageDecisaoDiretoria, true},
		{StageDecisaoDiretoria, StageAvaliacaoMedica, true},
		{StageAvaliacaoMedica, StageIntegracao, true},
		{StageIntegracao, StageAcolhido, true},
		{StageAcolhido, "", false},
		{StageArquivado, "", false},
		{Stage("inexistente"), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.from.Next()
		assert.Equal(t, tt.ok, ok, "Next(%q)", tt.from)
		assert.Equal(t, tt.want, got, "Next(%q)", tt.from)
	}
}

func TestStageTerminal(t *testing.T) {
	assert.True(t, StageAcolhido.Terminal())
	assert.True(t, StageArquivado.Terminal())
	for _, s := range []Stage{StageAgendamentos, StageEntrevista, StageAguardandoVaga, StageDecisaoDiretoria, StageAvaliacaoMedica, StageIntegracao} {
		assert.False(t, s.Terminal(), "stage %q", s)
	}
}

func TestAdvanceGuard(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		wantErr   error
	}{
		{"scheduling always advances", Candidate{Stage: StageAgendamentos}, nil},
		{"interview always advances", Candidate{Stage: StageEntrevista}, nil},
		{"waitlist always advances", Candidate{Stage: StageAguardandoVaga}, nil},
		{"board needs opinion", Candidate{Stage: StageDecisaoDiretoria}, ErrBoardOpinionRequired},
		{"board advances with opinion", Candidate{Stage: StageDecisaoDiretoria, BoardOpinion: "Aprovado em reunião."}, nil},
		{"medical needs favorable", Candidate{Stage: StageAvaliacaoMedica, MedicalStatus: MedicalDesfavoravel}, ErrMedicalNotFavorable},
		{"medical empty blocks", Candidate{Stage: StageAvaliacaoMedica}, ErrMedicalNotFavorable},
		{"medical favorable advances", Candidate{Stage: StageAvaliacaoMedica, MedicalStatus: MedicalFavoravel}, nil},
		{"integration needs signed contract", Candidate{Stage: StageIntegracao, ContractStatus: ContractPendente}, ErrContractNotSigned},
		{"integration signed advances", Candidate{Stage: StageIntegracao, ContractStatus: ContractAssinado}, nil},
		{"admitted never advances", Candidate{Stage: StageAcolhido}, ErrTerminalStage},
		{"archived never advances", Candidate{Stage: StageArquivado}, ErrTerminalStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.candidate.AdvanceGuard()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidArchiveReason(t *testing.T) {
	for _, reason := range ArchiveReasons {
		assert.True(t, ValidArchiveReason(reason), "reason %q", reason)
	}
	assert.False(t, ValidArchiveReason(""))
	assert.False(t, ValidArchiveReason("Qualquer outra coisa"))
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityRank(PrioritySocialUrgente))
	assert.Equal(t, 1, PriorityRank(PriorityDependenciaDuvidosa))
	assert.Equal(t, 2, PriorityRank(PriorityPadrao))
	assert.Equal(t, 2, PriorityRank(Priority("")))
}
