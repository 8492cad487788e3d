package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/screening"
	"github.com/ssvp-lar/ilpi-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func TestRenderResidentFile(t *testing.T) {
	institution := models.DefaultInstitutionSettings()
	resident := residents.Resident{
		Name:          "Antônio Silva",
		BirthDate:     "1938-02-10",
		CPF:           "111.222.333-44",
		Room:          "Quarto 3",
		AdmissionDate: "2026-01-15",
		Financials: []residents.FinancialTransaction{
			{Type: residents.TransactionEntrada, Amount: 1000},
			{Type: residents.TransactionSaida, Amount: 400},
		},
	}

	out, err := RenderResidentFile(institution, resident)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Antônio Silva")
	assert.Contains(t, html, "Lar São Vicente de Paulo")
	assert.Contains(t, html, "111.222.333-44")
	assert.Contains(t, html, "window.print()")
}

func TestRenderScreeningForm(t *testing.T) {
	institution := models.DefaultInstitutionSettings()
	candidate := screening.Candidate{
		Name:  "Maria Souza",
		Stage: screening.StageEntrevista,
		Interview: datatypes.NewJSONType(screening.InterviewData{
			ResidesWith:    "Sozinha",
			HousingType:    "Casa própria",
			RequestReason:  "Sem condições de permanecer no domicílio.",
			SocialAnalysis: "Encaminhamento favorável.",
			FamilyTable: []screening.FamilyMemberRecord{
				{Name: "Ana Souza", Kinship: "filha", Age: "52"},
			},
		}),
	}

	out, err := RenderScreeningForm(institution, candidate)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Maria Souza")
	assert.Contains(t, html, "Ana Souza")
	assert.Contains(t, html, "Sem condições de permanecer no domicílio.")
	assert.Contains(t, html, "Encaminhamento favorável.")
}

func TestBuildResidentCensus(t *testing.T) {
	rows := []residents.Row{
		{
			Resident: residents.Resident{Name: "Antônio Silva", Room: "Quarto 3"},
			Balance:  600,
			LowStock: true,
		},
	}

	out, err := BuildResidentCensus(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Residentes", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Antônio Silva", name)

	lowStock, err := f.GetCellValue("Residentes", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Sim", lowStock)
}

func TestBuildWaitlistOrdersByPriority(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	candidates := []screening.Candidate{
		{Name: "Padrão Antigo", Priority: screening.PriorityPadrao, CreatedAt: base},
		{Name: "Urgente", Priority: screening.PrioritySocialUrgente, CreatedAt: base.Add(48 * time.Hour)},
		{Name: "Duvidosa", Priority: screening.PriorityDependenciaDuvidosa, CreatedAt: base.Add(24 * time.Hour)},
		{Name: "Padrão Recente", Priority: screening.PriorityPadrao, CreatedAt: base.Add(72 * time.Hour)},
	}

	out, err := BuildWaitlist(candidates)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	var names []string
	for row := 2; row <= 5; row++ {
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		value, err := f.GetCellValue("Fila de Espera", cell)
		require.NoError(t, err)
		names = append(names, value)
	}
	assert.Equal(t, []string{"Urgente", "Duvidosa", "Padrão Antigo", "Padrão Recente"}, names)
}
