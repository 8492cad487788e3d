package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/screening"
	"github.com/ssvp-lar/ilpi-backend/internal/models"
)

// The print documents are standalone HTML with inline styles, meant to be
// opened in a new browser context and printed to PDF. They only read
// already-computed fields and never mutate anything.

const baseStyle = `
  body { font-family: Arial, Helvetica, sans-serif; color: #1f2937; margin: 40px; }
  h1 { font-size: 18px; text-transform: uppercase; color: #004c99; border-bottom: 3px solid #004c99; padding-bottom: 8px; }
  h2 { font-size: 13px; text-transform: uppercase; color: #1e3a8a; margin-top: 28px; border-bottom: 1px solid #d1d5db; padding-bottom: 4px; }
  .header { display: flex; justify-content: space-between; align-items: baseline; }
  .header .institution { font-size: 12px; font-weight: bold; text-transform: uppercase; }
  .header .cnpj { font-size: 10px; color: #6b7280; }
  table { width: 100%; border-collapse: collapse; margin-top: 8px; font-size: 11px; }
  th { text-align: left; text-transform: uppercase; font-size: 9px; color: #6b7280; border-bottom: 1px solid #9ca3af; padding: 4px 6px; }
  td { border-bottom: 1px solid #e5e7eb; padding: 4px 6px; }
  .field { display: inline-block; margin: 4px 16px 4px 0; font-size: 11px; }
  .field b { text-transform: uppercase; font-size: 9px; color: #6b7280; display: block; }
  .negative { color: #dc2626; } .positive { color: #16a34a; }
`

var residentFileTemplate = template.Must(template.New("residentFile").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Ficha do Residente - {{.Resident.Name}}</title>
<style>` + baseStyle + `</style>
</head>
<body onload="window.print()">
<div class="header">
  <span class="institution">{{.Institution.Name}}</span>
  <span class="cnpj">CNPJ {{.Institution.CNPJ}}</span>
</div>
<h1>Ficha Cadastral do Residente</h1>

<h2>Identificação</h2>
<span class="field"><b>Nome</b>{{.Resident.Name}}</span>
<span class="field"><b>Nascimento</b>{{.Resident.BirthDate}}</span>
<span class="field"><b>Sexo</b>{{.Resident.Gender}}</span>
<span class="field"><b>Estado civil</b>{{.Resident.MaritalStatus}}</span>
<span class="field"><b>Naturalidade</b>{{.Resident.Naturalness}}</span>
<span class="field"><b>Profissão</b>{{.Resident.Profession}}</span>
<span class="field"><b>Pai</b>{{.Resident.FatherName}}</span>
<span class="field"><b>Mãe</b>{{.Resident.MotherName}}</span>

<h2>Documentos</h2>
<span class="field"><b>CPF</b>{{.Resident.CPF}}</span>
<span class="field"><b>RG</b>{{.Resident.RG}} {{.Resident.IssuingBody}}</span>
<span class="field"><b>Cartão SUS</b>{{.Resident.SUSCard}}</span>
<span class="field"><b>NIS / CadÚnico</b>{{.Resident.CadUnico}}</span>
<span class="field"><b>Benefício INSS</b>{{.Resident.INSSNumber}} {{.Resident.INSSType}}</span>

<h2>Admissão</h2>
<span class="field"><b>Data de admissão</b>{{.Resident.AdmissionDate}}</span>
<span class="field"><b>Acomodação</b>{{.Resident.Room}}</span>
<span class="field"><b>Tipo de estadia</b>{{.Resident.StayType}}</span>
<span class="field"><b>Grau de dependência</b>{{.Resident.DependencyLevel}}</span>
<span class="field"><b>Motivo</b>{{.Resident.AdmissionReason}}</span>

<h2>Familiares e Contatos</h2>
<table>
<tr><th>Nome</th><th>Parentesco</th><th>Telefone</th><th>Responsável</th></tr>
{{range .Resident.Relatives}}<tr><td>{{.Name}}</td><td>{{.Kinship}}</td><td>{{.Phone}}</td><td>{{if .IsResponsible}}Sim{{else}}—{{end}}</td></tr>
{{end}}</table>

<h2>Financeiro</h2>
<table>
<tr><th>Data</th><th>Tipo</th><th>Descrição</th><th>Valor</th></tr>
{{range .Resident.Financials}}<tr><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Description}}</td><td>R$ {{printf "%.2f" .Amount}}</td></tr>
{{end}}</table>
<p class="field"><b>Saldo atual</b><span class="{{if lt .Balance 0.0}}negative{{else}}positive{{end}}">R$ {{printf "%.2f" .Balance}}</span></p>

<h2>Medicamentos</h2>
<table>
<tr><th>Medicamento</th><th>Dosagem</th><th>Frequência</th><th>Estoque</th></tr>
{{range .Resident.Medications}}<tr><td>{{.Name}}</td><td>{{.Dosage}}</td><td>{{.Frequency}}</td><td{{if le .Stock 5}} class="negative"{{end}}>{{.Stock}}</td></tr>
{{end}}</table>

<h2>Saúde</h2>
<table>
<tr><th>Data</th><th>Resumo</th><th>Profissional</th><th>Observação</th></tr>
{{range .Resident.HealthUpdates}}<tr><td>{{.Date}}</td><td>{{.Summary}}</td><td>{{.Professional}}</td><td>{{.Observation}}</td></tr>
{{end}}</table>

{{if .Resident.Observations}}<h2>Observações</h2><p class="field">{{.Resident.Observations}}</p>{{end}}
</body>
</html>
`))

var screeningFormTemplate = template.Must(template.New("screeningForm").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Ficha Social - {{.Candidate.Name}}</title>
<style>` + baseStyle + `</style>
</head>
<body onload="window.print()">
<div class="header">
  <span class="institution">{{.Institution.Name}}</span>
  <span class="cnpj">CNPJ {{.Institution.CNPJ}}</span>
</div>
<h1>Ficha Social para Triagem</h1>
<span class="field"><b>Etapa</b>{{.Candidate.Stage}}</span>
<span class="field"><b>Prioridade</b>{{.Candidate.Priority}}</span>
{{if .Candidate.ArchiveReason}}<span class="field"><b>Arquivado</b>{{.Candidate.ArchiveReason}}</span>{{end}}

<h2>1. Identificação do Idoso</h2>
<span class="field"><b>Nome</b>{{.Candidate.Name}}</span>
<span class="field"><b>Nascimento</b>{{.Candidate.BirthDate}}</span>
<span class="field"><b>Idade</b>{{.Candidate.Age}}</span>
<span class="field"><b>Sexo</b>{{.Candidate.Gender}}</span>
<span class="field"><b>Estado civil</b>{{.Candidate.MaritalStatus}}</span>
<span class="field"><b>RG</b>{{.Candidate.RG}}</span>
<span class="field"><b>CPF</b>{{.Candidate.CPF}}</span>
<span class="field"><b>Endereço</b>{{.Candidate.Address}}</span>
<span class="field"><b>Telefone</b>{{.Candidate.Phone}}</span>

<h2>2. Responsável Legal / Familiar</h2>
<span class="field"><b>Nome</b>{{.Candidate.RepName}}</span>
<span class="field"><b>Parentesco</b>{{.Candidate.RepKinship}}</span>
<span class="field"><b>Telefone</b>{{.Candidate.RepPhone}}</span>
<span class="field"><b>Endereço</b>{{.Candidate.RepAddress}}</span>

<h2>3. Composição e Rede de Apoio</h2>
<span class="field"><b>Reside com</b>{{.Interview.ResidesWith}}</span>
<span class="field"><b>Possui filhos</b>{{.Interview.HasChildren}} {{.Interview.ChildrenCount}}</span>
<span class="field"><b>Possui cuidador</b>{{.Interview.HasCaregiver}}</span>
<span class="field"><b>Rede de apoio</b>{{.Interview.HasSupportNetwork}} {{.Interview.SupportNetworkDetails}}</span>

<h2>4. Composição Familiar</h2>
<table>
<tr><th>Nome</th><th>Parentesco</th><th>Idade</th><th>Ocupação</th><th>Renda</th></tr>
{{range .Interview.FamilyTable}}<tr><td>{{.Name}}</td><td>{{.Kinship}}</td><td>{{.Age}}</td><td>{{.Job}}</td><td>{{.Income}}</td></tr>
{{end}}</table>

<h2>5. Moradia</h2>
<span class="field"><b>Tipo</b>{{.Interview.HousingType}}</span>
<span class="field"><b>Aluguel</b>{{.Interview.RentValue}}</span>

<h2>6. Situação Socioeconômica</h2>
<span class="field"><b>Fonte de renda</b>{{.Interview.IncomeSource}}</span>
<span class="field"><b>Valor</b>{{.Interview.IncomeValue}}</span>
<span class="field"><b>Empréstimos</b>{{.Interview.HasLoan}} {{.Interview.LoanValue}}</span>
<span class="field"><b>Pode custear o cuidado</b>{{.Interview.CanAffordCare}}</span>

<h2>7. Saúde</h2>
<span class="field"><b>Diagnósticos</b>{{.Interview.MedicalDiagnoses}}</span>
<span class="field"><b>Medicação contínua</b>{{.Interview.ContinuousMedication}} {{.Interview.MedicationDetails}}</span>
<span class="field"><b>Acompanhamento médico regular</b>{{.Interview.RegularMedicalFollowup}}</span>
<span class="field"><b>Comprometimento cognitivo</b>{{.Interview.CognitiveImpairment}} {{.Interview.CognitiveDetails}}</span>

<h2>8. Dependência</h2>
<span class="field"><b>Higiene</b>{{.Interview.DepHygiene}}</span>
<span class="field"><b>Alimentação</b>{{.Interview.DepFeeding}}</span>
<span class="field"><b>Locomoção</b>{{.Interview.DepMobility}}</span>
<span class="field"><b>Banheiro</b>{{.Interview.DepBathroom}}</span>
<span class="field"><b>Medicação</b>{{.Interview.DepMedication}}</span>
<span class="field"><b>Cuidado integral</b>{{.Interview.NeedsFullTimeCare}}</span>

<h2>9. Aspectos Psicossociais</h2>
<span class="field"><b>Conflitos familiares</b>{{.Interview.FamilyConflicts}} {{.Interview.ConflictDetails}}</span>
<span class="field"><b>Idoso concorda</b>{{.Interview.ElderlyAgrees}}</span>
<span class="field"><b>Família concorda</b>{{.Interview.FamilyAgrees}}</span>

<h2>10. Motivo da Solicitação</h2>
<p class="field">{{.Interview.RequestReason}}</p>

<h2>11. Parecer Social</h2>
<p class="field">{{.Interview.SocialAnalysis}}</p>

{{if .Candidate.BoardOpinion}}<h2>Parecer da Diretoria</h2><p class="field">{{.Candidate.BoardOpinion}}</p>{{end}}
{{if .Candidate.MedicalOpinion}}<h2>Parecer Médico</h2><p class="field">{{.Candidate.MedicalOpinion}} ({{.Candidate.MedicalStatus}})</p>{{end}}
</body>
</html>
`))

type residentFileData struct {
	Institution models.InstitutionSettings
	Resident    residents.Resident
	Balance     float64
}

type screeningFormData struct {
	Institution models.InstitutionSettings
	Candidate   screening.Candidate
	Interview   screening.InterviewData
}

// RenderResidentFile builds the printable case file document.
func RenderResidentFile(institution models.InstitutionSettings, resident residents.Resident) ([]byte, error) {
	var buf bytes.Buffer
	data := residentFileData{
		Institution: institution,
		Resident:    resident,
		Balance:     residents.Balance(resident.Financials),
	}
	if err := residentFileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render resident file: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderScreeningForm builds the printable ficha social of a candidate.
func RenderScreeningForm(institution models.InstitutionSettings, candidate screening.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	data := screeningFormData{
		Institution: institution,
		Candidate:   candidate,
		Interview:   candidate.Interview.Data(),
	}
	if err := screeningFormTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render screening form: %w", err)
	}
	return buf.Bytes(), nil
}
