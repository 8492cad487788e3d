package reports

import (
	"fmt"
	"sort"

	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/screening"
	"github.com/xuri/excelize/v2"
)

var censusHeader = []string{
	"Nome",
	"Nascimento",
	"CPF",
	"Acomodação",
	"Tipo de Estadia",
	"Admissão",
	"Saldo (R$)",
	"Estoque Baixo",
	"Última Visita",
}

var waitlistHeader = []string{
	"Nome",
	"Nascimento",
	"Telefone",
	"Prioridade",
	"Motivo da Solicitação",
	"Registro",
}

// BuildResidentCensus generates the XLSX census of the current residents,
// one row per case file with the computed aggregates.
func BuildResidentCensus(rows []residents.Row) ([]byte, error) {
	cells := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		lowStock := "Não"
		if r.LowStock {
			lowStock = "Sim"
		}
		cells = append(cells, []interface{}{
			r.Name, r.BirthDate, r.CPF, r.Room, r.StayType,
			r.AdmissionDate, r.Balance, lowStock, r.LastVisit,
		})
	}
	return buildSheet("Residentes", censusHeader, cells)
}

// BuildWaitlist generates the XLSX waitlist, ordered by priority tier
// (most urgent first) and then by registration time.
func BuildWaitlist(candidates []screening.Candidate) ([]byte, error) {
	sorted := make([]screening.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := screening.PriorityRank(sorted[i].Priority), screening.PriorityRank(sorted[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	cells := make([][]interface{}, 0, len(sorted))
	for _, c := range sorted {
		cells = append(cells, []interface{}{
			c.Name, c.BirthDate, c.Phone, string(c.Priority),
			c.AdmissionReason, c.CreatedAt.Format("2006-01-02"),
		})
	}
	return buildSheet("Fila de Espera", waitlistHeader, cells)
}

func buildSheet(sheetName string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on the error paths.

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	f.Close()
	return buf.Bytes(), nil
}
