package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	bondsSheet   = "Vínculos"
	summarySheet = "Resumo"
)

var xlsxHeader = []any{
	"Seq.", "Origem do vínculo", "Categoria", "Início", "Fim", "Atividade",
	"Anos", "Meses", "Dias", "Total de dias", "Competências", "Remunerações", "Incluído", "Concomitante",
}

// WriteXLSX renders r as a workbook with a bond sheet and a summary sheet.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", bondsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	moneyFormat := "#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(bondsSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	if err := f.SetCellStyle(bondsSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range r.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			row.Sequence, row.Origin, CategoryLabel(row.Category), row.Start, row.End, string(row.ActivityType),
			row.Duration.Years, row.Duration.Months, row.Duration.Days, row.Duration.TotalDays,
			row.Remunerations, row.TotalSalary.InexactFloat64(), yesNo(row.Included), yesNo(row.Concurrent),
		}
		if err := f.SetSheetRow(bondsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write bond %d: %w", row.Sequence, err)
		}
		salaryCell, _ := excelize.CoordinatesToCellName(12, i+2)
		if err := f.SetCellStyle(bondsSheet, salaryCell, salaryCell, money); err != nil {
			return fmt.Errorf("failed to style bond %d: %w", row.Sequence, err)
		}
	}
	if err := f.SetColWidth(bondsSheet, "B", "B", 45); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]any{
		{"Segurado", r.SubjectName},
		{"CPF", r.TaxID},
		{"Nascimento", r.BirthDate},
		{"Mãe", r.MotherName},
		{"Sexo", string(r.Gender)},
		{"Anos", r.Total.Years},
		{"Meses", r.Total.Months},
		{"Dias", r.Total.Days},
		{"Total de dias", r.Total.TotalDays},
		{"Competências com contribuição", r.QualifyingMonths},
		{"Gerado em", r.GeneratedAt.Format("02/01/2006 15:04")},
	}
	for i, warning := range r.Warnings {
		summary = append(summary, []any{fmt.Sprintf("Aviso %d", i+1), warning})
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
