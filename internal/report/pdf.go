package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

type pdfColumn struct {
	title string
	width float64
	align string
}

var pdfColumns = []pdfColumn{
	{"Seq.", 10, "C"},
	{"Origem do vínculo", 70, "L"},
	{"Categoria", 36, "L"},
	{"Início", 22, "C"},
	{"Fim", 22, "C"},
	{"Atividade", 22, "C"},
	{"Tempo", 30, "R"},
	{"Comp.", 14, "R"},
	{"Remunerações", 30, "R"},
	{"Incl.", 10, "C"},
}

// WritePDF renders r as a landscape A4 PDF.
func WritePDF(w io.Writer, r Report) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetTitle("Extrato CNIS", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("Extrato CNIS: tempo de contribuição"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	for _, line := range [][2]string{
		{"Segurado", r.SubjectName},
		{"CPF", r.TaxID},
		{"Nascimento", r.BirthDate},
		{"Mãe", r.MotherName},
		{"Gerado em", r.GeneratedAt.Format("02/01/2006 15:04")},
	} {
		if line[1] == "" {
			continue
		}
		pdf.CellFormat(0, 5, tr(line[0]+": "+line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range r.Rows {
		cells := []string{
			fmt.Sprintf("%d", row.Sequence),
			truncate(row.Origin, 45),
			CategoryLabel(row.Category),
			row.Start,
			row.End,
			string(row.ActivityType),
			FormatDurationShort(row.Duration),
			FormatCount(row.Remunerations),
			FormatMoney(row.TotalSalary),
			yesNo(row.Included),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 5, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr("Tempo total: "+FormatDuration(r.Total)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Competências com contribuição: "+FormatCount(r.QualifyingMonths)), "", 1, "L", false, 0, "")

	if len(r.Warnings) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 8)
		for _, warning := range r.Warnings {
			pdf.MultiCell(0, 4, tr("Aviso: "+warning), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
