// Package report renders a CNIS extract and its contribution time as PDF, XLSX or JSON.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
)

// Format names an output format.
type Format string

// Supported report formats.
const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatXLSX, FormatJSON}

// ParseFormat resolves a format name, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: report format %q", common.ErrUnsupportedFormat, s)
}

// Row is one bond line of the report.
type Row struct {
	TotalSalary   decimal.Decimal        `json:"total_salary"`
	Origin        string                 `json:"origin"`
	Category      model.ActivityCategory `json:"category"`
	ActivityType  model.ActivityType     `json:"activity_type"`
	Start         string                 `json:"start"`
	End           string                 `json:"end"`
	Duration      model.Duration         `json:"duration"`
	Sequence      int                    `json:"sequence"`
	Remunerations int                    `json:"remunerations"`
	Included      bool                   `json:"included"`
	Concurrent    bool                   `json:"concurrent"`
}

// Report is the rendered view of an extract and its contribution summary.
type Report struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	SubjectName      string         `json:"subject_name"`
	TaxID            string         `json:"tax_id"`
	BirthDate        string         `json:"birth_date"`
	MotherName       string         `json:"mother_name"`
	Gender           model.Gender   `json:"gender"`
	Rows             []Row          `json:"rows"`
	Warnings         []string       `json:"warnings,omitempty"`
	Total            model.Duration `json:"total"`
	QualifyingMonths int            `json:"qualifying_months"`
}

// Build combines an extract with its computed summary. Rows follow the bond
// order of the extract; per-bond durations are matched by sequence.
func Build(extract *model.Extract, summary contribution.Summary, generatedAt time.Time) Report {
	p := extract.Profile
	r := Report{
		GeneratedAt:      generatedAt,
		SubjectName:      model.Deref(p.Name),
		TaxID:            model.Deref(p.TaxID),
		MotherName:       model.Deref(p.MotherName),
		Gender:           summary.Gender,
		Total:            summary.Total,
		QualifyingMonths: summary.QualifyingMonths,
		Warnings:         extract.Warnings,
		Rows:             make([]Row, 0, len(extract.Bonds)),
	}
	if p.BirthDate != nil {
		r.BirthDate = p.BirthDate.BRString()
	}

	durations := make(map[int]model.Duration, len(summary.Bonds))
	for _, bt := range summary.Bonds {
		durations[bt.Sequence] = bt.Duration
	}

	for i := range extract.Bonds {
		b := &extract.Bonds[i]
		r.Rows = append(r.Rows, Row{
			Sequence:      b.Sequence,
			Origin:        b.OriginName,
			Category:      b.Category,
			ActivityType:  b.ActivityType,
			Start:         brDate(b.Start),
			End:           brDate(b.End),
			Duration:      durations[b.Sequence],
			Remunerations: len(b.Remunerations),
			TotalSalary:   b.TotalSalary(),
			Included:      b.Included,
			Concurrent:    b.Concurrent,
		})
	}
	return r
}

// Write renders r in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: report format %q", common.ErrUnsupportedFormat, format)
	}
}

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatMoney formats an amount as Brazilian reais, e.g. "R$ 1.500,00".
func FormatMoney(d decimal.Decimal) string {
	return printer.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}

// FormatDuration spells out a duration in Portuguese.
func FormatDuration(d model.Duration) string {
	return printer.Sprintf("%d anos, %d meses e %d dias (%d dias)", d.Years, d.Months, d.Days, d.TotalDays)
}

// FormatCount formats an integer with pt-BR digit grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

var categoryLabels = map[model.ActivityCategory]string{
	model.CategoryEmployee:              "Empregado",
	model.CategoryDomesticWorker:        "Empregado doméstico",
	model.CategoryIndividualContributor: "Contribuinte individual",
	model.CategoryVoluntary:             "Facultativo",
	model.CategoryRuralWorker:           "Trabalhador rural",
	model.CategorySpecialInsured:        "Segurado especial",
	model.CategoryGigWorker:             "Avulso",
	model.CategoryBenefit:               "Benefício",
	model.CategoryIndeterminate:         "Indeterminado",
}

// CategoryLabel returns the Portuguese label of a category.
func CategoryLabel(c model.ActivityCategory) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func brDate(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.BRString()
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// FormatDurationShort is the compact form used in table cells, e.g. "5a 9m 30d".
func FormatDurationShort(d model.Duration) string {
	return fmt.Sprintf("%da %dm %dd", d.Years, d.Months, d.Days)
}
