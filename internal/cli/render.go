package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
)

const notFound = "(not found)"

// Bond table columns that get their own highlight.
const (
	sourceColumn   = 5
	activityColumn = 6
)

// FormatDuration renders a duration as "N years, N months, N days (N days)".
func FormatDuration(d model.Duration) string {
	return fmt.Sprintf("%d years, %d months, %d days (%d days)", d.Years, d.Months, d.Days, d.TotalDays)
}

// RenderProfile renders the identity of the insured person in a box.
func RenderProfile(p model.SubjectProfile) string {
	lines := []string{
		field("Name", model.Deref(p.Name)),
		field("CPF", model.Deref(p.TaxID)),
		field("Birth date", dateText(p.BirthDate)),
		field("Mother", model.Deref(p.MotherName)),
	}
	if p.Gender != "" {
		lines = append(lines, field("Gender", string(p.Gender)))
	}
	return RenderBox("Insured person", strings.Join(lines, "\n"))
}

func field(label, value string) string {
	if value == "" {
		value = SubtleStyle.Render(notFound)
	}
	return BoldStyle.Render(label+":") + " " + value
}

// RenderBonds renders one table row per bond. times holds the computed
// durations keyed by sequence; bonds without an entry show no duration.
func RenderBonds(bonds []model.Bond, times []contribution.BondTime) string {
	bySequence := make(map[int]model.Duration, len(times))
	for _, t := range times {
		bySequence[t.Sequence] = t.Duration
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("Seq", "Origin", "Category", "Start", "End", "Source", "Activity", "Months", "Duration", "Incl.", "Conc.").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if row < 0 || row >= len(bonds) {
				return TableCellStyle
			}
			return BondCellStyle(&bonds[row], col)
		})

	for i := range bonds {
		b := &bonds[i]
		duration := ""
		if d, ok := bySequence[b.Sequence]; ok {
			duration = fmt.Sprintf("%dy %dm %dd", d.Years, d.Months, d.Days)
		}
		t.Row(
			strconv.Itoa(b.Sequence),
			truncate(b.OriginName, 32),
			string(b.Category),
			dateText(b.Start),
			dateText(b.End),
			EndSourceLabel(b.EndSource),
			ActivityLabel(b.ActivityType),
			strconv.Itoa(b.QualifyingMonths()),
			duration,
			mark(b.Included),
			mark(b.Concurrent),
		)
	}

	return t.String()
}

// RenderSummary renders the aggregate contribution time.
func RenderSummary(s contribution.Summary) string {
	included := 0
	for _, b := range s.Bonds {
		if b.Included {
			included++
		}
	}

	gender := s.Gender
	if gender == "" {
		gender = model.GenderMale
	}

	content := strings.Join([]string{
		field("Total", FormatDuration(s.Total)),
		field("Qualifying months", strconv.Itoa(s.QualifyingMonths)),
		field("Bonds included", fmt.Sprintf("%d of %d", included, len(s.Bonds))),
		field("Factors", string(gender)),
	}, "\n")

	return RenderBox(ClockIcon+" Contribution time", content)
}

// RenderWarnings renders parser warnings, or "" when there are none.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, FormatWarning(w))
	}
	return strings.Join(lines, "\n")
}

// RenderImports renders the list of saved imports as aligned columns.
func RenderImports(imports []model.ImportSummary) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	headerStyle := BoldStyle.Foreground(AccentColor)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Imported"),
		headerStyle.Render("Subject"),
		headerStyle.Render("Bonds"),
		headerStyle.Render("File"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 36),
		strings.Repeat("-", 16),
		strings.Repeat("-", 24),
		strings.Repeat("-", 5),
		strings.Repeat("-", 20))

	for _, imp := range imports {
		subject := imp.SubjectName
		if subject == "" {
			subject = notFound
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			imp.ID,
			imp.ImportedAt.Local().Format("2006-01-02 15:04"),
			subject,
			imp.BondCount,
			imp.SourceFile)
	}

	_ = w.Flush()
	return sb.String()
}

func dateText(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return d.BRString()
}

func mark(b bool) string {
	if b {
		return SuccessIcon
	}
	return "-"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
