// Package cli renders extracts, bond tables and contribution totals for the terminal.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// Palette. Special activity is highlighted because its days are multiplied;
// edited end dates because they no longer come from the document.
var (
	AccentColor  = lipgloss.Color("#2A9D8F")
	MutedColor   = lipgloss.Color("#7A7A7A")
	SpecialColor = lipgloss.Color("#E9C46A")
	EditedColor  = lipgloss.Color("#F4A261")
	OkColor      = lipgloss.Color("#52B788")
	AlertColor   = lipgloss.Color("#E76F51")
	NoticeColor  = lipgloss.Color("#8ECAE6")
)

var (
	// TitleStyle heads a rendered section.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).MarginBottom(1)
	// SubtitleStyle is for counts and hints under a title.
	SubtitleStyle = lipgloss.NewStyle().Foreground(MutedColor).MarginBottom(1)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(MutedColor)

	// BoxStyle frames the profile and the summary.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	// ExcludedRowStyle greys out every cell of a bond left out of the totals.
	ExcludedRowStyle = TableCellStyle.Foreground(MutedColor).Strikethrough(true)
	// SpecialActivityStyle marks the activity cell of special_* bonds.
	SpecialActivityStyle = TableCellStyle.Foreground(SpecialColor).Bold(true)
	// InferredEndStyle marks end dates recovered from the block rather than printed.
	InferredEndStyle = TableCellStyle.Foreground(MutedColor).Italic(true)
	// EditedEndStyle marks end dates set by the user.
	EditedEndStyle = TableCellStyle.Foreground(EditedColor).Bold(true)

	okStyle      = lipgloss.NewStyle().Foreground(OkColor)
	alertStyle   = lipgloss.NewStyle().Foreground(AlertColor)
	noticeStyle  = lipgloss.NewStyle().Foreground(NoticeColor)
	cautionStyle = lipgloss.NewStyle().Foreground(SpecialColor)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	DocumentIcon = "📄"
	ClockIcon    = "⏱️"
)

// ActivityLabel is the table text for an activity type.
func ActivityLabel(t model.ActivityType) string {
	switch t {
	case model.ActivityCommon:
		return "common"
	case model.ActivitySpecial25:
		return "special 25y"
	case model.ActivitySpecial20:
		return "special 20y"
	case model.ActivitySpecial15:
		return "special 15y"
	case "":
		return "-"
	}
	return string(t)
}

// EndSourceLabel is the table text for where an end date came from.
func EndSourceLabel(s model.EndDateSource) string {
	switch s {
	case model.EndFromHeader:
		return "printed"
	case model.EndFromLastRemunerationLabel:
		return "last remun. label"
	case model.EndFromBareCompetence:
		return "month/year"
	case model.EndFromRemuneration:
		return "last entry"
	case model.EndFromUser:
		return "edited"
	case model.EndNone, "":
		return "open"
	}
	return string(s)
}

// BondCellStyle picks the style of one cell of a bond row. Exclusion wins over
// the per-column highlights.
func BondCellStyle(b *model.Bond, col int) lipgloss.Style {
	if !b.Included {
		return ExcludedRowStyle
	}
	switch col {
	case activityColumn:
		if isSpecial(b.ActivityType) {
			return SpecialActivityStyle
		}
	case sourceColumn:
		switch b.EndSource {
		case model.EndFromUser:
			return EditedEndStyle
		case model.EndFromLastRemunerationLabel, model.EndFromBareCompetence, model.EndFromRemuneration:
			return InferredEndStyle
		}
	}
	return TableCellStyle
}

func isSpecial(t model.ActivityType) bool {
	return t.Valid() && t != model.ActivityCommon
}

// FormatSuccess prefixes message with the success icon.
func FormatSuccess(message string) string {
	return okStyle.Render(SuccessIcon + " " + message)
}

// FormatError prefixes message with the error icon.
func FormatError(message string) string {
	return alertStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning is used for parser warnings.
func FormatWarning(message string) string {
	return cautionStyle.Render(WarningIcon + " " + message)
}

func FormatInfo(message string) string {
	return noticeStyle.Render(InfoIcon + " " + message)
}

func FormatTitle(title string) string {
	return TitleStyle.Render(DocumentIcon + " " + title)
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	head := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, content))
}
