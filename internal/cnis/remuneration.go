package cnis

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// ExtractRemunerations scans the whole block for "MM/YYYY amount [codes]" entries.
// Amounts use a comma decimal separator with optional dot thousands separators.
// In contribution tables ("MM/YYYY dd/mm/yyyy contribution salary") the salary
// is taken. Entries whose competence or amount cannot be parsed are skipped. The
// result is sorted by competence; entries sharing a competence keep their document order.
func ExtractRemunerations(block string) []model.ContributionMonth {
	return extractRemunerations(block, slog.Default())
}

// extractRemunerations is ExtractRemunerations logging skipped entries to logger.
func extractRemunerations(block string, logger *slog.Logger) []model.ContributionMonth {
	months := []model.ContributionMonth{}

	for _, loc := range remunerationPattern.FindAllStringSubmatchIndex(block, -1) {
		if loc[0] > 0 && isDateChar(block[loc[0]-1]) {
			// month/year tail of a full date
			continue
		}

		competenceText := block[loc[2]:loc[3]]
		amountText := block[loc[4]:loc[5]]

		competence, err := model.ParseCompetence(competenceText)
		if err != nil {
			logger.Debug("Skipping remuneration with invalid competence",
				"competence", competenceText,
				"error", err)
			continue
		}

		salary, err := parseAmount(amountText)
		if err != nil {
			logger.Debug("Skipping remuneration with invalid amount",
				"competence", competenceText,
				"amount", amountText,
				"error", err)
			continue
		}

		entry := model.ContributionMonth{Competence: competence, Salary: salary}
		if loc[6] >= 0 {
			entry.Indicators = splitCodes(block[loc[6]:loc[7]])
		}
		months = append(months, entry)
	}

	SortRemunerations(months)
	return months
}

// SortRemunerations orders entries ascending by competence, keeping the relative
// order of entries with the same competence.
func SortRemunerations(months []model.ContributionMonth) {
	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Competence.Before(months[j].Competence)
	})
}

// parseAmount converts "1.234,56" into a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return decimal.NewFromString(s)
}
