package cnis

import (
	"strings"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// FieldResult holds the header-level fields of one bond block.
type FieldResult struct {
	Header string
	Bond   model.Bond
	// startEnd is the offset in Header just past the start date, or -1.
	startEnd int
}

type dateHit struct {
	date       model.Date
	start, end int
}

// ExtractFields reads the bond header: sequence, registration ids, category,
// origin name, dates and header-scoped indicators. It never fails; every field
// that cannot be recovered keeps its documented default. Remunerations are left
// empty and the end date may be nil when the header carries a single date.
func ExtractFields(block string, headerLimit int) FieldResult {
	header := HeaderRegion(block, headerLimit)

	bond := model.NewBond(leadingSequence(block))
	bond.RegistrationID = nitPattern.FindString(block)
	bond.EmployerCode = employerPattern.FindString(block)

	bond.Category = matchCategory(header)
	if bond.Category == model.CategoryIndeterminate {
		bond.Category = matchCategory(block)
	}

	bond.OriginName = extractOrigin(block, header, &bond)

	result := FieldResult{Header: header, startEnd: -1}

	dates := findDates(header)
	if len(dates) > 0 {
		start := dates[0].date
		bond.Start = &start
		result.startEnd = dates[0].end
	}
	if len(dates) > 1 {
		end := dates[1].date
		if end.Before(*bond.Start) {
			start := end
			end = *bond.Start
			bond.Start = &start
		}
		bond.End = &end
		bond.EndSource = model.EndFromHeader
	}

	bond.Indicators = headerIndicators(header)

	result.Bond = bond
	return result
}

// HeaderRegion returns the part of block before the remuneration table.
// Without a section marker the header is capped at limit bytes (DefaultHeaderLimit when limit <= 0).
func HeaderRegion(block string, limit int) string {
	cut := -1
	for _, marker := range remunerationMarkers {
		if loc := marker.FindStringIndex(block); loc != nil && (cut < 0 || loc[0] < cut) {
			cut = loc[0]
		}
	}
	if cut >= 0 {
		return block[:cut]
	}

	if limit <= 0 {
		limit = DefaultHeaderLimit
	}
	if len(block) <= limit {
		return block
	}
	return truncateUTF8(block, limit)
}

// matchCategory returns the category whose term appears first in text.
func matchCategory(text string) model.ActivityCategory {
	found := model.CategoryIndeterminate
	bestStart, bestLen := -1, 0
	for _, term := range categoryVocabulary {
		loc := term.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		length := loc[1] - loc[0]
		if bestStart < 0 || loc[0] < bestStart || (loc[0] == bestStart && length > bestLen) {
			found = term.category
			bestStart, bestLen = loc[0], length
		}
	}
	return found
}

// extractOrigin recovers the employer or origin name of a bond.
// It may also settle the category of benefit blocks.
func extractOrigin(block, header string, bond *model.Bond) string {
	if bond.EmployerCode != "" {
		if name := nameAfter(header, bond.EmployerCode); name != "" {
			return name
		}
		if name := nameAfter(header, bond.RegistrationID); name != "" {
			return name
		}
		return OriginUnnamed
	}

	if bond.Category.SelfFunded() {
		return OriginOwnRemittance
	}

	if benefitMarker.MatchString(block) {
		if bond.Category == model.CategoryIndeterminate {
			bond.Category = model.CategoryBenefit
		}
		for _, pattern := range benefitNumbers {
			if m := pattern.FindStringSubmatch(block); m != nil {
				return OriginBenefit + " " + m[1]
			}
		}
		return OriginBenefit
	}

	if name := nameAfter(header, bond.RegistrationID); name != "" {
		return name
	}
	return OriginUnnamed
}

// nameAfter returns the cleaned text that follows token in header, up to the
// first category term, date or known column label.
func nameAfter(header, token string) string {
	if token == "" {
		return ""
	}
	idx := strings.Index(header, token)
	if idx < 0 {
		return ""
	}
	rest := header[idx+len(token):]

	cut := len(rest)
	for _, stop := range nameStops {
		if loc := stop.FindStringIndex(rest); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	name := rest[:cut]

	for _, label := range boilerplateLabels {
		name = label.ReplaceAllString(name, " ")
	}
	name = collapseSpaces(name)
	name = originNoise.ReplaceAllString(name, "")
	return name
}

// findDates returns the valid full dates of text in order of appearance.
// Dates whose digits run into neighbouring digits or slashes are ignored.
func findDates(text string) []dateHit {
	var hits []dateHit
	for _, loc := range fullDatePattern.FindAllStringIndex(text, -1) {
		if !standalone(text, loc[0], loc[1]) {
			continue
		}
		d, err := model.ParseBRDate(text[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		hits = append(hits, dateHit{date: d, start: loc[0], end: loc[1]})
	}
	return hits
}

// headerIndicators returns the codes listed after an "Indicadores:" label in the header.
func headerIndicators(header string) []string {
	m := headerIndicatorPattern.FindStringSubmatch(header)
	if m == nil {
		return nil
	}
	return splitCodes(m[1])
}

func splitCodes(s string) []string {
	var codes []string
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	}) {
		if len(tok) <= maxCodeWidth && codeToken.MatchString(tok) {
			codes = append(codes, tok)
		}
	}
	return codes
}

// standalone reports whether text[start:end] is not glued to other digits or slashes.
func standalone(text string, start, end int) bool {
	if start > 0 && isDateChar(text[start-1]) {
		return false
	}
	if end < len(text) && isDateChar(text[end]) {
		return false
	}
	return true
}

func isDateChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '/'
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
