package cnis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/cnis-flow/internal/model"
)

type profileField int

const (
	fieldNone profileField = iota
	fieldName
	fieldTaxID
	fieldBirthDate
	fieldMotherName
)

// profileLabels lists every label that can terminate a profile value.
// Labels without a field only act as terminators.
var profileLabels = []struct {
	pattern *regexp.Regexp
	field   profileField
}{
	{regexp.MustCompile(`(?i)\bnome\s+da\s+m[ãa]e\s*:`), fieldMotherName},
	{regexp.MustCompile(`(?i)\bnome\s*:`), fieldName},
	{regexp.MustCompile(`(?i)\bcpf\s*:`), fieldTaxID},
	{regexp.MustCompile(`(?i)\bdata\s+de\s+nascimento\s*:`), fieldBirthDate},
	{regexp.MustCompile(`(?i)\bnit\s*:`), fieldNone},
	{regexp.MustCompile(`(?i)\bnis\s*:`), fieldNone},
	{regexp.MustCompile(`(?i)rela[çc][õo]es\s+previdenci[áa]rias`), fieldNone},
	{regexp.MustCompile(`(?i)\bseq\.`), fieldNone},
}

var cpfPattern = regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)

type labelHit struct {
	field      profileField
	start, end int
}

// ExtractProfile reads the subject identity from labeled fields.
// Values run to the next known label or the end of the line. Only the first
// occurrence of each label is used; missing labels leave the field nil.
func ExtractProfile(text string) model.SubjectProfile {
	hits := findLabels(text)

	var profile model.SubjectProfile
	for i, hit := range hits {
		if hit.field == fieldNone {
			continue
		}

		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		value := text[hit.end:end]
		if nl := strings.IndexByte(value, '\n'); nl >= 0 {
			value = value[:nl]
		}
		value = collapseSpaces(value)
		if value == "" {
			continue
		}

		switch hit.field {
		case fieldName:
			if profile.Name == nil {
				profile.Name = model.StringPtr(cleanPersonName(value))
			}
		case fieldMotherName:
			if profile.MotherName == nil {
				profile.MotherName = model.StringPtr(cleanPersonName(value))
			}
		case fieldTaxID:
			if profile.TaxID == nil {
				if id := cpfPattern.FindString(value); id != "" {
					profile.TaxID = model.StringPtr(id)
				}
			}
		case fieldBirthDate:
			if profile.BirthDate == nil {
				if m := fullDatePattern.FindString(value); m != "" {
					if d, err := model.ParseBRDate(m); err == nil {
						profile.BirthDate = &d
					}
				}
			}
		}
	}

	return profile
}

// findLabels returns every label occurrence ordered by position.
// Overlapping hits keep the earliest, longest one so "Nome da mãe:" is not also read as "Nome:".
func findLabels(text string) []labelHit {
	var hits []labelHit
	for _, label := range profileLabels {
		for _, loc := range label.pattern.FindAllStringIndex(text, -1) {
			hits = append(hits, labelHit{field: label.field, start: loc[0], end: loc[1]})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hitLess(hits[i], hits[j]) })

	kept := hits[:0]
	for _, h := range hits {
		if len(kept) > 0 && h.start < kept[len(kept)-1].end {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func hitLess(a, b labelHit) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	return a.end > b.end
}

// cleanPersonName drops trailing punctuation left by column separators.
func cleanPersonName(s string) string {
	return strings.TrimRight(s, " -:;,.|")
}
