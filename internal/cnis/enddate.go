package cnis

import (
	"github.com/Veraticus/cnis-flow/internal/model"
)

// InferEndDate derives an end date for a bond whose header printed no end date.
//
// The first rule that yields a date not earlier than the start date wins:
//  1. an explicit "Últ. Remun." label followed by a month/year;
//  2. the first bare month/year in the header after the start date;
//  3. the latest remuneration entry.
//
// Month/year values resolve to the last day of the month. When nothing applies
// the bond is open ended and (nil, model.EndNone) is returned.
func InferEndDate(block string, fields FieldResult, months []model.ContributionMonth) (*model.Date, model.EndDateSource) {
	start := fields.Bond.Start

	if m := lastRemunerationPattern.FindStringSubmatch(block); m != nil {
		if c, err := model.ParseCompetence(m[1]); err == nil && notBefore(c.LastDay(), start) {
			end := c.LastDay()
			return &end, model.EndFromLastRemunerationLabel
		}
	}

	if c, ok := bareCompetenceAfter(fields.Header, fields.startEnd); ok && notBefore(c.LastDay(), start) {
		end := c.LastDay()
		return &end, model.EndFromBareCompetence
	}

	if len(months) > 0 {
		end := latestCompetence(months).LastDay()
		if notBefore(end, start) {
			return &end, model.EndFromRemuneration
		}
	}

	return nil, model.EndNone
}

// bareCompetenceAfter finds the first month/year token after offset that is
// neither part of a full date nor the competence of a remuneration entry.
func bareCompetenceAfter(header string, offset int) (model.Competence, bool) {
	if offset < 0 || offset > len(header) {
		return model.Competence{}, false
	}
	rest := header[offset:]

	for _, loc := range competencePattern.FindAllStringIndex(rest, -1) {
		if !standalone(rest, loc[0], loc[1]) {
			continue
		}
		if amountPrefix.MatchString(rest[loc[1]:]) {
			continue
		}
		c, err := model.ParseCompetence(rest[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		return c, true
	}
	return model.Competence{}, false
}

// latestCompetence returns the greatest competence of months, which must not be empty.
func latestCompetence(months []model.ContributionMonth) model.Competence {
	latest := months[0].Competence
	for _, m := range months[1:] {
		if latest.Before(m.Competence) {
			latest = m.Competence
		}
	}
	return latest
}

func notBefore(d model.Date, start *model.Date) bool {
	return start == nil || !d.Before(*start)
}
