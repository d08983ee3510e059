package model

import (
	"github.com/shopspring/decimal"
)

// ActivityCategory is the insured category printed on a registry bond.
type ActivityCategory string

const (
	// CategoryEmployee is a formal employment bond.
	CategoryEmployee ActivityCategory = "employee"
	// CategoryDomesticWorker is a domestic employment bond.
	CategoryDomesticWorker ActivityCategory = "domestic_worker"
	// CategoryIndividualContributor is a self-employed contributor.
	CategoryIndividualContributor ActivityCategory = "individual_contributor"
	// CategoryVoluntary is a voluntary (optional) contributor.
	CategoryVoluntary ActivityCategory = "voluntary"
	// CategoryRuralWorker is a rural worker bond.
	CategoryRuralWorker ActivityCategory = "rural_worker"
	// CategorySpecialInsured covers the special insured categories.
	CategorySpecialInsured ActivityCategory = "special_insured"
	// CategoryGigWorker is a temporary/casual (avulso) worker.
	CategoryGigWorker ActivityCategory = "gig_worker"
	// CategoryBenefit marks a period of benefit receipt.
	CategoryBenefit ActivityCategory = "benefit"
	// CategoryIndeterminate is used when no category could be recognized.
	CategoryIndeterminate ActivityCategory = "indeterminate"
)

// SelfFunded reports whether contributions for the category are remitted by the insured.
func (c ActivityCategory) SelfFunded() bool {
	return c == CategoryIndividualContributor || c == CategoryVoluntary
}

// ActivityType classifies a bond for time-multiplier purposes.
type ActivityType string

const (
	// ActivityCommon is ordinary activity (factor 1).
	ActivityCommon ActivityType = "common"
	// ActivitySpecial25 is special activity granting retirement after 25 years.
	ActivitySpecial25 ActivityType = "special_25"
	// ActivitySpecial20 is special activity granting retirement after 20 years.
	ActivitySpecial20 ActivityType = "special_20"
	// ActivitySpecial15 is special activity granting retirement after 15 years.
	ActivitySpecial15 ActivityType = "special_15"
)

// ActivityTypes lists every known activity type.
var ActivityTypes = []ActivityType{ActivityCommon, ActivitySpecial25, ActivitySpecial20, ActivitySpecial15}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EndDateSource records how a bond's end date was obtained.
type EndDateSource string

const (
	// EndFromHeader means the end date was printed in the bond header.
	EndFromHeader EndDateSource = "header"
	// EndFromLastRemunerationLabel means it came from a "last remuneration" label.
	EndFromLastRemunerationLabel EndDateSource = "last_remuneration_label"
	// EndFromBareCompetence means it came from a month/year token after the start date.
	EndFromBareCompetence EndDateSource = "bare_competence"
	// EndFromRemuneration means it came from the latest remuneration entry.
	EndFromRemuneration EndDateSource = "remuneration"
	// EndFromUser means the end date was edited after parsing.
	EndFromUser EndDateSource = "user"
	// EndNone means the bond is open ended.
	EndNone EndDateSource = "none"
)

// ContributionMonth is one remuneration/contribution entry of a bond.
type ContributionMonth struct {
	Salary     decimal.Decimal `json:"salary"`
	Indicators []string        `json:"indicators,omitempty"`
	Competence Competence      `json:"competence"`
}

// Bond is one employment, self-employment or benefit period of the registry.
type Bond struct {
	Start          *Date               `json:"start,omitempty"`
	End            *Date               `json:"end,omitempty"`
	RegistrationID string              `json:"registration_id"`
	EmployerCode   string              `json:"employer_code"`
	OriginName     string              `json:"origin_name"`
	Category       ActivityCategory    `json:"category"`
	EndSource      EndDateSource       `json:"end_source"`
	ActivityType   ActivityType        `json:"activity_type"`
	Indicators     []string            `json:"indicators,omitempty"`
	Remunerations  []ContributionMonth `json:"remunerations"`
	Sequence       int                 `json:"sequence"`
	Concurrent     bool                `json:"concurrent"`
	Included       bool                `json:"included"`
}

// NewBond returns a bond with the documented defaults.
func NewBond(sequence int) Bond {
	return Bond{
		Sequence:      sequence,
		Category:      CategoryIndeterminate,
		ActivityType:  ActivityCommon,
		EndSource:     EndNone,
		Remunerations: []ContributionMonth{},
		Included:      true,
	}
}

// QualifyingMonths counts distinct competences with an entry.
func (b *Bond) QualifyingMonths() int {
	seen := make(map[Competence]struct{}, len(b.Remunerations))
	for _, r := range b.Remunerations {
		seen[r.Competence] = struct{}{}
	}
	return len(seen)
}

// TotalSalary sums every contribution salary of the bond.
func (b *Bond) TotalSalary() decimal.Decimal {
	total := decimal.Zero
	for _, r := range b.Remunerations {
		total = total.Add(r.Salary)
	}
	return total
}
