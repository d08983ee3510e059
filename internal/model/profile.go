package model

import "strings"

// Gender selects the column of the special-activity multiplier table.
type Gender string

const (
	// GenderMale selects the male factors.
	GenderMale Gender = "male"
	// GenderFemale selects the female factors.
	GenderFemale Gender = "female"
)

// ParseGender accepts English and Portuguese spellings; anything else yields "".
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "masculino":
		return GenderMale
	case "female", "f", "feminino":
		return GenderFemale
	default:
		return ""
	}
}

// SubjectProfile holds the identity of the insured person.
// Nil fields were not found in the document.
type SubjectProfile struct {
	Name       *string `json:"name,omitempty"`
	TaxID      *string `json:"tax_id,omitempty"`
	BirthDate  *Date   `json:"birth_date,omitempty"`
	MotherName *string `json:"mother_name,omitempty"`
	Gender     Gender  `json:"gender,omitempty"`
}

// Extract is the structured result of parsing one registry document.
type Extract struct {
	Profile  SubjectProfile `json:"profile"`
	Bonds    []Bond         `json:"bonds"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Bond returns the bond with the given sequence number.
func (e *Extract) Bond(sequence int) (*Bond, bool) {
	for i := range e.Bonds {
		if e.Bonds[i].Sequence == sequence {
			return &e.Bonds[i], true
		}
	}
	return nil, false
}

// Duration is a contribution time expressed as total days and its years/months/days breakdown.
type Duration struct {
	Years     int `json:"years"`
	Months    int `json:"months"`
	Days      int `json:"days"`
	TotalDays int `json:"total_days"`
}

// IsZero reports whether the duration is empty.
func (d Duration) IsZero() bool {
	return d.TotalDays == 0
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
