package model

import "time"

// Import is a parsed extract saved for later review and calculation.
type Import struct {
	ImportedAt time.Time `json:"imported_at"`
	ID         string    `json:"id"`
	SourceFile string    `json:"source_file"`
	Gender     Gender    `json:"gender"`
	Extract    Extract   `json:"extract"`
}

// ImportSummary is the listing view of a saved import.
type ImportSummary struct {
	ImportedAt  time.Time `json:"imported_at"`
	ID          string    `json:"id"`
	SourceFile  string    `json:"source_file"`
	SubjectName string    `json:"subject_name"`
	BondCount   int       `json:"bond_count"`
}

// BondUpdate holds user edits to a saved bond. Nil fields are left unchanged.
type BondUpdate struct {
	Included     *bool
	Concurrent   *bool
	ActivityType *ActivityType
	Start        *Date
	End          *Date
}

// IsEmpty reports whether the update changes nothing.
func (u BondUpdate) IsEmpty() bool {
	return u.Included == nil && u.Concurrent == nil && u.ActivityType == nil && u.Start == nil && u.End == nil
}

// Apply writes the non-nil fields of u onto b. An edited end date is marked as user supplied.
func (u BondUpdate) Apply(b *Bond) {
	if u.Included != nil {
		b.Included = *u.Included
	}
	if u.Concurrent != nil {
		b.Concurrent = *u.Concurrent
	}
	if u.ActivityType != nil {
		b.ActivityType = *u.ActivityType
	}
	if u.Start != nil {
		start := *u.Start
		b.Start = &start
	}
	if u.End != nil {
		end := *u.End
		b.End = &end
		b.EndSource = EndFromUser
	}
}
