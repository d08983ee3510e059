package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// BondBuilder builds model.Bond values for tests.
//
//	bond := testutil.NewBond(1).
//		Origin("LABORATORIO XYZ LTDA").
//		Between(testutil.Date(2010, 3, 1), testutil.Date(2011, 3, 30)).
//		Months("03/2010", "04/2010").
//		Build()
type BondBuilder struct {
	bond model.Bond
}

// NewBond starts a bond with the parser defaults: common activity, included,
// indeterminate category.
func NewBond(sequence int) *BondBuilder {
	return &BondBuilder{bond: model.NewBond(sequence)}
}

// Origin sets the origin name.
func (b *BondBuilder) Origin(name string) *BondBuilder {
	b.bond.OriginName = name
	return b
}

// Category sets the insured category.
func (b *BondBuilder) Category(c model.ActivityCategory) *BondBuilder {
	b.bond.Category = c
	return b
}

// Between sets both dates and marks the end as printed in the header.
func (b *BondBuilder) Between(start, end model.Date) *BondBuilder {
	b.bond.Start = &start
	b.bond.End = &end
	b.bond.EndSource = model.EndFromHeader
	return b
}

// From sets only the start date, leaving the bond open ended.
func (b *BondBuilder) From(start model.Date) *BondBuilder {
	b.bond.Start = &start
	b.bond.End = nil
	b.bond.EndSource = model.EndNone
	return b
}

// Activity sets the activity type.
func (b *BondBuilder) Activity(a model.ActivityType) *BondBuilder {
	b.bond.ActivityType = a
	return b
}

// Excluded leaves the bond out of totals.
func (b *BondBuilder) Excluded() *BondBuilder {
	b.bond.Included = false
	return b
}

// Concurrent flags the bond as concurrent.
func (b *BondBuilder) Concurrent() *BondBuilder {
	b.bond.Concurrent = true
	return b
}

// Months adds one remuneration of R$ 1.000,00 per "MM/YYYY" competence.
// It panics on a malformed competence.
func (b *BondBuilder) Months(competences ...string) *BondBuilder {
	for _, s := range competences {
		c, err := model.ParseCompetence(s)
		if err != nil {
			panic(err)
		}
		b.bond.Remunerations = append(b.bond.Remunerations, model.ContributionMonth{
			Competence: c,
			Salary:     decimal.NewFromInt(1000),
		})
	}
	return b
}

// Build returns a copy of the bond.
func (b *BondBuilder) Build() model.Bond {
	bond := b.bond
	bond.Remunerations = append([]model.ContributionMonth{}, b.bond.Remunerations...)
	return bond
}

// Date is shorthand for model.NewDate.
func Date(year int, month time.Month, day int) model.Date {
	return model.NewDate(year, month, day)
}
