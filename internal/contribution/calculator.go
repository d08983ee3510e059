// Package contribution converts bond periods into contribution time.
//
// Day counts are decomposed with the fixed 365.25-day year and 30.44-day month
// used by the social security calculation, not calendar-accurate month lengths.
package contribution

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cnis-flow/internal/model"
)

var (
	daysPerYear  = decimal.RequireFromString("365.25")
	daysPerMonth = decimal.RequireFromString("30.44")
)

// Calculate returns the adjusted contribution time between start and end, both inclusive.
//
// The raw day span is multiplied by the activity factor and floored. A missing
// date or an end earlier than the start yields a zero Duration.
func Calculate(start, end *model.Date, activity model.ActivityType, gender model.Gender) model.Duration {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return model.Duration{}
	}
	if end.Before(*start) {
		return model.Duration{}
	}

	span := start.DaysUntil(*end) + 1
	adjusted := decimal.NewFromInt(int64(span)).Mul(Multiplier(activity, gender)).Floor()
	return Decompose(int(adjusted.IntPart()))
}

// CalculateBond applies Calculate to a bond's own dates and activity type.
func CalculateBond(bond *model.Bond, gender model.Gender) model.Duration {
	return Calculate(bond.Start, bond.End, bond.ActivityType, gender)
}

// Decompose splits a day count into years, months and days.
func Decompose(totalDays int) model.Duration {
	if totalDays <= 0 {
		return model.Duration{}
	}

	total := decimal.NewFromInt(int64(totalDays))
	years := total.Div(daysPerYear).Floor()
	rest := total.Mod(daysPerYear)
	months := rest.Div(daysPerMonth).Floor()
	days := rest.Mod(daysPerMonth).Floor()

	return model.Duration{
		Years:     int(years.IntPart()),
		Months:    int(months.IntPart()),
		Days:      int(days.IntPart()),
		TotalDays: totalDays,
	}
}
