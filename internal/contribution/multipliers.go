package contribution

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// factor holds the time multiplier of one activity type per gender.
type factor struct {
	male   decimal.Decimal
	female decimal.Decimal
}

// multipliers converts special-activity time into common time.
var multipliers = map[model.ActivityType]factor{
	model.ActivityCommon:    {male: decimal.RequireFromString("1.00"), female: decimal.RequireFromString("1.00")},
	model.ActivitySpecial25: {male: decimal.RequireFromString("1.40"), female: decimal.RequireFromString("1.20")},
	model.ActivitySpecial20: {male: decimal.RequireFromString("1.75"), female: decimal.RequireFromString("1.50")},
	model.ActivitySpecial15: {male: decimal.RequireFromString("2.33"), female: decimal.RequireFromString("2.00")},
}

// Multiplier returns the factor for the activity type and gender.
// Unknown activity types count as common activity and an unset gender uses the male column.
func Multiplier(activity model.ActivityType, gender model.Gender) decimal.Decimal {
	f, ok := multipliers[activity]
	if !ok {
		f = multipliers[model.ActivityCommon]
	}
	if gender == model.GenderFemale {
		return f.female
	}
	return f.male
}
