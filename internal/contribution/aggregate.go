package contribution

import (
	"github.com/Veraticus/cnis-flow/internal/model"
)

// BondTime is the computed duration of one bond, keyed by its printed sequence.
type BondTime struct {
	Sequence   int            `json:"sequence"`
	OriginName string         `json:"origin_name"`
	Duration   model.Duration `json:"duration"`
	Included   bool           `json:"included"`
	Concurrent bool           `json:"concurrent"`
}

// Summary is the aggregate contribution time of an extract.
type Summary struct {
	Gender           model.Gender   `json:"gender"`
	Bonds            []BondTime     `json:"bonds"`
	Total            model.Duration `json:"total"`
	QualifyingMonths int            `json:"qualifying_months"`
}

// Sum adds the day totals of the included items and decomposes the result.
// Excluded items are ignored.
func Sum(items []BondTime) model.Duration {
	total := 0
	for _, item := range items {
		if item.Included {
			total += item.Duration.TotalDays
		}
	}
	return Decompose(total)
}

// Reduce computes every bond's duration and the total over the included bonds.
// Per-bond durations are reported for excluded bonds too, in document order.
func Reduce(bonds []model.Bond, gender model.Gender) Summary {
	summary := Summary{
		Gender: gender,
		Bonds:  make([]BondTime, 0, len(bonds)),
	}

	competences := make(map[model.Competence]struct{})
	for i := range bonds {
		bond := &bonds[i]
		summary.Bonds = append(summary.Bonds, BondTime{
			Sequence:   bond.Sequence,
			OriginName: bond.OriginName,
			Duration:   CalculateBond(bond, gender),
			Included:   bond.Included,
			Concurrent: bond.Concurrent,
		})
		if !bond.Included {
			continue
		}
		for _, r := range bond.Remunerations {
			competences[r.Competence] = struct{}{}
		}
	}

	summary.Total = Sum(summary.Bonds)
	summary.QualifyingMonths = len(competences)
	return summary
}
