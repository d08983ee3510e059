package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/model"
)

func TestBondBuilder(t *testing.T) {
	builder := NewBond(3).
		Origin("COMERCIO ABC").
		Category(model.CategoryEmployee).
		Between(Date(2018, time.February, 1), Date(2019, time.June, 30)).
		Activity(model.ActivitySpecial20).
		Concurrent().
		Months("02/2018", "03/2018")

	bond := builder.Build()
	assert.Equal(t, 3, bond.Sequence)
	assert.Equal(t, "COMERCIO ABC", bond.OriginName)
	assert.Equal(t, model.EndFromHeader, bond.EndSource)
	assert.Equal(t, model.ActivitySpecial20, bond.ActivityType)
	assert.True(t, bond.Concurrent)
	assert.True(t, bond.Included)
	assert.Equal(t, 2, bond.QualifyingMonths())

	// Builds are independent copies.
	later := builder.Months("04/2018").Build()
	assert.Len(t, bond.Remunerations, 2)
	assert.Len(t, later.Remunerations, 3)

	open := NewBond(4).From(Date(2020, time.July, 1)).Excluded().Build()
	assert.Nil(t, open.End)
	assert.Equal(t, model.EndNone, open.EndSource)
	assert.False(t, open.Included)

	assert.Panics(t, func() { NewBond(5).Months("13/2020") })
}

func TestSetupTestDB_SeedImport(t *testing.T) {
	db := SetupTestDB(t)

	imp := db.SeedImport(model.GenderFemale,
		NewBond(1).Between(Date(2010, time.March, 1), Date(2010, time.March, 31)).Months("03/2010").Build(),
		NewBond(2).From(Date(2020, time.January, 1)).Build(),
	)

	got := db.MustGetImport(imp.ID)
	assert.Equal(t, model.GenderFemale, got.Gender)
	require.Len(t, got.Extract.Bonds, 2)
	assert.Equal(t, "MARIA DA SILVA SANTOS", model.Deref(got.Extract.Profile.Name))
	assert.Len(t, got.Extract.Bonds[0].Remunerations, 1)
}

func TestNewImport_EmptyBonds(t *testing.T) {
	a := NewImport(model.GenderMale)
	b := NewImport(model.GenderMale)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Extract.Bonds)
}
