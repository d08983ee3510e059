package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/testutil"
)

func testBonds() []model.Bond {
	return []model.Bond{
		testutil.NewBond(1).
			Origin("LABORATORIO XYZ LTDA").
			Category(model.CategoryEmployee).
			Between(testutil.Date(2010, time.March, 1), testutil.Date(2011, time.March, 30)).
			Months("03/2010", "04/2010").
			Build(),
		testutil.NewBond(2).Origin("EMPRESA ATUAL SA").Excluded().Build(),
	}
}

func TestFormatDuration(t *testing.T) {
	d := model.Duration{Years: 1, Months: 0, Days: 29, TotalDays: 395}
	assert.Equal(t, "1 years, 0 months, 29 days (395 days)", FormatDuration(d))
}

func TestRenderProfile(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		birth := model.NewDate(1968, time.April, 15)
		out := RenderProfile(model.SubjectProfile{
			Name:      model.StringPtr("MARIA DA SILVA SANTOS"),
			TaxID:     model.StringPtr("123.456.789-09"),
			BirthDate: &birth,
			Gender:    model.GenderFemale,
		})
		assert.Contains(t, out, "MARIA DA SILVA SANTOS")
		assert.Contains(t, out, "123.456.789-09")
		assert.Contains(t, out, "15/04/1968")
		assert.Contains(t, out, "female")
	})

	t.Run("missing fields", func(t *testing.T) {
		out := RenderProfile(model.SubjectProfile{})
		assert.Contains(t, out, notFound)
		assert.NotContains(t, out, "Gender")
	})
}

func TestRenderBonds(t *testing.T) {
	bonds := testBonds()
	summary := contribution.Reduce(bonds, model.GenderMale)

	out := RenderBonds(bonds, summary.Bonds)
	assert.Contains(t, out, "Seq")
	assert.Contains(t, out, "LABORATORIO XYZ LTDA")
	assert.Contains(t, out, "01/03/2010")
	assert.Contains(t, out, "30/03/2011")
	assert.Contains(t, out, "1y 0m 29d")
	assert.Contains(t, out, "EMPRESA ATUAL SA")

	lines := strings.Split(out, "\n")
	var second string
	for _, l := range lines {
		if strings.Contains(l, "EMPRESA ATUAL SA") {
			second = l
		}
	}
	assert.NotContains(t, second, SuccessIcon, "excluded open bond has no marks")
}

func TestRenderSummary(t *testing.T) {
	bonds := testBonds()
	summary := contribution.Reduce(bonds, "")

	out := RenderSummary(summary)
	assert.Contains(t, out, "395 days")
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "male")
}

func TestRenderWarnings(t *testing.T) {
	assert.Empty(t, RenderWarnings(nil))

	out := RenderWarnings([]string{"sequence 7 has no start date", "sequence 1 appears twice"})
	assert.Contains(t, out, "sequence 7 has no start date")
	assert.Equal(t, 2, strings.Count(out, WarningIcon))
}

func TestRenderImports(t *testing.T) {
	out := RenderImports([]model.ImportSummary{
		{
			ID:          "5f0c8a52-7d7e-4a54-9d8e-0a7f3c1b2e10",
			ImportedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			SourceFile:  "extrato.pdf",
			SubjectName: "MARIA DA SILVA SANTOS",
			BondCount:   5,
		},
		{ID: "b", SourceFile: "outro.txt"},
	})

	assert.Contains(t, out, "5f0c8a52-7d7e-4a54-9d8e-0a7f3c1b2e10")
	assert.Contains(t, out, "MARIA DA SILVA SANTOS")
	assert.Contains(t, out, "extrato.pdf")
	assert.Contains(t, out, notFound)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		n    int
	}{
		{name: "short", in: "ABC", n: 5, want: "ABC"},
		{name: "exact", in: "ABCDE", n: 5, want: "ABCDE"},
		{name: "long", in: "ABCDEFG", n: 5, want: "ABCD…"},
		{name: "multibyte", in: "AÇÃOXYZ", n: 4, want: "AÇÃ…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.n))
		})
	}
}

func TestActivityLabel(t *testing.T) {
	tests := []struct {
		in   model.ActivityType
		want string
	}{
		{in: model.ActivityCommon, want: "common"},
		{in: model.ActivitySpecial25, want: "special 25y"},
		{in: model.ActivitySpecial15, want: "special 15y"},
		{in: "", want: "-"},
		{in: "special_30", want: "special_30"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ActivityLabel(tt.in))
		})
	}
}

func TestEndSourceLabel(t *testing.T) {
	assert.Equal(t, "printed", EndSourceLabel(model.EndFromHeader))
	assert.Equal(t, "last entry", EndSourceLabel(model.EndFromRemuneration))
	assert.Equal(t, "edited", EndSourceLabel(model.EndFromUser))
	assert.Equal(t, "open", EndSourceLabel(model.EndNone))
	assert.Equal(t, "open", EndSourceLabel(""))
}

func TestBondCellStyle(t *testing.T) {
	special := testutil.NewBond(1).Activity(model.ActivitySpecial20).Build()
	special.EndSource = model.EndFromUser
	inferred := testutil.NewBond(2).Build()
	inferred.EndSource = model.EndFromBareCompetence
	excluded := testutil.NewBond(3).Activity(model.ActivitySpecial25).Excluded().Build()

	t.Run("special activity", func(t *testing.T) {
		assert.True(t, BondCellStyle(&special, activityColumn).GetBold())
		assert.False(t, BondCellStyle(&special, 0).GetBold())
	})

	t.Run("edited end date", func(t *testing.T) {
		assert.Equal(t, EditedColor, BondCellStyle(&special, sourceColumn).GetForeground())
	})

	t.Run("inferred end date", func(t *testing.T) {
		assert.True(t, BondCellStyle(&inferred, sourceColumn).GetItalic())
		assert.False(t, BondCellStyle(&inferred, activityColumn).GetItalic())
	})

	t.Run("excluded wins", func(t *testing.T) {
		for _, col := range []int{0, sourceColumn, activityColumn} {
			style := BondCellStyle(&excluded, col)
			assert.True(t, style.GetStrikethrough())
			assert.False(t, style.GetBold())
		}
	})
}

func TestRenderBonds_Labels(t *testing.T) {
	bonds := testBonds()
	bonds[0].ActivityType = model.ActivitySpecial25
	bonds[0].EndSource = model.EndFromUser

	out := RenderBonds(bonds, nil)
	assert.Contains(t, out, "special 25y")
	assert.Contains(t, out, "edited")
	assert.Contains(t, out, "open")
	assert.NotContains(t, out, string(model.ActivitySpecial25))
}
