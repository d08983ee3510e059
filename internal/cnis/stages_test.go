package cnis

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/testutil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "composes accents", input: "Remunerac\u0327o\u0303es", want: "Remunerações"},
		{name: "non-breaking space", input: "01/2010\u00a01.500,00", want: "01/2010 1.500,00"},
		{name: "carriage returns", input: "a\r\nb", want: "a\n\nb"},
		{name: "zero width runes", input: "NI\u200bT\ufeff", want: "NIT"},
		{name: "plain text untouched", input: "1 123.45678.90-1\tX", want: "1 123.45678.90-1\tX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestExtractProfile(t *testing.T) {
	t.Run("all labels", func(t *testing.T) {
		p := ExtractProfile(testutil.SampleExtract)
		assert.Equal(t, "MARIA DA SILVA SANTOS", model.Deref(p.Name))
		assert.Equal(t, "123.456.789-09", model.Deref(p.TaxID))
		assert.Equal(t, "ANA MARIA DA SILVA", model.Deref(p.MotherName))
		require.NotNil(t, p.BirthDate)
		assert.Equal(t, model.NewDate(1968, time.April, 15), *p.BirthDate)
	})

	t.Run("missing labels stay nil", func(t *testing.T) {
		p := ExtractProfile("Nome: JOAO PEREIRA")
		assert.Equal(t, "JOAO PEREIRA", model.Deref(p.Name))
		assert.Nil(t, p.TaxID)
		assert.Nil(t, p.BirthDate)
		assert.Nil(t, p.MotherName)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		p := ExtractProfile("Nome: PRIMEIRO\nNome: SEGUNDO")
		assert.Equal(t, "PRIMEIRO", model.Deref(p.Name))
	})

	t.Run("invalid birth date ignored", func(t *testing.T) {
		p := ExtractProfile("Data de nascimento: 31/02/1970")
		assert.Nil(t, p.BirthDate)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Equal(t, model.SubjectProfile{}, ExtractProfile(""))
	})
}

func TestSegmentText(t *testing.T) {
	t.Run("two anchors", func(t *testing.T) {
		text := "cabeçalho 1 123.45678.90-1 EMPRESA A 2 12.345.678/0001-90 EMPRESA B"
		segments := SegmentText(text)
		require.Len(t, segments, 2)

		assert.Equal(t, 1, segments[0].Sequence())
		assert.Equal(t, 2, segments[1].Sequence())
		assert.True(t, strings.HasPrefix(segments[0].Text, "1 123.45678.90-1"))
		assert.True(t, strings.HasPrefix(segments[1].Text, "2 12.345.678/0001-90"))

		var joined strings.Builder
		for _, s := range segments {
			joined.WriteString(s.Text)
		}
		assert.Equal(t, text[segments[0].Offset:], joined.String())
	})

	t.Run("cei anchor", func(t *testing.T) {
		segments := SegmentText("12 12.345.67890/12 OBRA")
		require.Len(t, segments, 1)
		assert.Equal(t, 12, segments[0].Sequence())
		assert.Equal(t, 0, segments[0].Offset)
	})

	t.Run("no anchors", func(t *testing.T) {
		assert.Empty(t, SegmentText("Extrato sem vínculos 123.45678.90-1"))
	})

	t.Run("long numbers are not sequences", func(t *testing.T) {
		assert.Empty(t, SegmentText("1234 123.45678.90-1"))
	})
}

func TestExtractFields(t *testing.T) {
	t.Run("reversed dates are swapped", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 EMPRESA Empregado 31/12/2015 01/03/2010", 0)
		assert.Equal(t, datePtr(2010, time.March, 1), r.Bond.Start)
		assert.Equal(t, datePtr(2015, time.December, 31), r.Bond.End)
		assert.Equal(t, model.EndFromHeader, r.Bond.EndSource)
	})

	t.Run("single date leaves end nil", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 EMPRESA Empregado 01/03/2010", 0)
		assert.Equal(t, datePtr(2010, time.March, 1), r.Bond.Start)
		assert.Nil(t, r.Bond.End)
		assert.Equal(t, model.EndNone, r.Bond.EndSource)
	})

	t.Run("invalid dates are skipped", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 EMPRESA Empregado 31/02/2010 01/04/2010", 0)
		assert.Equal(t, datePtr(2010, time.April, 1), r.Bond.Start)
		assert.Nil(t, r.Bond.End)
	})

	t.Run("domestic worker beats employee", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 FULANO Empregado Doméstico 01/03/2010", 0)
		assert.Equal(t, model.CategoryDomesticWorker, r.Bond.Category)
		assert.Equal(t, "FULANO", r.Bond.OriginName)
	})

	t.Run("unknown category", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 01/03/2010", 0)
		assert.Equal(t, model.CategoryIndeterminate, r.Bond.Category)
		assert.Equal(t, OriginUnnamed, r.Bond.OriginName)
	})

	t.Run("boilerplate removed from origin", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 12.345.678/0001-90 Origem do Vínculo ACME SA Empregado 01/01/2000", 0)
		assert.Equal(t, "ACME SA", r.Bond.OriginName)
		assert.Equal(t, "12.345.678/0001-90", r.Bond.EmployerCode)
	})

	t.Run("employer code without name", func(t *testing.T) {
		r := ExtractFields("1 123.45678.90-1 12.345.678/0001-90 Empregado 01/01/2000", 0)
		assert.Equal(t, OriginUnnamed, r.Bond.OriginName)
	})

	t.Run("self funded", func(t *testing.T) {
		r := ExtractFields("3 123.45678.90-1 Contribuinte Individual 01/01/2016", 0)
		assert.Equal(t, model.CategoryIndividualContributor, r.Bond.Category)
		assert.Equal(t, OriginOwnRemittance, r.Bond.OriginName)
	})

	t.Run("benefit without number", func(t *testing.T) {
		r := ExtractFields("4 123.45678.90-1 Benefício 01/01/2016 01/06/2016", 0)
		assert.Equal(t, model.CategoryBenefit, r.Bond.Category)
		assert.Equal(t, OriginBenefit, r.Bond.OriginName)
	})

	t.Run("indicators only from header", func(t *testing.T) {
		block := "1 123.45678.90-1 EMPRESA Empregado 01/01/2010 Indicadores: PEXT\n" +
			"Remunerações\n01/2010 1.000,00\nIndicadores: AEXT-VI"
		r := ExtractFields(block, 0)
		assert.Equal(t, []string{"PEXT"}, r.Bond.Indicators)
	})

	t.Run("indicators stop at end of line", func(t *testing.T) {
		block := "1 123.45678.90-1 12.345.678/0001-90 ACME 01/05/2018 Empregado Indicadores: PEXT, IREM\n" +
			"CONTRATO EM ABERTO"
		r := ExtractFields(block, DefaultHeaderLimit)
		assert.Equal(t, []string{"PEXT", "IREM"}, r.Bond.Indicators)
	})

	t.Run("defaults", func(t *testing.T) {
		r := ExtractFields("9 123.45678.90-1", 0)
		assert.Equal(t, 9, r.Bond.Sequence)
		assert.True(t, r.Bond.Included)
		assert.False(t, r.Bond.Concurrent)
		assert.Equal(t, model.ActivityCommon, r.Bond.ActivityType)
		assert.Empty(t, r.Bond.Remunerations)
	})
}

func TestHeaderRegion(t *testing.T) {
	t.Run("cut at earliest marker", func(t *testing.T) {
		block := "1 header Contribuições x Remunerações y"
		assert.Equal(t, "1 header ", HeaderRegion(block, 0))
	})

	t.Run("capped without marker", func(t *testing.T) {
		block := strings.Repeat("a", DefaultHeaderLimit+100)
		assert.Len(t, HeaderRegion(block, 0), DefaultHeaderLimit)
		assert.Len(t, HeaderRegion(block, 10), 10)
	})

	t.Run("cap never splits a rune", func(t *testing.T) {
		block := "aé" + strings.Repeat("b", 10)
		assert.Equal(t, "a", HeaderRegion(block, 2))
	})
}

func TestExtractRemunerations(t *testing.T) {
	t.Run("sorted with indicators", func(t *testing.T) {
		block := "03/2020 1.000,00 PREM-EXT, IREC\n01/2020 900,00\n02/2020 12.345.678,90"
		months := ExtractRemunerations(block)
		require.Len(t, months, 3)

		assert.Equal(t, model.Competence{Year: 2020, Month: time.January}, months[0].Competence)
		assert.Equal(t, model.Competence{Year: 2020, Month: time.February}, months[1].Competence)
		assert.Equal(t, model.Competence{Year: 2020, Month: time.March}, months[2].Competence)

		assert.True(t, decimal.RequireFromString("900").Equal(months[0].Salary))
		assert.True(t, decimal.RequireFromString("12345678.90").Equal(months[1].Salary))
		assert.Equal(t, []string{"PREM-EXT", "IREC"}, months[2].Indicators)
	})

	t.Run("entry indicators stay on their line", func(t *testing.T) {
		months := ExtractRemunerations("03/2020 1.000,00 PREM-EXT,\nIREC")
		require.Len(t, months, 1)
		assert.Equal(t, []string{"PREM-EXT"}, months[0].Indicators)
	})

	t.Run("contribution table uses the salary column", func(t *testing.T) {
		block := "01/2016 15/02/2016 176,00 800,00\n" +
			"02/2016 15/03/2016 176,00 800,00\n" +
			"03/2016 15/04/2016 937,00"
		months := ExtractRemunerations(block)
		require.Len(t, months, 3)
		assert.True(t, decimal.RequireFromString("800").Equal(months[0].Salary))
		assert.True(t, decimal.RequireFromString("800").Equal(months[1].Salary))
		assert.True(t, decimal.RequireFromString("937").Equal(months[2].Salary))
		assert.Equal(t, model.Competence{Year: 2016, Month: time.March}, months[2].Competence)
	})

	t.Run("full dates are not competences", func(t *testing.T) {
		months := ExtractRemunerations("pago em 15/02/2016 176,00")
		assert.Empty(t, months)
	})

	t.Run("invalid competence skipped", func(t *testing.T) {
		months := ExtractRemunerations("13/2020 1.000,00 01/2021 1.000,00")
		require.Len(t, months, 1)
		assert.Equal(t, model.Competence{Year: 2021, Month: time.January}, months[0].Competence)
	})

	t.Run("no entries", func(t *testing.T) {
		months := ExtractRemunerations("nothing here")
		assert.NotNil(t, months)
		assert.Empty(t, months)
	})

	t.Run("sorting is idempotent", func(t *testing.T) {
		months := ExtractRemunerations("02/2020 1,00 01/2020 2,00 02/2020 3,00")
		again := append([]model.ContributionMonth(nil), months...)
		SortRemunerations(again)
		assert.Equal(t, months, again)
		assert.True(t, decimal.RequireFromString("1").Equal(months[1].Salary), "equal competences keep document order")
		assert.True(t, decimal.RequireFromString("3").Equal(months[2].Salary))
	})
}

func TestInferEndDate(t *testing.T) {
	tests := []struct {
		name       string
		block      string
		wantEnd    *model.Date
		wantSource model.EndDateSource
	}{
		{
			name:       "last remuneration label",
			block:      "1 123.45678.90-1 X Empregado 01/01/2018 Últ. Remun. 06/2019",
			wantEnd:    datePtr(2019, time.June, 30),
			wantSource: model.EndFromLastRemunerationLabel,
		},
		{
			name:       "spelled out label",
			block:      "1 123.45678.90-1 X Empregado 01/01/2018 Última remuneração: 02/2020",
			wantEnd:    datePtr(2020, time.February, 29),
			wantSource: model.EndFromLastRemunerationLabel,
		},
		{
			name:       "bare competence after start",
			block:      "1 123.45678.90-1 X Empregado 01/01/2019 08/2019 Remunerações 01/2019 1.000,00",
			wantEnd:    datePtr(2019, time.August, 31),
			wantSource: model.EndFromBareCompetence,
		},
		{
			name:       "header remuneration entries are not bare competences",
			block:      "1 123.45678.90-1 X Empregado 01/01/2019 01/2019 1.000,00 02/2019 1.100,00",
			wantEnd:    datePtr(2019, time.February, 28),
			wantSource: model.EndFromRemuneration,
		},
		{
			name:       "latest of out of order remunerations",
			block:      "1 123.45678.90-1 X Empregado 01/01/2020 Remunerações 03/2020 1.000,00 01/2020 900,00",
			wantEnd:    datePtr(2020, time.March, 31),
			wantSource: model.EndFromRemuneration,
		},
		{
			name:       "label before start is ignored",
			block:      "1 123.45678.90-1 X Empregado 01/01/2010 Últ. Remun. 01/2000 Remunerações 05/2010 1.000,00",
			wantEnd:    datePtr(2010, time.May, 31),
			wantSource: model.EndFromRemuneration,
		},
		{
			name:       "open ended",
			block:      "1 123.45678.90-1 X Empregado 01/01/2020",
			wantSource: model.EndNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractFields(tt.block, 0)
			require.Nil(t, fields.Bond.End)

			end, source := InferEndDate(tt.block, fields, ExtractRemunerations(tt.block))
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}
