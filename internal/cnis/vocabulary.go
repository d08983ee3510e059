package cnis

import (
	"regexp"

	"github.com/Veraticus/cnis-flow/internal/model"
)

// DefaultHeaderLimit caps the header region when no remuneration marker is present.
const DefaultHeaderLimit = 500

// Placeholder origin names used when no employer name can be recovered.
const (
	OriginOwnRemittance = "own remittance"
	OriginBenefit       = "benefit"
	OriginUnnamed       = "bond without name"
)

// Registration number shapes.
const (
	nitShape     = `\d{3}\.\d{5}\.\d{2}-\d`
	cnpjShape    = `\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`
	ceiShape     = `\d{2}\.\d{3}\.\d{5}/\d{2}`
	amountShape  = `\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2}`
	codeShape    = `[A-Z][A-Z0-9]+(?:-[A-Z0-9]+)*`
	maxCodeWidth = 20
)

var (
	nitPattern      = regexp.MustCompile(nitShape)
	employerPattern = regexp.MustCompile(cnpjShape + `|` + ceiShape)
	anchorPattern   = regexp.MustCompile(`(?:^|\s)(\d{1,3})\s+(?:` + nitShape + `|` + cnpjShape + `|` + ceiShape + `)`)
	leadingSeq      = regexp.MustCompile(`^\s*(\d{1,3})`)

	fullDatePattern   = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	competencePattern = regexp.MustCompile(`(\d{2})/(\d{4})`)
	amountPrefix      = regexp.MustCompile(`^\s+(?:` + amountShape + `)`)

	// Contribution tables print a payment date and the contribution before the
	// salary: "01/2016 15/02/2016 176,00 800,00". Group 2 is always the salary.
	remunerationPattern = regexp.MustCompile(
		`(\d{2}/\d{4})(?:[ \t]+\d{2}/\d{2}/\d{4}[ \t]+(?:(?:` + amountShape + `)[ \t]+)?|\s+)(` + amountShape + `)` +
			`(?:[ \t]+(` + codeShape + `(?:[ \t]*,[ \t]*` + codeShape + `)*)\b)?`)

	lastRemunerationPattern = regexp.MustCompile(
		`(?i)[úu]lt(?:\.|ima)?\s*remun(?:\.|era[çc][ãa]o)?\s*:?\s*(\d{2}/\d{4})`)

	headerIndicatorPattern = regexp.MustCompile(
		`(?i:indicadores)[ \t]*:[ \t]*(` + codeShape + `(?:[ \t,;]+` + codeShape + `)*)`)
	codeToken = regexp.MustCompile(`^` + codeShape + `$`)
)

// remunerationMarkers end the header region of a bond block.
var remunerationMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)remunera[çc][õo]es`),
	regexp.MustCompile(`(?i)contribui[çc][õo]es`),
}

type categoryTerm struct {
	pattern  *regexp.Regexp
	category model.ActivityCategory
}

// categoryVocabulary maps printed category names to activity categories.
// When two terms match at the same offset the longer one wins.
var categoryVocabulary = []categoryTerm{
	{regexp.MustCompile(`(?i)empregad[oa]\s+dom[ée]stic[oa]`), model.CategoryDomesticWorker},
	{regexp.MustCompile(`(?i)contribuinte\s+individual`), model.CategoryIndividualContributor},
	{regexp.MustCompile(`(?i)\bfacultativ[oa]\b`), model.CategoryVoluntary},
	{regexp.MustCompile(`(?i)segurad[oa]\s+especial`), model.CategorySpecialInsured},
	{regexp.MustCompile(`(?i)trabalhador(?:a)?\s+rural`), model.CategoryRuralWorker},
	{regexp.MustCompile(`(?i)\bavuls[oa]\b`), model.CategoryGigWorker},
	{regexp.MustCompile(`(?i)\bempregad[oa]\b`), model.CategoryEmployee},
	{regexp.MustCompile(`(?i)agente\s+p[úu]blico`), model.CategoryEmployee},
}

// boilerplateLabels are column titles that leak into the origin name.
var boilerplateLabels = []*regexp.Regexp{
	regexp.MustCompile(`(?i)origem\s+do\s+v[íi]nculo`),
	regexp.MustCompile(`(?i)agrupamento\s+de\s+contratantes\s*/\s*cooperativas`),
	regexp.MustCompile(`(?i)tipo\s+filiado\s+no\s+v[íi]nculo`),
	regexp.MustCompile(`(?i)c[óo]digo\s+emp\.?`),
	regexp.MustCompile(`(?i)nome\s*/\s*raz[ãa]o\s+social`),
}

// originStops end the origin name in addition to category terms and full dates.
var originStops = []*regexp.Regexp{
	regexp.MustCompile(`(?i)indicadores\s*:`),
	lastRemunerationPattern,
	regexp.MustCompile(`(?i)data\s+(?:in[íi]cio|fim)`),
}

// nameStops end an origin name: category terms, dates, column labels and a
// following registration number.
var nameStops = func() []*regexp.Regexp {
	stops := make([]*regexp.Regexp, 0, len(categoryVocabulary)+len(originStops)+3)
	for _, term := range categoryVocabulary {
		stops = append(stops, term.pattern)
	}
	stops = append(stops, originStops...)
	return append(stops, fullDatePattern, competencePattern, employerPattern)
}()

var (
	benefitMarker  = regexp.MustCompile(`(?i)benef[íi]cio`)
	benefitNumbers = []*regexp.Regexp{
		regexp.MustCompile(`\bNB\s*:?\s*(\d[\d./-]*\d)`),
		regexp.MustCompile(`(?i)benef[íi]cio\s*:?\s*(\d{3}\.?\d{3}\.?\d{3}-?\d)\b`),
	}
	originNoise = regexp.MustCompile(`^[\s\-:;,.|/]+|[\s\-:;,.|/]+$`)
	spaceRun    = regexp.MustCompile(`\s+`)
)
