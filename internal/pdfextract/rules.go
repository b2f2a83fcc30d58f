// Package pdfextract pulls customs-declaration and cargo-manifest fields out
// of text extracted from PDFs.
//
// Every field is located by its own FieldRule, so a pattern can be swapped or
// tested without touching the rest. Matching is best-effort: a field with no
// match is left empty, and only a document where nothing matched at all is
// reported as ErrNoData.
package pdfextract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoData is returned when none of the expected fields were found.
var ErrNoData = errors.New("no data extracted")

// FieldRule locates a single field in raw document text.
type FieldRule interface {
	Extract(text string) (string, bool)
}

// Pattern returns the trimmed submatch Group of the first match of Re.
type Pattern struct {
	Re    *regexp.Regexp
	Group int
}

func (p Pattern) Extract(text string) (string, bool) {
	m := p.Re.FindStringSubmatch(text)
	if m == nil || p.Group >= len(m) {
		return "", false
	}
	v := strings.TrimSpace(m[p.Group])
	return v, v != ""
}

// After runs Rule on the text that follows the first match of Heading,
// limited to Window bytes when Window > 0.
type After struct {
	Heading *regexp.Regexp
	Window  int
	Rule    FieldRule
}

func (a After) Extract(text string) (string, bool) {
	loc := a.Heading.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if a.Window > 0 && len(rest) > a.Window {
		rest = rest[:a.Window]
	}
	return a.Rule.Extract(rest)
}

// FirstOf tries each rule in order and returns the first hit.
type FirstOf []FieldRule

func (f FirstOf) Extract(text string) (string, bool) {
	for _, rule := range f {
		if v, ok := rule.Extract(text); ok {
			return v, true
		}
	}
	return "", false
}

// NameAfterCNPJ returns the company name printed next to the first CNPJ:
// the rest of its line, or the next non-blank line when the CNPJ stands
// alone.
type NameAfterCNPJ struct{}

// nameLookahead is how many lines past the CNPJ are searched for the name.
const nameLookahead = 3

func (NameAfterCNPJ) Extract(text string) (string, bool) {
	loc := cnpjRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	lines := strings.SplitN(text[loc[1]:], "\n", nameLookahead+1)
	for i, line := range lines {
		if i >= nameLookahead {
			break
		}
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-–:|"))
		if name != "" && !cnpjRe.MatchString(name) {
			return name, true
		}
	}
	return "", false
}

// =============================================================================
// PATTERNS
// =============================================================================

const cnpjPattern = `\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`

var (
	declarationNumberRe = regexp.MustCompile(`\b(\d{2}BR\d{10})\b`)
	cnpjRe              = regexp.MustCompile(`(` + cnpjPattern + `)`)
	exporterHeadingRe   = regexp.MustCompile(`(?i)\bEXPORTADOR\b`)
	netWeightLabelRe    = regexp.MustCompile(`(?i)PESO\s+L[IÍ]QUIDO`)

	// Brazilian-format numbers: "." thousands, "," decimals.
	brNumberRe      = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d+`)
	brFiveDecimalRe = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*,\d{5}\b`)

	blMarkerRe = regexp.MustCompile(`(?i)\bB/?L\s*(?:N[º°O]\.?|NBR|NR\.?|NUMBER)?\s*[:#]?\s*([A-Z0-9][A-Z0-9-]*\d[A-Z0-9-]*)`)
	quantityRe = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d+)?|\d+[.,]\d+|\d{4,}`)
)

// headingWindow bounds how far past a heading a field is searched.
const headingWindow = 400

// DeclarationRules selects the rule used for each declaration field.
type DeclarationRules struct {
	Number      FieldRule
	CNPJ        FieldRule
	CompanyName FieldRule
	NetWeight   FieldRule
}

// DefaultDeclarationRules matches the DU-E layout printed by the customs
// portal.
func DefaultDeclarationRules() DeclarationRules {
	return DeclarationRules{
		Number: Pattern{Re: declarationNumberRe, Group: 1},
		CNPJ: FirstOf{
			After{Heading: exporterHeadingRe, Window: headingWindow, Rule: Pattern{Re: cnpjRe, Group: 1}},
			Pattern{Re: cnpjRe, Group: 1},
		},
		CompanyName: FirstOf{
			After{Heading: exporterHeadingRe, Window: headingWindow, Rule: NameAfterCNPJ{}},
			NameAfterCNPJ{},
		},
		NetWeight: FirstOf{
			After{Heading: netWeightLabelRe, Window: headingWindow / 2, Rule: Pattern{Re: brNumberRe}},
			Pattern{Re: brFiveDecimalRe},
		},
	}
}
