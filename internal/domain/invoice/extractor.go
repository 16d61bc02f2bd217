// Package invoice turns free-form OCR text from an invoice photo into a
// best-effort structured product candidate. Matching is line-oriented and
// first-match-wins per field: each of the five fields locks onto the first
// line that satisfies its pattern, independently of the other fields, so a
// single line can feed several fields at once.
package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GeneratedCodePrefix prefixes placeholder codes when no barcode was found.
const GeneratedCodePrefix = "UNI"

// Vocabulary is the matching data for the extractor. Values outside these
// vocabularies are never detected; the invoice silently falls through to the
// defaults. That is inherent to the pattern set, not an error path.
type Vocabulary struct {
	Sizes    []string // size tokens; a bare number also counts as a size
	Colors   []string // color words, matched case-insensitively
	Units    []string // unit words that mark a quantity token
	Garments []string // garment keywords; the matching line becomes the name
}

// DefaultVocabulary returns the built-in uniform vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Sizes:    []string{"PP", "P", "M", "G", "GG", "XG", "XXG", "XL", "XXL", "XXXL"},
		Colors:   []string{"blue", "white", "black", "gray", "green", "yellow", "red", "pink", "brown", "beige"},
		Units:    []string{"un", "pc", "pcs", "unit", "units", "piece", "pieces"},
		Garments: []string{"shirt", "pants", "shorts", "polo", "t-shirt", "blouse", "jacket", "vest", "apron", "uniform"},
	}
}

// Fields is the extraction result after defaulting. Every field is always
// populated; Code carries a generated placeholder when no barcode matched.
type Fields struct {
	Code     string
	Name     string
	Quantity int
	Size     string
	Color    string
}

// Extractor compiles a vocabulary into the five field matchers.
type Extractor struct {
	code     *regexp.Regexp
	quantity *regexp.Regexp
	size     *regexp.Regexp
	color    *regexp.Regexp
	garment  *regexp.Regexp
	title    cases.Caser
}

// NewExtractor builds an extractor for the given vocabulary.
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{
		// Barcode: a digit run of at least 8 characters.
		code: regexp.MustCompile(`\b\d{8,}\b`),
		// Quantity: digits followed by a unit word.
		quantity: regexp.MustCompile(`(?i)(\d+)\s*(?:` + alternation(vocab.Units) + `)\b`),
		// Size: the fixed vocabulary or a bare number.
		size: regexp.MustCompile(`(?i)\b(` + alternation(vocab.Sizes) + `|\d+)\b`),
		// Color: fixed vocabulary, case-insensitive.
		color: regexp.MustCompile(`(?i)(` + alternation(vocab.Colors) + `)`),
		// Name candidate: any line mentioning a garment keyword.
		garment: regexp.MustCompile(`(?i)(` + alternation(vocab.Garments) + `)`),
		title:   cases.Title(language.English),
	}
}

// Extract scans the OCR text line by line and returns the candidate fields
// with the defaulting policy applied.
func (e *Extractor) Extract(text string) Fields {
	var out Fields

	for _, line := range splitLines(text) {
		if out.Code == "" {
			if m := e.code.FindString(line); m != "" {
				out.Code = m
			}
		}
		if out.Quantity == 0 {
			if m := e.quantity.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					out.Quantity = n
				}
			}
		}
		if out.Size == "" {
			if m := e.size.FindStringSubmatch(line); m != nil {
				out.Size = strings.ToUpper(m[1])
			}
		}
		if out.Color == "" {
			if m := e.color.FindStringSubmatch(line); m != nil {
				out.Color = e.title.String(strings.ToLower(m[1]))
			}
		}
		if out.Name == "" {
			if e.garment.MatchString(line) && len(line) > 5 {
				out.Name = line
			}
		}
	}

	// Defaults, each field independently.
	if out.Code == "" {
		out.Code = generatedCode(time.Now())
	}
	if out.Quantity == 0 {
		out.Quantity = 1
	}
	if out.Size == "" {
		out.Size = "M"
	}
	if out.Color == "" {
		out.Color = "Blue"
	}
	if out.Name == "" {
		out.Name = fmt.Sprintf("Uniform %s %s", out.Size, out.Color)
	}
	return out
}

// generatedCode builds a placeholder code from the last six digits of the
// current time in milliseconds.
func generatedCode(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return GeneratedCodePrefix + ms
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func alternation(words []string) string {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(escaped, "|")
}
