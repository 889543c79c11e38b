package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/width"
)

// TextNormalizer canonicalizes raw recognized text before any pattern
// matching runs against it. Normalization is a pure function with no
// failure modes.
type TextNormalizer struct {
	reSpaces *regexp.Regexp
}

// NewTextNormalizer creates a TextNormalizer.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		reSpaces: regexp.MustCompile(`\s+`),
	}
}

// Normalize folds full-width digits and letters to their ASCII forms
// (sidewall photos shot with Japanese input active produce ２０５／５５Ｒ１６),
// upper-cases, and collapses whitespace runs to single spaces.
func (tn *TextNormalizer) Normalize(raw string) string {
	s := width.Narrow.String(raw)
	s = strings.ToUpper(s)
	return tn.reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ASCIIFold transliterates non-Latin script to ASCII so katakana brand
// stamps can be compared against the Latin dictionary entries.
func ASCIIFold(s string) string {
	return strings.ToUpper(strings.TrimSpace(unidecode.Unidecode(s)))
}
