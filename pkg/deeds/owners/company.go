package owners

import (
	"strings"
	"unicode"
)

// defaultCompanyIndicators are the entity keywords seen on U.S. deed and
// assessor records. A single whole-word match classifies the fragment as
// a company.
var defaultCompanyIndicators = []string{
	"inc", "llc", "ltd", "foundation", "alliance", "solutions",
	"corp", "co", "services", "trust", "tr", "associates",
	"partners", "lp", "llp", "bank", "n.a.", "na", "pllc",
	"company", "enterprises", "properties", "holdings",
}

// IsCompany reports whether the text contains any company indicator as a
// whole word, case-insensitively. Trailing periods on a word are ignored,
// so "INC." matches "inc".
func (p *Parser) IsCompany(text string) bool {
	for _, w := range classifierWords(text) {
		if _, ok := p.companies[w]; ok {
			return true
		}
	}
	return false
}

// classifierWords extracts candidate indicator words: maximal runs of
// letters and interior periods, lowercased with surrounding periods
// trimmed. Hyphens and other punctuation act as word boundaries, matching
// how "SMITH & CO" or "(LLC)" read on a record.
func classifierWords(text string) []string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		if w := normalizeIndicator(b.String()); w != "" {
			words = append(words, w)
		}
		b.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || r == '.' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}
