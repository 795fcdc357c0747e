package owners

import (
	"strings"
	"unicode"
)

// Clean collapses runs of whitespace (including non-breaking spaces) to a
// single space and trims the ends.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase uppercases the first letter of each whitespace-delimited word
// and lowercases the rest. Hyphenated words keep a single capital:
// "ANN-MARIE" becomes "Ann-marie".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
