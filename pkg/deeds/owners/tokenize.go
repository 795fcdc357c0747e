package owners

import (
	"strings"
	"unicode"
)

// Tokenize splits a cleaned name fragment into ordered tokens. A leading
// asterisk marker is dropped, every character other than letters,
// ampersands, apostrophes, hyphens, periods, and whitespace becomes a
// space, and empty tokens are discarded. Token order follows the
// surname-first convention of deed records.
func Tokenize(fragment string) []string {
	s := strings.TrimPrefix(strings.TrimSpace(fragment), "*")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || r == '&' || r == '\'' || r == '-' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
