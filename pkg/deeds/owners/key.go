package owners

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so accented and plain spellings of
// one name ("PEÑA" / "PENA") share a key.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key derives the canonical equality key for an owner: the lowercased
// cleaned company name, or the lowercased space-join of first, middle,
// and last with empty parts omitted. It is the sole dedup criterion,
// exported so callers merging results across records apply the same rule.
func Key(o Owner) string {
	if o.Kind == KindCompany {
		return foldKey(Clean(o.CompanyName))
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{o.FirstName, o.MiddleName, o.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return foldKey(strings.Join(parts, " "))
}

func foldKey(s string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
