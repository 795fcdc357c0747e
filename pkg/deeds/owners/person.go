package owners

import "strings"

// defaultSuffixes are generational and professional name suffixes
// stripped from the middle-name portion of a parsed person.
var defaultSuffixes = []string{
	"jr", "sr", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x",
	"md", "phd", "esq", "esquire",
}

// buildPerson interprets an ordered token sequence as a single person.
// The baseline reading is surname-first: tokens[0] last, tokens[1] first,
// the rest joined as middle. Two overrides handle deed-record shorthand:
//
//   - a lone token with a fallback surname is a bare first name
//     ("& MARY" after "SMITH JOHN"),
//   - two tokens whose first is entirely uppercase, with a fallback
//     surname, are first+middle continuing the prior family name
//     ("ANN MARIE" after "SMITH JOHN").
//
// It reports false when the tokens cannot be split confidently: nothing
// to work with, a lone token with no surname context, or four or more
// tokens (several people or a compound name, the splitter's job).
func (p *Parser) buildPerson(tokens []string, fallbackLast string) (Owner, bool) {
	switch {
	case len(tokens) == 0:
		return Owner{}, false
	case len(tokens) == 1:
		if fallbackLast == "" {
			return Owner{}, false
		}
		return p.newPerson(tokens[0], nil, fallbackLast), true
	case len(tokens) >= 4:
		return Owner{}, false
	}

	if len(tokens) == 2 && fallbackLast != "" && isAllUpper(tokens[0]) {
		return p.newPerson(tokens[0], tokens[1:], fallbackLast), true
	}
	return p.newPerson(tokens[1], tokens[2:], tokens[0]), true
}

// newPerson assembles a person owner, stripping suffix tokens from the
// middle portion and title-casing every part. All person construction
// funnels through here so suffixes never survive into a middle name.
func (p *Parser) newPerson(first string, middle []string, last string) Owner {
	kept := make([]string, 0, len(middle))
	for _, tok := range middle {
		if !p.isSuffix(tok) {
			kept = append(kept, tok)
		}
	}
	o := Owner{
		Kind:      KindPerson,
		FirstName: TitleCase(first),
		LastName:  TitleCase(last),
	}
	if len(kept) > 0 {
		o.MiddleName = TitleCase(strings.Join(kept, " "))
	}
	return o
}

func (p *Parser) isSuffix(token string) bool {
	_, ok := p.suffixes[normalizeIndicator(token)]
	return ok
}

// isAllUpper reports whether the token contains no lowercase letters
func isAllUpper(s string) bool {
	return s == strings.ToUpper(s)
}
