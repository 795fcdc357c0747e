package owners

import (
	"regexp"
	"strings"
)

// conjunctionRe splits a segment on "&" or the standalone word "and"
var conjunctionRe = regexp.MustCompile(`(?i)&|\band\b`)

// Parse converts one raw owner-name string into classified owners plus
// any fragments it could not resolve. It never fails: the worst outcome
// for a fragment is an InvalidEntry. Identical input always yields an
// identical result, and calls are independent, so one Parser may serve
// concurrent callers.
func (p *Parser) Parse(raw string) ParseResult {
	res := ParseResult{Owners: []Owner{}, Invalids: []InvalidEntry{}}

	text := strings.TrimSpace(strings.TrimPrefix(Clean(raw), "*"))
	if text == "" {
		return res
	}

	var collected []Owner

	// Surnames propagate forward: on deed records only the first owner
	// of a comma/ampersand group carries the family name, so the last
	// seen surname threads through the whole walk as fallback context.
	runningSurname := ""

	for _, segment := range strings.Split(text, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if p.IsCompany(segment) {
			collected = append(collected, Owner{Kind: KindCompany, CompanyName: TitleCase(segment)})
			continue
		}

		parts := conjunctionRe.Split(segment, -1)

		// An unconjoined run of four or more tokens usually encodes
		// several people sharing the leading surname.
		if len(parts) == 1 {
			tokens := Tokenize(parts[0])
			if len(tokens) >= 4 {
				if people := p.splitSharedSurname(tokens); len(people) >= 2 {
					collected = append(collected, people...)
					runningSurname = strings.ToUpper(tokens[0])
					continue
				}
			}
		}

		localSurname := ""
		first := true
		for _, part := range parts {
			tokens := Tokenize(part)
			if len(tokens) == 0 {
				continue
			}

			// The first sub-part supplies the surname candidate for the
			// rest of the segment. It only borrows the running surname
			// itself when too short to carry its own.
			fallback := localSurname
			if first {
				first = false
				localSurname = tokens[0]
				fallback = ""
				if len(tokens) < 2 {
					fallback = runningSurname
				}
			}

			person, ok := p.buildPerson(tokens, fallback)
			if !ok && len(tokens) >= 4 {
				// Best-effort blind split: three tokens for the lead
				// person, the remainder continues the lead surname.
				lead, okLead := p.buildPerson(tokens[:3], "")
				tail, okTail := p.buildPerson(tokens[3:], tokens[0])
				if okLead && okTail {
					collected = append(collected, lead, tail)
					runningSurname = tail.LastName
					continue
				}
			}
			if !ok {
				res.Invalids = append(res.Invalids, InvalidEntry{
					Raw:    strings.TrimSpace(part),
					Reason: ReasonAmbiguousPerson,
				})
				continue
			}

			collected = append(collected, person)
			runningSurname = person.LastName
		}
	}

	res.Owners = dedupe(collected)
	return res
}

// dedupe drops owners whose key was already seen, keeping first
// occurrences in order
func dedupe(list []Owner) []Owner {
	out := make([]Owner, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, o := range list {
		k := Key(o)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}
