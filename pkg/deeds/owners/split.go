package owners

// splitSharedSurname interprets a long unconjoined fragment as several
// people sharing one surname: tokens[0] is the family name and the
// remainder is consumed in chunks of two (first+middle) while at least
// two tokens remain, else a final chunk of one. "SMITH JOHN ROBERT ANN
// MARIE" yields John Robert Smith and Ann Marie Smith. Fragments below
// four tokens return an empty slice.
func (p *Parser) splitSharedSurname(tokens []string) []Owner {
	if len(tokens) < 4 {
		return nil
	}

	last := tokens[0]
	rest := tokens[1:]
	var people []Owner
	for len(rest) > 0 {
		if len(rest) >= 2 {
			people = append(people, p.newPerson(rest[0], rest[1:2], last))
			rest = rest[2:]
			continue
		}
		people = append(people, p.newPerson(rest[0], nil, last))
		rest = nil
	}
	return people
}
