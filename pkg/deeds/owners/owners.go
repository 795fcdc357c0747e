package owners

import "strings"

// Kind discriminates the two owner variants
type Kind string

const (
	KindPerson  Kind = "person"
	KindCompany Kind = "company"
)

// ReasonAmbiguousPerson marks fragments that could not be confidently
// split into first/last name components
const ReasonAmbiguousPerson = "ambiguous_or_incomplete_person_name"

// Owner is a parsed property owner, either a person or a company.
// Exactly one variant is populated: person fields for KindPerson,
// CompanyName for KindCompany.
type Owner struct {
	Kind        Kind   `json:"kind"`
	FirstName   string `json:"first_name,omitempty"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// FullName returns a display name: "First Middle Last" for persons,
// the company name otherwise.
func (o Owner) FullName() string {
	if o.Kind == KindCompany {
		return o.CompanyName
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{o.FirstName, o.MiddleName, o.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// InvalidEntry preserves a fragment the heuristics could not resolve
type InvalidEntry struct {
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// ParseResult holds the classified owners of one raw text, deduplicated
// and in order of first appearance, plus every fragment that could not
// be resolved. Both slices are non-nil.
type ParseResult struct {
	Owners   []Owner        `json:"owners"`
	Invalids []InvalidEntry `json:"invalids"`
}
