package owners

import (
	"fmt"
	"strings"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
)

// Rules holds the indicator sets the parser matches against. Empty
// fields fall back to the built-in defaults; county-specific additions
// extend the defaults via config rather than replacing them.
type Rules struct {
	CompanyIndicators []string `yaml:"company_indicators"`
	Suffixes          []string `yaml:"suffixes"`
}

// DefaultRules returns the built-in company indicator and name suffix sets
func DefaultRules() Rules {
	return Rules{
		CompanyIndicators: append([]string(nil), defaultCompanyIndicators...),
		Suffixes:          append([]string(nil), defaultSuffixes...),
	}
}

// Parser classifies raw owner-name text into structured owners. A Parser
// is immutable after New and safe for concurrent use.
type Parser struct {
	companies map[string]struct{}
	suffixes  map[string]struct{}
}

// New compiles the given rules into a Parser. Empty rule fields use the
// defaults; blank entries are rejected.
func New(r Rules) (*Parser, error) {
	indicators := r.CompanyIndicators
	if len(indicators) == 0 {
		indicators = defaultCompanyIndicators
	}
	suffixes := r.Suffixes
	if len(suffixes) == 0 {
		suffixes = defaultSuffixes
	}

	p := &Parser{
		companies: make(map[string]struct{}, len(indicators)),
		suffixes:  make(map[string]struct{}, len(suffixes)),
	}
	for _, ind := range indicators {
		w := normalizeIndicator(ind)
		if w == "" {
			return nil, fmt.Errorf("company indicator %q: %w", ind, internalerr.ErrInvalidConfig)
		}
		p.companies[w] = struct{}{}
	}
	for _, suf := range suffixes {
		w := normalizeIndicator(suf)
		if w == "" {
			return nil, fmt.Errorf("name suffix %q: %w", suf, internalerr.ErrInvalidConfig)
		}
		p.suffixes[w] = struct{}{}
	}
	return p, nil
}

// NewDefault returns a Parser compiled from DefaultRules
func NewDefault() *Parser {
	p, err := New(Rules{})
	if err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return p
}

// normalizeIndicator lowercases an indicator and trims surrounding
// periods so "Inc." and "inc" share one set entry.
func normalizeIndicator(s string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".")
}
