package owners

import (
	"errors"
	"testing"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
)

func TestIsCompanyWholeWordOnly(t *testing.T) {
	p := NewDefault()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"llc", "ACME LLC", true},
		{"lowercase", "acme llc", true},
		{"trust", "SMITH FAMILY TRUST", true},
		{"bank na", "FIRST NATIONAL BANK N.A.", true},
		{"trailing period", "ACME INC.", true},
		{"parenthesized", "ACME (LLC)", true},
		{"co after ampersand", "SMITH & CO", true},
		{"indicator inside word", "COHEN DAVID", false},
		{"trust prefix word", "TRUSTEE SMITH", false},
		{"plain person", "SMITH JOHN", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsCompany(tt.input); got != tt.want {
				t.Errorf("IsCompany(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCompanyExtendedIndicators(t *testing.T) {
	rules := DefaultRules()
	rules.CompanyIndicators = append(rules.CompanyIndicators, "hoa")
	p, err := New(rules)
	if err != nil {
		t.Fatalf("New with extended rules: %v", err)
	}

	if !p.IsCompany("OAKWOOD HOA") {
		t.Error("extended indicator 'hoa' should classify as company")
	}
	if !p.IsCompany("ACME LLC") {
		t.Error("default indicators should still apply")
	}
}

func TestNewRejectsBlankIndicator(t *testing.T) {
	_, err := New(Rules{CompanyIndicators: []string{"llc", "  "}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	_, err = New(Rules{Suffixes: []string{"..."}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for blank suffix, got %v", err)
	}
}
