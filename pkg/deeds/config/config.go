package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
)

// Settings holds the tunable parts of the transform tools
type Settings struct {
	Store StoreSettings `yaml:"store"`
	HTTP  HTTPSettings  `yaml:"http"`
	Rules RuleSettings  `yaml:"rules"`
}

// StoreSettings selects and configures the persistence driver
type StoreSettings struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	DSN    string `yaml:"dsn"`
}

// HTTPSettings configures the owners API server
type HTTPSettings struct {
	Addr string `yaml:"addr"`
}

// RuleSettings extends the built-in parser indicator sets. Entries are
// added on top of the defaults, never replacing them.
type RuleSettings struct {
	ExtraCompanyIndicators []string `yaml:"extra_company_indicators"`
	ExtraSuffixes          []string `yaml:"extra_suffixes"`
}

// Default returns the settings used when no config file is given
func Default() Settings {
	return Settings{
		Store: StoreSettings{Driver: "sqlite", DSN: "deeds.db"},
		HTTP:  HTTPSettings{Addr: ":8080"},
	}
}

// Load reads one YAML settings file
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &s, nil
}

// OwnerRules expands the rule extensions onto the built-in defaults
func (s Settings) OwnerRules() owners.Rules {
	r := owners.DefaultRules()
	r.CompanyIndicators = append(r.CompanyIndicators, s.Rules.ExtraCompanyIndicators...)
	r.Suffixes = append(r.Suffixes, s.Rules.ExtraSuffixes...)
	return r
}
