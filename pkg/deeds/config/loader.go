package config

import "fmt"

// Loader merges settings from several files over the defaults. Scalar
// fields from later files win; rule extensions accumulate across files.
type Loader struct {
	Paths []string
}

// Load reads every configured path in order and returns the merged settings
func (l *Loader) Load() (*Settings, error) {
	merged := Default()

	for _, path := range l.Paths {
		if path == "" {
			continue
		}
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		merged.apply(loaded)
	}

	return &merged, nil
}

func (s *Settings) apply(over *Settings) {
	if over.Store.Driver != "" {
		s.Store.Driver = over.Store.Driver
	}
	if over.Store.DSN != "" {
		s.Store.DSN = over.Store.DSN
	}
	if over.HTTP.Addr != "" {
		s.HTTP.Addr = over.HTTP.Addr
	}
	s.Rules.ExtraCompanyIndicators = append(s.Rules.ExtraCompanyIndicators, over.Rules.ExtraCompanyIndicators...)
	s.Rules.ExtraSuffixes = append(s.Rules.ExtraSuffixes, over.Rules.ExtraSuffixes...)
}
