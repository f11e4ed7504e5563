package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Overrides command-line values that replace file settings when non-empty.
type Overrides struct {
	Ticker   string
	Provider string
	Period   string
	Start    string
	End      string
	DataFile string
}

// Apply returns a copy of cfg with the non-empty overrides applied and validated.
func (o Overrides) Apply(cfg Config) (Config, error) {
	if o.Ticker != "" {
		cfg.Ticker = strings.TrimSpace(o.Ticker)
	}
	if o.Provider != "" {
		cfg.Provider = strings.ToLower(o.Provider)
	}
	if o.Period != "" {
		cfg.Period = strings.ToLower(o.Period)
		cfg.Start = time.Time{}
	}
	if o.DataFile != "" {
		cfg.DataFile = o.DataFile
		if o.Provider == "" {
			cfg.Provider = ProviderFile
		}
	}

	var err error
	if o.Start != "" {
		if cfg.Start, err = time.Parse(time.DateOnly, o.Start); err != nil {
			return Config{}, errors.Errorf("invalid --start provided, --start=%s", o.Start)
		}
	}
	if o.End != "" {
		if cfg.End, err = time.Parse(time.DateOnly, o.End); err != nil {
			return Config{}, errors.Errorf("invalid --end provided, --end=%s", o.End)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
