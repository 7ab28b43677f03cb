package vpath

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the numeric tolerances used by hit testing.
//
// The zero value is not useful; start from [DefaultConfig]. A Config can be
// loaded from TOML with [LoadConfig]:
//
//	accuracy = 1e-6
//	newton_max_iter = 100
//	end_nudge = 0.005
type Config struct {
	// Accuracy is the accuracy, in curve parameter space, to which roots of
	// the distance polynomials are refined.
	Accuracy float64 `toml:"accuracy"`
	// NewtonMaxIter bounds the number of Newton iterations per root.
	NewtonMaxIter int `toml:"newton_max_iter"`
	// EndNudge is how far the ends of a cubic piece are moved inwards when
	// the distance derivative vanishes there, so that root counting does not
	// see the end itself as a root.
	EndNudge float64 `toml:"end_nudge"`
}

// DefaultConfig returns the tolerances used when none are specified.
func DefaultConfig() Config {
	return Config{
		Accuracy:      DefaultAccuracy,
		NewtonMaxIter: 100,
		EndNudge:      0.005,
	}
}

// LoadConfig decodes a TOML document into a Config. Keys that are missing
// keep their default values; unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if !(cfg.Accuracy > 0) {
		return fmt.Errorf("accuracy must be positive, got %g", cfg.Accuracy)
	}
	if cfg.NewtonMaxIter <= 0 {
		return fmt.Errorf("newton_max_iter must be positive, got %d", cfg.NewtonMaxIter)
	}
	if cfg.EndNudge < 0 || cfg.EndNudge >= 0.5 {
		return fmt.Errorf("end_nudge must be in [0, 0.5), got %g", cfg.EndNudge)
	}
	return nil
}
