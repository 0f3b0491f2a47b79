// Package config loads the tunable parameters of the honeycomb tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/philipparndt/gohoneycomb/pkg/intercalation"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for a config file whose extension is not known
var ErrFormat = errors.New("unsupported config format")

// Config holds everything a run can tune
type Config struct {
	// Species maps a species key to its fcc lattice parameter (Å)
	Species map[string]float64 `yaml:"species" toml:"species"`
	// Guest is the species intercalated when none is given
	Guest string `yaml:"guest" toml:"guest"`

	Split         honeycomb.SplitConfig `yaml:"split" toml:"split"`
	Intercalation intercalation.Options `yaml:"intercalation" toml:"intercalation"`
}

// Default returns the built-in configuration
func Default() Config {
	species := make(map[string]float64)
	for key, params := range intercalation.DefaultSpecies() {
		species[key] = params.LatticeParam
	}
	return Config{
		Species:       species,
		Guest:         "al",
		Split:         honeycomb.DefaultSplitConfig(),
		Intercalation: intercalation.DefaultOptions(),
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
// Keys missing from the file keep their default value; unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("failed to parse %s: unknown keys %v", path, undecoded)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a run cannot work with
func (c Config) Validate() error {
	var errs []error
	s := c.Split
	if s.Epsilon <= 0 || s.Plane.Epsilon <= 0 {
		errs = append(errs, errors.New("split epsilons must be positive"))
	}
	if s.ClearanceCoefficient <= 0 {
		errs = append(errs, errors.New("clearance coefficient must be positive"))
	}
	if s.MaxClearanceCoefficient < s.ClearanceCoefficient {
		errs = append(errs, fmt.Errorf("max clearance coefficient %v below clearance coefficient %v",
			s.MaxClearanceCoefficient, s.ClearanceCoefficient))
	}
	if s.MinPointsInLine < 2 || s.Plane.MinPointsInLine < 2 {
		errs = append(errs, errors.New("a line needs at least 2 points"))
	}
	if s.PolygonNodes < 3 {
		errs = append(errs, fmt.Errorf("polygon nodes %d below 3", s.PolygonNodes))
	}

	o := c.Intercalation
	if o.NumberOfPlanes < 0 {
		errs = append(errs, fmt.Errorf("number of planes %d is negative", o.NumberOfPlanes))
	}
	if o.Layers < 1 {
		errs = append(errs, fmt.Errorf("layers %d below 1", o.Layers))
	}
	if o.MaxIterations < 0 || o.MaxRuntime < 0 || o.Workers < 0 {
		errs = append(errs, errors.New("optimizer limits and workers must not be negative"))
	}

	table, err := c.SpeciesTable()
	if err != nil {
		errs = append(errs, err)
	} else if c.Guest != "" {
		if _, err := table.Lookup(c.Guest); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SpeciesTable builds the species parameters from the configured lattice
// parameters.
func (c Config) SpeciesTable() (intercalation.SpeciesTable, error) {
	return intercalation.NewSpeciesTable(c.Species)
}
