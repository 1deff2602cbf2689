package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/cpmgrid/internal/dependency"
	"github.com/specialistvlad/cpmgrid/internal/model"
	"github.com/specialistvlad/cpmgrid/internal/optimizer"
	"github.com/specialistvlad/cpmgrid/internal/report"
	"github.com/specialistvlad/cpmgrid/internal/resources"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // hcl file or directory

	LogFormat    string
	LogLevel     string
	OutputFormat report.Format

	Strategy      string
	MaxIterations int
	Parallel      bool
	LaborGroups   []string

	// MaxIterationsSet and LaborGroupsSet record whether the values came
	// from the command line. Project settings only fill unset values.
	MaxIterationsSet bool
	LaborGroupsSet   bool
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}

	format, err := report.ParseFormat(string(cfg.OutputFormat))
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = format

	if _, err := dependency.StrategyByName(cfg.Strategy); err != nil {
		return nil, err
	}

	if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("max-iterations must not be negative, got %d", cfg.MaxIterations)
	}
	if !cfg.MaxIterationsSet && cfg.MaxIterations == 0 {
		cfg.MaxIterations = optimizer.DefaultMaxIterations
	}

	if len(cfg.LaborGroups) == 0 {
		cfg.LaborGroups = resources.DefaultLaborGroups
	}

	return &cfg, nil
}

// withSettings returns a copy of c with the project settings applied to
// every value not given on the command line.
func (c Config) withSettings(s model.Settings) Config {
	if s.MaxIterations != nil && !c.MaxIterationsSet && *s.MaxIterations >= 0 {
		c.MaxIterations = *s.MaxIterations
	}
	if len(s.LaborGroups) > 0 && !c.LaborGroupsSet {
		c.LaborGroups = s.LaborGroups
	}
	return c
}
