package config

import (
	"errors"
	"time"

	"github.com/kilianp07/rosterplan/core/solver"
)

// DefaultBackend is the built-in constraint solver.
const DefaultBackend = "cp"

// SolverConfig tunes the constraint solver backend.
type SolverConfig struct {
	// Backend names the registered solver implementation.
	Backend          string  `json:"backend"`
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
	Workers          int     `json:"workers"`
	// Seed makes the search reproducible. Nil takes the default seed.
	Seed *int64 `json:"seed"`
	// LPBound toggles the root LP relaxation. Nil means enabled.
	LPBound *bool `json:"lp_bound"`
	// NodeLimit bounds each neighbourhood dive. Zero keeps the backend default.
	NodeLimit int64 `json:"node_limit"`
}

// SetDefaults fills unset fields from solver.DefaultParameters.
func (c *SolverConfig) SetDefaults() {
	def := solver.DefaultParameters()
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = def.TimeLimit.Seconds()
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}
	if c.Seed == nil {
		seed := def.Seed
		c.Seed = &seed
	}
	if c.LPBound == nil {
		enabled := true
		c.LPBound = &enabled
	}
}

func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds < 0 {
		return errors.New("time_limit_seconds must not be negative")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.NodeLimit < 0 {
		return errors.New("node_limit must not be negative")
	}
	return nil
}

// Parameters converts the section into solve parameters.
func (c SolverConfig) Parameters() solver.Parameters {
	p := solver.Parameters{
		TimeLimit: time.Duration(c.TimeLimitSeconds * float64(time.Second)),
		Workers:   c.Workers,
		Seed:      solver.DefaultParameters().Seed,
	}
	if c.Seed != nil {
		p.Seed = *c.Seed
	}
	return p
}

// LPBoundEnabled reports whether the LP relaxation should run.
func (c SolverConfig) LPBoundEnabled() bool {
	return c.LPBound == nil || *c.LPBound
}
