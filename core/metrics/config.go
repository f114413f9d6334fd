package metrics

import (
	"errors"

	"github.com/kilianp07/rosterplan/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is the listen address of the /metrics endpoint. Empty
	// disables the endpoint.
	PrometheusAddr string `json:"prometheus_addr"`
}

// Validate checks every sink has a type.
func (c Config) Validate() error {
	for _, s := range c.Sinks {
		if s.Type == "" {
			return errors.New("metrics sink without type")
		}
	}
	return nil
}
