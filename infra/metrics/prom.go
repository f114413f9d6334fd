package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/rosterplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	solves     *prometheus.CounterVec
	duration   prometheus.Histogram
	variables  prometheus.Gauge
	violations *prometheus.CounterVec
	checks     *prometheus.CounterVec
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_solves_total",
		Help: "Total number of solver runs by outcome",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planning_solve_duration_seconds",
		Help:    "Wall time of solver runs",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})
	variables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planning_model_variables",
		Help: "Number of variables in the last solved model",
	})
	violations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_rule_violations_total",
		Help: "Rosters rejected by a rule",
	}, []string{"rule"})
	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_rule_checks_total",
		Help: "Rule validations by outcome",
	}, []string{"rule", "valid"})

	var err error
	if solves, err = register(reg, solves); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if variables, err = register(reg, variables); err != nil {
		return nil, err
	}
	if violations, err = register(reg, violations); err != nil {
		return nil, err
	}
	if checks, err = register(reg, checks); err != nil {
		return nil, err
	}
	return &PromSink{solves: solves, duration: duration, variables: variables, violations: violations, checks: checks}, nil
}

// register adds c to reg, reusing an identical collector registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSolve counts the run and observes its duration.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(ev.Status).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.variables.Set(float64(ev.Variables))
	return nil
}

// RecordValidation counts rule checks and violations.
func (s *PromSink) RecordValidation(ev coremetrics.ValidationEvent) error {
	s.checks.WithLabelValues(ev.Rule, strconv.FormatBool(ev.Valid)).Inc()
	if !ev.Valid {
		s.violations.WithLabelValues(ev.Rule).Inc()
	}
	return nil
}
