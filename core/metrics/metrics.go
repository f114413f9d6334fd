package metrics

import "time"

// SolveEvent describes one finished solver call.
type SolveEvent struct {
	RunID       string
	Status      string
	Duration    time.Duration
	Variables   int
	Constraints int
	Assignments int
	Objective   int64
	Time        time.Time
}

// MetricsSink records planning results for observability purposes.
type MetricsSink interface {
	RecordSolve(ev SolveEvent) error
}

// ValidationEvent is the outcome of one rule check on a roster.
type ValidationEvent struct {
	RunID string
	Rule  string
	Valid bool
	Time  time.Time
}

// ValidationRecorder records rule check outcomes.
type ValidationRecorder interface {
	RecordValidation(ev ValidationEvent) error
}

// PlanningRecorder is a sink recording both solves and validations.
type PlanningRecorder interface {
	MetricsSink
	ValidationRecorder
}

// NopSink implements PlanningRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error           { return nil }
func (NopSink) RecordValidation(ValidationEvent) error { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordValidation forwards validation events when supported by the sink.
func (m *MultiSink) RecordValidation(ev ValidationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ValidationRecorder); ok {
			if err := rec.RecordValidation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// AsRecorder widens a sink to a PlanningRecorder. Validation events are
// dropped when the sink does not record them.
func AsRecorder(s MetricsSink) PlanningRecorder {
	if s == nil {
		return NopSink{}
	}
	if r, ok := s.(PlanningRecorder); ok {
		return r
	}
	return solveOnly{s}
}

type solveOnly struct{ MetricsSink }

func (solveOnly) RecordValidation(ValidationEvent) error { return nil }
