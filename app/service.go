package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/rosterplan/app/plugins"
	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/core/factory"
	coremetrics "github.com/kilianp07/rosterplan/core/metrics"
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/planning"
	"github.com/kilianp07/rosterplan/core/solver"
	"github.com/kilianp07/rosterplan/infra/logger"
	"github.com/kilianp07/rosterplan/infra/metrics"
)

// Service runs planning and validation jobs with the configured rules,
// solver backend and metrics sinks.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   coremetrics.PlanningRecorder
	solver solver.Solver
	rules  []planning.RuleSpec
}

// Option customises a Service.
type Option func(*Service)

// WithLogger replaces the logger built from the logging section.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithSolver replaces the configured solver backend.
func WithSolver(sv solver.Solver) Option {
	return func(s *Service) { s.solver = sv }
}

// WithSink replaces the sinks listed in the metrics section.
func WithSink(sink coremetrics.MetricsSink) Option {
	return func(s *Service) { s.sink = coremetrics.AsRecorder(sink) }
}

// Outcome is the result of one planning run. Report is nil when no roster
// was found.
type Outcome struct {
	Problem string           `json:"problem"`
	Result  planning.Result  `json:"result"`
	Report  *planning.Report `json:"report,omitempty"`
}

// New creates a Service from the configuration. Logs go to stderr so
// rosters can be written to stdout.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Service{cfg: cfg, rules: RuleSpecs(cfg.Rules)}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.NewWithConfig("service", cfg.Logging, os.Stderr)
	}
	if s.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = coremetrics.AsRecorder(sink)
	}
	if s.solver == nil {
		sv, err := plugins.NewSolver(cfg.Solver, s.log)
		if err != nil {
			return nil, err
		}
		s.solver = sv
	}
	// Catch unknown kinds and bad parameters before any data is loaded.
	for _, spec := range s.rules {
		if _, err := planning.NewRule(spec, nil, nil); err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
	}
	return s, nil
}

// RuleSpecs converts configured rules. An empty list selects the default
// rule set.
func RuleSpecs(cfgs []factory.ModuleConfig) []planning.RuleSpec {
	if len(cfgs) == 0 {
		return planning.DefaultRules()
	}
	specs := make([]planning.RuleSpec, len(cfgs))
	for i, c := range cfgs {
		specs[i] = planning.RuleSpec{Kind: planning.Kind(c.Type)}
		if c.Conf != nil {
			specs[i].Params = c.Conf
		}
	}
	return specs
}

// Rules returns the rule specs applied by Plan and Check.
func (s *Service) Rules() []planning.RuleSpec {
	return append([]planning.RuleSpec(nil), s.rules...)
}

// Plan builds and solves the planning model for p, then re-checks the
// roster with the same rules. Violations are logged and counted but do not
// fail the run.
func (s *Service) Plan(p *model.Problem) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("problem %s: %w", p.Name, err)
	}
	pl := planning.New(s.solver,
		planning.WithLogger(s.log),
		planning.WithParameters(s.cfg.Solver.Parameters()),
		planning.WithRecorder(s.sink),
	)
	for _, e := range p.Employees {
		if err := pl.AddEmployee(e); err != nil {
			return Outcome{}, err
		}
	}
	for _, d := range p.Duties {
		if err := pl.AddDuty(d); err != nil {
			return Outcome{}, err
		}
	}
	for _, spec := range s.rules {
		if err := pl.Register(spec); err != nil {
			return Outcome{}, err
		}
	}
	if err := pl.Setup(); err != nil {
		return Outcome{}, fmt.Errorf("setup: %w", err)
	}
	res, err := pl.Solve()
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Problem: p.Name, Result: res}
	if !res.Status.HasRoster() {
		return out, nil
	}
	rep, err := pl.Validate()
	if err != nil {
		return Outcome{}, fmt.Errorf("post-solve check: %w", err)
	}
	if !rep.Valid() {
		s.log.Warnf("run %s: roster violates %v", res.RunID, rep.Violations())
	}
	out.Report = &rep
	return out, nil
}

// Check validates an existing roster for p without solving.
func (s *Service) Check(p *model.Problem, assignments []model.Assignment) (planning.Report, error) {
	v, err := planning.NewValidator(p.Employees, p.Duties, s.rules...)
	if err != nil {
		return planning.Report{}, err
	}
	rep, err := v.Validate(assignments)
	if err != nil {
		return planning.Report{}, err
	}
	runID := uuid.NewString()
	for _, r := range rep.Results {
		ev := coremetrics.ValidationEvent{RunID: runID, Rule: r.Rule, Valid: r.Valid, Time: time.Now()}
		if err := s.sink.RecordValidation(ev); err != nil {
			s.log.Errorf("record validation: %v", err)
		}
	}
	s.log.Infof("check %s: %d rules, violations %v", runID, len(rep.Results), rep.Violations())
	return rep, nil
}

// ServeMetrics exposes /metrics on the configured address until ctx is
// done. It is a no-op without an address.
func (s *Service) ServeMetrics(ctx context.Context) {
	addr := s.cfg.Metrics.PrometheusAddr
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, addr, s.log); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
	s.log.Infof("serving metrics on %s", addr)
}
