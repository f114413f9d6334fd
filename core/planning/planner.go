package planning

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/rosterplan/core/logger"
	"github.com/kilianp07/rosterplan/core/metrics"
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// Result is the outcome of Solve.
type Result struct {
	RunID       string             `json:"run_id"`
	Status      Status             `json:"status"`
	Assignments []model.Assignment `json:"assignments"`
	Objective   int64              `json:"objective"`
	WallTime    time.Duration      `json:"wall_time"`
}

// Planner drives one planning run. It is not safe for concurrent use and
// cannot be reused once solved.
type Planner struct {
	solver   solver.Solver
	params   solver.Parameters
	log      logger.Logger
	recorder metrics.PlanningRecorder
	runID    string

	state     State
	employees []model.Employee
	duties    []model.Duty
	empIDs    map[int]struct{}
	dutyIDs   map[int]struct{}
	specs     []RuleSpec

	model  *solver.Model
	matrix *Matrix
	rules  []Rule
	result Result
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the planner logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithParameters overrides the solver parameters.
func WithParameters(params solver.Parameters) Option {
	return func(p *Planner) { p.params = params }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r metrics.PlanningRecorder) Option {
	return func(p *Planner) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(p *Planner) {
		if id != "" {
			p.runID = id
		}
	}
}

// New returns an empty planner solving with s.
func New(s solver.Solver, opts ...Option) *Planner {
	p := &Planner{
		solver:   s,
		params:   solver.DefaultParameters(),
		log:      logger.NopLogger{},
		recorder: metrics.NopSink{},
		runID:    uuid.NewString(),
		empIDs:   make(map[int]struct{}),
		dutyIDs:  make(map[int]struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// RunID identifies this run in logs and metrics.
func (p *Planner) RunID() string { return p.runID }

// State returns the lifecycle stage.
func (p *Planner) State() State { return p.state }

// AddEmployee appends an employee before Setup.
func (p *Planner) AddEmployee(e model.Employee) error {
	if p.state >= StateModeled {
		return ErrFrozen
	}
	if _, ok := p.empIDs[e.ID]; ok {
		return fmt.Errorf("%w %d", ErrDuplicateEmployee, e.ID)
	}
	p.empIDs[e.ID] = struct{}{}
	p.employees = append(p.employees, e)
	p.state = StatePopulated
	return nil
}

// AddDuty appends a duty before Setup.
func (p *Planner) AddDuty(d model.Duty) error {
	if p.state >= StateModeled {
		return ErrFrozen
	}
	if _, ok := p.dutyIDs[d.ID]; ok {
		return fmt.Errorf("%w %d", ErrDuplicateDuty, d.ID)
	}
	p.dutyIDs[d.ID] = struct{}{}
	p.duties = append(p.duties, d)
	p.state = StatePopulated
	return nil
}

// Register appends a rule. Rules are built and applied by Setup in
// registration order.
func (p *Planner) Register(spec RuleSpec) error {
	if p.state >= StateModeled {
		return ErrFrozen
	}
	if _, ok := ruleBuilders[spec.Kind]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownRule, spec.Kind)
	}
	p.specs = append(p.specs, spec)
	return nil
}

// Setup creates the decision matrix and applies every registered rule. The
// planner is frozen afterwards.
func (p *Planner) Setup() error {
	if p.state >= StateModeled {
		return ErrFrozen
	}
	rules := make([]Rule, 0, len(p.specs))
	for _, s := range p.specs {
		r, err := NewRule(s, p.employees, p.duties)
		if err != nil {
			return err
		}
		rules = append(rules, r)
	}

	m := solver.NewModel()
	x := NewMatrix(m, p.employees, p.duties)
	for _, r := range rules {
		if err := r.Apply(m, x); err != nil {
			return fmt.Errorf("apply %s: %w", r.Name(), err)
		}
	}
	p.model, p.matrix, p.rules = m, x, rules
	p.state = StateModeled
	p.log.Debugw("planning model built", map[string]any{
		"run_id":      p.runID,
		"employees":   len(p.employees),
		"duties":      len(p.duties),
		"rules":       len(rules),
		"variables":   m.NumVars(),
		"constraints": m.NumConstraints(),
	})
	return nil
}

// Solve runs the solver once. An infeasible run is not an error: it returns
// StatusInfeasible and no assignments.
func (p *Planner) Solve() (Result, error) {
	switch {
	case p.state.terminal():
		return Result{}, ErrAlreadySolved
	case p.state != StateModeled:
		return Result{}, ErrNotModeled
	}
	if p.solver == nil {
		return Result{}, errors.New("planner has no solver")
	}

	p.log.Infof("solving run %s: %d employees, %d duties, %d rules", p.runID, len(p.employees), len(p.duties), len(p.rules))
	start := time.Now()
	sol, err := p.solver.Solve(p.model, p.params)
	if err != nil {
		return Result{}, fmt.Errorf("solve: %w", err)
	}
	status, err := translateStatus(sol.Status)
	if err != nil {
		return Result{}, err
	}

	res := Result{RunID: p.runID, Status: status, WallTime: time.Since(start)}
	if status.HasRoster() {
		res.Assignments = p.extract(sol)
		res.Objective = sol.Objective
		p.state = StateSolved
	} else {
		p.state = StateInfeasible
		p.log.Warnf("run %s: no feasible roster", p.runID)
	}
	p.result = res

	if err := p.recorder.RecordSolve(metrics.SolveEvent{
		RunID:       p.runID,
		Status:      status.String(),
		Duration:    res.WallTime,
		Variables:   p.model.NumVars(),
		Constraints: p.model.NumConstraints(),
		Assignments: len(res.Assignments),
		Objective:   res.Objective,
		Time:        time.Now(),
	}); err != nil {
		p.log.Errorf("record solve: %v", err)
	}
	p.log.Infof("run %s finished %s in %s with %d assignments", p.runID, status, res.WallTime, len(res.Assignments))
	return res, nil
}

// extract projects the solution onto duty-level assignments.
func (p *Planner) extract(sol *solver.Solution) []model.Assignment {
	var out []model.Assignment
	for j, d := range p.duties {
		a := model.NewAssignment(d)
		for i, e := range p.employees {
			if sol.BoolValue(p.matrix.Var(i, j)) {
				a.Employees = append(a.Employees, model.AssignedEmployee{EmployeeID: e.ID, EmployeeName: e.Name})
			}
		}
		if len(a.Employees) > 0 {
			out = append(out, a)
		}
	}
	SortAssignments(out)
	return out
}

// SortAssignments orders a roster by date, duty code, start time and duty id.
func SortAssignments(as []model.Assignment) {
	sort.SliceStable(as, func(i, j int) bool {
		a, b := as[i], as[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.DutyCode != b.DutyCode {
			return a.DutyCode < b.DutyCode
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.DutyID < b.DutyID
	})
}

// Result returns the last Solve outcome.
func (p *Planner) Result() (Result, error) {
	if !p.state.terminal() {
		return Result{}, ErrNotSolved
	}
	return p.result, nil
}

// Validate re-checks the solved roster with the applied rules.
func (p *Planner) Validate() (Report, error) {
	if p.state != StateSolved {
		return Report{}, ErrNotSolved
	}
	rep, err := newValidator(p.rules).Validate(p.result.Assignments)
	if err != nil {
		return Report{}, err
	}
	for _, r := range rep.Results {
		if err := p.recorder.RecordValidation(metrics.ValidationEvent{RunID: p.runID, Rule: r.Rule, Valid: r.Valid, Time: time.Now()}); err != nil {
			p.log.Errorf("record validation: %v", err)
		}
		if !r.Valid {
			p.log.Warnf("run %s: solved roster violates %s", p.runID, r.Rule)
		}
	}
	return rep, nil
}
