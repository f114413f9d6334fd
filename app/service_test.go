package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/core/factory"
	coremetrics "github.com/kilianp07/rosterplan/core/metrics"
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/planning"
	"github.com/kilianp07/rosterplan/infra/logger"
)

type captureSink struct {
	mu          sync.Mutex
	solves      []coremetrics.SolveEvent
	validations []coremetrics.ValidationEvent
}

func (c *captureSink) RecordSolve(ev coremetrics.SolveEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.solves = append(c.solves, ev)
	return nil
}

func (c *captureSink) RecordValidation(ev coremetrics.ValidationEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validations = append(c.validations, ev)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Solver.TimeLimitSeconds = 10
	cfg.Solver.Workers = 2
	return cfg
}

func smallProblem(t *testing.T) *model.Problem {
	t.Helper()
	emp := func(id int, name string) model.Employee {
		return model.Employee{ID: id, Name: name, MaxDaysInARow: 3, MaxHoursPerDay: 10, MaxHoursInPeriod: 40, WorkPercentage: 100}
	}
	alice := emp(1, "Alice")
	alice.BlockedDays = []model.Date{"2025-05-02"}
	pf := config.ProblemFile{
		Name:      "small",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-03",
		Employees: []model.Employee{alice, emp(2, "Bob"), emp(3, "Cleo")},
		Duties: []model.DutyTemplate{
			{Code: "EARLY", Start: model.MustClock("06:00"), End: model.MustClock("14:00"), RequiredEmployees: 1},
		},
	}
	p, err := pf.Problem()
	require.NoError(t, err)
	return p
}

func TestServicePlan(t *testing.T) {
	sink := &captureSink{}
	svc, err := New(testConfig(), WithLogger(logger.NopLogger{}), WithSink(sink))
	require.NoError(t, err)
	assert.Len(t, svc.Rules(), len(planning.DefaultRules()))

	p := smallProblem(t)
	out, err := svc.Plan(p)
	require.NoError(t, err)
	assert.Equal(t, "small", out.Problem)
	require.True(t, out.Result.Status.HasRoster(), "status %s", out.Result.Status)
	require.Len(t, out.Result.Assignments, 3)
	require.NotNil(t, out.Report)

	for _, a := range out.Result.Assignments {
		require.Len(t, a.Employees, 1)
		if a.Date == "2025-05-02" {
			assert.NotEqual(t, 1, a.Employees[0].EmployeeID)
		}
	}
	// Three single-duty days over three employees balance perfectly.
	assert.True(t, out.Report.Valid(), out.Report.Violations())

	require.Len(t, sink.solves, 1)
	assert.Equal(t, out.Result.RunID, sink.solves[0].RunID)
	assert.Len(t, sink.validations, len(planning.DefaultRules()))
}

func TestServicePlanInfeasible(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = []factory.ModuleConfig{{Type: "required_coverage"}, {Type: "blocked_days"}}
	sink := &captureSink{}
	svc, err := New(cfg, WithLogger(logger.NopLogger{}), WithSink(sink))
	require.NoError(t, err)

	p := smallProblem(t)
	for i := range p.Employees {
		p.Employees[i].BlockedDays = []model.Date{"2025-05-03"}
	}
	out, err := svc.Plan(p)
	require.NoError(t, err)
	assert.Equal(t, planning.StatusInfeasible, out.Result.Status)
	assert.Empty(t, out.Result.Assignments)
	assert.Nil(t, out.Report)
	assert.Empty(t, sink.validations)
}

func TestServicePlanRejectsInvalidProblem(t *testing.T) {
	svc, err := New(testConfig(), WithLogger(logger.NopLogger{}))
	require.NoError(t, err)
	p := smallProblem(t)
	p.Duties = append(p.Duties, p.Duties[0])
	_, err = svc.Plan(p)
	assert.ErrorIs(t, err, model.ErrDuplicateID)
}

func TestServiceCheck(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = []factory.ModuleConfig{
		{Type: "required_coverage"},
		{Type: "blocked_days"},
		{Type: "rest_time", Conf: map[string]any{"min_rest_hours": 11}},
	}
	sink := &captureSink{}
	svc, err := New(cfg, WithLogger(logger.NopLogger{}), WithSink(sink))
	require.NoError(t, err)

	p := smallProblem(t)
	alice, bob := p.Employees[0], p.Employees[1]
	roster := make([]model.Assignment, len(p.Duties))
	for i, d := range p.Duties {
		roster[i] = model.NewAssignment(d)
		who := bob
		if i != 1 {
			who = alice
		}
		roster[i].Employees = []model.AssignedEmployee{{EmployeeID: who.ID, EmployeeName: who.Name}}
	}
	rep, err := svc.Check(p, roster)
	require.NoError(t, err)
	assert.True(t, rep.Valid(), rep.Violations())
	assert.Len(t, sink.validations, 3)

	roster[1].Employees = []model.AssignedEmployee{{EmployeeID: alice.ID, EmployeeName: alice.Name}}
	rep, err = svc.Check(p, roster)
	require.NoError(t, err)
	assert.Equal(t, []string{"blocked_days"}, rep.Violations())

	roster[0].Employees = []model.AssignedEmployee{{EmployeeID: 99, EmployeeName: "Ghost"}}
	_, err = svc.Check(p, roster)
	assert.ErrorIs(t, err, planning.ErrUnknownEmployee)
}

func TestNewRejectsBadRules(t *testing.T) {
	tests := []struct {
		name   string
		rules  []factory.ModuleConfig
		target error
	}{
		{"unknown kind", []factory.ModuleConfig{{Type: "overtime"}}, planning.ErrUnknownRule},
		{"bad params", []factory.ModuleConfig{{Type: "rest_time", Conf: map[string]any{"hours": 3}}}, planning.ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Rules = tt.rules
			_, err := New(cfg, WithLogger(logger.NopLogger{}))
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNewRejectsUnknownSink(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "influx"}}
	_, err := New(cfg, WithLogger(logger.NopLogger{}))
	assert.ErrorIs(t, err, factory.ErrUnknownType)
}

func TestRuleSpecs(t *testing.T) {
	assert.Equal(t, planning.DefaultRules(), RuleSpecs(nil))
	specs := RuleSpecs([]factory.ModuleConfig{{Type: "rest_time", Conf: map[string]any{"min_rest_hours": 9}}, {Type: "blocked_days"}})
	require.Len(t, specs, 2)
	assert.Equal(t, planning.KindRestTime, specs[0].Kind)
	assert.Equal(t, map[string]any{"min_rest_hours": 9}, specs[0].Params)
	assert.Nil(t, specs[1].Params)
}
