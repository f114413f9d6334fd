package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterplan/core/metrics"
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// fakeSolver returns a fixed status. With a solution every variable takes
// the value chosen by pick.
type fakeSolver struct {
	status solver.Status
	pick   func(v int) int64
	err    error
}

func (f *fakeSolver) Solve(m *solver.Model, _ solver.Parameters) (*solver.Solution, error) {
	if f.err != nil {
		return nil, f.err
	}
	sol := &solver.Solution{Status: f.status}
	if f.status.HasSolution() {
		sol.Values = make([]int64, m.NumVars())
		for i := range sol.Values {
			if f.pick != nil {
				sol.Values[i] = f.pick(i)
			}
		}
	}
	return sol, nil
}

type captureSink struct {
	solves      []metrics.SolveEvent
	validations []metrics.ValidationEvent
}

func (c *captureSink) RecordSolve(ev metrics.SolveEvent) error {
	c.solves = append(c.solves, ev)
	return nil
}

func (c *captureSink) RecordValidation(ev metrics.ValidationEvent) error {
	c.validations = append(c.validations, ev)
	return nil
}

func TestPlannerLifecycle(t *testing.T) {
	p := New(&fakeSolver{status: solver.StatusInfeasible})
	assert.Equal(t, StateEmpty, p.State())
	assert.NotEmpty(t, p.RunID())

	_, err := p.Solve()
	assert.ErrorIs(t, err, ErrNotModeled)

	require.NoError(t, p.AddEmployee(employee(1, "Alice", 3)))
	assert.Equal(t, StatePopulated, p.State())
	assert.ErrorIs(t, p.AddEmployee(employee(1, "Alice again", 3)), ErrDuplicateEmployee)
	require.NoError(t, p.AddDuty(duty(0, "D", "2025-05-01", "08:00", "16:00", 1)))
	assert.ErrorIs(t, p.AddDuty(duty(0, "D", "2025-05-02", "08:00", "16:00", 1)), ErrDuplicateDuty)
	assert.ErrorIs(t, p.Register(Spec("overtime")), ErrUnknownRule)
	require.NoError(t, p.Register(Spec(KindRequiredCoverage)))

	_, err = p.Solve()
	assert.ErrorIs(t, err, ErrNotModeled)
	_, err = p.Result()
	assert.ErrorIs(t, err, ErrNotSolved)

	require.NoError(t, p.Setup())
	assert.Equal(t, StateModeled, p.State())
	assert.ErrorIs(t, p.Setup(), ErrFrozen)
	assert.ErrorIs(t, p.AddEmployee(employee(2, "Bob", 3)), ErrFrozen)
	assert.ErrorIs(t, p.AddDuty(duty(1, "D", "2025-05-02", "08:00", "16:00", 1)), ErrFrozen)
	assert.ErrorIs(t, p.Register(Spec(KindBlockedDays)), ErrFrozen)

	res, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, res.Status)
	assert.Empty(t, res.Assignments)
	assert.Equal(t, StateInfeasible, p.State())

	_, err = p.Solve()
	assert.ErrorIs(t, err, ErrAlreadySolved)
	_, err = p.Validate()
	assert.ErrorIs(t, err, ErrNotSolved)
}

func TestPlannerStatusTranslation(t *testing.T) {
	tests := []struct {
		name    string
		native  solver.Status
		want    Status
		wantErr bool
	}{
		{"optimal", solver.StatusOptimal, StatusOptimal, false},
		{"feasible", solver.StatusFeasible, StatusFeasible, false},
		{"infeasible", solver.StatusInfeasible, StatusInfeasible, false},
		{"unknown", solver.StatusUnknown, StatusInfeasible, false},
		{"model invalid", solver.StatusModelInvalid, StatusInfeasible, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeSolver{status: tt.native})
			require.NoError(t, p.AddEmployee(employee(1, "Alice", 3)))
			require.NoError(t, p.AddDuty(duty(0, "D", "2025-05-01", "08:00", "16:00", 1)))
			require.NoError(t, p.Setup())
			res, err := p.Solve()
			if tt.wantErr {
				assert.ErrorIs(t, err, solver.ErrInvalidModel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestPlannerSolverErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	p := New(&fakeSolver{err: boom})
	require.NoError(t, p.Setup())
	_, err := p.Solve()
	assert.ErrorIs(t, err, boom)
}

func TestPlannerExtractsSortedAssignments(t *testing.T) {
	alice, bob := employee(1, "Alice", 3), employee(2, "Bob", 3)
	duties := []model.Duty{
		duty(10, "A", "2025-05-02", "08:00", "16:00", 1),
		duty(11, "B", "2025-05-01", "06:00", "14:00", 1),
		duty(12, "A", "2025-05-01", "10:00", "18:00", 1),
		duty(13, "A", "2025-05-01", "07:00", "15:00", 1),
	}
	// Alice takes every duty, Bob none.
	fs := &fakeSolver{status: solver.StatusFeasible, pick: func(v int) int64 {
		if v < len(duties) {
			return 1
		}
		return 0
	}}
	sink := &captureSink{}
	p := New(fs, WithRecorder(sink), WithRunID("run-1"), WithParameters(solver.Parameters{TimeLimit: time.Second, Workers: 1}))
	require.NoError(t, p.AddEmployee(alice))
	require.NoError(t, p.AddEmployee(bob))
	for _, d := range duties {
		require.NoError(t, p.AddDuty(d))
	}
	require.NoError(t, p.Setup())
	res, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, StatusFeasible, res.Status)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, StateSolved, p.State())

	var ids []int
	for _, a := range res.Assignments {
		ids = append(ids, a.DutyID)
		assert.Equal(t, []model.AssignedEmployee{{EmployeeID: 1, EmployeeName: "Alice"}}, a.Employees)
	}
	assert.Equal(t, []int{13, 12, 11, 10}, ids)

	require.Len(t, sink.solves, 1)
	assert.Equal(t, "FEASIBLE", sink.solves[0].Status)
	assert.Equal(t, 8, sink.solves[0].Variables)
	assert.Equal(t, 4, sink.solves[0].Assignments)

	got, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestPlannerValidateRecordsViolations(t *testing.T) {
	// The fake puts everybody everywhere, which breaks coverage.
	fs := &fakeSolver{status: solver.StatusOptimal, pick: func(int) int64 { return 1 }}
	sink := &captureSink{}
	p := New(fs, WithRecorder(sink))
	require.NoError(t, p.AddEmployee(employee(1, "Alice", 3)))
	require.NoError(t, p.AddEmployee(employee(2, "Bob", 3)))
	require.NoError(t, p.AddDuty(duty(0, "D", "2025-05-01", "08:00", "16:00", 1)))
	require.NoError(t, p.Register(Spec(KindRequiredCoverage)))
	require.NoError(t, p.Register(Spec(KindOneDutyPerDay)))
	require.NoError(t, p.Setup())
	_, err := p.Solve()
	require.NoError(t, err)

	rep, err := p.Validate()
	require.NoError(t, err)
	assert.Equal(t, []string{"required_coverage"}, rep.Violations())
	require.Len(t, sink.validations, 2)
	assert.False(t, sink.validations[0].Valid)
	assert.True(t, sink.validations[1].Valid)
}

func TestPlannerSetupRejectsBadParams(t *testing.T) {
	p := New(&fakeSolver{})
	require.NoError(t, p.Register(Spec(KindRestTime, map[string]any{"hours": 3})))
	assert.ErrorIs(t, p.Setup(), ErrInvalidParams)
	assert.Equal(t, StateEmpty, p.State())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "INFEASIBLE", StatusInfeasible.String())
	text, err := StatusFeasible.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "FEASIBLE", string(text))
	assert.Equal(t, "modeled", StateModeled.String())
}
