package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

func TestMatrixLayout(t *testing.T) {
	emps := []model.Employee{employee(7, "Alice", 3), employee(3, "Bob", 3)}
	duties := dailyDuties("2025-05-01", 3, "D", "08:00", "16:00", 1)
	m := solver.NewModel()
	x := NewMatrix(m, emps, duties)

	assert.Equal(t, 6, x.Len())
	assert.Equal(t, 6, m.NumVars())
	assert.Equal(t, "x_e3_d2", m.Domains()[x.Var(1, 2)].Name)

	v, ok := x.Lookup(3, 1)
	require.True(t, ok)
	assert.Equal(t, x.Var(1, 1), v)
	_, ok = x.Lookup(4, 1)
	assert.False(t, ok)
	_, ok = x.Lookup(7, 9)
	assert.False(t, ok)

	assert.Equal(t, []solver.Var{x.Var(0, 2), x.Var(1, 2)}, x.DutyVars(2))
	assert.Equal(t, []solver.Var{x.Var(1, 0), x.Var(1, 2)}, x.EmployeeVars(1, []int{0, 2}))

	assert.True(t, x.matches(emps, duties))
	assert.False(t, x.matches(emps[:1], duties))
	swapped := []model.Employee{emps[1], emps[0]}
	assert.False(t, x.matches(swapped, duties))
}
