package planning

import (
	"fmt"

	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// Matrix holds one boolean decision variable per (employee, duty) pair. It is
// indexed by the position of the employee and the duty in the lists it was
// built from, not by their ids.
type Matrix struct {
	employees []model.Employee
	duties    []model.Duty
	vars      []solver.Var // employee-major
	empIndex  map[int]int
	dutyIndex map[int]int
}

// NewMatrix creates the |employees| x |duties| boolean variables on m.
func NewMatrix(m *solver.Model, employees []model.Employee, duties []model.Duty) *Matrix {
	x := &Matrix{
		employees: employees,
		duties:    duties,
		vars:      make([]solver.Var, len(employees)*len(duties)),
		empIndex:  make(map[int]int, len(employees)),
		dutyIndex: make(map[int]int, len(duties)),
	}
	for i, e := range employees {
		x.empIndex[e.ID] = i
		for j, d := range duties {
			x.vars[i*len(duties)+j] = m.NewBoolVar(fmt.Sprintf("x_e%d_d%d", e.ID, d.ID))
		}
	}
	for j, d := range duties {
		x.dutyIndex[d.ID] = j
	}
	return x
}

// Var returns the variable of employee index e and duty index d.
func (x *Matrix) Var(e, d int) solver.Var { return x.vars[e*len(x.duties)+d] }

// Lookup returns the variable for an (employee id, duty id) pair.
func (x *Matrix) Lookup(employeeID, dutyID int) (solver.Var, bool) {
	e, ok := x.empIndex[employeeID]
	if !ok {
		return 0, false
	}
	d, ok := x.dutyIndex[dutyID]
	if !ok {
		return 0, false
	}
	return x.Var(e, d), true
}

// Employees returns the employees in matrix order.
func (x *Matrix) Employees() []model.Employee { return x.employees }

// Duties returns the duties in matrix order.
func (x *Matrix) Duties() []model.Duty { return x.duties }

// Len is the number of decision variables.
func (x *Matrix) Len() int { return len(x.vars) }

// DutyVars returns the variables of every employee for duty index d.
func (x *Matrix) DutyVars(d int) []solver.Var {
	out := make([]solver.Var, len(x.employees))
	for e := range x.employees {
		out[e] = x.Var(e, d)
	}
	return out
}

// EmployeeVars returns the variables of employee index e for the given duty
// indices.
func (x *Matrix) EmployeeVars(e int, duties []int) []solver.Var {
	out := make([]solver.Var, len(duties))
	for i, d := range duties {
		out[i] = x.Var(e, d)
	}
	return out
}

// matches reports whether the matrix was built from exactly these lists.
func (x *Matrix) matches(employees []model.Employee, duties []model.Duty) bool {
	if len(employees) != len(x.employees) || len(duties) != len(x.duties) {
		return false
	}
	for i := range employees {
		if employees[i].ID != x.employees[i].ID {
			return false
		}
	}
	for j := range duties {
		if duties[j].ID != x.duties[j].ID {
			return false
		}
	}
	return true
}
