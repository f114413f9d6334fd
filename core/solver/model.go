package solver

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is returned when a model references unknown variables or
// declares an empty domain.
var ErrInvalidModel = errors.New("invalid model")

// Var identifies a decision variable inside one Model.
type Var int

// Domain is the inclusive integer range of a variable.
type Domain struct {
	Lo, Hi int64
	Name   string
}

// Op is the relation of a linear constraint.
type Op int

const (
	LessOrEqual Op = iota
	Equal
	GreaterOrEqual
)

func (o Op) String() string {
	switch o {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Linear is the constraint Expr Op RHS.
type Linear struct {
	Expr LinearExpr
	Op   Op
	RHS  int64
}

// Division is the constraint Target == Numerator / Denominator with integer
// (truncating) division and a positive constant denominator.
type Division struct {
	Target      Var
	Numerator   LinearExpr
	Denominator int64
}

// Model is a solver-agnostic integer model. It only records variables,
// constraints and the objective; solving is left to a Solver.
type Model struct {
	vars      []Domain
	linear    []Linear
	divisions []Division
	objective *LinearExpr
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NewBoolVar creates a 0/1 variable.
func (m *Model) NewBoolVar(name string) Var {
	return m.NewIntVar(0, 1, name)
}

// NewIntVar creates an integer variable bounded by [lo, hi].
func (m *Model) NewIntVar(lo, hi int64, name string) Var {
	m.vars = append(m.vars, Domain{Lo: lo, Hi: hi, Name: name})
	return Var(len(m.vars) - 1)
}

// AddLinear adds expr op rhs.
func (m *Model) AddLinear(expr LinearExpr, op Op, rhs int64) {
	m.linear = append(m.linear, Linear{Expr: expr, Op: op, RHS: rhs})
}

// AddLessOrEqual adds expr <= rhs.
func (m *Model) AddLessOrEqual(expr LinearExpr, rhs int64) { m.AddLinear(expr, LessOrEqual, rhs) }

// AddEqual adds expr == rhs.
func (m *Model) AddEqual(expr LinearExpr, rhs int64) { m.AddLinear(expr, Equal, rhs) }

// AddGreaterOrEqual adds expr >= rhs.
func (m *Model) AddGreaterOrEqual(expr LinearExpr, rhs int64) {
	m.AddLinear(expr, GreaterOrEqual, rhs)
}

// AddDivisionEquality adds target == numerator / denominator.
func (m *Model) AddDivisionEquality(target Var, numerator LinearExpr, denominator int64) {
	m.divisions = append(m.divisions, Division{Target: target, Numerator: numerator, Denominator: denominator})
}

// Minimize sets the objective. A later call replaces the previous objective.
func (m *Model) Minimize(expr LinearExpr) {
	e := expr
	m.objective = &e
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of linear and division constraints.
func (m *Model) NumConstraints() int { return len(m.linear) + len(m.divisions) }

// Domains returns the variable domains indexed by Var.
func (m *Model) Domains() []Domain { return m.vars }

// Constraints returns the linear constraints.
func (m *Model) Constraints() []Linear { return m.linear }

// Divisions returns the division constraints.
func (m *Model) Divisions() []Division { return m.divisions }

// Objective returns the objective and whether one is set.
func (m *Model) Objective() (LinearExpr, bool) {
	if m.objective == nil {
		return LinearExpr{}, false
	}
	return *m.objective, true
}

// Validate checks every reference and domain.
func (m *Model) Validate() error {
	for i, d := range m.vars {
		if d.Lo > d.Hi {
			return fmt.Errorf("%w: variable %d (%s) has empty domain [%d, %d]", ErrInvalidModel, i, d.Name, d.Lo, d.Hi)
		}
	}
	check := func(e LinearExpr) error {
		for _, t := range e.Terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
				return fmt.Errorf("%w: unknown variable %d", ErrInvalidModel, t.Var)
			}
		}
		return nil
	}
	for _, c := range m.linear {
		if err := check(c.Expr); err != nil {
			return err
		}
	}
	for _, d := range m.divisions {
		if d.Denominator <= 0 {
			return fmt.Errorf("%w: division by %d", ErrInvalidModel, d.Denominator)
		}
		if int(d.Target) < 0 || int(d.Target) >= len(m.vars) {
			return fmt.Errorf("%w: unknown variable %d", ErrInvalidModel, d.Target)
		}
		if err := check(d.Numerator); err != nil {
			return err
		}
	}
	if m.objective != nil {
		if err := check(*m.objective); err != nil {
			return err
		}
	}
	return nil
}
