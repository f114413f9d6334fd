package solver

import "time"

// Status is the terminal state reported by a solver backend.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// HasSolution reports whether values are available.
func (s Status) HasSolution() bool { return s == StatusOptimal || s == StatusFeasible }

// Parameters tune a single Solve call.
type Parameters struct {
	// TimeLimit bounds the search. Zero means no limit.
	TimeLimit time.Duration
	// Workers is the number of parallel search workers (at least 1).
	Workers int
	// Seed makes randomised search reproducible.
	Seed int64
}

// DefaultParameters mirrors the settings used for production runs.
func DefaultParameters() Parameters {
	return Parameters{TimeLimit: 30 * time.Second, Workers: 8, Seed: 42}
}

// Solution is the outcome of a Solve call.
type Solution struct {
	Status    Status
	Objective int64
	// Bound is the best proven lower bound on the objective.
	Bound    int64
	Values   []int64
	WallTime time.Duration
	Nodes    int64
}

// Value returns the value assigned to v. It panics when the status carries
// no solution.
func (s *Solution) Value(v Var) int64 {
	if !s.Status.HasSolution() {
		panic("solver: no solution available")
	}
	return s.Values[v]
}

// BoolValue returns whether the 0/1 variable v is set.
func (s *Solution) BoolValue(v Var) bool { return s.Value(v) == 1 }

// Solver solves a Model. Implementations treat the model as read-only and
// block until a terminal status is reached or the time limit expires.
type Solver interface {
	Solve(m *Model, p Parameters) (*Solution, error)
}
