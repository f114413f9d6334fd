package planning

import (
	"fmt"

	"github.com/kilianp07/rosterplan/core/solver"
)

// Status is the outcome of a planning run.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText renders the status tag.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// HasRoster reports whether the run produced assignments.
func (s Status) HasRoster() bool { return s == StatusOptimal || s == StatusFeasible }

// translateStatus maps the solver's status. A search that ended without a
// solution is reported as infeasible; a rejected model is an error.
func translateStatus(st solver.Status) (Status, error) {
	switch st {
	case solver.StatusOptimal:
		return StatusOptimal, nil
	case solver.StatusFeasible:
		return StatusFeasible, nil
	case solver.StatusInfeasible, solver.StatusUnknown:
		return StatusInfeasible, nil
	default:
		return StatusInfeasible, fmt.Errorf("%w: solver reported %s", solver.ErrInvalidModel, st)
	}
}

// State is the lifecycle stage of a Planner.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateModeled
	StateSolved
	StateInfeasible
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateModeled:
		return "modeled"
	case StateSolved:
		return "solved"
	case StateInfeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) terminal() bool { return s == StateSolved || s == StateInfeasible }
