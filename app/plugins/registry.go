package plugins

import (
	"fmt"
	"sort"

	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/core/logger"
	"github.com/kilianp07/rosterplan/core/solver"
)

// SolverFactory builds a solver backend from its configuration section.
type SolverFactory func(cfg config.SolverConfig, log logger.Logger) (solver.Solver, error)

var Solvers = map[string]SolverFactory{}

func RegisterSolver(name string, f SolverFactory) { Solvers[name] = f }

// NewSolver builds the backend named by cfg.Backend.
func NewSolver(cfg config.SolverConfig, log logger.Logger) (solver.Solver, error) {
	f, ok := Solvers[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown solver backend %q (available: %v)", cfg.Backend, SolverNames())
	}
	return f(cfg, log)
}

// SolverNames lists registered backends in order.
func SolverNames() []string {
	names := make([]string, 0, len(Solvers))
	for n := range Solvers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
