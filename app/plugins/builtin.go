package plugins

import (
	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/core/logger"
	"github.com/kilianp07/rosterplan/core/solver"
	"github.com/kilianp07/rosterplan/infra/cpsolver"
)

func init() {
	RegisterSolver(config.DefaultBackend, func(cfg config.SolverConfig, log logger.Logger) (solver.Solver, error) {
		return cpsolver.New(
			cpsolver.WithLogger(log),
			cpsolver.WithLPBound(cfg.LPBoundEnabled()),
			cpsolver.WithNodeLimit(cfg.NodeLimit),
		), nil
	})
}
