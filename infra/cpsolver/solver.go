package cpsolver

import (
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/rosterplan/core/logger"
	"github.com/kilianp07/rosterplan/core/solver"
)

// defaultNodeLimit bounds each neighbourhood dive.
const defaultNodeLimit = 2000

// Solver is a portfolio constraint solver for solver.Model.
//
// Worker 0 runs an exhaustive branch-and-bound with bounds propagation and is
// the only worker able to prove optimality or infeasibility. Additional
// workers run large neighbourhood search around the shared incumbent. An LP
// relaxation of the root node provides a lower bound: an incumbent reaching
// it is optimal without exhausting the tree.
type Solver struct {
	log       logger.Logger
	lpBound   bool
	nodeLimit int64
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for search statistics.
func WithLogger(l logger.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLPBound enables or disables the root LP relaxation.
func WithLPBound(enabled bool) Option {
	return func(s *Solver) { s.lpBound = enabled }
}

// WithNodeLimit sets the node budget of each neighbourhood dive.
func WithNodeLimit(n int64) Option {
	return func(s *Solver) {
		if n > 0 {
			s.nodeLimit = n
		}
	}
}

// New returns a Solver with the LP bound enabled.
func New(opts ...Option) *Solver {
	s := &Solver{log: logger.NopLogger{}, lpBound: true, nodeLimit: defaultNodeLimit}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Solve implements solver.Solver.
func (s *Solver) Solve(m *solver.Model, params solver.Parameters) (*solver.Solution, error) {
	start := time.Now()
	p, err := compile(m)
	if err != nil {
		if errors.Is(err, solver.ErrInvalidModel) {
			return &solver.Solution{Status: solver.StatusModelInvalid, WallTime: time.Since(start)}, err
		}
		return nil, err
	}
	workers := max(params.Workers, 1)

	inc := newIncumbent(0)
	if p.infeasible {
		return s.finish(inc, start, 0, p), nil
	}
	root := newEngine(p, inc, params.Seed, func() bool { return false })
	if !root.propagateAll() {
		inc.prove()
		return s.finish(inc, start, 0, p), nil
	}
	inc.bound.Store(trivialBound(p, root.lo, root.hi))

	stop := deadline(params.TimeLimit, inc)
	var g errgroup.Group
	if s.lpBound && relaxAffordable(p, params.TimeLimit) {
		lo := append([]int64(nil), root.lo...)
		hi := append([]int64(nil), root.hi...)
		solveLP := relaxSolve
		// The simplex cannot be interrupted. It runs beside the workers and
		// Solve waits for it, so its size is capped by relaxAffordable.
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.log.Warnf("lp relaxation aborted: %v", r)
				}
			}()
			if b, ok := relaxationBound(p, lo, hi, solveLP); ok {
				inc.raiseBound(b)
				s.log.Debugf("lp relaxation bound %d", b)
			}
			return nil
		})
	} else if s.lpBound && p.hasObjective() {
		rows, _ := relaxSize(p)
		s.log.Debugf("lp relaxation skipped: %d rows", rows)
	}

	engines := make([]*engine, workers)
	for w := 0; w < workers; w++ {
		e := newEngine(p, inc, params.Seed+int64(w), stop)
		engines[w] = e
		if w == 0 {
			g.Go(func() error {
				e.exhaustive()
				return nil
			})
			continue
		}
		g.Go(func() error {
			e.neighbourhood(s.nodeLimit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var nodes int64
	for _, e := range engines {
		nodes += e.nodes
	}
	return s.finish(inc, start, nodes, p), nil
}

func (s *Solver) finish(inc *incumbent, start time.Time, nodes int64, p *problem) *solver.Solution {
	sol := &solver.Solution{WallTime: time.Since(start), Nodes: nodes, Bound: inc.lowerBound()}
	values, obj, found := inc.snapshot()
	switch {
	case found && inc.done():
		sol.Status = solver.StatusOptimal
	case found:
		sol.Status = solver.StatusFeasible
	case inc.done() || p.infeasible:
		sol.Status = solver.StatusInfeasible
	default:
		sol.Status = solver.StatusUnknown
	}
	if found {
		sol.Values = values
		sol.Objective = obj
	}
	s.log.Debugw("search finished", map[string]any{
		"status":    sol.Status.String(),
		"objective": sol.Objective,
		"bound":     sol.Bound,
		"nodes":     nodes,
		"wall_ms":   sol.WallTime.Milliseconds(),
	})
	return sol
}
