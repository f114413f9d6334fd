package cpsolver

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// maxRelaxCells caps the dense LP size; larger models skip the relaxation.
const maxRelaxCells = 250_000

// relaxTimeShare is the largest fraction of the time limit the relaxation is
// expected to take before it is skipped.
const relaxTimeShare = 4

// relaxSolve points to the LP routine. Tests override it to simulate solver
// failures.
var relaxSolve lpFunc = simplex

func simplex(c []float64, a *mat.Dense, b []float64) (float64, error) {
	opt, _, err := lp.Simplex(c, a, b, 1e-7, nil)
	return opt, err
}

type lpFunc func(c []float64, a *mat.Dense, b []float64) (float64, error)

// relaxationBound solves the LP relaxation of the compiled problem over the
// given domains with solve and returns a lower bound of the integer objective.
//
// Every variable is shifted to y = x - lo >= 0. Each row gets its own slack
// and each variable an upper-bound row, which keeps the standard-form matrix
// at full row rank:
//
//	Σ a*y + s = rhs - Σ a*lo
//	y + t     = hi - lo
func relaxationBound(p *problem, lo, hi []int64, solve lpFunc) (int64, bool) {
	if !p.hasObjective() || p.n == 0 {
		return 0, false
	}
	var cons []row
	for i, r := range p.rows {
		if i != p.objRow {
			cons = append(cons, r)
		}
	}
	nRows, nCols := relaxSize(p)
	if nRows*nCols > maxRelaxCells {
		return 0, false
	}

	a := mat.NewDense(nRows, nCols, nil)
	b := make([]float64, nRows)
	for i, r := range cons {
		rhs := r.rhs - minShift(r.terms, lo)
		for _, t := range r.terms {
			a.Set(i, t.v, float64(t.a))
		}
		a.Set(i, p.n+i, 1)
		b[i] = float64(rhs)
	}
	for v := 0; v < p.n; v++ {
		i := len(cons) + v
		a.Set(i, v, 1)
		a.Set(i, p.n+len(cons)+v, 1)
		b[i] = float64(hi[v] - lo[v])
	}
	for i := range b {
		if b[i] < 0 {
			b[i] = -b[i]
			for j := 0; j < nCols; j++ {
				a.Set(i, j, -a.At(i, j))
			}
		}
	}

	c := make([]float64, nCols)
	offset := float64(p.objConst)
	for _, t := range p.obj {
		c[t.v] = float64(t.a)
		offset += float64(t.a * lo[t.v])
	}

	opt, err := solve(c, a, b)
	if err != nil {
		return 0, false
	}
	return int64(math.Ceil(opt + offset - 1e-6)), true
}

// relaxSize is the standard-form shape of the relaxation.
func relaxSize(p *problem) (rows, cols int) {
	cons := len(p.rows)
	if p.hasObjective() {
		cons--
	}
	return cons + p.n, p.n + cons + p.n
}

// relaxEstimate approximates the simplex run time. Every pivot refactorises
// the basis and the pivot count grows with the rows, at roughly one basis
// operation per nanosecond.
func relaxEstimate(rows int) time.Duration {
	r := float64(rows)
	return time.Duration(math.Min(r*r*r*r, 1e18))
}

// relaxAffordable reports whether the relaxation fits the size cap and, with
// a time limit, is expected to finish within a share of it.
func relaxAffordable(p *problem, limit time.Duration) bool {
	if !p.hasObjective() || p.n == 0 {
		return false
	}
	rows, cols := relaxSize(p)
	if rows*cols > maxRelaxCells {
		return false
	}
	return limit <= 0 || relaxEstimate(rows) <= limit/relaxTimeShare
}

func minShift(terms []term, lo []int64) int64 {
	var s int64
	for _, t := range terms {
		s += t.a * lo[t.v]
	}
	return s
}

// trivialBound is the objective minimum over the domains alone.
func trivialBound(p *problem, lo, hi []int64) int64 {
	if !p.hasObjective() {
		return 0
	}
	return minActivity(p.obj, lo, hi) + p.objConst
}
