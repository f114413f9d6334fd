package cpsolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/rosterplan/core/solver"
)

// noCutoff is the objective row bound before any incumbent exists. It leaves
// room for the activity sums computed during propagation.
const noCutoff = math.MaxInt64 / 4

type term struct {
	v int
	a int64
}

// row is Σ a*x <= rhs.
type row struct {
	terms []term
	rhs   int64
}

// problem is the compiled, read-only form of a solver.Model shared by all
// workers of one Solve call.
type problem struct {
	n      int
	lo, hi []int64
	bools  []bool
	rows   []row
	watch  [][]int
	// objRow indexes the objective cutoff row, -1 without objective.
	objRow   int
	obj      []term
	objConst int64
	// trivially infeasible constant constraint
	infeasible bool
}

func compile(m *solver.Model) (*problem, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	doms := m.Domains()
	p := &problem{
		n:      len(doms),
		lo:     make([]int64, len(doms)),
		hi:     make([]int64, len(doms)),
		bools:  make([]bool, len(doms)),
		watch:  make([][]int, len(doms)),
		objRow: -1,
	}
	for i, d := range doms {
		p.lo[i], p.hi[i] = d.Lo, d.Hi
		p.bools[i] = d.Lo == 0 && d.Hi == 1
	}

	for _, c := range m.Constraints() {
		terms, k := normalize(c.Expr)
		rhs := c.RHS - k
		switch c.Op {
		case solver.LessOrEqual:
			p.addRow(terms, rhs)
		case solver.GreaterOrEqual:
			p.addRow(negate(terms), -rhs)
		case solver.Equal:
			p.addRow(terms, rhs)
			p.addRow(negate(terms), -rhs)
		}
	}

	for _, d := range m.Divisions() {
		num, k := normalize(d.Numerator)
		if minActivity(num, p.lo, p.hi)+k < 0 {
			return nil, fmt.Errorf("%w: division numerator may be negative", solver.ErrInvalidModel)
		}
		// d*q <= num  and  num <= d*q + d - 1
		q := term{v: int(d.Target), a: d.Denominator}
		p.addRow(append(negate(num), q), k)
		p.addRow(append(cloneTerms(num), term{v: q.v, a: -q.a}), d.Denominator-1-k)
	}

	if obj, ok := m.Objective(); ok {
		p.obj, p.objConst = normalize(obj)
		p.objRow = len(p.rows)
		p.rows = append(p.rows, row{terms: p.obj, rhs: noCutoff})
		for _, t := range p.obj {
			p.watch[t.v] = append(p.watch[t.v], p.objRow)
		}
	}
	return p, nil
}

func (p *problem) addRow(terms []term, rhs int64) {
	if len(terms) == 0 {
		if rhs < 0 {
			p.infeasible = true
		}
		return
	}
	idx := len(p.rows)
	p.rows = append(p.rows, row{terms: terms, rhs: rhs})
	for _, t := range terms {
		p.watch[t.v] = append(p.watch[t.v], idx)
	}
}

// hasObjective reports whether the model minimises something.
func (p *problem) hasObjective() bool { return p.objRow >= 0 }

// objective evaluates the objective for fixed values.
func (p *problem) objective(values []int64) int64 {
	s := p.objConst
	for _, t := range p.obj {
		s += t.a * values[t.v]
	}
	return s
}

// normalize merges duplicate variables and drops zero coefficients.
func normalize(e solver.LinearExpr) ([]term, int64) {
	acc := make(map[int]int64, len(e.Terms))
	for _, t := range e.Terms {
		acc[int(t.Var)] += t.Coef
	}
	terms := make([]term, 0, len(acc))
	for v, a := range acc {
		if a != 0 {
			terms = append(terms, term{v: v, a: a})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].v < terms[j].v })
	return terms, e.Constant
}

func negate(terms []term) []term {
	out := make([]term, len(terms))
	for i, t := range terms {
		out[i] = term{v: t.v, a: -t.a}
	}
	return out
}

func cloneTerms(terms []term) []term {
	out := make([]term, len(terms), len(terms)+1)
	copy(out, terms)
	return out
}

func minActivity(terms []term, lo, hi []int64) int64 {
	var s int64
	for _, t := range terms {
		if t.a > 0 {
			s += t.a * lo[t.v]
		} else {
			s += t.a * hi[t.v]
		}
	}
	return s
}
