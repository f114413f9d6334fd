package cpsolver

import (
	"math/rand"
	"time"
)

type saved struct {
	v      int
	lo, hi int64
}

// engine is one worker's search state: current domains, the undo trail and
// the propagation queue. It is not safe for concurrent use.
type engine struct {
	p      *problem
	shared *incumbent
	lo, hi []int64
	trail  []saved

	queue   []int
	queued  []bool
	cutoff  int64 // rhs of the objective row
	order   []int
	prefer  []int64 // preferred first value per 0/1 variable
	rng     *rand.Rand
	nodes   int64
	limit   int64 // node budget of the current dive, 0 for none
	limited bool
	stop    func() bool
}

func newEngine(p *problem, shared *incumbent, seed int64, stop func() bool) *engine {
	e := &engine{
		p:      p,
		shared: shared,
		lo:     append([]int64(nil), p.lo...),
		hi:     append([]int64(nil), p.hi...),
		queued: make([]bool, len(p.rows)),
		cutoff: noCutoff,
		order:  branchOrder(p),
		prefer: make([]int64, p.n),
		rng:    rand.New(rand.NewSource(seed)),
		stop:   stop,
	}
	for i := range e.prefer {
		e.prefer[i] = 1
	}
	return e
}

// branchOrder puts 0/1 variables first, in model order, then integers.
func branchOrder(p *problem) []int {
	order := make([]int, 0, p.n)
	for v := 0; v < p.n; v++ {
		if p.bools[v] {
			order = append(order, v)
		}
	}
	for v := 0; v < p.n; v++ {
		if !p.bools[v] {
			order = append(order, v)
		}
	}
	return order
}

func (e *engine) fixed(v int) bool { return e.lo[v] == e.hi[v] }

func (e *engine) setLo(v int, val int64) bool {
	if val <= e.lo[v] {
		return true
	}
	if val > e.hi[v] {
		return false
	}
	e.trail = append(e.trail, saved{v: v, lo: e.lo[v], hi: e.hi[v]})
	e.lo[v] = val
	e.touch(v)
	return true
}

func (e *engine) setHi(v int, val int64) bool {
	if val >= e.hi[v] {
		return true
	}
	if val < e.lo[v] {
		return false
	}
	e.trail = append(e.trail, saved{v: v, lo: e.lo[v], hi: e.hi[v]})
	e.hi[v] = val
	e.touch(v)
	return true
}

func (e *engine) touch(v int) {
	for _, r := range e.p.watch[v] {
		e.enqueue(r)
	}
}

func (e *engine) enqueue(r int) {
	if !e.queued[r] {
		e.queued[r] = true
		e.queue = append(e.queue, r)
	}
}

func (e *engine) undo(mark int) {
	for i := len(e.trail) - 1; i >= mark; i-- {
		s := e.trail[i]
		e.lo[s.v], e.hi[s.v] = s.lo, s.hi
	}
	e.trail = e.trail[:mark]
}

func (e *engine) clearQueue() {
	for _, r := range e.queue {
		e.queued[r] = false
	}
	e.queue = e.queue[:0]
}

// propagate runs bounds propagation to a fixpoint. It returns false on a
// conflict.
func (e *engine) propagate() bool {
	for len(e.queue) > 0 {
		r := e.queue[len(e.queue)-1]
		e.queue = e.queue[:len(e.queue)-1]
		e.queued[r] = false
		if !e.propagateRow(r) {
			e.clearQueue()
			return false
		}
	}
	return true
}

func (e *engine) propagateRow(ri int) bool {
	r := &e.p.rows[ri]
	rhs := r.rhs
	if ri == e.p.objRow {
		rhs = e.cutoff
	}
	act := minActivity(r.terms, e.lo, e.hi)
	if act > rhs {
		return false
	}
	slack := rhs - act
	for _, t := range r.terms {
		if t.a > 0 {
			if maxX := e.lo[t.v] + slack/t.a; maxX < e.hi[t.v] {
				if !e.setHi(t.v, maxX) {
					return false
				}
			}
		} else {
			if minX := e.hi[t.v] - slack/(-t.a); minX > e.lo[t.v] {
				if !e.setLo(t.v, minX) {
					return false
				}
			}
		}
	}
	return true
}

// propagateAll enqueues every row; used at the root of a dive.
func (e *engine) propagateAll() bool {
	for r := range e.p.rows {
		e.enqueue(r)
	}
	return e.propagate()
}

// syncCutoff tightens the objective row to beat the shared incumbent and
// re-checks it against the current domains. It returns false on a conflict.
func (e *engine) syncCutoff() bool {
	if !e.p.hasObjective() {
		return true
	}
	if best, ok := e.shared.best(); ok {
		if want := best - 1 - e.p.objConst; want < e.cutoff {
			e.cutoff = want
		}
	}
	if e.cutoff == noCutoff {
		return true
	}
	e.enqueue(e.p.objRow)
	return e.propagate()
}

// pick returns the next unfixed variable or -1 when all are fixed.
func (e *engine) pick() int {
	for _, v := range e.order {
		if !e.fixed(v) {
			return v
		}
	}
	return -1
}

// dfs explores the subtree below the current domains. It returns false when
// the search must unwind (global stop or exhausted node budget).
func (e *engine) dfs() bool {
	e.nodes++
	if e.nodes&63 == 0 && e.stop() {
		return false
	}
	if e.limit > 0 && e.nodes > e.limit {
		e.limited = true
		return false
	}
	if !e.syncCutoff() {
		return true
	}
	v := e.pick()
	if v < 0 {
		return e.leaf()
	}

	mark := len(e.trail)
	if e.p.bools[v] {
		first := e.prefer[v]
		for _, val := range [2]int64{first, 1 - first} {
			if e.setLo(v, val) && e.setHi(v, val) && e.propagate() {
				if !e.dfs() {
					e.undo(mark)
					return false
				}
			} else {
				e.clearQueue()
			}
			e.undo(mark)
		}
		return true
	}

	// Integers: try the smallest value, then everything above it.
	low := e.lo[v]
	if e.setHi(v, low) && e.propagate() {
		if !e.dfs() {
			e.undo(mark)
			return false
		}
	} else {
		e.clearQueue()
	}
	e.undo(mark)
	if e.setLo(v, low+1) && e.propagate() {
		if !e.dfs() {
			e.undo(mark)
			return false
		}
	} else {
		e.clearQueue()
	}
	e.undo(mark)
	return true
}

// leaf records a complete assignment. Without objective the first solution
// ends the whole search.
func (e *engine) leaf() bool {
	values := append([]int64(nil), e.lo...)
	obj := int64(0)
	if e.p.hasObjective() {
		obj = e.p.objective(values)
	}
	e.shared.offer(values, obj)
	if !e.p.hasObjective() {
		e.shared.prove()
		return false
	}
	if obj <= e.shared.lowerBound() {
		e.shared.prove()
		return false
	}
	return true
}

// exhaustive runs the complete branch-and-bound from the root.
func (e *engine) exhaustive() {
	if !e.propagateAll() || e.dfs() {
		e.shared.prove()
	}
}

// neighbourhood runs large neighbourhood search around the incumbent until
// stop reports true.
func (e *engine) neighbourhood(nodeLimit int64) {
	if !e.propagateAll() {
		return
	}
	root := len(e.trail)
	free := 0.3
	for !e.stop() {
		values, _, ok := e.shared.snapshot()
		e.nodes = 0
		e.limit = nodeLimit
		e.limited = false
		e.shuffle()
		consistent := true
		if ok {
			for _, v := range e.order {
				if !e.p.bools[v] {
					continue
				}
				e.prefer[v] = values[v]
				if e.rng.Float64() >= free {
					if !e.setLo(v, values[v]) || !e.setHi(v, values[v]) {
						consistent = false
						break
					}
				}
			}
			consistent = consistent && e.propagate()
		}
		if consistent {
			e.dfs()
		} else {
			e.clearQueue()
		}
		e.undo(root)

		// Grow the neighbourhood when it was searched exhaustively, shrink
		// it when the budget ran out.
		if e.limited {
			free *= 0.9
		} else {
			free *= 1.1
		}
		free = min(max(free, 0.05), 0.9)
		if _, _, found := e.shared.snapshot(); !ok && !found && !e.limited && !e.stop() {
			// The whole tree was explored without a solution; the exhaustive
			// worker reports infeasibility.
			return
		}
	}
}

func (e *engine) shuffle() {
	bools := e.order[:0:0]
	ints := e.order[:0:0]
	for _, v := range e.order {
		if e.p.bools[v] {
			bools = append(bools, v)
		} else {
			ints = append(ints, v)
		}
	}
	e.rng.Shuffle(len(bools), func(i, j int) { bools[i], bools[j] = bools[j], bools[i] })
	e.order = append(bools, ints...)
}

// deadline returns a stop function honouring the time limit and the shared
// completion flag.
func deadline(limit time.Duration, shared *incumbent) func() bool {
	if limit <= 0 {
		return shared.done
	}
	end := time.Now().Add(limit)
	return func() bool { return shared.done() || time.Now().After(end) }
}
