package cpsolver

import (
	"math"
	"sync"
	"sync/atomic"
)

// incumbent is the best solution shared by all workers of one Solve call.
type incumbent struct {
	mu     sync.Mutex
	values []int64

	objective atomic.Int64 // math.MaxInt64 while no solution exists
	bound     atomic.Int64 // proven lower bound of the objective
	proven    atomic.Bool
}

func newIncumbent(lowerBound int64) *incumbent {
	inc := &incumbent{}
	inc.objective.Store(math.MaxInt64)
	inc.bound.Store(lowerBound)
	return inc
}

// offer records values when they improve on the current best.
func (s *incumbent) offer(values []int64, obj int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values != nil && obj >= s.objective.Load() {
		return false
	}
	s.values = values
	s.objective.Store(obj)
	if obj <= s.bound.Load() {
		s.proven.Store(true)
	}
	return true
}

func (s *incumbent) best() (int64, bool) {
	v := s.objective.Load()
	return v, v != math.MaxInt64
}

func (s *incumbent) snapshot() ([]int64, int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return nil, 0, false
	}
	return s.values, s.objective.Load(), true
}

// raiseBound lifts the proven lower bound; an incumbent at the bound is optimal.
func (s *incumbent) raiseBound(b int64) {
	for {
		cur := s.bound.Load()
		if b <= cur {
			return
		}
		if s.bound.CompareAndSwap(cur, b) {
			break
		}
	}
	if obj, ok := s.best(); ok && obj <= b {
		s.proven.Store(true)
	}
}

func (s *incumbent) lowerBound() int64 { return s.bound.Load() }

func (s *incumbent) prove() { s.proven.Store(true) }

func (s *incumbent) done() bool { return s.proven.Load() }
