package planning

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// RestTimeParams configures the rest_time rule.
type RestTimeParams struct {
	// MinRestHours is the required gap. Nil means 8 hours; an explicit 0
	// still rejects overlapping and back-to-back duties.
	MinRestHours *float64 `json:"min_rest_hours"`
}

// SetDefaults applies the 8 hour minimum when unset.
func (p *RestTimeParams) SetDefaults() {
	if p.MinRestHours == nil {
		hours := 8.0
		p.MinRestHours = &hours
	}
}

// Validate rejects negative rest.
func (p *RestTimeParams) Validate() error {
	if p.MinRestHours != nil && *p.MinRestHours < 0 {
		return errors.New("min_rest_hours must not be negative")
	}
	return nil
}

type interval struct {
	start, end time.Time
}

// rest is the gap between two windows, negative when they overlap.
func rest(a, b interval) time.Duration {
	if b.start.Before(a.start) {
		a, b = b, a
	}
	return b.start.Sub(a.end)
}

// restTime forbids any two duties of one employee separated by less than the
// minimum rest. Overlapping duties and back-to-back duties count as too close.
type restTime struct {
	ruleData
	minRest time.Duration
	windows []interval
}

func newRestTime(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	p, err := decodeParams[RestTimeParams](params)
	if err != nil {
		return nil, err
	}
	r := &restTime{
		ruleData: newRuleData(employees, duties),
		minRest:  time.Duration(math.Round(*p.MinRestHours*60)) * time.Minute,
		windows:  make([]interval, len(duties)),
	}
	for j, d := range duties {
		s, e := d.Window()
		r.windows[j] = interval{start: s, end: e}
	}
	return r, nil
}

func (r *restTime) Name() string { return string(KindRestTime) }

func (r *restTime) tooClose(a, b interval) bool {
	gap := rest(a, b)
	return gap <= 0 || gap < r.minRest
}

// conflicts lists every pair of duty indices that one employee cannot both
// work.
func (r *restTime) conflicts() [][2]int {
	order := make([]int, len(r.duties))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return r.windows[order[a]].start.Before(r.windows[order[b]].start)
	})
	var pairs [][2]int
	for a, j1 := range order {
		for _, j2 := range order[a+1:] {
			// Later starts only widen the gap to j1.
			if !r.tooClose(r.windows[j1], r.windows[j2]) {
				break
			}
			pairs = append(pairs, [2]int{j1, j2})
		}
	}
	return pairs
}

func (r *restTime) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	pairs := r.conflicts()
	for i := range r.employees {
		for _, p := range pairs {
			m.AddLessOrEqual(solver.Sum(x.Var(i, p[0]), x.Var(i, p[1])), 1)
		}
	}
	return nil
}

// Validate checks consecutive duties of each employee, ordered by start. The
// gap to any later duty is at least the gap to the next one.
func (r *restTime) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for _, list := range perEmp {
		ws := make([]interval, len(list))
		for k, d := range list {
			s, e := d.Window()
			ws[k] = interval{start: s, end: e}
		}
		sort.Slice(ws, func(a, b int) bool { return ws[a].start.Before(ws[b].start) })
		for k := 1; k < len(ws); k++ {
			if r.tooClose(ws[k-1], ws[k]) {
				return false, nil
			}
		}
	}
	return true, nil
}
