package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// maxConsecutiveDays limits how many of the duty dates an employee works in
// a row. Windows run over the sorted distinct duty dates, so a date without
// any duty does not break a streak.
//
// Apply bounds the number of duties in each window while Validate counts
// worked dates. Without one_duty_per_day the model is therefore stricter than
// the check: two duties on one date use up two days of the allowance.
type maxConsecutiveDays struct {
	ruleData
	dates  []model.Date
	groups map[model.Date][]int
}

func newMaxConsecutiveDays(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	r := &maxConsecutiveDays{ruleData: newRuleData(employees, duties)}
	r.dates, r.groups = dutiesByDate(duties)
	return r, nil
}

func (r *maxConsecutiveDays) Name() string { return string(KindMaxConsecutiveDays) }

func (r *maxConsecutiveDays) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	for i, e := range r.employees {
		k := e.MaxDaysInARow
		for start := 0; start+k < len(r.dates); start++ {
			var js []int
			for _, day := range r.dates[start : start+k+1] {
				js = append(js, r.groups[day]...)
			}
			m.AddLessOrEqual(solver.Sum(x.EmployeeVars(i, js)...), int64(k))
		}
	}
	return nil
}

func (r *maxConsecutiveDays) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for i, list := range perEmp {
		worked := make(map[model.Date]bool, len(list))
		for _, d := range list {
			worked[d.Date] = true
		}
		k := r.employees[i].MaxDaysInARow
		for start := 0; start+k < len(r.dates); start++ {
			n := 0
			for _, day := range r.dates[start : start+k+1] {
				if worked[day] {
					n++
				}
			}
			if n > k {
				return false, nil
			}
		}
	}
	return true, nil
}
