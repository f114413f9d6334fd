package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// oneDutyPerDay allows at most one duty per employee and date.
type oneDutyPerDay struct {
	ruleData
}

func newOneDutyPerDay(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	return &oneDutyPerDay{ruleData: newRuleData(employees, duties)}, nil
}

func (r *oneDutyPerDay) Name() string { return string(KindOneDutyPerDay) }

func (r *oneDutyPerDay) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	dates, groups := dutiesByDate(r.duties)
	for i := range r.employees {
		for _, day := range dates {
			if js := groups[day]; len(js) > 1 {
				m.AddLessOrEqual(solver.Sum(x.EmployeeVars(i, js)...), 1)
			}
		}
	}
	return nil
}

func (r *oneDutyPerDay) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for _, list := range perEmp {
		seen := make(map[model.Date]bool, len(list))
		for _, d := range list {
			if seen[d.Date] {
				return false, nil
			}
			seen[d.Date] = true
		}
	}
	return true, nil
}
