package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// blockedDays keeps employees off duties dated on their blocked days.
type blockedDays struct {
	ruleData
}

func newBlockedDays(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	return &blockedDays{ruleData: newRuleData(employees, duties)}, nil
}

func (r *blockedDays) Name() string { return string(KindBlockedDays) }

func (r *blockedDays) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	for i, e := range r.employees {
		if len(e.BlockedDays) == 0 {
			continue
		}
		for j, d := range r.duties {
			if e.IsBlocked(d.Date) {
				m.AddEqual(solver.Sum(x.Var(i, j)), 0)
			}
		}
	}
	return nil
}

func (r *blockedDays) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for i, list := range perEmp {
		for _, d := range list {
			if r.employees[i].IsBlocked(d.Date) {
				return false, nil
			}
		}
	}
	return true, nil
}
