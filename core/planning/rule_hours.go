package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// maxHoursInPeriod caps an employee's working minutes over the horizon.
type maxHoursInPeriod struct {
	ruleData
}

func newMaxHoursInPeriod(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	return &maxHoursInPeriod{ruleData: newRuleData(employees, duties)}, nil
}

func (r *maxHoursInPeriod) Name() string { return string(KindMaxHoursInPeriod) }

func (r *maxHoursInPeriod) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	for i, e := range r.employees {
		vars := make([]solver.Var, len(r.duties))
		mins := make([]int64, len(r.duties))
		for j, d := range r.duties {
			vars[j], mins[j] = x.Var(i, j), int64(d.WorkingMinutes)
		}
		m.AddLessOrEqual(solver.WeightedSum(vars, mins), int64(e.MaxPeriodMinutes()))
	}
	return nil
}

func (r *maxHoursInPeriod) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for i, list := range perEmp {
		if totalMinutes(list) > r.employees[i].MaxPeriodMinutes() {
			return false, nil
		}
	}
	return true, nil
}

// maxHoursPerDay caps an employee's working minutes per duty date. Employees
// without a daily cap are skipped.
type maxHoursPerDay struct {
	ruleData
}

func newMaxHoursPerDay(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	return &maxHoursPerDay{ruleData: newRuleData(employees, duties)}, nil
}

func (r *maxHoursPerDay) Name() string { return string(KindMaxHoursPerDay) }

func (r *maxHoursPerDay) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	dates, groups := dutiesByDate(r.duties)
	for i, e := range r.employees {
		limit := e.MaxDayMinutes()
		if limit == 0 {
			continue
		}
		for _, day := range dates {
			js := groups[day]
			mins := make([]int64, len(js))
			for k, j := range js {
				mins[k] = int64(r.duties[j].WorkingMinutes)
			}
			m.AddLessOrEqual(solver.WeightedSum(x.EmployeeVars(i, js), mins), int64(limit))
		}
	}
	return nil
}

func (r *maxHoursPerDay) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	for i, list := range perEmp {
		limit := r.employees[i].MaxDayMinutes()
		if limit == 0 {
			continue
		}
		perDay := make(map[model.Date]int)
		for _, d := range list {
			perDay[d.Date] += d.WorkingMinutes
		}
		for _, mins := range perDay {
			if mins > limit {
				return false, nil
			}
		}
	}
	return true, nil
}

func totalMinutes(list []model.Duty) int {
	n := 0
	for _, d := range list {
		n += d.WorkingMinutes
	}
	return n
}
