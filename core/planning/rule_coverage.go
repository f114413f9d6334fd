package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// requiredCoverage staffs every duty with exactly its required count.
type requiredCoverage struct {
	ruleData
}

func newRequiredCoverage(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	if _, err := decodeParams[noParams](params); err != nil {
		return nil, err
	}
	return &requiredCoverage{ruleData: newRuleData(employees, duties)}, nil
}

func (r *requiredCoverage) Name() string { return string(KindRequiredCoverage) }

func (r *requiredCoverage) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	for j, d := range r.duties {
		m.AddEqual(solver.Sum(x.DutyVars(j)...), int64(d.RequiredEmployees))
	}
	return nil
}

func (r *requiredCoverage) Validate(assignments []model.Assignment) (bool, error) {
	if _, err := r.byEmployee(assignments); err != nil {
		return false, err
	}
	staffed := make([]map[int]struct{}, len(r.duties))
	for _, a := range assignments {
		j := r.dutyIndex[a.DutyID]
		if staffed[j] == nil {
			staffed[j] = make(map[int]struct{})
		}
		for _, e := range a.Employees {
			staffed[j][e.EmployeeID] = struct{}{}
		}
	}
	for j, d := range r.duties {
		if len(staffed[j]) != d.RequiredEmployees {
			return false, nil
		}
	}
	return true, nil
}
