package planning

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// WorkloadBalanceParams configures the workload_balance rule.
type WorkloadBalanceParams struct {
	// MaxDeviationPercent is the tolerance used when validating a roster.
	// Nil means 20.
	MaxDeviationPercent *float64 `json:"max_deviation_percent"`
	// Scale multiplies utilization percentages before integer division.
	Scale int64 `json:"scale"`
}

// SetDefaults applies a 20% tolerance and a scale of 1000.
func (p *WorkloadBalanceParams) SetDefaults() {
	if p.MaxDeviationPercent == nil {
		tolerance := 20.0
		p.MaxDeviationPercent = &tolerance
	}
	if p.Scale == 0 {
		p.Scale = 1000
	}
}

// Validate checks the tolerance and scale.
func (p *WorkloadBalanceParams) Validate() error {
	if p.MaxDeviationPercent != nil && *p.MaxDeviationPercent < 0 {
		return errors.New("max_deviation_percent must not be negative")
	}
	if p.Scale < 1 {
		return errors.New("scale must be positive")
	}
	return nil
}

// workloadBalance is the only soft rule. It minimises the largest distance
// between an employee's utilization and the average utilization, where
// utilization is the share of the employee's period cap actually worked.
// Employees with a zero period cap have no utilization and are left out.
type workloadBalance struct {
	ruleData
	params   WorkloadBalanceParams
	included []int
}

func newWorkloadBalance(employees []model.Employee, duties []model.Duty, params any) (Rule, error) {
	p, err := decodeParams[WorkloadBalanceParams](params)
	if err != nil {
		return nil, err
	}
	r := &workloadBalance{ruleData: newRuleData(employees, duties), params: p}
	for i, e := range employees {
		if e.MaxPeriodMinutes() > 0 {
			r.included = append(r.included, i)
		}
	}
	return r, nil
}

func (r *workloadBalance) Name() string { return string(KindWorkloadBalance) }

func (r *workloadBalance) Apply(m *solver.Model, x *Matrix) error {
	if err := r.bind(x); err != nil {
		return err
	}
	if len(r.included) == 0 {
		return nil
	}
	var allMinutes int64
	for _, d := range r.duties {
		allMinutes += int64(d.WorkingMinutes)
	}
	unit := 100 * r.params.Scale

	utils := make([]solver.Var, 0, len(r.included))
	var top int64
	for _, i := range r.included {
		e := r.employees[i]
		capMinutes := int64(e.MaxPeriodMinutes())
		vars := make([]solver.Var, len(r.duties))
		coefs := make([]int64, len(r.duties))
		for j, d := range r.duties {
			vars[j], coefs[j] = x.Var(i, j), int64(d.WorkingMinutes)*unit
		}
		worked := solver.WeightedSum(vars, coefs)
		hi := allMinutes * unit / capMinutes
		u := m.NewIntVar(0, hi, fmt.Sprintf("util_e%d", e.ID))
		m.AddDivisionEquality(u, worked, capMinutes)
		utils = append(utils, u)
		top = max(top, hi)
	}

	avg := m.NewIntVar(0, top, "util_avg")
	m.AddDivisionEquality(avg, solver.Sum(utils...), int64(len(utils)))
	dev := m.NewIntVar(0, top, "util_dev")
	for _, u := range utils {
		// dev >= u - avg and dev >= avg - u
		m.AddGreaterOrEqual(solver.Sum(dev, avg).Minus(solver.Sum(u)), 0)
		m.AddGreaterOrEqual(solver.Sum(dev, u).Minus(solver.Sum(avg)), 0)
	}

	obj, _ := m.Objective()
	m.Minimize(obj.Plus(solver.Sum(dev)))
	return nil
}

// Validate accepts the roster when every included employee's utilization is
// within MaxDeviationPercent of the average utilization, relative to that
// average. An average of zero is balanced.
func (r *workloadBalance) Validate(assignments []model.Assignment) (bool, error) {
	perEmp, err := r.byEmployee(assignments)
	if err != nil {
		return false, err
	}
	if len(r.included) == 0 {
		return true, nil
	}
	utils := make([]float64, len(r.included))
	var sum float64
	for k, i := range r.included {
		utils[k] = float64(totalMinutes(perEmp[i])) / float64(r.employees[i].MaxPeriodMinutes()) * 100
		sum += utils[k]
	}
	avg := sum / float64(len(utils))
	if avg == 0 {
		return true, nil
	}
	for _, u := range utils {
		if math.Abs(u-avg)/avg*100 > *r.params.MaxDeviationPercent {
			return false, nil
		}
	}
	return true, nil
}
