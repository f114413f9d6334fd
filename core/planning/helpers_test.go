package planning

import (
	"github.com/kilianp07/rosterplan/core/model"
)

func employee(id int, name string, maxDays int) model.Employee {
	return model.Employee{
		ID:               id,
		Name:             name,
		MaxDaysInARow:    maxDays,
		MaxHoursPerDay:   12,
		MaxHoursInPeriod: 40,
		WorkPercentage:   100,
	}
}

func duty(id int, code, date, start, end string, required int) model.Duty {
	return model.NewDuty(id, code, model.MustDate(date), model.MustClock(start), model.MustClock(end), required)
}

// assign builds an assignment for d staffed by the given employees.
func assign(d model.Duty, emps ...model.Employee) model.Assignment {
	a := model.NewAssignment(d)
	for _, e := range emps {
		a.Employees = append(a.Employees, model.AssignedEmployee{EmployeeID: e.ID, EmployeeName: e.Name})
	}
	return a
}

// dailyDuties creates one duty per day starting at from.
func dailyDuties(from string, days int, code, start, end string, required int) []model.Duty {
	first := model.MustDate(from)
	out := make([]model.Duty, days)
	for i := range out {
		out[i] = model.NewDuty(i, code, first.AddDays(i), model.MustClock(start), model.MustClock(end), required)
	}
	return out
}

func mustRule(k Kind, employees []model.Employee, duties []model.Duty, params ...any) Rule {
	r, err := NewRule(Spec(k, params...), employees, duties)
	if err != nil {
		panic(err)
	}
	return r
}

// hardKinds are the rules a solved roster must always satisfy.
var hardKinds = []Kind{
	KindRequiredCoverage,
	KindBlockedDays,
	KindOneDutyPerDay,
	KindRestTime,
	KindMaxConsecutiveDays,
	KindMaxHoursInPeriod,
	KindMaxHoursPerDay,
}

func hardSpecs() []RuleSpec {
	out := make([]RuleSpec, len(hardKinds))
	for i, k := range hardKinds {
		out[i] = Spec(k)
	}
	return out
}

func ref[T any](v T) *T { return &v }
