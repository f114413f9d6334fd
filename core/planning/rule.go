package planning

import (
	"fmt"
	"sort"

	"github.com/kilianp07/rosterplan/core/factory"
	"github.com/kilianp07/rosterplan/core/model"
	"github.com/kilianp07/rosterplan/core/solver"
)

// Rule is one labour rule. Apply encodes it on a solver model; Validate
// checks a concrete roster against the same semantics without any solver.
// A rule is bound to the employee and duty lists it was built with.
type Rule interface {
	Name() string
	Apply(m *solver.Model, x *Matrix) error
	Validate(assignments []model.Assignment) (bool, error)
}

// Kind names a rule.
type Kind string

const (
	KindRequiredCoverage   Kind = "required_coverage"
	KindBlockedDays        Kind = "blocked_days"
	KindOneDutyPerDay      Kind = "one_duty_per_day"
	KindRestTime           Kind = "rest_time"
	KindMaxConsecutiveDays Kind = "max_consecutive_days"
	KindMaxHoursInPeriod   Kind = "max_hours_in_period"
	KindMaxHoursPerDay     Kind = "max_hours_per_day"
	KindWorkloadBalance    Kind = "workload_balance"
)

// RuleSpec selects a rule and its parameters. Params is nil, the rule's typed
// parameter struct (or a pointer to it), or a raw map read from configuration.
type RuleSpec struct {
	Kind   Kind
	Params any
}

// Spec is a shorthand for RuleSpec{Kind: k, Params: params}.
func Spec(k Kind, params ...any) RuleSpec {
	s := RuleSpec{Kind: k}
	if len(params) > 0 {
		s.Params = params[0]
	}
	return s
}

type ruleBuilder func(employees []model.Employee, duties []model.Duty, params any) (Rule, error)

var ruleBuilders = map[Kind]ruleBuilder{
	KindRequiredCoverage:   newRequiredCoverage,
	KindBlockedDays:        newBlockedDays,
	KindOneDutyPerDay:      newOneDutyPerDay,
	KindRestTime:           newRestTime,
	KindMaxConsecutiveDays: newMaxConsecutiveDays,
	KindMaxHoursInPeriod:   newMaxHoursInPeriod,
	KindMaxHoursPerDay:     newMaxHoursPerDay,
	KindWorkloadBalance:    newWorkloadBalance,
}

// Kinds lists every known rule kind in lexical order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(ruleBuilders))
	for k := range ruleBuilders {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultRules is the full rule set: every hard rule followed by workload
// balancing.
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{Kind: KindRequiredCoverage},
		{Kind: KindBlockedDays},
		{Kind: KindOneDutyPerDay},
		{Kind: KindRestTime},
		{Kind: KindMaxConsecutiveDays},
		{Kind: KindMaxHoursInPeriod},
		{Kind: KindMaxHoursPerDay},
		{Kind: KindWorkloadBalance},
	}
}

// NewRule builds the rule described by spec over the given data.
func NewRule(spec RuleSpec, employees []model.Employee, duties []model.Duty) (Rule, error) {
	b, ok := ruleBuilders[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, spec.Kind)
	}
	r, err := b(employees, duties, spec.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Kind, err)
	}
	return r, nil
}

// paramsWithDefaults is implemented by typed rule parameters.
type paramsWithDefaults[T any] interface {
	*T
	SetDefaults()
	Validate() error
}

// decodeParams resolves raw params into T. Raw maps are decoded over the
// defaults; typed values get their zero fields defaulted.
func decodeParams[T any, PT paramsWithDefaults[T]](params any) (T, error) {
	var out T
	switch p := params.(type) {
	case nil:
	case T:
		out = p
	case *T:
		if p != nil {
			out = *p
		}
	case map[string]any:
		PT(&out).SetDefaults()
		if err := factory.Decode(p, &out); err != nil {
			return out, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
	default:
		return out, fmt.Errorf("%w: unexpected %T", ErrInvalidParams, params)
	}
	PT(&out).SetDefaults()
	if err := PT(&out).Validate(); err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return out, nil
}

// noParams accepts rules that take no settings.
type noParams struct{}

func (*noParams) SetDefaults()    {}
func (*noParams) Validate() error { return nil }

// ruleData is the data every rule is bound to plus the id lookups used when
// validating rosters.
type ruleData struct {
	employees []model.Employee
	duties    []model.Duty
	empIndex  map[int]int
	dutyIndex map[int]int
	applied   bool
}

func newRuleData(employees []model.Employee, duties []model.Duty) ruleData {
	r := ruleData{
		employees: employees,
		duties:    duties,
		empIndex:  make(map[int]int, len(employees)),
		dutyIndex: make(map[int]int, len(duties)),
	}
	for i, e := range employees {
		r.empIndex[e.ID] = i
	}
	for j, d := range duties {
		r.dutyIndex[d.ID] = j
	}
	return r
}

// bind marks the rule applied to x.
func (r *ruleData) bind(x *Matrix) error {
	if r.applied {
		return ErrRuleApplied
	}
	if !x.matches(r.employees, r.duties) {
		return ErrMatrixMismatch
	}
	r.applied = true
	return nil
}

// byEmployee groups the bound duties each employee works, in roster order.
// Records are resolved by duty id, so the date and times they carry are not
// trusted. Every referenced duty and employee must be known.
func (r *ruleData) byEmployee(assignments []model.Assignment) ([][]model.Duty, error) {
	out := make([][]model.Duty, len(r.employees))
	for _, a := range assignments {
		j, ok := r.dutyIndex[a.DutyID]
		if !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownDuty, a.DutyID)
		}
		for _, ae := range a.Employees {
			i, ok := r.empIndex[ae.EmployeeID]
			if !ok {
				return nil, fmt.Errorf("%w %d on duty %d", ErrUnknownEmployee, ae.EmployeeID, a.DutyID)
			}
			out[i] = append(out[i], r.duties[j])
		}
	}
	return out, nil
}

// dutiesByDate groups duty indices per date, dates in order.
func dutiesByDate(duties []model.Duty) ([]model.Date, map[model.Date][]int) {
	groups := make(map[model.Date][]int)
	for j, d := range duties {
		groups[d.Date] = append(groups[d.Date], j)
	}
	dates := make([]model.Date, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates, groups
}
