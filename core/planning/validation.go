package planning

import (
	"fmt"

	"github.com/kilianp07/rosterplan/core/model"
)

// RuleResult is the verdict of one rule.
type RuleResult struct {
	Rule  string `json:"rule"`
	Valid bool   `json:"valid"`
}

// Report lists rule verdicts in rule order.
type Report struct {
	Results []RuleResult `json:"results"`
}

// Valid reports whether every rule accepted the roster.
func (r Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Map indexes verdicts by rule identity.
func (r Report) Map() map[string]bool {
	out := make(map[string]bool, len(r.Results))
	for _, res := range r.Results {
		out[res.Rule] = res.Valid
	}
	return out
}

// Violations lists the rules that rejected the roster.
func (r Report) Violations() []string {
	var out []string
	for _, res := range r.Results {
		if !res.Valid {
			out = append(out, res.Rule)
		}
	}
	return out
}

// Validator checks rosters against a rule set without any solver.
type Validator struct {
	rules []Rule
	names []string
}

// NewValidator builds the rules described by specs over the given data. With
// no specs the default rule set is used.
func NewValidator(employees []model.Employee, duties []model.Duty, specs ...RuleSpec) (*Validator, error) {
	if len(specs) == 0 {
		specs = DefaultRules()
	}
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		r, err := NewRule(s, employees, duties)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return newValidator(rules), nil
}

func newValidator(rules []Rule) *Validator {
	v := &Validator{rules: rules, names: make([]string, len(rules))}
	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		name := r.Name()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		v.names[i] = name
	}
	return v
}

// Rules returns the rule identities in order.
func (v *Validator) Rules() []string { return append([]string(nil), v.names...) }

// Validate runs every rule over the roster. An error means the roster does
// not belong to the validator's data.
func (v *Validator) Validate(assignments []model.Assignment) (Report, error) {
	rep := Report{Results: make([]RuleResult, len(v.rules))}
	for i, r := range v.rules {
		ok, err := r.Validate(assignments)
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", v.names[i], err)
		}
		rep.Results[i] = RuleResult{Rule: v.names[i], Valid: ok}
	}
	return rep, nil
}
