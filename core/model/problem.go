package model

import "fmt"

// Problem bundles the inputs of one planning run.
type Problem struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Horizon     Horizon    `json:"horizon"`
	Employees   []Employee `json:"employees"`
	Duties      []Duty     `json:"duties"`
}

// Validate checks the structural invariants of the run: unique ids, every
// date inside the horizon and well formed employees and duties.
func (p Problem) Validate() error {
	if err := p.Horizon.Validate(); err != nil {
		return err
	}
	seenEmp := make(map[int]struct{}, len(p.Employees))
	for _, e := range p.Employees {
		if _, ok := seenEmp[e.ID]; ok {
			return fmt.Errorf("%w: employee %d", ErrDuplicateID, e.ID)
		}
		seenEmp[e.ID] = struct{}{}
		if err := e.Validate(); err != nil {
			return err
		}
		for _, d := range e.BlockedDays {
			if !p.Horizon.Contains(d) {
				return fmt.Errorf("%w: employee %d blocked day %s", ErrOutOfHorizon, e.ID, d)
			}
		}
	}
	seenDuty := make(map[int]struct{}, len(p.Duties))
	for _, d := range p.Duties {
		if _, ok := seenDuty[d.ID]; ok {
			return fmt.Errorf("%w: duty %d", ErrDuplicateID, d.ID)
		}
		seenDuty[d.ID] = struct{}{}
		if err := d.Validate(); err != nil {
			return err
		}
		if !p.Horizon.Contains(d.Date) {
			return fmt.Errorf("%w: duty %d on %s", ErrOutOfHorizon, d.ID, d.Date)
		}
	}
	return nil
}
