package model

import (
	"fmt"
	"slices"
)

// Employee is a person who can be assigned to duties. Employees are treated
// as immutable once a planning run starts.
type Employee struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	MaxDaysInARow    int    `json:"max_days_in_a_row"`
	BlockedDays      []Date `json:"off_days"`
	MaxHoursPerDay   int    `json:"max_hours_per_day"`
	MaxHoursInPeriod int    `json:"max_hours_in_period"`
	WorkPercentage   int    `json:"work_percentage"` // informational, 0-100
}

// Validate checks the employee's limits are sound.
func (e Employee) Validate() error {
	if e.MaxDaysInARow < 1 {
		return fmt.Errorf("%w %d: max days in a row must be at least 1", ErrInvalidEmployee, e.ID)
	}
	if e.MaxHoursPerDay < 0 || e.MaxHoursInPeriod < 0 {
		return fmt.Errorf("%w %d: hour limits must not be negative", ErrInvalidEmployee, e.ID)
	}
	if e.WorkPercentage < 0 || e.WorkPercentage > 100 {
		return fmt.Errorf("%w %d: work percentage %d outside 0-100", ErrInvalidEmployee, e.ID, e.WorkPercentage)
	}
	for _, d := range e.BlockedDays {
		if _, err := ParseDate(string(d)); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidEmployee, e.ID, err)
		}
	}
	return nil
}

// IsBlocked reports whether the employee cannot work on d.
func (e Employee) IsBlocked(d Date) bool {
	return slices.Contains(e.BlockedDays, d)
}

// MaxPeriodMinutes is the period cap in minutes.
func (e Employee) MaxPeriodMinutes() int { return e.MaxHoursInPeriod * 60 }

// MaxDayMinutes is the daily cap in minutes. Zero means no cap.
func (e Employee) MaxDayMinutes() int { return e.MaxHoursPerDay * 60 }
