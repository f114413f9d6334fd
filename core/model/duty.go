package model

import (
	"fmt"
	"time"
)

// Duty is a single dated, timed shift that needs a fixed number of employees.
type Duty struct {
	ID                int    `json:"id"`
	Code              string `json:"code"`
	Date              Date   `json:"date"`
	Start             Clock  `json:"start_time"`
	End               Clock  `json:"end_time"`
	RequiredEmployees int    `json:"required_employees"`
	WorkingMinutes    int    `json:"working_minutes"`
}

// NewDuty builds a duty and derives its working minutes from the time window.
func NewDuty(id int, code string, date Date, start, end Clock, required int) Duty {
	return Duty{
		ID:                id,
		Code:              code,
		Date:              date,
		Start:             start,
		End:               end,
		RequiredEmployees: required,
		WorkingMinutes:    Span(start, end),
	}
}

// Overnight reports whether the duty ends on the day after it starts.
func (d Duty) Overnight() bool { return d.End < d.Start }

// Window returns the absolute start and end of the duty.
func (d Duty) Window() (time.Time, time.Time) {
	return Window(d.Date, d.Start, d.End)
}

// Validate checks the duty's derived fields.
func (d Duty) Validate() error {
	if _, err := ParseDate(string(d.Date)); err != nil {
		return fmt.Errorf("%w %d: %w", ErrInvalidDuty, d.ID, err)
	}
	if d.RequiredEmployees < 1 {
		return fmt.Errorf("%w %d: required employees must be at least 1", ErrInvalidDuty, d.ID)
	}
	if d.WorkingMinutes <= 0 {
		return fmt.Errorf("%w %d: working minutes must be positive", ErrInvalidDuty, d.ID)
	}
	return nil
}

// DutyTemplate is an undated duty pattern repeated on every day of a horizon.
type DutyTemplate struct {
	Code              string `json:"code"`
	Start             Clock  `json:"start_time"`
	End               Clock  `json:"end_time"`
	RequiredEmployees int    `json:"required_employees"`
}

// ExpandTemplates instantiates every template on every date of the horizon.
// Duties are numbered sequentially from zero, date-major.
func ExpandTemplates(templates []DutyTemplate, h Horizon) ([]Duty, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	days := h.Days()
	duties := make([]Duty, 0, len(days)*len(templates))
	id := 0
	for _, day := range days {
		for _, t := range templates {
			d := NewDuty(id, t.Code, day, t.Start, t.End, t.RequiredEmployees)
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("template %s: %w", t.Code, err)
			}
			duties = append(duties, d)
			id++
		}
	}
	return duties, nil
}
