package model

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidClock    = errors.New("invalid time of day")
	ErrInvalidHorizon  = errors.New("invalid horizon")
	ErrInvalidEmployee = errors.New("invalid employee")
	ErrInvalidDuty     = errors.New("invalid duty")
	// ErrDuplicateID indicates two employees or two duties share an id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrOutOfHorizon indicates a duty or blocked day outside the planning horizon.
	ErrOutOfHorizon = errors.New("date outside horizon")
)
