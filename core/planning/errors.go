package planning

import "errors"

var (
	// ErrDuplicateEmployee is returned when an employee id is added twice.
	ErrDuplicateEmployee = errors.New("duplicate employee id")
	// ErrDuplicateDuty is returned when a duty id is added twice.
	ErrDuplicateDuty = errors.New("duplicate duty id")
	// ErrFrozen is returned when data or rules are added after Setup.
	ErrFrozen = errors.New("planner is frozen")
	// ErrNotModeled is returned when Solve runs before Setup.
	ErrNotModeled = errors.New("planner has no model, call Setup first")
	// ErrAlreadySolved is returned by a second Solve on the same planner.
	ErrAlreadySolved = errors.New("planner already solved")
	// ErrNotSolved is returned when a solved roster is requested too early.
	ErrNotSolved = errors.New("planner has not solved")
	// ErrUnknownDuty flags an assignment for a duty the rules do not know.
	ErrUnknownDuty = errors.New("unknown duty id")
	// ErrUnknownEmployee flags an assignment for an unknown employee.
	ErrUnknownEmployee = errors.New("unknown employee id")
	// ErrUnknownRule is returned for a rule kind without builder.
	ErrUnknownRule = errors.New("unknown rule kind")
	// ErrInvalidParams is returned for malformed rule parameters.
	ErrInvalidParams = errors.New("invalid rule parameters")
	// ErrRuleApplied is returned when a rule is applied to a second model.
	ErrRuleApplied = errors.New("rule already applied")
	// ErrMatrixMismatch is returned when a rule is applied to a matrix built
	// from other employees or duties.
	ErrMatrixMismatch = errors.New("matrix does not match rule data")
)
