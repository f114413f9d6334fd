package model

import "time"

// AssignedEmployee identifies an employee placed on a duty.
type AssignedEmployee struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// Assignment lists the employees placed on one duty. Only duties with at
// least one assignee appear in a solution.
type Assignment struct {
	DutyID    int                `json:"duty_id"`
	DutyCode  string             `json:"duty_code"`
	Date      Date               `json:"date"`
	Start     Clock              `json:"start_time"`
	End       Clock              `json:"end_time"`
	Employees []AssignedEmployee `json:"employees"`
}

// NewAssignment returns an empty assignment for the duty.
func NewAssignment(d Duty) Assignment {
	return Assignment{DutyID: d.ID, DutyCode: d.Code, Date: d.Date, Start: d.Start, End: d.End}
}

// Window returns the absolute start and end of the assigned duty.
func (a Assignment) Window() (time.Time, time.Time) {
	return Window(a.Date, a.Start, a.End)
}

// Minutes is the working time of the assigned duty.
func (a Assignment) Minutes() int { return Span(a.Start, a.End) }

// Has reports whether the employee is placed on this duty.
func (a Assignment) Has(employeeID int) bool {
	for _, e := range a.Employees {
		if e.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// AssignmentsFor returns the assignments that include the employee.
func AssignmentsFor(assignments []Assignment, employeeID int) []Assignment {
	var out []Assignment
	for _, a := range assignments {
		if a.Has(employeeID) {
			out = append(out, a)
		}
	}
	return out
}
