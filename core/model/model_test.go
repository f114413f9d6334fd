package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{"04:00", 240, true},
		{"7:30", 450, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:5", 0, false},
		{"noon", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if !c.ok {
			assert.ErrorIs(t, err, ErrInvalidClock, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestSpanOvernight(t *testing.T) {
	assert.Equal(t, 540, Span(MustClock("04:00"), MustClock("13:00")))
	assert.Equal(t, 540, Span(MustClock("22:00"), MustClock("07:00")))
	assert.Equal(t, 1439, Span(MustClock("00:00"), MustClock("23:59")))
}

func TestWindowOvernight(t *testing.T) {
	start, end := Window(MustDate("2025-05-01"), MustClock("22:00"), MustClock("07:00"))
	assert.Equal(t, time.Date(2025, 5, 1, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 5, 2, 7, 0, 0, 0, time.UTC), end)
}

func TestHorizonDays(t *testing.T) {
	h := Horizon{From: MustDate("2025-02-27"), To: MustDate("2025-03-02")}
	require.NoError(t, h.Validate())
	assert.Equal(t, []Date{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, h.Days())
	assert.True(t, h.Contains("2025-03-01"))
	assert.False(t, h.Contains("2025-03-03"))

	bad := Horizon{From: "2025-03-02", To: "2025-03-01"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidHorizon)
}

func TestExpandTemplates(t *testing.T) {
	h := Horizon{From: "2025-05-01", To: "2025-05-03"}
	templates := []DutyTemplate{
		{Code: "DIS", Start: MustClock("04:00"), End: MustClock("13:00"), RequiredEmployees: 2},
		{Code: "NGT", Start: MustClock("22:00"), End: MustClock("06:00"), RequiredEmployees: 1},
	}
	duties, err := ExpandTemplates(templates, h)
	require.NoError(t, err)
	require.Len(t, duties, 6)
	for i, d := range duties {
		assert.Equal(t, i, d.ID)
	}
	assert.Equal(t, Date("2025-05-02"), duties[2].Date)
	assert.Equal(t, "DIS", duties[2].Code)
	assert.Equal(t, 540, duties[0].WorkingMinutes)
	assert.Equal(t, 480, duties[1].WorkingMinutes)
	assert.True(t, duties[1].Overnight())
}

func TestExpandTemplatesRejectsZeroLength(t *testing.T) {
	h := Horizon{From: "2025-05-01", To: "2025-05-01"}
	_, err := ExpandTemplates([]DutyTemplate{{Code: "X", Start: 600, End: 600, RequiredEmployees: 1}}, h)
	assert.ErrorIs(t, err, ErrInvalidDuty)
}

func TestProblemValidate(t *testing.T) {
	base := func() Problem {
		return Problem{
			Horizon: Horizon{From: "2025-05-01", To: "2025-05-07"},
			Employees: []Employee{
				{ID: 1, Name: "Anna", MaxDaysInARow: 3, MaxHoursInPeriod: 40, BlockedDays: []Date{"2025-05-02"}},
				{ID: 2, Name: "Ben", MaxDaysInARow: 3, MaxHoursInPeriod: 40},
			},
			Duties: []Duty{NewDuty(0, "DIS", "2025-05-01", 240, 780, 1)},
		}
	}
	require.NoError(t, base().Validate())

	p := base()
	p.Employees[1].ID = 1
	assert.ErrorIs(t, p.Validate(), ErrDuplicateID)

	p = base()
	p.Duties = append(p.Duties, p.Duties[0])
	assert.ErrorIs(t, p.Validate(), ErrDuplicateID)

	p = base()
	p.Employees[0].BlockedDays = []Date{"2025-06-01"}
	assert.ErrorIs(t, p.Validate(), ErrOutOfHorizon)

	p = base()
	p.Duties[0].Date = "2025-04-30"
	assert.ErrorIs(t, p.Validate(), ErrOutOfHorizon)

	p = base()
	p.Employees[0].MaxDaysInARow = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidEmployee)
}

func TestAssignmentJSON(t *testing.T) {
	a := NewAssignment(NewDuty(3, "DIS", "2025-05-01", MustClock("04:00"), MustClock("13:00"), 2))
	a.Employees = []AssignedEmployee{{EmployeeID: 1, EmployeeName: "Anna"}}
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"duty_id":3,"duty_code":"DIS","date":"2025-05-01","start_time":"04:00","end_time":"13:00","employees":[{"employee_id":1,"employee_name":"Anna"}]}`, string(raw))

	var back Assignment
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, a, back)
	assert.True(t, back.Has(1))
	assert.False(t, back.Has(2))
	assert.Equal(t, 540, back.Minutes())
}
