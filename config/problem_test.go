package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterplan/core/model"
)

const problemJSON = `{
  "name": "station",
  "description": "two weeks of early shifts",
  "start_date": "2025-05-01",
  "end_date": "2025-05-03",
  "employees": [
    {"id": 1, "name": "Ana", "max_days_in_a_row": 3, "off_days": ["2025-05-02"],
     "max_hours_per_day": 10, "max_hours_in_period": 80, "work_percentage": 100},
    {"id": 2, "name": "Ben", "max_days_in_a_row": 3, "off_days": [],
     "max_hours_per_day": 10, "max_hours_in_period": 80, "work_percentage": 50}
  ],
  "duties": [
    {"code": "EARLY", "start_time": "04:00", "end_time": "13:00", "required_employees": 1},
    {"code": "NIGHT", "start_time": "22:00", "end_time": "6:00", "required_employees": 1}
  ]
}`

func TestLoadProblemJSON(t *testing.T) {
	p, err := LoadProblem(writeFile(t, "problem.json", problemJSON))
	require.NoError(t, err)

	assert.Equal(t, "station", p.Name)
	assert.Equal(t, model.Horizon{From: "2025-05-01", To: "2025-05-03"}, p.Horizon)
	require.Len(t, p.Employees, 2)
	assert.Equal(t, []model.Date{"2025-05-02"}, p.Employees[0].BlockedDays)
	assert.Equal(t, 50, p.Employees[1].WorkPercentage)

	require.Len(t, p.Duties, 6)
	assert.Equal(t, 0, p.Duties[0].ID)
	assert.Equal(t, "EARLY", p.Duties[0].Code)
	assert.Equal(t, 540, p.Duties[0].WorkingMinutes)
	night := p.Duties[5]
	assert.Equal(t, 5, night.ID)
	assert.Equal(t, model.Date("2025-05-03"), night.Date)
	assert.Equal(t, model.MustClock("06:00"), night.End)
	assert.Equal(t, 480, night.WorkingMinutes)
}

func TestLoadProblemYAML(t *testing.T) {
	path := writeFile(t, "problem.yml", `name: "depot"
start_date: "2025-05-01"
end_date: "2025-05-01"
employees:
  - id: 7
    name: "Cleo"
    max_days_in_a_row: 5
    max_hours_per_day: 8
    max_hours_in_period: 40
    work_percentage: 80
duties:
  - code: "LATE"
    start_time: "14:00"
    end_time: "22:00"
    required_employees: 1
`)
	p, err := LoadProblem(path)
	require.NoError(t, err)
	require.Len(t, p.Duties, 1)
	assert.Equal(t, 7, p.Employees[0].ID)
	assert.Empty(t, p.Employees[0].BlockedDays)
	assert.Equal(t, model.MustClock("14:00"), p.Duties[0].Start)
}

func TestProblemFileRejectsInvalidInput(t *testing.T) {
	valid := func() ProblemFile {
		return ProblemFile{
			Name:      "x",
			StartDate: "2025-05-01",
			EndDate:   "2025-05-02",
			Employees: []model.Employee{{ID: 1, Name: "A", MaxDaysInARow: 2, MaxHoursPerDay: 8, MaxHoursInPeriod: 40, WorkPercentage: 100}},
			Duties:    []model.DutyTemplate{{Code: "D", Start: model.MustClock("08:00"), End: model.MustClock("16:00"), RequiredEmployees: 1}},
		}
	}
	_, err := valid().Problem()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*ProblemFile)
		target error
	}{
		{"no name", func(p *ProblemFile) { p.Name = "" }, ErrInvalidProblem},
		{"no start", func(p *ProblemFile) { p.StartDate = "" }, ErrInvalidProblem},
		{"no employees", func(p *ProblemFile) { p.Employees = nil }, ErrInvalidProblem},
		{"empty duties", func(p *ProblemFile) { p.Duties = []model.DutyTemplate{} }, ErrInvalidProblem},
		{"reversed horizon", func(p *ProblemFile) { p.EndDate = "2025-04-30" }, model.ErrInvalidHorizon},
		{"off day outside horizon", func(p *ProblemFile) { p.Employees[0].BlockedDays = []model.Date{"2025-06-01"} }, model.ErrOutOfHorizon},
		{"duplicate employee", func(p *ProblemFile) { p.Employees = append(p.Employees, p.Employees[0]) }, model.ErrDuplicateID},
		{"zero required", func(p *ProblemFile) { p.Duties[0].RequiredEmployees = 0 }, model.ErrInvalidDuty},
		{"days in a row", func(p *ProblemFile) { p.Employees[0].MaxDaysInARow = 0 }, model.ErrInvalidEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := valid()
			tt.mutate(&pf)
			_, err := pf.Problem()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadProblemRejectsBadClock(t *testing.T) {
	path := writeFile(t, "problem.json", `{"name": "x", "start_date": "2025-05-01", "end_date": "2025-05-01",
  "employees": [{"id": 1, "name": "A", "max_days_in_a_row": 1}],
  "duties": [{"code": "D", "start_time": "25:00", "end_time": "06:00", "required_employees": 1}]}`)
	_, err := LoadProblem(path)
	assert.Error(t, err)
}
