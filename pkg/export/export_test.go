package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterplan/core/model"
)

func roster() []model.Assignment {
	night := model.NewAssignment(model.NewDuty(3, "NIGHT", "2025-05-01", model.MustClock("22:00"), model.MustClock("06:00"), 2))
	night.Employees = []model.AssignedEmployee{{EmployeeID: 1, EmployeeName: "Ana"}, {EmployeeID: 2, EmployeeName: "Ben, Jr."}}
	early := model.NewAssignment(model.NewDuty(4, "EARLY", "2025-05-02", model.MustClock("04:00"), model.MustClock("13:00"), 1))
	early.Employees = []model.AssignedEmployee{{EmployeeID: 1, EmployeeName: "Ana"}}
	return []model.Assignment{night, early}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, roster()))
	want := strings.Join([]string{
		"date,duty_id,duty_code,start_time,end_time,employee_id,employee_name",
		"2025-05-01,3,NIGHT,22:00,06:00,1,Ana",
		`2025-05-01,3,NIGHT,22:00,06:00,2,"Ben, Jr."`,
		"2025-05-02,4,EARLY,04:00,13:00,1,Ana",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, roster()))
	assert.Contains(t, buf.String(), `"start_time": "22:00"`)

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(roster(), got); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestReadJSONWrapped(t *testing.T) {
	doc := `{"result": {"status": "OPTIMAL", "assignments": [
  {"duty_id": 4, "duty_code": "EARLY", "date": "2025-05-02", "start_time": "04:00", "end_time": "13:00",
   "employees": [{"employee_id": 1, "employee_name": "Ana"}]}]}}`
	got, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, roster()[1:], got)

	got, err = ReadJSON(strings.NewReader(`{"assignments": []}`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadJSON(strings.NewReader(`[{"start_time": "7pm"}]`))
	assert.ErrorIs(t, err, model.ErrInvalidClock)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
	assert.Error(t, Write(&buf, "xml", nil))
}
