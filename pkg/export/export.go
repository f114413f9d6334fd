package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/rosterplan/core/model"
)

// CSVHeader lists the columns written by WriteCSV.
var CSVHeader = []string{"date", "duty_id", "duty_code", "start_time", "end_time", "employee_id", "employee_name"}

// WriteJSON writes the roster to w as an indented JSON array.
func WriteJSON(w io.Writer, assignments []model.Assignment) error {
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(assignments)
}

// WriteCSV writes one row per assigned employee.
func WriteCSV(w io.Writer, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range assignments {
		for _, e := range a.Employees {
			rec := []string{
				a.Date.String(),
				strconv.Itoa(a.DutyID),
				a.DutyCode,
				a.Start.String(),
				a.End.String(),
				strconv.Itoa(e.EmployeeID),
				e.EmployeeName,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on format ("json" or "csv").
func Write(w io.Writer, format string, assignments []model.Assignment) error {
	switch format {
	case "", "json":
		return WriteJSON(w, assignments)
	case "csv":
		return WriteCSV(w, assignments)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ReadJSON reads a roster written by WriteJSON. Objects carrying the roster
// under "assignments" or "result.assignments" are accepted as well.
func ReadJSON(r io.Reader) ([]model.Assignment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var out []model.Assignment
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var wrapped struct {
		Assignments []model.Assignment `json:"assignments"`
		Result      *struct {
			Assignments []model.Assignment `json:"assignments"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Result != nil {
		return wrapped.Result.Assignments, nil
	}
	return wrapped.Assignments, nil
}
