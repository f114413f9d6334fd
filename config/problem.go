package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/rosterplan/core/model"
)

// ErrInvalidProblem is returned when a planning file misses mandatory fields.
var ErrInvalidProblem = errors.New("invalid problem")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProblemFile is the on-disk description of a planning run. Duties are
// templates repeated on every day between StartDate and EndDate.
type ProblemFile struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	StartDate   model.Date           `json:"start_date" validate:"required"`
	EndDate     model.Date           `json:"end_date" validate:"required"`
	Employees   []model.Employee     `json:"employees" validate:"required,min=1"`
	Duties      []model.DutyTemplate `json:"duties" validate:"required,min=1"`
}

// LoadProblem reads a planning file (json or yaml) and expands its duty
// templates over the horizon.
func LoadProblem(path string) (*model.Problem, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	var pf ProblemFile
	if err := k.UnmarshalWithConf("", &pf, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return pf.Problem()
}

// Problem validates the file and builds the planning problem.
func (pf ProblemFile) Problem() (*model.Problem, error) {
	if err := validate.Struct(pf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}
	h := model.Horizon{From: pf.StartDate, To: pf.EndDate}
	duties, err := model.ExpandTemplates(pf.Duties, h)
	if err != nil {
		return nil, err
	}
	p := &model.Problem{
		Name:        pf.Name,
		Description: pf.Description,
		Horizon:     h,
		Employees:   pf.Employees,
		Duties:      duties,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
