package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/pkg/export"
)

// ErrViolations is returned when a checked roster breaks at least one rule.
var ErrViolations = errors.New("roster violates rules")

var assignmentsPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an existing roster against the configured rules",
	RunE:  validate,
}

func init() {
	validateCmd.Flags().StringVarP(&problemPath, "problem", "p", "", "planning file (json or yaml)")
	validateCmd.Flags().StringVarP(&assignmentsPath, "assignments", "a", "", "roster in JSON")
	_ = validateCmd.MarkFlagRequired("problem")
	_ = validateCmd.MarkFlagRequired("assignments")
	rootCmd.AddCommand(validateCmd)
}

func validate(cmd *cobra.Command, _ []string) error {
	problem, err := config.LoadProblem(problemPath)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	f, err := os.Open(assignmentsPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	roster, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	rep, err := svc.Check(problem, roster)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}
	if !rep.Valid() {
		return fmt.Errorf("%w: %s", ErrViolations, strings.Join(rep.Violations(), ", "))
	}
	return nil
}
