package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterplan/config"
	"github.com/kilianp07/rosterplan/pkg/export"
)

// ErrNoRoster is returned when the solver found no feasible roster.
var ErrNoRoster = errors.New("no feasible roster")

var (
	problemPath string
	outFormat   string
	outPath     string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute a roster for a planning file",
	RunE:  solve,
}

func init() {
	solveCmd.Flags().StringVarP(&problemPath, "problem", "p", "", "planning file (json or yaml)")
	solveCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json or csv")
	solveCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	_ = solveCmd.MarkFlagRequired("problem")
	rootCmd.AddCommand(solveCmd)
}

func solve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if outFormat != "json" && outFormat != "csv" {
		return fmt.Errorf("unsupported format %q", outFormat)
	}
	problem, err := config.LoadProblem(problemPath)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	svc.ServeMetrics(ctx)

	out, err := svc.Plan(problem)
	if err != nil {
		return err
	}
	if !out.Result.Status.HasRoster() {
		return fmt.Errorf("%s: %w", problem.Name, ErrNoRoster)
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := export.Write(w, outFormat, out.Result.Assignments); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s, %d duties staffed, objective %d\n",
		problem.Name, out.Result.Status, len(out.Result.Assignments), out.Result.Objective)
	return nil
}
