package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterplan/app"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules applied with the current configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, spec := range app.RuleSpecs(cfg.Rules) {
			if spec.Params != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", spec.Kind, spec.Params)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), spec.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
