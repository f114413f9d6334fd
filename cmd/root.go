package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterplan/app"
	"github.com/kilianp07/rosterplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "rosterplan",
	Short:         "Employee duty roster planner",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (json or yaml)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads --config or falls back to the defaults.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newService() (*app.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
