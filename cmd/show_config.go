package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/ui"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the resolved configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runShowConfig,
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ui.DisplayConfiguration(cfg)
	pterm.Println()

	if err := cfg.ValidateServe(); err != nil {
		pterm.Warning.Printf("Configuration is not ready to serve: %v\n", err)
		return nil
	}
	pterm.Success.Println("Configuration is ready to serve.")
	return nil
}
