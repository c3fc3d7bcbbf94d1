package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/api"
	"github.com/isomerpages/teambot/internal/config"
	"github.com/isomerpages/teambot/internal/types"
	"github.com/isomerpages/teambot/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "teambot",
	Short: "Slack bot for managing GitHub organization team membership",
	Long:  "A Slack bot that lets team maintainers invite and remove GitHub organization members and export commit logs, with matching terminal commands",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add persistent flags that are common to all commands
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringP("org", "o", "", "GitHub organization (overrides GITHUB_ORGANIZATION)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inviteCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(commitLogCmd)
	rootCmd.AddCommand(showConfigCmd)
}

// Execute runs the root command until it returns or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration and applies the --org override
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	org, err := cmd.Flags().GetString("org")
	if err != nil {
		return nil, err
	}
	if org != "" {
		cfg.Organization = org
	}

	return cfg, nil
}

// loadClient resolves and validates the configuration and builds the GitHub client
func loadClient(cmd *cobra.Command) (*types.Config, *api.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := utils.ValidateOrganization(cfg.Organization); err != nil {
		return nil, nil, err
	}

	client, err := api.NewClient(&cfg.GitHub)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

// addMembershipFlags registers the flags shared by invite and remove
func addMembershipFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("team", "t", "", "Team the inviter maintains (prompted when omitted)")
	cmd.Flags().StringP("inviter", "i", "", "GitHub login of the team maintainer making the change (prompted when omitted)")
	cmd.Flags().StringP("user-list", "l", "", "Path to CSV file containing GitHub usernames (one per line, no header)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
