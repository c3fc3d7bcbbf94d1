package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/processors"
	"github.com/isomerpages/teambot/internal/ui"
	"github.com/isomerpages/teambot/internal/utils"
)

var removeCmd = &cobra.Command{
	Use:   "remove [users...]",
	Short: "Remove GitHub users from the organization",
	Long:  "Remove users from the organization on behalf of a maintainer of the given team",
	RunE:  runRemove,
}

func init() {
	addMembershipFlags(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgRed)).WithTextStyle(pterm.NewStyle(pterm.FgWhite)).Println("GitHub Organization Member Removal")
	pterm.Println()

	// Extract common flags
	commonFlags, err := utils.ExtractCommonFlags(cmd)
	if err != nil {
		return err
	}

	users, err := utils.CollectUsers(args, commonFlags.UserListPath)
	if err != nil {
		return err
	}

	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	team, err := selectTeam(cmd, client, cfg.Organization, commonFlags.Team)
	if err != nil {
		return err
	}

	inviter, err := ui.GetInviterInput(commonFlags.Inviter)
	if err != nil {
		return err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	if !yes {
		confirmed, err := ui.ConfirmRemoveOperation(cfg.Organization, team, users)
		if err != nil {
			return err
		}
		if !confirmed {
			ui.ShowOperationCancelled()
			return nil
		}
	}

	processor := &processors.RemoveProcessor{
		Directory:    client,
		Remover:      client,
		Organization: cfg.Organization,
		Team:         team,
		Actor:        inviter,
	}

	ui.ShowProcessingStart(len(users), team, cfg.Organization)
	successCount, skippedCount, errorCount := processors.NewSequentialProcessor(users, processor, ui.ConsoleReporter{}).Process(ctx)

	utils.PrintCompletionHeader("Member Removal", successCount, skippedCount, errorCount)

	// Build and display replication command
	configPath, _ := cmd.Flags().GetString("config")
	orgFlag, _ := cmd.Flags().GetString("org")
	replicationFlags := map[string]interface{}{
		"config":    configPath,
		"org":       orgFlag,
		"team":      team,
		"inviter":   inviter,
		"user-list": commonFlags.UserListPath,
		"yes":       true,
	}
	utils.ShowReplicationCommand(utils.BuildReplicationCommand("remove", replicationFlags, utils.ParseUsernames(strings.Join(args, " "))))

	return nil
}
