package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/api"
	"github.com/isomerpages/teambot/internal/ui"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams of the organization",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	teams, err := fetchTeams(cmd, client, cfg.Organization)
	if err != nil {
		return err
	}

	ui.ShowTeams(cfg.Organization, teams)
	return nil
}

func fetchTeams(cmd *cobra.Command, client *api.Client, org string) ([]string, error) {
	spinner, _ := pterm.DefaultSpinner.Start("Fetching teams of " + org + "...")
	teams, err := client.ListTeams(cmd.Context(), org)
	if err != nil {
		spinner.Fail("Failed to fetch teams")
		return nil, err
	}
	spinner.Success("Found ", len(teams), " team(s)")
	return teams, nil
}

// selectTeam returns the team flag, or prompts with the organization's teams
// when it is empty
func selectTeam(cmd *cobra.Command, client *api.Client, org, teamFlag string) (string, error) {
	if teamFlag != "" {
		return teamFlag, nil
	}

	teams, err := fetchTeams(cmd, client, org)
	if err != nil {
		return "", err
	}
	return ui.GetTeamInput(teamFlag, teams)
}
