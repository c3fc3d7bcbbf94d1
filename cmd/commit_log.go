package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/utils"
)

var commitLogCmd = &cobra.Command{
	Use:   "commit-log <repo>",
	Short: "Export the commit log of a repository as CSV",
	Long:  "Export the commits of an organization repository between two dates (YYYY-MM-DD) to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommitLog,
}

func init() {
	commitLogCmd.Flags().String("since", "", "Start date, YYYY-MM-DD (defaults to the 5th of last month)")
	commitLogCmd.Flags().String("until", "", "End date, YYYY-MM-DD (defaults to today)")
	commitLogCmd.Flags().String("out", "", "Output CSV path (defaults to commits_<repo>_<since>_<until>.csv)")
}

func runCommitLog(cmd *cobra.Command, args []string) error {
	repo := args[0]

	since, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}
	until, err := cmd.Flags().GetString("until")
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	now := time.Now()
	if since == "" {
		since = utils.DefaultDate(now)
	}
	if until == "" {
		until = now.UTC().Format(utils.DateLayout)
	}
	sinceTime, untilTime, err := utils.ParseDateRange(since, until)
	if err != nil {
		return err
	}

	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching commits of %s/%s from %s to %s...", cfg.Organization, repo, since, until))
	commits, err := client.ListCommits(cmd.Context(), cfg.Organization, repo, sinceTime, untilTime)
	if err != nil {
		spinner.Fail("Failed to fetch commits")
		return err
	}
	spinner.Success("Found ", len(commits), " commit(s)")

	if out == "" {
		out = utils.CommitsCSVFilename(repo, sinceTime, untilTime)
	}
	if err := utils.WriteCommitsCSVFile(out, commits); err != nil {
		return err
	}

	pterm.Success.Printf("Commit log written to %s\n", out)
	return nil
}
