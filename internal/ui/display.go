package ui

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/isomerpages/teambot/internal/types"
)

// ShowOperationCancelled displays cancellation message
func ShowOperationCancelled() {
	pterm.Info.Println("Operation cancelled.")
}

// ShowProcessingStart displays the start of processing
func ShowProcessingStart(userCount int, team, org string) {
	pterm.Info.Printf("Processing %d user(s) for team %s on %s one at a time...\n", userCount, pterm.Cyan(team), pterm.Cyan(org))
}

// ShowTeams lists the teams of an organization
func ShowTeams(org string, teams []string) {
	if len(teams) == 0 {
		pterm.Warning.Printf("No teams found on %s.\n", org)
		return
	}

	items := make([]pterm.BulletListItem, 0, len(teams))
	for _, team := range teams {
		items = append(items, pterm.BulletListItem{Level: 0, Text: team})
	}
	pterm.Info.Printf("Teams on %s:\n", org)
	_ = pterm.DefaultBulletList.WithItems(items).Render()
}

// ConsoleReporter prints each processing result as soon as it is known
type ConsoleReporter struct{}

// Report prints the result with a printer matching its outcome
func (ConsoleReporter) Report(ctx context.Context, result types.ProcessingResult) {
	if result.Error != nil {
		pterm.Error.Printf("%s: %v\n", result.User, result.Error)
		return
	}

	outcome := result.Outcome
	switch outcome.Kind {
	case types.OutcomeInvited, types.OutcomeRemoved:
		pterm.Success.Println(outcome.Message())
	case types.OutcomeAlreadyPending, types.OutcomeAlreadyActive:
		pterm.Info.Println(outcome.Message())
	case types.OutcomeRejected:
		pterm.Warning.Println(outcome.Message())
	default:
		if outcome.Cause != nil {
			pterm.Error.Printf("%s: %v\n", outcome.Message(), outcome.Cause)
			return
		}
		pterm.Error.Println(outcome.Message())
	}
}
