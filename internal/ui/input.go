package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// GetTeamInput uses the team flag when set, otherwise prompts with the
// organization's teams
func GetTeamInput(teamFlag string, teams []string) (string, error) {
	if strings.TrimSpace(teamFlag) != "" {
		return strings.TrimSpace(teamFlag), nil
	}

	if len(teams) == 0 {
		return "", fmt.Errorf("no teams available to select")
	}

	team, err := pterm.DefaultInteractiveSelect.WithOptions(teams).Show("Select a team")
	if err != nil {
		return "", err
	}
	return team, nil
}

// GetInviterInput uses the inviter flag when set, otherwise prompts for the
// GitHub login of the team maintainer making the change
func GetInviterInput(inviterFlag string) (string, error) {
	if strings.TrimSpace(inviterFlag) != "" {
		return strings.TrimSpace(inviterFlag), nil
	}

	inviter, err := pterm.DefaultInteractiveTextInput.WithDefaultText("").WithMultiLine(false).Show("Enter your GitHub username (must maintain the team)")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(inviter) == "" {
		return "", fmt.Errorf("inviter is required")
	}

	return strings.ToLower(strings.TrimSpace(inviter)), nil
}
