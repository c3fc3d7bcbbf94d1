package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// ConfirmRemoveOperation shows removal summary and asks for confirmation
func ConfirmRemoveOperation(org, team string, users []string) (bool, error) {
	pterm.Println()
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgRed)).WithTextStyle(pterm.NewStyle(pterm.FgWhite)).Println("REMOVE OPERATION SUMMARY")

	pterm.Printf("Organization: %s\n", pterm.Yellow(org))
	pterm.Printf("Authorized through team: %s\n", pterm.Magenta(team))
	pterm.Printf("Users to remove (%d): %s\n", len(users), pterm.Red(strings.Join(users, ", ")))
	pterm.Println()

	pterm.Warning.Println("WARNING: Users are removed from the whole organization, not only from the team.")
	pterm.Warning.Println("They lose access to every private repository of the organization.")
	pterm.Println()

	confirmed, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Are you absolutely sure you want to remove these users?").WithDefaultValue(false).Show()
	if err != nil {
		return false, err
	}

	return confirmed, nil
}

// ConfirmInviteOperation shows invitation summary and asks for confirmation
func ConfirmInviteOperation(org, team, inviter string, users []string) (bool, error) {
	pterm.Println()
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).WithTextStyle(pterm.NewStyle(pterm.FgBlack)).Println("Invite Operation Summary")

	pterm.Printf("Organization: %s\n", pterm.Yellow(org))
	pterm.Printf("Team: %s\n", pterm.Magenta(team))
	pterm.Printf("Inviter: %s\n", pterm.Cyan(inviter))
	pterm.Printf("Users to invite (%d): %s\n", len(users), pterm.Green(strings.Join(users, ", ")))
	pterm.Println()

	confirmed, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Proceed with sending invitations?").Show()
	if err != nil {
		return false, err
	}

	return confirmed, nil
}
