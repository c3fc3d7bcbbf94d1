package utils

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CommonFlags are the targeting flags shared by the membership commands
type CommonFlags struct {
	Team         string
	Inviter      string
	UserListPath string
}

// ExtractCommonFlags gets team, inviter and user list flags from command. The
// organization comes from the loaded configuration.
func ExtractCommonFlags(cmd *cobra.Command) (*CommonFlags, error) {
	team, err := cmd.Flags().GetString("team")
	if err != nil {
		return nil, err
	}

	inviter, err := cmd.Flags().GetString("inviter")
	if err != nil {
		return nil, err
	}

	userListPath, err := cmd.Flags().GetString("user-list")
	if err != nil {
		return nil, err
	}

	return &CommonFlags{
		Team:         team,
		Inviter:      NormalizeUsername(inviter),
		UserListPath: userListPath,
	}, nil
}

// CollectUsers merges usernames given as arguments with those read from the
// user list, keeping first-seen order and dropping duplicates
func CollectUsers(args []string, userListPath string) ([]string, error) {
	users := ParseUsernames(strings.Join(args, " "))

	if userListPath != "" {
		listed, err := ReadUsernamesFromCSV(userListPath)
		if err != nil {
			return nil, fmt.Errorf("CSV validation failed: %w", err)
		}
		users = append(users, listed...)
	}

	seen := make(map[string]bool, len(users))
	var unique []string
	for _, u := range users {
		if seen[u] {
			continue
		}
		seen[u] = true
		unique = append(unique, u)
	}

	if len(unique) == 0 {
		return nil, fmt.Errorf("at least one username or --user-list must be provided")
	}
	for _, u := range unique {
		if err := ValidateUsername(u); err != nil {
			return nil, err
		}
	}
	return unique, nil
}

// PrintCompletionHeader prints the completion header with results
func PrintCompletionHeader(operation string, successCount, skippedCount, errorCount int) {
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).WithTextStyle(pterm.NewStyle(pterm.FgBlack)).Printf("%s Complete! (Success: %d, Skipped: %d, Errors: %d)", operation, successCount, skippedCount, errorCount)
}
