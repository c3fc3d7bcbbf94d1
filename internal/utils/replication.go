package utils

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// BuildReplicationCommand creates a command string that can be used to replicate the same action
func BuildReplicationCommand(command string, flags map[string]interface{}, users []string) string {
	var parts []string
	parts = append(parts, "teambot", command)

	// Add flags in a consistent order
	flagOrder := []string{
		"config",
		"org",
		"team",
		"inviter",
		"user-list",
		"yes",
	}

	for _, flagName := range flagOrder {
		value, exists := flags[flagName]
		if !exists || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				parts = append(parts, fmt.Sprintf("%s %s", flagPrefix(flagName), quoteIfNeeded(v)))
			}
		case bool:
			if v {
				parts = append(parts, flagPrefix(flagName))
			}
		}
	}

	for _, u := range users {
		parts = append(parts, quoteIfNeeded(u))
	}

	return strings.Join(parts, " ")
}

func flagPrefix(flagName string) string {
	if short := getShortFlag(flagName); short != "" {
		return "-" + short
	}
	return "--" + flagName
}

// getShortFlag returns the short version of a flag if it exists
func getShortFlag(flagName string) string {
	shortFlags := map[string]string{
		"org":       "o",
		"team":      "t",
		"inviter":   "i",
		"user-list": "l",
		"yes":       "y",
	}
	return shortFlags[flagName]
}

// quoteIfNeeded adds quotes around a string if it contains spaces
func quoteIfNeeded(s string) string {
	if strings.Contains(s, " ") {
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// ShowReplicationCommand displays the replication command to the user
func ShowReplicationCommand(command string) {
	pterm.Println()
	pterm.Info.Println("To replicate this operation, use the following command:")
	pterm.Println()

	boxedCommand := pterm.DefaultBox.
		WithTitle("Replication Command").
		WithTitleTopCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(command)

	pterm.Println(boxedCommand)
}
