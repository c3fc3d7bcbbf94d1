package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/isomerpages/teambot/internal/types"
)

// DisplayConfiguration prints the resolved configuration with secrets masked
func DisplayConfiguration(cfg *types.Config) {
	pterm.DefaultSection.Println("GitHub")
	printSetting("organization", cfg.Organization)
	printSetting("host", cfg.GitHub.Host)
	printSetting("username", cfg.GitHub.Username)
	printSetting("access token", MaskSecret(cfg.GitHub.AccessToken))

	pterm.DefaultSection.Println("Slack")
	printSetting("bot token", MaskSecret(cfg.Slack.BotToken))
	printSetting("signing secret", MaskSecret(cfg.Slack.SigningSecret))
	printSetting("oauth client id", cfg.Slack.OAuthClientID)

	pterm.DefaultSection.Println("Server")
	printSetting("listen", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	printSetting("log output", cfg.Log.Output)
	printSetting("log level", cfg.Log.Level)

	pterm.DefaultSection.Println("Team leaders")
	if len(cfg.TeamLeaders) == 0 {
		pterm.Warning.Println("No team leaders configured, every Slack request will be rejected.")
		return
	}
	data := pterm.TableData{{"Slack user", "GitHub login"}}
	for _, slackID := range sortedKeys(cfg.TeamLeaders) {
		data = append(data, []string{slackID, cfg.TeamLeaders[slackID]})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// MaskSecret keeps the last four characters of a secret
func MaskSecret(secret string) string {
	switch {
	case secret == "":
		return "not_set"
	case len(secret) <= 4:
		return strings.Repeat("*", len(secret))
	default:
		return strings.Repeat("*", 8) + secret[len(secret)-4:]
	}
}

func printSetting(key, value string) {
	var coloredValue string
	switch value {
	case "", "not_set":
		coloredValue = pterm.Red("not_set")
	default:
		coloredValue = pterm.Yellow(value)
	}
	pterm.Printf("  %s: %s\n", pterm.Cyan(key), coloredValue)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
