package utils

import (
	"regexp"
	"strings"
)

var (
	whitespace   = regexp.MustCompile(`\s+`)
	nonWordChars = regexp.MustCompile(`[^\w-]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a team name into the slug GitHub uses in team URLs
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWordChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeUsername lowercases and trims a username typed into Slack
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseUsernames splits slash command text into normalized usernames
func ParseUsernames(text string) []string {
	var users []string
	for _, field := range strings.Fields(text) {
		if u := NormalizeUsername(field); u != "" {
			users = append(users, u)
		}
	}
	return users
}
