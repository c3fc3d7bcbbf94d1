package utils

import (
	"fmt"
	"regexp"
)

// GitHub logins are alphanumeric with single inner hyphens, at most 39 characters
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9]){0,38}$`)

// ValidateUsername checks that s is a well-formed GitHub login
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return fmt.Errorf("invalid GitHub username format: '%s'", s)
	}
	return nil
}

// ValidateOrganization checks that org is a well-formed organization login
func ValidateOrganization(org string) error {
	if org == "" {
		return fmt.Errorf("organization is required")
	}
	if !usernamePattern.MatchString(org) {
		return fmt.Errorf("invalid organization name format: %s", org)
	}
	return nil
}
