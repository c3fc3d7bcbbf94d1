package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTransient        = errors.New("transient API failure")
	ErrMalformedInput   = errors.New("malformed input")
)

// TeamNotFoundError represents an error when a team slug does not resolve in an organization
type TeamNotFoundError struct {
	Team    string
	OrgName string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team '%s' not found in organization '%s'", e.Team, e.OrgName)
}

func (e *TeamNotFoundError) Unwrap() error { return ErrNotFound }

// MalformedInputError represents a value received from Slack or GitHub that cannot be interpreted
type MalformedInputError struct {
	Field string
	Value string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s: '%s'", e.Field, e.Value)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }
