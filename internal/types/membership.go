package types

import "fmt"

// TeamID is the numeric GitHub identifier of a team
type TeamID int64

// MembershipQuery describes a single invitation request. Organization and team
// names are case-sensitive.
type MembershipQuery struct {
	Organization string
	Team         string
	Actor        string // inviter
	Subject      string // invitee
}

// InvitationState is the state of a user's team membership
type InvitationState string

const (
	StatePending InvitationState = "pending"
	StateActive  InvitationState = "active"
)

// ParseInvitationState converts GitHub's membership "state" field
func ParseInvitationState(s string) (InvitationState, error) {
	switch InvitationState(s) {
	case StatePending:
		return StatePending, nil
	case StateActive:
		return StateActive, nil
	default:
		return "", &MalformedInputError{Field: "state", Value: s}
	}
}

// RoleInfo is a user's role within a team. It is only meaningful for users
// that are members of the team.
type RoleInfo struct {
	IsMaintainer    bool
	InvitationState InvitationState
}

// MutationResult is the outcome of a call that changes membership
type MutationResult struct {
	StatusCode int
}

// OK reports whether the mutation returned a 2xx status
func (r MutationResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r MutationResult) String() string {
	return fmt.Sprintf("status %d", r.StatusCode)
}
