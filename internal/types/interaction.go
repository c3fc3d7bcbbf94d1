package types

import "strings"

// InteractionKind identifies the interactive component a Slack action came from
type InteractionKind int

const (
	InteractionUnknown InteractionKind = iota
	InteractionAddUserToTeam
	InteractionRemoveUserFromTeam
	InteractionSelectUserToRemove
	InteractionCommitLogStart
	InteractionCommitLogEnd
)

var interactionActionIDs = map[InteractionKind]string{
	InteractionAddUserToTeam:      "add-user-to-team",
	InteractionRemoveUserFromTeam: "remove-user",
	InteractionSelectUserToRemove: "select-user-to-remove",
	InteractionCommitLogStart:     "start-date-commit",
	InteractionCommitLogEnd:       "end-date-commit",
}

// ActionID returns the action_id used on the wire
func (k InteractionKind) ActionID() string {
	return interactionActionIDs[k]
}

func (k InteractionKind) String() string {
	if id, ok := interactionActionIDs[k]; ok {
		return id
	}
	return "unknown"
}

// ParseInteractionKind maps an action_id to its kind. Anything after the
// first ':' is an argument and does not take part in the match.
func ParseInteractionKind(actionID string) InteractionKind {
	prefix, _, _ := strings.Cut(actionID, ":")
	for kind, id := range interactionActionIDs {
		if id == prefix {
			return kind
		}
	}
	return InteractionUnknown
}

// ActionArgument returns the part of an action_id after the first ':'
func ActionArgument(actionID string) string {
	_, arg, _ := strings.Cut(actionID, ":")
	return arg
}
