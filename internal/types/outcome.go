package types

import "fmt"

// OutcomeKind tags the variant held by a DecisionOutcome
type OutcomeKind int

const (
	OutcomeRejected OutcomeKind = iota
	OutcomeInvited
	OutcomeAlreadyPending
	OutcomeAlreadyActive
	OutcomeInviteFailed
	OutcomeRemoved
	OutcomeRemoveFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvited:
		return "invited"
	case OutcomeAlreadyPending:
		return "already-pending"
	case OutcomeAlreadyActive:
		return "already-active"
	case OutcomeInviteFailed:
		return "invite-failed"
	case OutcomeRemoved:
		return "removed"
	case OutcomeRemoveFailed:
		return "remove-failed"
	default:
		return "unknown"
	}
}

// RejectReason explains why a request was rejected
type RejectReason int

const (
	ReasonInsufficientPermission RejectReason = iota
	ReasonTeamNotFound
)

func (r RejectReason) String() string {
	switch r {
	case ReasonTeamNotFound:
		return "team-not-found"
	default:
		return "insufficient-permission"
	}
}

// InviteTarget is where an invitation was sent
type InviteTarget int

const (
	TargetTeam InviteTarget = iota
	TargetOrganization
)

func (t InviteTarget) String() string {
	if t == TargetOrganization {
		return "organization"
	}
	return "team"
}

// InsufficientPermissionMessage is sent whenever the actor may not manage the team
const InsufficientPermissionMessage = "You do not possess sufficient permission to make this change"

// GenericErrorMessage is sent when a request fails for any reason not covered by an outcome
const GenericErrorMessage = "There was a problem with your request. Please ensure that your request is valid."

// DecisionOutcome is the result of deciding on a single membership request.
// Kind selects which of the payload fields are meaningful.
type DecisionOutcome struct {
	Kind   OutcomeKind
	Query  MembershipQuery
	Reason RejectReason // OutcomeRejected
	Target InviteTarget // OutcomeInvited
	Status int          // OutcomeInviteFailed, OutcomeRemoveFailed
	Cause  error        // set when a failed mutation never got a response
}

// Rejected builds a rejection outcome
func Rejected(q MembershipQuery, reason RejectReason) DecisionOutcome {
	return DecisionOutcome{Kind: OutcomeRejected, Query: q, Reason: reason}
}

// Invited builds a successful invitation outcome
func Invited(q MembershipQuery, target InviteTarget) DecisionOutcome {
	return DecisionOutcome{Kind: OutcomeInvited, Query: q, Target: target}
}

// Message renders the single notification text for the outcome
func (o DecisionOutcome) Message() string {
	q := o.Query
	switch o.Kind {
	case OutcomeRejected:
		if o.Reason == ReasonTeamNotFound {
			return fmt.Sprintf("Team %s could not be found on %s", q.Team, q.Organization)
		}
		return InsufficientPermissionMessage
	case OutcomeInvited:
		return fmt.Sprintf("An invite has been sent to %s to join team %s on %s", q.Subject, q.Team, q.Organization)
	case OutcomeAlreadyPending:
		return fmt.Sprintf("An invite has already been sent to %s to join team %s on %s", q.Subject, q.Team, q.Organization)
	case OutcomeAlreadyActive:
		return fmt.Sprintf("%s is already a part of team %s on %s", q.Subject, q.Team, q.Organization)
	case OutcomeInviteFailed:
		return fmt.Sprintf("The invite for %s to join team %s on %s could not be sent (%s)", q.Subject, q.Team, q.Organization, statusText(o.Status))
	case OutcomeRemoved:
		return fmt.Sprintf("%s has been removed from %s", q.Subject, q.Organization)
	case OutcomeRemoveFailed:
		return fmt.Sprintf("%s could not be removed from %s (%s)", q.Subject, q.Organization, statusText(o.Status))
	default:
		return GenericErrorMessage
	}
}

func statusText(status int) string {
	if status == 0 {
		return "request failed"
	}
	return fmt.Sprintf("status %d", status)
}
