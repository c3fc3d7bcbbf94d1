package processors

import (
	"context"
	"fmt"

	"github.com/isomerpages/teambot/internal/types"
)

// InviteProcessor decides whether and how to invite users to a team
type InviteProcessor struct {
	Directory    Directory
	Inviter      Inviter
	Organization string
	Team         string
	Actor        string
}

// ProcessUser decides on a single invitee for the processor's team and actor
func (ip *InviteProcessor) ProcessUser(ctx context.Context, user string) types.ProcessingResult {
	q := types.MembershipQuery{
		Organization: ip.Organization,
		Team:         ip.Team,
		Actor:        ip.Actor,
		Subject:      user,
	}
	outcome, err := ip.Decide(ctx, q)
	return types.ProcessingResult{User: user, Outcome: outcome, Error: err}
}

// Decide runs the membership checks in order and sends at most one invitation.
// Permission is always confirmed before the subject is looked at.
func (ip *InviteProcessor) Decide(ctx context.Context, q types.MembershipQuery) (types.DecisionOutcome, error) {
	teamID, rejected, err := Authorize(ctx, ip.Directory, q)
	if err != nil {
		return types.DecisionOutcome{Query: q}, err
	}
	if rejected != nil {
		return *rejected, nil
	}

	inTeam, err := ip.Directory.IsInTeam(ctx, teamID, q.Subject)
	if err != nil {
		return types.DecisionOutcome{Query: q}, fmt.Errorf("failed to check team membership of '%s': %w", q.Subject, err)
	}

	if inTeam {
		role, err := ip.Directory.Role(ctx, teamID, q.Subject)
		if err != nil {
			return types.DecisionOutcome{Query: q}, fmt.Errorf("failed to check invitation state of '%s': %w", q.Subject, err)
		}
		if role.InvitationState == types.StatePending {
			return types.DecisionOutcome{Kind: types.OutcomeAlreadyPending, Query: q}, nil
		}
		return types.DecisionOutcome{Kind: types.OutcomeAlreadyActive, Query: q}, nil
	}

	inOrg, err := ip.Directory.IsInOrg(ctx, q.Organization, q.Subject)
	if err != nil {
		return types.DecisionOutcome{Query: q}, fmt.Errorf("failed to check organization membership of '%s': %w", q.Subject, err)
	}

	var (
		result types.MutationResult
		target types.InviteTarget
	)
	if inOrg {
		target = types.TargetTeam
		result, err = ip.Inviter.InviteToTeam(ctx, teamID, q.Subject)
	} else {
		target = types.TargetOrganization
		result, err = ip.Inviter.InviteToOrganization(ctx, q.Organization, q.Subject, teamID)
	}
	if err != nil || !result.OK() {
		return types.DecisionOutcome{Kind: types.OutcomeInviteFailed, Query: q, Status: result.StatusCode, Cause: err}, nil
	}

	return types.Invited(q, target), nil
}
