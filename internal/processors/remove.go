package processors

import (
	"context"

	"github.com/isomerpages/teambot/internal/types"
)

// RemoveProcessor removes users from the organization on behalf of a team maintainer
type RemoveProcessor struct {
	Directory    Directory
	Remover      Remover
	Organization string
	Team         string
	Actor        string
}

// ProcessUser removes a single user after checking the actor's permission on the team
func (rp *RemoveProcessor) ProcessUser(ctx context.Context, user string) types.ProcessingResult {
	q := types.MembershipQuery{
		Organization: rp.Organization,
		Team:         rp.Team,
		Actor:        rp.Actor,
		Subject:      user,
	}

	_, rejected, err := Authorize(ctx, rp.Directory, q)
	if err != nil {
		return types.ProcessingResult{User: user, Outcome: types.DecisionOutcome{Query: q}, Error: err}
	}
	if rejected != nil {
		return types.ProcessingResult{User: user, Outcome: *rejected}
	}

	result, err := rp.Remover.RemoveFromOrganization(ctx, q.Organization, user)
	if err != nil || !result.OK() {
		return types.ProcessingResult{User: user, Outcome: types.DecisionOutcome{Kind: types.OutcomeRemoveFailed, Query: q, Status: result.StatusCode, Cause: err}}
	}

	return types.ProcessingResult{User: user, Outcome: types.DecisionOutcome{Kind: types.OutcomeRemoved, Query: q}}
}
