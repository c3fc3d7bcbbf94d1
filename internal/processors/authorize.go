package processors

import (
	"context"
	"errors"
	"fmt"

	"github.com/isomerpages/teambot/internal/types"
)

// Authorize resolves the query's team and checks that the actor maintains it.
// A nil outcome means the actor may change the team's membership; otherwise
// the outcome is the rejection to report.
func Authorize(ctx context.Context, dir Directory, q types.MembershipQuery) (types.TeamID, *types.DecisionOutcome, error) {
	teamID, err := dir.TeamID(ctx, q.Organization, q.Team)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			rejected := types.Rejected(q, types.ReasonTeamNotFound)
			return 0, &rejected, nil
		}
		return 0, nil, err
	}

	denied := types.Rejected(q, types.ReasonInsufficientPermission)

	// an actor without a GitHub login cannot be in the team
	if q.Actor == "" {
		return teamID, &denied, nil
	}

	inTeam, err := dir.IsInTeam(ctx, teamID, q.Actor)
	if err != nil {
		return teamID, nil, fmt.Errorf("failed to check team membership of actor: %w", err)
	}
	if !inTeam {
		return teamID, &denied, nil
	}

	role, err := dir.Role(ctx, teamID, q.Actor)
	if err != nil {
		return teamID, nil, fmt.Errorf("failed to check team role of actor: %w", err)
	}
	if !role.IsMaintainer {
		return teamID, &denied, nil
	}

	return teamID, nil, nil
}
