package processors

import (
	"context"

	"github.com/isomerpages/teambot/internal/types"
)

// UserProcessor defines the interface for processing a single user of a batch
type UserProcessor interface {
	ProcessUser(ctx context.Context, user string) types.ProcessingResult
}

// Reporter receives each result as soon as it is known
type Reporter interface {
	Report(ctx context.Context, result types.ProcessingResult)
}

// Directory answers read-only membership questions. Role must only be asked
// for users that IsInTeam reports as members.
type Directory interface {
	TeamID(ctx context.Context, org, team string) (types.TeamID, error)
	IsInTeam(ctx context.Context, teamID types.TeamID, user string) (bool, error)
	IsInOrg(ctx context.Context, org, user string) (bool, error)
	Role(ctx context.Context, teamID types.TeamID, user string) (types.RoleInfo, error)
}

// Inviter sends membership invitations
type Inviter interface {
	InviteToTeam(ctx context.Context, teamID types.TeamID, user string) (types.MutationResult, error)
	InviteToOrganization(ctx context.Context, org, user string, teamID types.TeamID) (types.MutationResult, error)
}

// Remover removes organization members
type Remover interface {
	RemoveFromOrganization(ctx context.Context, org, user string) (types.MutationResult, error)
}
