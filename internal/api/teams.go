package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/isomerpages/teambot/internal/types"
	"github.com/isomerpages/teambot/internal/utils"
)

type team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type teamMembership struct {
	Role  string `json:"role"`
	State string `json:"state"`
}

type member struct {
	Login string `json:"login"`
}

// ListTeams returns the names of all teams in an organization
func (c *Client) ListTeams(ctx context.Context, org string) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		var teams []team
		path := fmt.Sprintf("orgs/%s/teams?per_page=%d&page=%d", url.PathEscape(org), perPage, page)
		if err := c.get(ctx, MediaTeams, path, &teams); err != nil {
			return nil, fmt.Errorf("failed to list teams for org '%s': %w", org, err)
		}
		for _, t := range teams {
			names = append(names, t.Name)
		}
		if len(teams) < perPage {
			return names, nil
		}
	}
}

// TeamID resolves a team name to its identifier through the team's slug
func (c *Client) TeamID(ctx context.Context, org, teamName string) (types.TeamID, error) {
	slug := utils.Slugify(teamName)
	if slug == "" {
		return 0, &types.MalformedInputError{Field: "team", Value: teamName}
	}

	var t team
	path := fmt.Sprintf("orgs/%s/teams/%s", url.PathEscape(org), url.PathEscape(slug))
	if err := c.get(ctx, MediaTeams, path, &t); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return 0, &types.TeamNotFoundError{Team: teamName, OrgName: org}
		}
		return 0, fmt.Errorf("failed to look up team '%s': %w", teamName, err)
	}
	return types.TeamID(t.ID), nil
}

// IsInTeam reports whether user holds a team membership, pending or active
func (c *Client) IsInTeam(ctx context.Context, teamID types.TeamID, user string) (bool, error) {
	in, err := c.exists(ctx, MediaTeams, membershipPath(teamID, user))
	if err != nil {
		return false, fmt.Errorf("failed to check team membership of '%s': %w", user, err)
	}
	return in, nil
}

// Role returns user's role in the team. The user must be a member.
func (c *Client) Role(ctx context.Context, teamID types.TeamID, user string) (types.RoleInfo, error) {
	var m teamMembership
	if err := c.get(ctx, MediaTeams, membershipPath(teamID, user), &m); err != nil {
		return types.RoleInfo{}, fmt.Errorf("failed to fetch team role of '%s': %w", user, err)
	}

	state, err := types.ParseInvitationState(m.State)
	if err != nil {
		return types.RoleInfo{}, err
	}
	return types.RoleInfo{IsMaintainer: m.Role == "maintainer", InvitationState: state}, nil
}

// ListTeamMembers returns the logins of a team's members
func (c *Client) ListTeamMembers(ctx context.Context, teamID types.TeamID) ([]string, error) {
	var logins []string
	for page := 1; ; page++ {
		var members []member
		path := fmt.Sprintf("teams/%d/members?per_page=%d&page=%d", teamID, perPage, page)
		if err := c.get(ctx, MediaTeams, path, &members); err != nil {
			return nil, fmt.Errorf("failed to list members of team %d: %w", teamID, err)
		}
		for _, m := range members {
			logins = append(logins, m.Login)
		}
		if len(members) < perPage {
			return logins, nil
		}
	}
}

// InviteToTeam adds an organization member to a team
func (c *Client) InviteToTeam(ctx context.Context, teamID types.TeamID, user string) (types.MutationResult, error) {
	return c.mutate(ctx, MediaTeams, http.MethodPut, membershipPath(teamID, user), map[string]string{"role": "member"})
}

func membershipPath(teamID types.TeamID, user string) string {
	return fmt.Sprintf("teams/%d/memberships/%s", teamID, url.PathEscape(user))
}
