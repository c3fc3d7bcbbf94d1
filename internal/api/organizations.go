package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/isomerpages/teambot/internal/types"
)

// IsInOrg reports whether user is a member of the organization. GitHub answers
// 302 instead of 404 when the requester is not itself an organization member.
func (c *Client) IsInOrg(ctx context.Context, org, user string) (bool, error) {
	path := fmt.Sprintf("orgs/%s/members/%s", url.PathEscape(org), url.PathEscape(user))
	in, err := c.exists(ctx, MediaDefault, path)
	if err != nil {
		if statusOf(err) == http.StatusFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check organization membership of '%s': %w", user, err)
	}
	return in, nil
}

// GetUserID returns the numeric identifier of a GitHub login
func (c *Client) GetUserID(ctx context.Context, user string) (int64, error) {
	var u struct {
		ID int64 `json:"id"`
	}
	if err := c.get(ctx, MediaUsers, "users/"+url.PathEscape(user), &u); err != nil {
		return 0, fmt.Errorf("failed to look up user '%s': %w", user, err)
	}
	return u.ID, nil
}

// InviteToOrganization invites a user who is not yet an organization member,
// adding them to the team once they accept
func (c *Client) InviteToOrganization(ctx context.Context, org, user string, teamID types.TeamID) (types.MutationResult, error) {
	userID, err := c.GetUserID(ctx, user)
	if err != nil {
		return types.MutationResult{}, err
	}

	body := map[string]interface{}{
		"invitee_id": userID,
		"team_ids":   []types.TeamID{teamID},
	}
	path := fmt.Sprintf("orgs/%s/invitations", url.PathEscape(org))
	return c.mutate(ctx, MediaInvitations, http.MethodPost, path, body)
}

// RemoveFromOrganization removes a user from the organization and from all of its teams
func (c *Client) RemoveFromOrganization(ctx context.Context, org, user string) (types.MutationResult, error) {
	path := fmt.Sprintf("orgs/%s/members/%s", url.PathEscape(org), url.PathEscape(user))
	return c.mutate(ctx, MediaInvitations, http.MethodDelete, path, nil)
}
