package processors

import (
	"context"
	"fmt"

	"github.com/isomerpages/teambot/internal/types"
)

type member struct {
	role types.RoleInfo
}

// fakeGitHub is an in-memory organization that records every call it receives
type fakeGitHub struct {
	org        string
	teams      map[string]types.TeamID
	teamMember map[types.TeamID]map[string]member
	orgMembers map[string]bool

	inviteStatus int
	inviteErr    error
	removeStatus int

	calls []string

	teamLookupErr error
	lookupErr     error
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		org:          "acme",
		teams:        map[string]types.TeamID{"core": 3433868},
		teamMember:   map[types.TeamID]map[string]member{3433868: {}},
		orgMembers:   map[string]bool{},
		inviteStatus: 201,
		removeStatus: 204,
	}
}

func (f *fakeGitHub) addTeamMember(user string, maintainer bool, state types.InvitationState) {
	f.teamMember[3433868][user] = member{role: types.RoleInfo{IsMaintainer: maintainer, InvitationState: state}}
	f.orgMembers[user] = true
}

func (f *fakeGitHub) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGitHub) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeGitHub) mutations() int {
	return f.count("InviteToTeam") + f.count("InviteToOrganization") + f.count("RemoveFromOrganization")
}

func (f *fakeGitHub) TeamID(ctx context.Context, org, team string) (types.TeamID, error) {
	f.record("TeamID(%s,%s)", org, team)
	if f.teamLookupErr != nil {
		return 0, f.teamLookupErr
	}
	id, ok := f.teams[team]
	if !ok || org != f.org {
		return 0, &types.TeamNotFoundError{Team: team, OrgName: org}
	}
	return id, nil
}

func (f *fakeGitHub) IsInTeam(ctx context.Context, teamID types.TeamID, user string) (bool, error) {
	f.record("IsInTeam(%d,%s)", teamID, user)
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.teamMember[teamID][user]
	return ok, nil
}

func (f *fakeGitHub) IsInOrg(ctx context.Context, org, user string) (bool, error) {
	f.record("IsInOrg(%s,%s)", org, user)
	return f.orgMembers[user], nil
}

func (f *fakeGitHub) Role(ctx context.Context, teamID types.TeamID, user string) (types.RoleInfo, error) {
	f.record("Role(%d,%s)", teamID, user)
	m, ok := f.teamMember[teamID][user]
	if !ok {
		panic("Role called for a user outside the team: " + user)
	}
	return m.role, nil
}

func (f *fakeGitHub) InviteToTeam(ctx context.Context, teamID types.TeamID, user string) (types.MutationResult, error) {
	f.record("InviteToTeam(%d,%s)", teamID, user)
	return types.MutationResult{StatusCode: f.inviteStatus}, f.inviteErr
}

func (f *fakeGitHub) InviteToOrganization(ctx context.Context, org, user string, teamID types.TeamID) (types.MutationResult, error) {
	f.record("InviteToOrganization(%s,%s,%d)", org, user, teamID)
	return types.MutationResult{StatusCode: f.inviteStatus}, f.inviteErr
}

func (f *fakeGitHub) RemoveFromOrganization(ctx context.Context, org, user string) (types.MutationResult, error) {
	f.record("RemoveFromOrganization(%s,%s)", org, user)
	return types.MutationResult{StatusCode: f.removeStatus}, nil
}

type recordingReporter struct {
	results []types.ProcessingResult
}

func (r *recordingReporter) Report(ctx context.Context, result types.ProcessingResult) {
	r.results = append(r.results, result)
}
