package slackbot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"

	"github.com/isomerpages/teambot/internal/types"
)

type postedMessage struct {
	channel string
	text    string
	blocks  string
}

type uploadedFile struct {
	params  slack.UploadFileV2Parameters
	content string
}

type fakeSlack struct {
	posts   []postedMessage
	uploads []uploadedFile
	postErr error
}

func (f *fakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.postErr != nil {
		return "", "", f.postErr
	}
	_, values, err := slack.UnsafeApplyMsgOptions("token", channelID, "https://slack.test/api/", options...)
	if err != nil {
		return "", "", err
	}
	f.posts = append(f.posts, postedMessage{channel: channelID, text: values.Get("text"), blocks: values.Get("blocks")})
	return channelID, "1700000000.000100", nil
}

func (f *fakeSlack) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	content, err := io.ReadAll(params.Reader)
	if err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, uploadedFile{params: params, content: string(content)})
	return &slack.FileSummary{ID: "F1", Title: params.Title}, nil
}

type fakeGitHub struct {
	teams       map[string]types.TeamID
	members     map[types.TeamID]map[string]types.RoleInfo
	orgMembers  map[string]bool
	commits     []types.Commit
	teamNames   []string
	err         error
	invitedOrg  []string
	invitedTeam []string
	removed     []string
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		teams: map[string]types.TeamID{"core": 7, "docs": 8},
		members: map[types.TeamID]map[string]types.RoleInfo{
			7: {"alice": {IsMaintainer: true, InvitationState: types.StateActive}},
			8: {},
		},
		orgMembers: map[string]bool{"alice": true},
	}
}

func (f *fakeGitHub) TeamID(ctx context.Context, org, team string) (types.TeamID, error) {
	if f.err != nil {
		return 0, f.err
	}
	id, ok := f.teams[team]
	if !ok {
		return 0, &types.TeamNotFoundError{Team: team, OrgName: org}
	}
	return id, nil
}

func (f *fakeGitHub) IsInTeam(ctx context.Context, teamID types.TeamID, user string) (bool, error) {
	_, ok := f.members[teamID][user]
	return ok, nil
}

func (f *fakeGitHub) IsInOrg(ctx context.Context, org, user string) (bool, error) {
	return f.orgMembers[user], nil
}

func (f *fakeGitHub) Role(ctx context.Context, teamID types.TeamID, user string) (types.RoleInfo, error) {
	return f.members[teamID][user], nil
}

func (f *fakeGitHub) InviteToTeam(ctx context.Context, teamID types.TeamID, user string) (types.MutationResult, error) {
	f.invitedTeam = append(f.invitedTeam, user)
	return types.MutationResult{StatusCode: http.StatusOK}, nil
}

func (f *fakeGitHub) InviteToOrganization(ctx context.Context, org, user string, teamID types.TeamID) (types.MutationResult, error) {
	f.invitedOrg = append(f.invitedOrg, user)
	return types.MutationResult{StatusCode: http.StatusCreated}, nil
}

func (f *fakeGitHub) RemoveFromOrganization(ctx context.Context, org, user string) (types.MutationResult, error) {
	f.removed = append(f.removed, user)
	return types.MutationResult{StatusCode: http.StatusNoContent}, nil
}

func (f *fakeGitHub) ListTeams(ctx context.Context, org string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.teamNames != nil {
		return f.teamNames, nil
	}
	return []string{"core", "docs"}, nil
}

func (f *fakeGitHub) ListTeamMembers(ctx context.Context, teamID types.TeamID) ([]string, error) {
	var logins []string
	for login := range f.members[teamID] {
		logins = append(logins, login)
	}
	return logins, nil
}

func (f *fakeGitHub) ListCommits(ctx context.Context, org, repo string, since, until time.Time) ([]types.Commit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.commits, nil
}

// responseSink stands in for Slack response URLs
type responseSink struct {
	mu     sync.Mutex
	texts  []string
	server *httptest.Server
}

func newResponseSink(t *testing.T) *responseSink {
	t.Helper()
	sink := &responseSink{}
	sink.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sink.mu.Lock()
		sink.texts = append(sink.texts, payload["text"])
		sink.mu.Unlock()
	}))
	t.Cleanup(sink.server.Close)
	return sink
}

func (s *responseSink) URL() string {
	return s.server.URL
}

func (s *responseSink) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}
