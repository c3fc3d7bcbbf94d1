package slackbot

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isomerpages/teambot/internal/log"
	"github.com/isomerpages/teambot/internal/notify"
	"github.com/isomerpages/teambot/internal/types"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

type harness struct {
	server *Server
	engine *gin.Engine
	github *fakeGitHub
	slack  *fakeSlack
	sink   *responseSink
}

func newHarness(t *testing.T, signingSecret string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &types.Config{
		Organization: "acme",
		TeamLeaders:  map[string]string{"U1": "alice", "U2": "bob"},
		Slack: types.SlackConfig{
			SigningSecret:    signingSecret,
			OAuthClientID:    "client-123",
			OAuthRedirectURL: "https://bot.example.com/oauth/redirect",
		},
	}
	h := &harness{
		github: newFakeGitHub(),
		slack:  &fakeSlack{},
		sink:   newResponseSink(t),
	}
	h.server = New(cfg, h.github, h.slack, notify.New(log.Nop()), log.Nop())
	h.server.dispatch = func(task func()) { task() }
	h.server.now = func() time.Time { return time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC) }
	h.engine = h.server.Engine()
	return h
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func command(path, text string) *http.Request {
	return formRequest(path, url.Values{
		"command":    {path},
		"text":       {text},
		"channel_id": {"C1"},
		"user_id":    {"U1"},
	})
}

func (h *harness) interact(t *testing.T, slackUser string, actions ...map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"type":         "block_actions",
		"user":         map[string]string{"id": slackUser},
		"container":    map[string]string{"channel_id": "C1"},
		"channel":      map[string]string{"id": "C1"},
		"response_url": h.sink.URL(),
		"actions":      actions,
	})
	require.NoError(t, err)
	return h.serve(formRequest("/interaction", url.Values{"payload": {string(payload)}}))
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func selectAction(actionID, blockID, value string) map[string]interface{} {
	return map[string]interface{}{
		"action_id": actionID,
		"block_id":  blockID,
		"type":      "static_select",
		"selected_option": map[string]interface{}{
			"value": value,
			"text":  map[string]string{"type": "plain_text", "text": value},
		},
	}
}

func dateAction(actionID, blockID, date string) map[string]interface{} {
	return map[string]interface{}{
		"action_id":     actionID,
		"block_id":      blockID,
		"type":          "datepicker",
		"selected_date": date,
	}
}

func sign(req *http.Request, body string) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte("v0:" + ts + ":" + body))
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
}

func TestHealth(t *testing.T) {
	h := newHarness(t, testSecret)
	w := h.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyChallenge(t *testing.T) {
	h := newHarness(t, "")
	body := `{"token":"tok","challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P","type":"url_verification"}`
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := h.serve(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P", w.Body.String())
}

func TestSignatureVerification(t *testing.T) {
	h := newHarness(t, testSecret)
	form := url.Values{"command": {"/add-users"}, "text": {""}, "channel_id": {"C1"}, "user_id": {"U1"}}

	unsigned := h.serve(formRequest("/add-users", form))
	assert.Equal(t, http.StatusUnauthorized, unsigned.Code)

	forged := formRequest("/add-users", form)
	sign(forged, "something else")
	assert.Equal(t, http.StatusUnauthorized, h.serve(forged).Code)

	signed := formRequest("/add-users", form)
	sign(signed, form.Encode())
	assert.Equal(t, http.StatusOK, h.serve(signed).Code)
	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, msgEnterUsername, h.slack.posts[0].text)
}

func TestSignIn(t *testing.T) {
	h := newHarness(t, "")
	w := h.serve(command("/signin", ""))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"response_type":"ephemeral"`)
	assert.Contains(t, body, msgSignIn)
	assert.Contains(t, body, "https://github.com/login/oauth/authorize?client_id=client-123")
}

func TestAddUsersWithoutUsernames(t *testing.T) {
	h := newHarness(t, "")
	w := h.serve(command("/add-users", "   "))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, msgEnterUsername, h.slack.posts[0].text)
}

func TestAddUsersPostsTeamMenu(t *testing.T) {
	h := newHarness(t, "")
	w := h.serve(command("/add-users", "Bob carol"))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, h.slack.posts, 1)
	post := h.slack.posts[0]
	assert.Equal(t, "C1", post.channel)
	assert.Contains(t, post.blocks, "Which team do you want to add bob, carol to?")
	assert.Contains(t, post.blocks, `"block_id":"bob*carol"`)
	assert.Contains(t, post.blocks, `"action_id":"add-user-to-team"`)
	assert.Contains(t, post.blocks, `"value":"docs"`)
}

func TestAddUsersTeamListFailure(t *testing.T) {
	h := newHarness(t, "")
	h.github.err = types.ErrTransient

	w := h.serve(command("/add-users", "bob"))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, types.GenericErrorMessage, h.slack.posts[0].text)
}

func TestAddUsersSkipsInvalidUsernames(t *testing.T) {
	h := newHarness(t, "")
	h.serve(command("/add-users", "@bob a*b carol"))

	require.Len(t, h.slack.posts, 2)
	assert.Equal(t, "These are not valid GitHub usernames and were skipped: @bob, a*b", h.slack.posts[0].text)
	assert.Contains(t, h.slack.posts[1].blocks, `"block_id":"carol"`)
}

func TestAddUsersOnlyInvalidUsernames(t *testing.T) {
	h := newHarness(t, "")
	h.serve(command("/add-users", "@bob"))

	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, "These are not valid GitHub usernames and were skipped: @bob", h.slack.posts[0].text)
}

func TestAddUsersTooManyUsernames(t *testing.T) {
	h := newHarness(t, "")
	users := make([]string, 40)
	for i := range users {
		users[i] = fmt.Sprintf("member-%02d", i)
	}

	w := h.serve(command("/add-users", strings.Join(users, " ")))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, msgTooManyUsers, h.slack.posts[0].text)
}

func TestAddUsersManyTeamsAreGrouped(t *testing.T) {
	h := newHarness(t, "")
	teams := make([]string, 150)
	for i := range teams {
		teams[i] = fmt.Sprintf("team-%03d", i)
	}
	h.github.teamNames = teams

	h.serve(command("/add-users", "bob"))
	require.Len(t, h.slack.posts, 1)
	blocks := h.slack.posts[0].blocks
	assert.Contains(t, blocks, `"option_groups"`)
	assert.Contains(t, blocks, `"text":"1-100"`)
	assert.Contains(t, blocks, `"text":"101-150"`)
	assert.Contains(t, blocks, `"value":"team-149"`)
}

func TestOptionGroups(t *testing.T) {
	options := make([]*slack.OptionBlockObject, 10050)
	for i := range options {
		options[i] = slack.NewOptionBlockObject(strconv.Itoa(i), plain(strconv.Itoa(i)), nil)
	}

	groups := optionGroups(options[:150])
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Options, 100)
	assert.Len(t, groups[1].Options, 50)

	groups = optionGroups(options)
	assert.Len(t, groups, maxOptionGroups)
	assert.Equal(t, "9901-10000", groups[len(groups)-1].Label.Text)
}

func TestAddUsersPostFailureRespondsWithGenericMessage(t *testing.T) {
	h := newHarness(t, "")
	h.slack.postErr = errors.New("invalid_blocks")

	w := h.serve(command("/add-users", "bob"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"response_type":"ephemeral"`)
	assert.Contains(t, w.Body.String(), types.GenericErrorMessage)
}

func TestRemoveUsersPostsTeamMenu(t *testing.T) {
	h := newHarness(t, "")
	h.serve(command("/remove-users", ""))

	require.Len(t, h.slack.posts, 1)
	assert.Contains(t, h.slack.posts[0].blocks, `"action_id":"remove-user"`)
	assert.Contains(t, h.slack.posts[0].blocks, "Which team do you want to remove users from?")
}

func TestCommitLogPostsStartPicker(t *testing.T) {
	h := newHarness(t, "")
	h.serve(command("/commit-log", "isomercms-frontend"))

	require.Len(t, h.slack.posts, 1)
	blocks := h.slack.posts[0].blocks
	assert.Contains(t, blocks, `"block_id":"isomercms-frontend@start-date-commit"`)
	assert.Contains(t, blocks, `"action_id":"start-date-commit"`)
	assert.Contains(t, blocks, `"initial_date":"2024-02-05"`)
}

func TestCommitLogWithoutRepository(t *testing.T) {
	h := newHarness(t, "")
	h.serve(command("/commit-log", ""))

	require.Len(t, h.slack.posts, 1)
	assert.Equal(t, msgEnterRepository, h.slack.posts[0].text)
}

func TestInteractionInvitesInSubmissionOrder(t *testing.T) {
	h := newHarness(t, "")
	h.github.orgMembers["carol"] = true

	w := h.interact(t, "U1", selectAction("add-user-to-team", "bob*carol", "core"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"bob"}, h.github.invitedOrg)
	assert.Equal(t, []string{"carol"}, h.github.invitedTeam)
	assert.Equal(t, []string{
		"An invite has been sent to bob to join team core on acme",
		"An invite has been sent to carol to join team core on acme",
	}, h.sink.Texts())
}

func TestInteractionRejectsUnknownSlackUser(t *testing.T) {
	h := newHarness(t, "")

	h.interact(t, "U999", selectAction("add-user-to-team", "bob", "core"))

	assert.Empty(t, h.github.invitedOrg)
	assert.Equal(t, []string{types.InsufficientPermissionMessage}, h.sink.Texts())
}

func TestInteractionRejectsNonMaintainer(t *testing.T) {
	h := newHarness(t, "")
	h.github.members[7]["bob"] = types.RoleInfo{InvitationState: types.StateActive}

	h.interact(t, "U2", selectAction("add-user-to-team", "carol", "core"))

	assert.Empty(t, h.github.invitedOrg)
	assert.Equal(t, []string{types.InsufficientPermissionMessage}, h.sink.Texts())
}

func TestInteractionTeamNotFound(t *testing.T) {
	h := newHarness(t, "")

	h.interact(t, "U1", selectAction("add-user-to-team", "bob", "ghost"))

	assert.Equal(t, []string{"Team ghost could not be found on acme"}, h.sink.Texts())
}

func TestInteractionGitHubFailureSendsGenericMessage(t *testing.T) {
	h := newHarness(t, "")
	h.github.err = types.ErrTransient

	h.interact(t, "U1", selectAction("remove-user", "remove-user", "core"))

	assert.Equal(t, []string{types.GenericErrorMessage}, h.sink.Texts())
}

func TestInteractionRemoveFlow(t *testing.T) {
	h := newHarness(t, "")
	h.github.members[7]["bob"] = types.RoleInfo{InvitationState: types.StateActive}

	h.interact(t, "U1", selectAction("remove-user", "remove-user", "core"))
	require.Len(t, h.slack.posts, 1)
	assert.Contains(t, h.slack.posts[0].blocks, `"action_id":"select-user-to-remove:core"`)
	assert.Contains(t, h.slack.posts[0].blocks, `"value":"bob"`)

	h.interact(t, "U1", selectAction("select-user-to-remove:core", "select-user-to-remove", "bob"))
	assert.Equal(t, []string{"bob"}, h.github.removed)
	assert.Equal(t, []string{"bob has been removed from acme"}, h.sink.Texts())
}

func TestInteractionRemoveRequiresMaintainer(t *testing.T) {
	h := newHarness(t, "")

	h.interact(t, "U2", selectAction("remove-user", "remove-user", "core"))
	h.interact(t, "U2", selectAction("select-user-to-remove:core", "select-user-to-remove", "alice"))

	assert.Empty(t, h.slack.posts)
	assert.Empty(t, h.github.removed)
	assert.Equal(t, []string{types.InsufficientPermissionMessage, types.InsufficientPermissionMessage}, h.sink.Texts())
}

func TestInteractionCommitLog(t *testing.T) {
	h := newHarness(t, "")
	h.github.commits = []types.Commit{{
		SHA:     "abc123",
		Author:  "Alice",
		Email:   "alice@example.com",
		Date:    time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC),
		Message: "Fix header\n\nlong body",
		URL:     "https://github.com/acme/site/commit/abc123",
	}}

	h.interact(t, "U1", dateAction("start-date-commit", "site@start-date-commit", "2024-01-05"))
	require.Len(t, h.slack.posts, 1)
	assert.Contains(t, h.slack.posts[0].blocks, `"block_id":"site@2024-01-05"`)
	assert.Contains(t, h.slack.posts[0].blocks, `"action_id":"end-date-commit"`)

	h.interact(t, "U1", dateAction("end-date-commit", "site@2024-01-05", "2024-02-05"))
	require.Len(t, h.slack.uploads, 1)
	upload := h.slack.uploads[0]
	assert.Equal(t, "C1", upload.params.Channel)
	assert.Equal(t, "commits_site_2024-01-05_2024-02-05.csv", upload.params.Filename)
	assert.Equal(t, len(upload.content), upload.params.FileSize)
	assert.Contains(t, upload.content, "abc123,Alice,alice@example.com,2024-01-10T12:00:00Z,Fix header,")
	assert.Empty(t, h.sink.Texts())
}

func TestInteractionCommitLogEndBeforeStart(t *testing.T) {
	h := newHarness(t, "")

	h.interact(t, "U1", dateAction("end-date-commit", "site@2024-02-05", "2024-01-05"))

	assert.Empty(t, h.slack.uploads)
	assert.Equal(t, []string{types.GenericErrorMessage}, h.sink.Texts())
}

func TestInteractionUnknownActionIgnored(t *testing.T) {
	h := newHarness(t, "")

	w := h.interact(t, "U1", selectAction("connect-github", "signin", "x"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, h.slack.posts)
	assert.Empty(t, h.sink.Texts())
}

func TestInteractionPostFailureSendsGenericMessage(t *testing.T) {
	h := newHarness(t, "")
	h.slack.postErr = errors.New("channel_not_found")

	h.interact(t, "U1", selectAction("remove-user", "remove-user", "core"))
	assert.Equal(t, []string{types.GenericErrorMessage}, h.sink.Texts())
}

func TestWaitForTasks(t *testing.T) {
	server := New(&types.Config{}, newFakeGitHub(), &fakeSlack{}, notify.New(log.Nop()), log.Nop())
	release := make(chan struct{})
	finished := false
	server.dispatch(func() {
		<-release
		finished = true
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, server.waitForTasks(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, server.waitForTasks(context.Background()))
	assert.True(t, finished)
}

func TestInteractionMalformedPayload(t *testing.T) {
	h := newHarness(t, "")

	w := h.serve(formRequest("/interaction", url.Values{"payload": {"{not json"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
