package slackbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/isomerpages/teambot/internal/types"
	"github.com/isomerpages/teambot/internal/utils"
)

// handleVerify answers the Events API url_verification challenge
func (s *Server) handleVerify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil || event.Type != slackevents.URLVerification {
		s.logger.Warnw("unexpected event on verify endpoint", "type", event.Type, "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	var challenge slackevents.ChallengeResponse
	if err := json.Unmarshal(body, &challenge); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.String(http.StatusOK, challenge.Challenge)
}

func (s *Server) handleSignIn(c *gin.Context) {
	conf := s.cfg.Slack
	if conf.OAuthClientID == "" {
		c.JSON(http.StatusOK, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: msgSignInDisabled})
		return
	}

	query := url.Values{}
	query.Set("client_id", conf.OAuthClientID)
	if conf.OAuthRedirectURL != "" {
		query.Set("redirect_uri", conf.OAuthRedirectURL)
	}
	c.JSON(http.StatusOK, signInMessage(githubAuthorizeURL+"?"+query.Encode()))
}

func (s *Server) handleAddUsers(c *gin.Context) {
	cmd, ok := s.parseCommand(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	users, invalid := partitionUsernames(utils.ParseUsernames(cmd.Text))
	if len(users) == 0 && len(invalid) == 0 {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(msgEnterUsername, false))
		return
	}
	if len(users) == 0 {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(invalidUsernamesMessage(invalid), false))
		return
	}
	blockID, ok := userBlockID(users)
	if !ok {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(msgTooManyUsers, false))
		return
	}

	teams, err := s.github.ListTeams(ctx, s.cfg.Organization)
	if err != nil {
		s.failInChannel(c, cmd.ChannelID, "list teams", err)
		return
	}
	if len(teams) == 0 {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(noTeamsMessage(s.cfg.Organization), false))
		return
	}

	if len(invalid) > 0 {
		if err := s.post(ctx, cmd.ChannelID, slack.MsgOptionText(invalidUsernamesMessage(invalid), false)); err != nil {
			s.respondWithError(c, err)
			return
		}
	}
	s.reply(c, cmd.ChannelID, slack.MsgOptionBlocks(addUsersBlocks(blockID, users, teams)...))
}

func (s *Server) handleRemoveUsers(c *gin.Context) {
	cmd, ok := s.parseCommand(c)
	if !ok {
		return
	}

	teams, err := s.github.ListTeams(c.Request.Context(), s.cfg.Organization)
	if err != nil {
		s.failInChannel(c, cmd.ChannelID, "list teams", err)
		return
	}
	if len(teams) == 0 {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(noTeamsMessage(s.cfg.Organization), false))
		return
	}

	s.reply(c, cmd.ChannelID, slack.MsgOptionBlocks(removeTeamBlocks(teams)...))
}

func (s *Server) handleCommitLog(c *gin.Context) {
	cmd, ok := s.parseCommand(c)
	if !ok {
		return
	}

	repo := strings.TrimSpace(cmd.Text)
	if repo == "" || strings.Contains(repo, repoSeparator) {
		s.reply(c, cmd.ChannelID, slack.MsgOptionText(msgEnterRepository, false))
		return
	}

	s.reply(c, cmd.ChannelID, slack.MsgOptionBlocks(commitStartBlocks(repo, utils.DefaultDate(s.now()))...))
}

func (s *Server) parseCommand(c *gin.Context) (slack.SlashCommand, bool) {
	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil {
		s.logger.Warnw("failed to parse slash command", "path", c.Request.URL.Path, "error", err)
		c.Status(http.StatusBadRequest)
		return cmd, false
	}
	s.logger.Infow("slash command received", "command", cmd.Command, "user", cmd.UserID, "channel", cmd.ChannelID)
	return cmd, true
}

func (s *Server) post(ctx context.Context, channelID string, options ...slack.MsgOption) error {
	if _, _, err := s.slack.PostMessageContext(ctx, channelID, options...); err != nil {
		return fmt.Errorf("failed to post message to %s: %w", channelID, err)
	}
	return nil
}

// reply answers a slash command with a message in its channel. If Slack
// refuses the message the command response carries the generic error instead.
func (s *Server) reply(c *gin.Context, channelID string, options ...slack.MsgOption) {
	if err := s.post(c.Request.Context(), channelID, options...); err != nil {
		s.respondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) respondWithError(c *gin.Context, err error) {
	s.logger.Errorw("slash command failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusOK, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: types.GenericErrorMessage})
}

func (s *Server) failInChannel(c *gin.Context, channelID, action string, err error) {
	s.logger.Errorw("request failed", "action", action, "error", err)
	s.reply(c, channelID, slack.MsgOptionText(types.GenericErrorMessage, false))
}

// partitionUsernames separates well-formed GitHub logins from the rest
func partitionUsernames(users []string) (valid, invalid []string) {
	for _, u := range users {
		if err := utils.ValidateUsername(u); err != nil {
			invalid = append(invalid, u)
			continue
		}
		valid = append(valid, u)
	}
	return valid, invalid
}

func invalidUsernamesMessage(invalid []string) string {
	return fmt.Sprintf("These are not valid GitHub usernames and were skipped: %s", strings.Join(invalid, ", "))
}

func noTeamsMessage(org string) string {
	return fmt.Sprintf("There are no teams on %s", org)
}
