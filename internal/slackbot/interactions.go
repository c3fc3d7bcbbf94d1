package slackbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"github.com/isomerpages/teambot/internal/processors"
	"github.com/isomerpages/teambot/internal/types"
	"github.com/isomerpages/teambot/internal/utils"
)

// interaction is the context shared by every action of one interaction payload
type interaction struct {
	channelID   string
	responseURL string
	slackUser   string
	actor       string
}

func (s *Server) handleInteraction(c *gin.Context) {
	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(c.PostForm("payload")), &callback); err != nil {
		s.logger.Warnw("failed to decode interaction payload", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	in := interaction{
		channelID:   callback.Container.ChannelID,
		responseURL: callback.ResponseURL,
		slackUser:   callback.User.ID,
		actor:       s.cfg.GitHubLogin(callback.User.ID),
	}
	if in.channelID == "" {
		in.channelID = callback.Channel.ID
	}
	actions := callback.ActionCallback.BlockActions

	// acknowledge first, the work outlives Slack's response deadline
	ctx := context.WithoutCancel(c.Request.Context())
	c.Status(http.StatusOK)

	s.dispatch(func() {
		for _, action := range actions {
			if err := s.handleAction(ctx, in, action); err != nil {
				s.logger.Errorw("interaction failed",
					"action", action.ActionID, "user", in.slackUser, "error", err)
				s.notifier.Notify(ctx, in.responseURL, types.GenericErrorMessage)
			}
		}
	})
}

func (s *Server) handleAction(ctx context.Context, in interaction, action *slack.BlockAction) error {
	kind := types.ParseInteractionKind(action.ActionID)
	s.logger.Infow("interaction received", "kind", kind.String(), "user", in.slackUser, "actor", in.actor)

	switch kind {
	case types.InteractionAddUserToTeam:
		return s.addUsersToTeam(ctx, in, action)
	case types.InteractionRemoveUserFromTeam:
		return s.selectMemberToRemove(ctx, in, action)
	case types.InteractionSelectUserToRemove:
		return s.removeMember(ctx, in, action)
	case types.InteractionCommitLogStart:
		return s.pickCommitLogEnd(ctx, in, action)
	case types.InteractionCommitLogEnd:
		return s.uploadCommitLog(ctx, in, action)
	case types.InteractionUnknown:
		s.logger.Debugw("ignoring unknown action", "action", action.ActionID)
		return nil
	default:
		return fmt.Errorf("unhandled interaction kind %s", kind)
	}
}

func (s *Server) addUsersToTeam(ctx context.Context, in interaction, action *slack.BlockAction) error {
	team := action.SelectedOption.Value
	if team == "" {
		return &types.MalformedInputError{Field: "team", Value: team}
	}

	var users []string
	for _, u := range strings.Split(action.BlockID, userSeparator) {
		if u = utils.NormalizeUsername(u); u != "" {
			users = append(users, u)
		}
	}

	processor := &processors.InviteProcessor{
		Directory:    s.github,
		Inviter:      s.github,
		Organization: s.cfg.Organization,
		Team:         team,
		Actor:        in.actor,
	}
	success, skipped, failed := processors.NewSequentialProcessor(users, processor, s.notifier.Reporter(in.responseURL)).Process(ctx)

	s.logger.Infow("invitations processed",
		"team", team, "actor", in.actor, "success", success, "skipped", skipped, "failed", failed)
	return nil
}

func (s *Server) selectMemberToRemove(ctx context.Context, in interaction, action *slack.BlockAction) error {
	team := action.SelectedOption.Value
	q := types.MembershipQuery{Organization: s.cfg.Organization, Team: team, Actor: in.actor}

	teamID, rejected, err := processors.Authorize(ctx, s.github, q)
	if err != nil {
		return err
	}
	if rejected != nil {
		s.notifier.Notify(ctx, in.responseURL, rejected.Message())
		return nil
	}

	members, err := s.github.ListTeamMembers(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to list members of %s: %w", team, err)
	}
	if len(members) == 0 {
		s.notifier.Notify(ctx, in.responseURL, fmt.Sprintf("There are no members in team %s", team))
		return nil
	}

	return s.post(ctx, in.channelID, slack.MsgOptionBlocks(removeMemberBlocks(team, members)...))
}

func (s *Server) removeMember(ctx context.Context, in interaction, action *slack.BlockAction) error {
	team := types.ActionArgument(action.ActionID)
	user := utils.NormalizeUsername(action.SelectedOption.Value)
	if team == "" || user == "" {
		return &types.MalformedInputError{Field: "action", Value: action.ActionID}
	}

	processor := &processors.RemoveProcessor{
		Directory:    s.github,
		Remover:      s.github,
		Organization: s.cfg.Organization,
		Team:         team,
		Actor:        in.actor,
	}
	s.notifier.Reporter(in.responseURL).Report(ctx, processor.ProcessUser(ctx, user))
	return nil
}

func (s *Server) pickCommitLogEnd(ctx context.Context, in interaction, action *slack.BlockAction) error {
	repo, _, _ := strings.Cut(action.BlockID, repoSeparator)
	if _, err := utils.ParseDate(action.SelectedDate); err != nil {
		return err
	}

	return s.post(ctx, in.channelID, slack.MsgOptionBlocks(commitEndBlocks(repo, action.SelectedDate, utils.DefaultDate(s.now()))...))
}

func (s *Server) uploadCommitLog(ctx context.Context, in interaction, action *slack.BlockAction) error {
	repo, start, ok := strings.Cut(action.BlockID, repoSeparator)
	if !ok || repo == "" {
		return &types.MalformedInputError{Field: "block_id", Value: action.BlockID}
	}
	since, until, err := utils.ParseDateRange(start, action.SelectedDate)
	if err != nil {
		return err
	}

	commits, err := s.github.ListCommits(ctx, s.cfg.Organization, repo, since, until)
	if err != nil {
		return fmt.Errorf("failed to list commits of %s: %w", repo, err)
	}

	var buf bytes.Buffer
	if err := utils.WriteCommitsCSV(&buf, commits); err != nil {
		return err
	}

	filename := utils.CommitsCSVFilename(repo, since, until)
	_, err = s.slack.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        in.channelID,
		Filename:       filename,
		Title:          filename,
		FileSize:       buf.Len(),
		Reader:         &buf,
		InitialComment: fmt.Sprintf("%d commits on %s from %s to %s", len(commits), repo, start, action.SelectedDate),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	s.logger.Infow("commit log uploaded", "repo", repo, "commits", len(commits), "channel", in.channelID)
	return nil
}
