package slackbot

import (
	"context"
	"time"

	"github.com/slack-go/slack"

	"github.com/isomerpages/teambot/internal/processors"
	"github.com/isomerpages/teambot/internal/types"
)

// SlackAPI is the subset of *slack.Client the bot uses
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

var _ SlackAPI = (*slack.Client)(nil)

// GitHub is everything the bot asks of the GitHub organization
type GitHub interface {
	processors.Directory
	processors.Inviter
	processors.Remover
	ListTeams(ctx context.Context, org string) ([]string, error)
	ListTeamMembers(ctx context.Context, teamID types.TeamID) ([]string, error)
	ListCommits(ctx context.Context, org, repo string, since, until time.Time) ([]types.Commit, error)
}
