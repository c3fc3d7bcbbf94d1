package slackbot

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/isomerpages/teambot/internal/types"
)

const (
	msgEnterUsername   = "Please enter the username of the member you wish to invite"
	msgEnterRepository = "Please enter the name of the repository"
	msgSignIn          = "Connect your Slack account to GitHub!"
	msgSignInDisabled  = "GitHub sign in is not configured for this workspace"
	msgTooManyUsers    = "Too many usernames for one request, please split them into smaller batches"

	// separates usernames in the block id of the add-users menu
	userSeparator = "*"
	// separates the repository from the start date in commit log block ids
	repoSeparator = "@"

	githubAuthorizeURL = "https://github.com/login/oauth/authorize"

	// Block Kit limits
	maxSelectOptions = 100
	maxOptionGroups  = 100
	maxBlockIDLength = 255
)

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

// selectBlocks renders a prompt followed by a static select of values. Lists
// longer than one select allows are split into option groups.
func selectBlocks(prompt, blockID, placeholder, actionID string, values []string) []slack.Block {
	options := make([]*slack.OptionBlockObject, 0, len(values))
	for _, v := range values {
		options = append(options, slack.NewOptionBlockObject(v, plain(v), nil))
	}

	var menu *slack.SelectBlockElement
	if len(options) <= maxSelectOptions {
		menu = slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain(placeholder), actionID, options...)
	} else {
		menu = slack.NewOptionsGroupSelectBlockElement(slack.OptTypeStatic, plain(placeholder), actionID, optionGroups(options)...)
	}
	return []slack.Block{
		slack.NewSectionBlock(markdown(prompt), nil, nil),
		slack.NewActionBlock(blockID, menu),
	}
}

// optionGroups chunks options into labelled groups, dropping whatever exceeds
// the group limit
func optionGroups(options []*slack.OptionBlockObject) []*slack.OptionGroupBlockObject {
	var groups []*slack.OptionGroupBlockObject
	for start := 0; start < len(options) && len(groups) < maxOptionGroups; start += maxSelectOptions {
		end := min(start+maxSelectOptions, len(options))
		label := plain(fmt.Sprintf("%d-%d", start+1, end))
		groups = append(groups, slack.NewOptionGroupBlockElement(label, options[start:end]...))
	}
	return groups
}

// userBlockID joins usernames into the block id of the add-users menu.
// ok is false when the result is longer than Slack accepts.
func userBlockID(users []string) (id string, ok bool) {
	id = strings.Join(users, userSeparator)
	return id, len(id) <= maxBlockIDLength
}

// addUsersBlocks asks which team the users should be invited to. The
// usernames travel back to the bot in the block id.
func addUsersBlocks(blockID string, users, teams []string) []slack.Block {
	return selectBlocks(
		fmt.Sprintf("Which team do you want to add %s to?", strings.Join(users, ", ")),
		blockID,
		"Select team to add to",
		types.InteractionAddUserToTeam.ActionID(),
		teams,
	)
}

func removeTeamBlocks(teams []string) []slack.Block {
	return selectBlocks(
		"Which team do you want to remove users from?",
		types.InteractionRemoveUserFromTeam.ActionID(),
		"Select team to remove from",
		types.InteractionRemoveUserFromTeam.ActionID(),
		teams,
	)
}

// removeMemberBlocks lists the members of team. The team travels back to the
// bot as the argument of the action id.
func removeMemberBlocks(team string, members []string) []slack.Block {
	return selectBlocks(
		fmt.Sprintf("Which member of %s do you want to remove?", team),
		types.InteractionSelectUserToRemove.ActionID(),
		"Select member to remove",
		types.InteractionSelectUserToRemove.ActionID()+":"+team,
		members,
	)
}

func datePickerBlocks(prompt, blockID string, kind types.InteractionKind, initialDate string) []slack.Block {
	picker := slack.NewDatePickerBlockElement(kind.ActionID())
	picker.InitialDate = initialDate
	picker.Placeholder = plain("Select a date")

	return []slack.Block{
		slack.NewSectionBlock(markdown(prompt), nil, slack.NewAccessory(picker), slack.SectionBlockOptionBlockID(blockID)),
	}
}

func commitStartBlocks(repo, initialDate string) []slack.Block {
	return datePickerBlocks("Pick a start date for the commit log.",
		repo+repoSeparator+types.InteractionCommitLogStart.ActionID(), types.InteractionCommitLogStart, initialDate)
}

func commitEndBlocks(repo, startDate, initialDate string) []slack.Block {
	return datePickerBlocks("Pick an end date for the commit log.",
		repo+repoSeparator+startDate, types.InteractionCommitLogEnd, initialDate)
}

// signInMessage is the ephemeral reply to /signin
func signInMessage(link string) slack.Msg {
	button := slack.NewButtonBlockElement("connect-github", "", plain("Connect GitHub account"))
	button.URL = link
	button.Style = slack.StylePrimary

	return slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         msgSignIn,
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(markdown(msgSignIn), nil, nil),
			slack.NewActionBlock("", button),
		}},
	}
}
