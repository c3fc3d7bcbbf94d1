package types

import (
	"fmt"

	"github.com/isomerpages/teambot/internal/log"
)

// Config holds everything the bot needs at process start. It is built once
// and shared by pointer.
type Config struct {
	Organization string            `mapstructure:"organization"`
	TeamLeaders  map[string]string `mapstructure:"-"` // Slack user ID -> GitHub login
	GitHub       GitHubConfig      `mapstructure:"github"`
	Slack        SlackConfig       `mapstructure:"slack"`
	Server       ServerConfig      `mapstructure:"server"`
	Log          log.Conf          `mapstructure:"log"`
}

// GitHubConfig holds the credentials of the account that performs permissioned changes
type GitHubConfig struct {
	Host        string `mapstructure:"host"`
	Username    string `mapstructure:"username"`
	AccessToken string `mapstructure:"access_token"`
}

// SlackConfig holds the bot credentials and the GitHub OAuth link used by /signin
type SlackConfig struct {
	BotToken         string `mapstructure:"bot_token"`
	SigningSecret    string `mapstructure:"signing_secret"`
	OAuthClientID    string `mapstructure:"oauth_client_id"`
	OAuthRedirectURL string `mapstructure:"oauth_redirect_url"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// Validate checks the settings shared by every command
func (c *Config) Validate() error {
	if c.Organization == "" {
		return fmt.Errorf("organization is required")
	}
	if c.GitHub.Username == "" || c.GitHub.AccessToken == "" {
		return fmt.Errorf("GitHub username and access token are required")
	}
	return nil
}

// ValidateServe additionally checks the settings needed to run the Slack bot
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("Slack bot token is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

// GitHubLogin returns the GitHub login registered for a Slack user, or "" when
// the Slack user is not a known team lead
func (c *Config) GitHubLogin(slackUserID string) string {
	return c.TeamLeaders[slackUserID]
}
