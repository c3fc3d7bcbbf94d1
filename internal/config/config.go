package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/isomerpages/teambot/internal/log"
	"github.com/isomerpages/teambot/internal/types"
	"github.com/isomerpages/teambot/internal/utils"
)

// environment variables that do not follow the key path naming
var envBindings = map[string]string{
	"organization":             "GITHUB_ORGANIZATION",
	"github.username":          "GITHUB_USERNAME",
	"github.access_token":      "GITHUB_ACCESS_TOKEN",
	"github.host":              "GITHUB_HOST",
	"slack.bot_token":          "SLACK_BOT_TOKEN",
	"slack.signing_secret":     "SLACK_SIGNING_SECRET",
	"slack.oauth_client_id":    "GITHUB_OAUTH_CLIENT_ID",
	"slack.oauth_redirect_url": "GITHUB_OAUTH_REDIRECT_URL",
	"team_leaders":             "TEAM_LEADERS",
	"server.port":              "PORT",
}

// Load builds the configuration from defaults, an optional config file, a .env
// file in the working directory and the process environment, in increasing
// order of precedence
func Load(path string) (*types.Config, error) {
	// a missing .env is fine; variables already set in the environment win
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	leaders, err := teamLeaders(v)
	if err != nil {
		return nil, err
	}
	cfg.TeamLeaders = leaders

	if err := cfg.Log.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.host", "github.com")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)

	logConf := log.SetDefaults()
	v.SetDefault("log.output", logConf.Output)
	v.SetDefault("log.path", logConf.Path)
	v.SetDefault("log.filename", logConf.Filename)
	v.SetDefault("log.level", logConf.Level)
	v.SetDefault("log.keep_days", logConf.KeepDays)
	v.SetDefault("log.rotate_size", logConf.RotateSize)
	v.SetDefault("log.rotate_num", logConf.RotateNum)
}

// teamLeaders reads team_leaders either as a single string or, from a config
// file, as a list of entries. Map keys are avoided because viper lowercases
// them and Slack user IDs are upper case.
func teamLeaders(v *viper.Viper) (map[string]string, error) {
	switch raw := v.Get("team_leaders").(type) {
	case nil:
		return map[string]string{}, nil
	case string:
		return ParseTeamLeaders(raw)
	default:
		return ParseTeamLeaders(strings.Join(v.GetStringSlice("team_leaders"), ","))
	}
}

// ParseTeamLeaders parses "U123=alice,U456=bob" into a Slack user ID to GitHub
// login map. Entries may also be separated by whitespace.
func ParseTeamLeaders(s string) (map[string]string, error) {
	leaders := make(map[string]string)
	entries := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	for _, entry := range entries {
		slackID, login, ok := strings.Cut(entry, "=")
		slackID = strings.TrimSpace(slackID)
		login = utils.NormalizeUsername(login)
		if !ok || slackID == "" || login == "" {
			return nil, fmt.Errorf("invalid team leader entry: %w", &types.MalformedInputError{Field: "team_leaders", Value: entry})
		}
		leaders[slackID] = login
	}
	return leaders, nil
}
