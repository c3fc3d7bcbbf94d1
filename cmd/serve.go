package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/isomerpages/teambot/internal/api"
	"github.com/isomerpages/teambot/internal/log"
	"github.com/isomerpages/teambot/internal/notify"
	"github.com/isomerpages/teambot/internal/slackbot"
)

var _ slackbot.GitHub = (*api.Client)(nil)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Slack bot HTTP server",
	Long:  "Serve the Slack slash commands (/add-users, /remove-users, /commit-log, /signin) and interactive components until interrupted",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides PORT and server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		return fmt.Errorf("unsupported server mode '%s'", cfg.Server.Mode)
	}

	logger, err := log.New(&cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := api.NewClient(&cfg.GitHub)
	if err != nil {
		return err
	}

	server := slackbot.New(cfg, client, slack.New(cfg.Slack.BotToken), notify.New(logger), logger)

	logger.Infow("starting teambot",
		"organization", cfg.Organization,
		"github_host", cfg.GitHub.Host,
		"team_leaders", len(cfg.TeamLeaders),
	)
	return server.Run(cmd.Context())
}
