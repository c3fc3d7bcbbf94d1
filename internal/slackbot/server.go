// Package slackbot serves the Slack slash commands and interactive components.
package slackbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/isomerpages/teambot/internal/notify"
	"github.com/isomerpages/teambot/internal/types"
)

// Server answers Slack requests for a single GitHub organization
type Server struct {
	cfg      *types.Config
	github   GitHub
	slack    SlackAPI
	notifier *notify.Notifier
	logger   *zap.SugaredLogger

	// runs interaction work after Slack has been acknowledged
	dispatch func(task func())
	tasks    sync.WaitGroup
	now      func() time.Time
}

// New creates a server. cfg must already be validated.
func New(cfg *types.Config, github GitHub, api SlackAPI, notifier *notify.Notifier, logger *zap.SugaredLogger) *Server {
	s := &Server{
		cfg:      cfg,
		github:   github,
		slack:    api,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	s.dispatch = s.goTracked
	return s
}

// goTracked runs task in the background so that Run can wait for it
func (s *Server) goTracked(task func()) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		task()
	}()
}

// waitForTasks blocks until dispatched work has finished or ctx is done
func (s *Server) waitForTasks(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("interactions still running: %w", ctx.Err())
	}
}

// Engine builds the gin engine with every route registered
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog(s.logger))

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	slackRoutes := engine.Group("/")
	if s.cfg.Slack.SigningSecret != "" {
		slackRoutes.Use(verifySignature(s.cfg.Slack.SigningSecret, s.logger))
	} else {
		s.logger.Warn("no signing secret configured, slack requests are not verified")
	}

	slackRoutes.POST("/verify", s.handleVerify)
	slackRoutes.POST("/signin", s.handleSignIn)
	slackRoutes.POST("/add-users", s.handleAddUsers)
	slackRoutes.POST("/remove-users", s.handleRemoveUsers)
	slackRoutes.POST("/commit-log", s.handleCommitLog)
	slackRoutes.POST("/interaction", s.handleInteraction)

	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	conf := s.cfg.Server
	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Engine(),
		ReadTimeout:  time.Duration(conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("http server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.ShutdownTimeout)*time.Second)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := s.waitForTasks(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
