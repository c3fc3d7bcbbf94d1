package slackbot

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// verifySignature rejects requests that were not signed with the app's
// signing secret. The body is restored for the handlers.
func verifySignature(secret string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		verifier, err := slack.NewSecretsVerifier(c.Request.Header, secret)
		if err != nil {
			logger.Warnw("request without slack signature", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if _, err := verifier.Write(body); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if err := verifier.Ensure(); err != nil {
			logger.Warnw("invalid slack signature", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}

// accessLog writes one line per request, skipping health checks
func accessLog(logger *zap.SugaredLogger) gin.HandlerFunc {
	excludedPaths := map[string]bool{
		"/health": true,
	}

	return func(c *gin.Context) {
		if excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Infow("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		)
	}
}
