// Package notify posts messages back to Slack through interaction response URLs.
package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/isomerpages/teambot/internal/processors"
	"github.com/isomerpages/teambot/internal/types"
)

const defaultTimeout = 10 * time.Second

// Notifier sends fire-and-forget messages to Slack response URLs
type Notifier struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

// Option configures a Notifier
type Option func(*Notifier)

// WithClient replaces the underlying resty client
func WithClient(client *resty.Client) Option {
	return func(n *Notifier) {
		n.client = client
	}
}

// New creates a notifier that logs delivery failures to logger
func New(logger *zap.SugaredLogger, opts ...Option) *Notifier {
	n := &Notifier{
		client: resty.New().SetTimeout(defaultTimeout),
		logger: logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts text to responseURL. Delivery is attempted once and failures
// are only logged.
func (n *Notifier) Notify(ctx context.Context, responseURL, text string) {
	if responseURL == "" {
		n.logger.Warnw("no response url to notify", "text", text)
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(responseURL)
	if err != nil {
		n.logger.Warnw("failed to send notification", "error", err)
		return
	}
	if resp.IsError() {
		n.logger.Warnw("notification rejected", "status", resp.StatusCode(), "body", resp.String())
	}
}

// Reporter returns a processors.Reporter that notifies responseURL of each result
func (n *Notifier) Reporter(responseURL string) *ResponseReporter {
	return &ResponseReporter{notifier: n, url: responseURL}
}

// ResponseReporter turns processing results into response URL messages
type ResponseReporter struct {
	notifier *Notifier
	url      string
}

var _ processors.Reporter = (*ResponseReporter)(nil)

// Report sends the outcome's message, or the generic error message when the
// result carries an error
func (r *ResponseReporter) Report(ctx context.Context, result types.ProcessingResult) {
	if result.Error != nil {
		r.notifier.logger.Errorw("membership request failed", "user", result.User, "error", result.Error)
		r.notifier.Notify(ctx, r.url, types.GenericErrorMessage)
		return
	}

	if result.Outcome.Cause != nil {
		r.notifier.logger.Warnw("membership change failed",
			"user", result.User, "outcome", result.Outcome.Kind.String(), "error", result.Outcome.Cause)
	}
	r.notifier.Notify(ctx, r.url, result.Outcome.Message())
}
