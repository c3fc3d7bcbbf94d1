package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/isomerpages/teambot/internal/types"
)

// MediaType is an Accept header value. Several endpoints used here are only
// served under a preview media type.
type MediaType string

const (
	MediaTeams       MediaType = "application/vnd.github.hellcat-preview+json"
	MediaInvitations MediaType = "application/vnd.github.dazzler-preview+json"
	MediaUsers       MediaType = "application/vnd.github.machine-man-preview+json"
	MediaDefault     MediaType = "application/vnd.github+json"
)

var mediaTypes = []MediaType{MediaTeams, MediaInvitations, MediaUsers, MediaDefault}

const (
	defaultHost = "github.com"
	perPage     = 100
)

// Client talks to the GitHub REST API as the configured account
type Client struct {
	rest map[MediaType]*api.RESTClient
}

type clientOptions struct {
	transport http.RoundTripper
}

// ClientOption customises NewClient
type ClientOption func(*clientOptions)

// WithTransport replaces the HTTP transport used for every request
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient creates a client that authenticates with basic credentials built
// from cfg's username and access token
func NewClient(cfg *types.GitHubConfig, opts ...ClientOption) (*Client, error) {
	if cfg == nil || cfg.Username == "" || cfg.AccessToken == "" {
		return nil, fmt.Errorf("GitHub username and access token are required")
	}

	o := &clientOptions{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.AccessToken))

	c := &Client{rest: make(map[MediaType]*api.RESTClient, len(mediaTypes))}
	for _, mt := range mediaTypes {
		rest, err := api.NewRESTClient(api.ClientOptions{
			Host:      host,
			AuthToken: cfg.AccessToken,
			Transport: o.transport,
			Headers: map[string]string{
				"Accept":        string(mt),
				"Authorization": "Basic " + credentials,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		c.rest[mt] = rest
	}
	return c, nil
}

// get decodes a successful GET response into v
func (c *Client) get(ctx context.Context, mt MediaType, path string, v interface{}) error {
	if err := c.rest[mt].DoWithContext(ctx, http.MethodGet, path, nil, v); err != nil {
		return classify(err)
	}
	return nil
}

// exists reports whether path answers with a 2xx status, treating 404 as false
func (c *Client) exists(ctx context.Context, mt MediaType, path string) (bool, error) {
	resp, err := c.rest[mt].RequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return false, nil
		}
		return false, classify(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return true, nil
}

// mutate issues a membership-changing request. A non-2xx status is reported in
// the result rather than as an error.
func (c *Client) mutate(ctx context.Context, mt MediaType, method, path string, body interface{}) (types.MutationResult, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return types.MutationResult{}, err
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.rest[mt].RequestWithContext(ctx, method, path, reader)
	if err != nil {
		if status := statusOf(err); status != 0 {
			return types.MutationResult{StatusCode: status}, nil
		}
		return types.MutationResult{}, classify(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return types.MutationResult{StatusCode: resp.StatusCode}, nil
}

func statusOf(err error) int {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// classify maps an API failure onto the error taxonomy
func classify(err error) error {
	switch status := statusOf(err); {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %w", types.ErrNotFound, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %w", types.ErrPermissionDenied, err)
	case status >= 500 || status == 0:
		return fmt.Errorf("%w: %w", types.ErrTransient, err)
	default:
		return err
	}
}
