package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/isomerpages/teambot/internal/types"
)

type commitResponse struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// ListCommits returns the commits of org/repo authored between since and until
func (c *Client) ListCommits(ctx context.Context, org, repo string, since, until time.Time) ([]types.Commit, error) {
	var commits []types.Commit
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("since", since.UTC().Format(time.RFC3339))
		q.Set("until", until.UTC().Format(time.RFC3339))
		q.Set("per_page", fmt.Sprint(perPage))
		q.Set("page", fmt.Sprint(page))

		var resp []commitResponse
		path := fmt.Sprintf("repos/%s/%s/commits?%s", url.PathEscape(org), url.PathEscape(repo), q.Encode())
		if err := c.get(ctx, MediaDefault, path, &resp); err != nil {
			return nil, fmt.Errorf("failed to list commits for '%s/%s': %w", org, repo, err)
		}

		for _, r := range resp {
			commits = append(commits, types.Commit{
				SHA:     r.SHA,
				Author:  r.Commit.Author.Name,
				Email:   r.Commit.Author.Email,
				Date:    r.Commit.Author.Date,
				Message: r.Commit.Message,
				URL:     r.HTMLURL,
			})
		}
		if len(resp) < perPage {
			return commits, nil
		}
	}
}
