package types

import "time"

// ProcessingResult represents the result of processing a single user
type ProcessingResult struct {
	User    string
	Outcome DecisionOutcome
	Error   error
}

// Commit represents one entry of a repository's commit log
type Commit struct {
	SHA     string    `json:"sha"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	URL     string    `json:"html_url"`
}
