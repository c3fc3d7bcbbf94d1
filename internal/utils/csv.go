package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/isomerpages/teambot/internal/types"
)

var commitsHeader = []string{"sha", "author", "email", "date", "message", "url"}

// ReadUsernamesFromCSV reads GitHub usernames from a CSV file, one per line
func ReadUsernamesFromCSV(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	var users []string
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		user := NormalizeUsername(record[0])
		if user == "" {
			continue
		}
		if err := ValidateUsername(user); err != nil {
			pterm.Warning.Printf("Line %d: %v, skipping\n", i+1, err)
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

// WriteCommitsCSV writes one row per commit. Only the first line of each
// commit message is kept.
func WriteCommitsCSV(w io.Writer, commits []types.Commit) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(commitsHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range commits {
		subject, _, _ := strings.Cut(c.Message, "\n")
		row := []string{c.SHA, c.Author, c.Email, c.Date.UTC().Format(time.RFC3339), strings.TrimSpace(subject), c.URL}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write commit %s: %w", c.SHA, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCommitsCSVFile writes the commit log to path. A failure to flush the
// file on close is reported like any other write failure.
func WriteCommitsCSVFile(path string, commits []types.Commit) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write %s: %w", path, cerr)
		}
	}()

	return WriteCommitsCSV(file, commits)
}

// CommitsCSVFilename names the export for repo between two dates
func CommitsCSVFilename(repo string, since, until time.Time) string {
	return fmt.Sprintf("commits_%s_%s_%s.csv", repo, since.Format(DateLayout), until.Format(DateLayout))
}
