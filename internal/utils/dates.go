package utils

import (
	"fmt"
	"time"

	"github.com/isomerpages/teambot/internal/types"
)

// DateLayout is the format of Slack datepicker values
const DateLayout = "2006-01-02"

// DefaultDate is the initial value of the commit log date pickers: the 5th of
// the previous month
func DefaultDate(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 4).Format(DateLayout)
}

// ParseDate parses a datepicker value as midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &types.MalformedInputError{Field: "date", Value: s}
	}
	return t, nil
}

// ParseDateRange parses the start and end of a commit log and checks their order
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	since, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	until, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if until.Before(since) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s: %w", end, start, types.ErrMalformedInput)
	}
	return since, until, nil
}
