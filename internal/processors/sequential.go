package processors

import (
	"context"

	"github.com/isomerpages/teambot/internal/types"
)

// SequentialProcessor handles users one at a time, in submission order
type SequentialProcessor struct {
	users     []string
	processor UserProcessor
	reporter  Reporter
}

// NewSequentialProcessor creates a new sequential processor. reporter may be nil.
func NewSequentialProcessor(users []string, processor UserProcessor, reporter Reporter) *SequentialProcessor {
	return &SequentialProcessor{
		users:     users,
		processor: processor,
		reporter:  reporter,
	}
}

// Process runs every user to completion before starting the next, reporting
// each result before moving on
func (sp *SequentialProcessor) Process(ctx context.Context) (successCount, skippedCount, errorCount int) {
	for _, user := range sp.users {
		result := sp.processor.ProcessUser(ctx, user)

		switch {
		case result.Error != nil:
			errorCount++
		case result.Outcome.Kind == types.OutcomeInvited, result.Outcome.Kind == types.OutcomeRemoved:
			successCount++
		case result.Outcome.Kind == types.OutcomeInviteFailed, result.Outcome.Kind == types.OutcomeRemoveFailed:
			errorCount++
		default:
			// rejected, already a member or already invited
			skippedCount++
		}

		if sp.reporter != nil {
			sp.reporter.Report(ctx, result)
		}
	}

	return successCount, skippedCount, errorCount
}
