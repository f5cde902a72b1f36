package reconcile

import (
	"context"
	"fmt"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/observability"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"
)

// DriverResult tallies what the driver actually executed, as opposed to
// Stats, which tallies what Reconcile decided should happen.
type DriverResult struct {
	Stats    Stats
	Failures []OperationFailure
}

// OperationFailure records one operation the tracker rejected. The driver
// continues past a failure; it never aborts a run over a single issue.
type OperationFailure struct {
	Operation Operation
	Err       error
}

// Run executes ops against t in order, logging each outcome through logger.
// A per-operation failure is recorded and the driver continues; the run as
// a whole is considered failed (non-zero exit, by the caller's convention)
// whenever DriverResult.Failures is non-empty.
func Run(ctx context.Context, t tracker.Tracker, ops []Operation, logger observability.RunLogger) DriverResult {
	var result DriverResult

	for _, op := range ops {
		err := t.WithRateLimit(ctx, func(ctx context.Context) error {
			return execute(ctx, t, op)
		})
		if err != nil {
			logger.LogWarning(ctx, "operation failed", map[string]interface{}{
				"kind":  string(op.Kind),
				"issue": op.IssueNumber,
				"error": err.Error(),
			})
			result.Failures = append(result.Failures, OperationFailure{Operation: op, Err: err})
			continue
		}

		switch op.Kind {
		case OpCreate:
			result.Stats.Created++
		case OpUpdate:
			result.Stats.Updated++
		case OpClose:
			result.Stats.Closed++
		}
		logger.LogInfo(ctx, "operation applied", map[string]interface{}{
			"kind":  string(op.Kind),
			"issue": op.IssueNumber,
		})
	}

	return result
}

func execute(ctx context.Context, t tracker.Tracker, op Operation) error {
	switch op.Kind {
	case OpCreate:
		_, err := t.CreateIssue(ctx, tracker.IssueInput{Title: op.Title, Body: op.Body, Labels: op.Labels})
		return err
	case OpUpdate:
		return t.UpdateIssue(ctx, op.IssueNumber, tracker.IssueInput{Title: op.Title, Body: op.Body, Labels: op.Labels})
	case OpClose:
		return t.CloseIssue(ctx, op.IssueNumber, op.Comment)
	case OpComment:
		return t.AddIssueComment(ctx, op.IssueNumber, op.Comment)
	default:
		return fmt.Errorf("reconcile: unknown operation kind %q", op.Kind)
	}
}
