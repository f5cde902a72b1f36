// Package tracker defines the abstract issue-tracker capability set the
// reconciler consumes, independent of which concrete tracker (GitHub,
// GitLab, ...) backs it.
package tracker

import (
	"context"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// LabelSpec is an idempotent label definition to ensure exists before any
// issue referencing it is created.
type LabelSpec struct {
	Name        string
	Color       string
	Description string
}

// IssueInput is the payload for creating or updating an issue.
type IssueInput struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// Tracker is the capability set §4.4 requires. Every method is a single
// suspension point; callers are expected to invoke mutating methods through
// WithRateLimit so pacing and retry policy apply uniformly.
type Tracker interface {
	EnsureLabels(ctx context.Context, specs []LabelSpec) error
	SearchIssuesByLabel(ctx context.Context, labels []string) ([]domain.ExistingIssue, error)
	CreateIssue(ctx context.Context, input IssueInput) (int, error)
	UpdateIssue(ctx context.Context, number int, input IssueInput) error
	CloseIssue(ctx context.Context, number int, comment string) error
	AddIssueComment(ctx context.Context, number int, body string) error

	// WithRateLimit wraps a single tracker call: it enforces a minimum
	// inter-call delay and retries transient failures with backoff.
	WithRateLimit(ctx context.Context, op func(ctx context.Context) error) error
}
