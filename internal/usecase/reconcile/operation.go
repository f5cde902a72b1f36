// Package reconcile implements the reconciler state machine: a pure
// function mapping the current run's findings and the tracker's existing
// issues to a list of tracker operations, plus a driver that executes
// those operations through an abstract tracker.Tracker.
package reconcile

import "github.com/vibecheck-dev/vibecheck/internal/domain"

// OpKind is the tagged variant discriminator for Operation.
type OpKind string

const (
	OpCreate  OpKind = "create"
	OpUpdate  OpKind = "update"
	OpClose   OpKind = "close"
	OpComment OpKind = "comment"
)

// Operation is one tracker mutation the driver must execute. Only the
// fields relevant to Kind are populated.
type Operation struct {
	Kind OpKind

	// IssueNumber is zero for OpCreate.
	IssueNumber int

	// Finding is set for OpCreate/OpUpdate.
	Finding *domain.Finding

	Title  string
	Body   string
	Labels []string

	// Comment is set for OpClose (optional) and OpComment.
	Comment string
}

// Stats tallies the outcome of a single reconciliation pass.
type Stats struct {
	Created               int
	Updated               int
	Closed                int
	SkippedBelowThreshold int
	SkippedDuplicate      int
	SkippedMaxReached     int
}
