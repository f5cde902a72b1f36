package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/observability"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

type fakeTracker struct {
	nextNumber  int
	created     []tracker.IssueInput
	updated     map[int]tracker.IssueInput
	closed      map[int]string
	commented   map[int]string
	failCreate  bool
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{nextNumber: 1, updated: map[int]tracker.IssueInput{}, closed: map[int]string{}, commented: map[int]string{}}
}

func (f *fakeTracker) EnsureLabels(ctx context.Context, specs []tracker.LabelSpec) error { return nil }

func (f *fakeTracker) SearchIssuesByLabel(ctx context.Context, labels []string) ([]domain.ExistingIssue, error) {
	return nil, nil
}

func (f *fakeTracker) CreateIssue(ctx context.Context, input tracker.IssueInput) (int, error) {
	if f.failCreate {
		return 0, errors.New("simulated create failure")
	}
	n := f.nextNumber
	f.nextNumber++
	f.created = append(f.created, input)
	return n, nil
}

func (f *fakeTracker) UpdateIssue(ctx context.Context, number int, input tracker.IssueInput) error {
	f.updated[number] = input
	return nil
}

func (f *fakeTracker) CloseIssue(ctx context.Context, number int, comment string) error {
	f.closed[number] = comment
	return nil
}

func (f *fakeTracker) AddIssueComment(ctx context.Context, number int, body string) error {
	f.commented[number] = body
	return nil
}

func (f *fakeTracker) WithRateLimit(ctx context.Context, op func(ctx context.Context) error) error {
	return op(ctx)
}

func TestDriverRunExecutesAllOperationKinds(t *testing.T) {
	ft := newFakeTracker()
	ops := []Operation{
		{Kind: OpCreate, Title: "t1", Body: "b1"},
		{Kind: OpUpdate, IssueNumber: 10, Title: "t2", Body: "b2"},
		{Kind: OpClose, IssueNumber: 11, Comment: "resolved"},
		{Kind: OpComment, IssueNumber: 12, Comment: "grace period"},
	}

	result := Run(context.Background(), ft, ops, observability.NewStdLogger())

	if len(result.Failures) != 0 {
		t.Fatalf("Failures = %+v, want none", result.Failures)
	}
	if len(ft.created) != 1 || ft.created[0].Title != "t1" {
		t.Errorf("created = %+v", ft.created)
	}
	if ft.updated[10].Title != "t2" {
		t.Errorf("updated[10] = %+v", ft.updated[10])
	}
	if ft.closed[11] != "resolved" {
		t.Errorf("closed[11] = %q", ft.closed[11])
	}
	if ft.commented[12] != "grace period" {
		t.Errorf("commented[12] = %q", ft.commented[12])
	}
	if result.Stats.Created != 1 || result.Stats.Updated != 1 || result.Stats.Closed != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestDriverRunContinuesPastFailure(t *testing.T) {
	ft := newFakeTracker()
	ft.failCreate = true
	ops := []Operation{
		{Kind: OpCreate, Title: "will fail"},
		{Kind: OpClose, IssueNumber: 5, Comment: "done"},
	}

	result := Run(context.Background(), ft, ops, observability.NewStdLogger())

	if len(result.Failures) != 1 {
		t.Fatalf("Failures = %+v, want exactly one", result.Failures)
	}
	if ft.closed[5] != "done" {
		t.Errorf("close after a prior failure was not executed: closed=%+v", ft.closed)
	}
	if result.Stats.Closed != 1 {
		t.Errorf("stats = %+v, want Closed=1 despite earlier failure", result.Stats)
	}
}
