package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/store/sqlite"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/reconcile"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err, "failed to create test store")

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestStoreRecordRun(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := sqlite.RunSummary{
		RunID:      "run-123",
		Timestamp:  time.Now().Truncate(time.Second),
		Repository: "acme/widget",
		RunNumber:  7,
		Stats:      reconcile.Stats{Created: 2, Updated: 1, Closed: 3},
	}

	require.NoError(t, s.RecordRun(ctx, run))
}

func TestStoreRecordRunRejectsDuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := sqlite.RunSummary{RunID: "run-dup", Timestamp: time.Now(), Repository: "acme/widget", RunNumber: 1}
	require.NoError(t, s.RecordRun(ctx, run))

	err := s.RecordRun(ctx, run)
	assert.Error(t, err)
}

func TestStoreRecordAndListOperations(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := sqlite.RunSummary{RunID: "run-1", Timestamp: time.Now(), Repository: "acme/widget", RunNumber: 1}
	require.NoError(t, s.RecordRun(ctx, run))

	ts := time.Now().Truncate(time.Second)
	records := []sqlite.OperationRecord{
		{RunID: "run-1", Kind: "create", IssueNumber: 0, Fingerprint: "sha256:abc", Title: "[vibeCheck] gosec: G101", Succeeded: true, Timestamp: ts},
		{RunID: "run-1", Kind: "close", IssueNumber: 42, Fingerprint: "sha256:def", Title: "[vibeCheck] eslint: no-unused-vars", Succeeded: false, ErrorMessage: "rate limited", Timestamp: ts},
	}

	require.NoError(t, s.RecordOperations(ctx, records))

	fetched, err := s.ListOperationsByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	assert.Equal(t, "create", fetched[0].Kind)
	assert.True(t, fetched[0].Succeeded)
	assert.Equal(t, "close", fetched[1].Kind)
	assert.False(t, fetched[1].Succeeded)
	assert.Equal(t, "rate limited", fetched[1].ErrorMessage)
	assert.Equal(t, 42, fetched[1].IssueNumber)
}

func TestStoreRecordOperationsEmptyIsNoop(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.RecordOperations(context.Background(), nil))
}

func TestStoreListOperationsByRunEmptyWhenNoneRecorded(t *testing.T) {
	s := setupTestStore(t)
	fetched, err := s.ListOperationsByRun(context.Background(), "missing-run")
	require.NoError(t, err)
	assert.Empty(t, fetched)
}
