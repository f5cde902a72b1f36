package observability_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdLogger(t *testing.T) {
	logger := observability.NewStdLogger()
	require.NotNil(t, logger)
}

func TestStdLogger_LogWarning(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := observability.NewStdLogger()
	ctx := context.Background()
	logger.LogWarning(ctx, "failed to close issue", map[string]interface{}{
		"runID":  "run-123",
		"issue":  42,
		"reason": "tracker timeout",
	})

	output := buf.String()
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "failed to close issue")
	assert.Contains(t, output, "runID=run-123")
	assert.Contains(t, output, "issue=42")
	assert.Contains(t, output, "reason=tracker timeout")
}

func TestStdLogger_LogInfo(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := observability.NewStdLogger()
	ctx := context.Background()
	logger.LogInfo(ctx, "sync completed", map[string]interface{}{
		"created": 3,
		"updated": 1,
		"closed":  2,
	})

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "sync completed")
	assert.Contains(t, output, "created=3")
	assert.Contains(t, output, "updated=1")
	assert.Contains(t, output, "closed=2")
}
