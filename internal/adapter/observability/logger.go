// Package observability adapts the structured logging pattern used by the
// httpx client package to the reconciler driver, which logs plain
// informational and warning events rather than HTTP request/response pairs.
package observability

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// RunLogger is the structured logger the reconciler driver and CLI commands
// log run progress and per-operation outcomes through.
type RunLogger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
	LogError(ctx context.Context, message string, fields map[string]interface{})
}

// StdLogger writes structured log lines to the standard library logger.
type StdLogger struct{}

// NewStdLogger returns a RunLogger backed by log.Printf.
func NewStdLogger() *StdLogger {
	return &StdLogger{}
}

func (l *StdLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	log.Printf("[INFO] %s%s", message, formatFields(fields))
}

func (l *StdLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	log.Printf("[WARN] %s%s", message, formatFields(fields))
}

func (l *StdLogger) LogError(ctx context.Context, message string, fields map[string]interface{}) {
	log.Printf("[ERROR] %s%s", message, formatFields(fields))
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	b.WriteString(")")
	return b.String()
}
