// Package render produces the deterministic Markdown title, body, and
// label set for a finding's issue. Every exported function here is pure:
// given the same finding and context it renders byte-identical output,
// which is what makes update operations idempotent (no spurious body/label
// churn on an unrelated rerun).
package render

import (
	"fmt"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

const maxTitleLength = 100

// Title renders "[<label>] <finding.title><locationHint>", truncated to at
// most 100 characters.
func Title(label string, f domain.Finding) string {
	title := fmt.Sprintf("[%s] %s%s", label, f.Title, locationHint(f))
	return truncateTitle(title)
}

// locationHint summarizes the finding's file spread for the title line.
func locationHint(f domain.Finding) string {
	files := f.UniqueFiles()
	switch {
	case len(files) == 1:
		return " in " + files[0]
	case len(files) >= 2 && len(files) <= 3:
		return fmt.Sprintf(" in %s +%d more", files[0], len(files)-1)
	default:
		return ""
	}
}

func truncateTitle(s string) string {
	if len(s) <= maxTitleLength {
		return s
	}
	window := s[:maxTitleLength-3]
	if idx := strings.LastIndexAny(window, " \t"); idx > 0 {
		return strings.TrimRight(s[:idx], " \t") + "..."
	}
	return window + "..."
}
