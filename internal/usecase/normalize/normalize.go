// Package normalize converts raw per-tool analyzer output into the
// normalized domain.Finding set, by delegating the Severity/Confidence/
// Layer/Effort/Autofix axes to internal/scoring.
package normalize

import (
	"github.com/vibecheck-dev/vibecheck/internal/domain"
	"github.com/vibecheck-dev/vibecheck/internal/scoring"
)

// RawFinding is one raw finding as read from a tool's own output format
// (already projected into a tool-agnostic shape by the caller). Only the
// scoring fields relevant to Tool are expected to be populated.
type RawFinding struct {
	Tool      domain.Tool
	RuleID    string
	Title     string
	Message   string
	Locations []domain.Location
	Evidence  *domain.Evidence

	DuplicateLines     int
	DuplicateTokens    int
	Kind               string
	UpstreamSeverity   string
	UpstreamConfidence string
	UpstreamRank       int
	Category           string
	HasAutofix         bool
}

// Normalize classifies each raw finding and assembles the resulting
// domain.Finding set. Order is preserved; scoring and fingerprinting are
// both total and side-effect-free, so the result is deterministic for a
// given input.
func Normalize(raw []RawFinding) []domain.Finding {
	findings := make([]domain.Finding, 0, len(raw))
	for _, r := range raw {
		class := scoring.Classify(scoring.RawFinding{
			Tool:               r.Tool,
			RuleID:             r.RuleID,
			Title:              r.Title,
			DuplicateLines:     r.DuplicateLines,
			DuplicateTokens:    r.DuplicateTokens,
			Kind:               r.Kind,
			UpstreamSeverity:   r.UpstreamSeverity,
			UpstreamConfidence: r.UpstreamConfidence,
			UpstreamRank:       r.UpstreamRank,
			Category:           r.Category,
			HasAutofix:         r.HasAutofix,
			Locations:          len(r.Locations),
		})

		findings = append(findings, domain.Finding{
			Tool:       r.Tool,
			RuleID:     r.RuleID,
			Title:      r.Title,
			Message:    r.Message,
			Severity:   class.Severity,
			Confidence: class.Confidence,
			Effort:     class.Effort,
			Layer:      class.Layer,
			Autofix:    class.Autofix,
			Locations:  r.Locations,
			Evidence:   r.Evidence,
		})
	}
	return findings
}
