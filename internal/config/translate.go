package config

import (
	"fmt"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// ToDomain converts the on-disk IssueConfig into its typed domain
// equivalent, validating the configured threshold enums.
func (c IssueConfig) ToDomain() (domain.IssueConfig, error) {
	threshold := domain.SeverityThreshold(c.SeverityThreshold)
	if !threshold.IsValid() {
		return domain.IssueConfig{}, fmt.Errorf("config: invalid issue.severityThreshold %q", c.SeverityThreshold)
	}

	confidence := domain.Confidence(c.ConfidenceThreshold)
	if !confidence.IsValid() {
		return domain.IssueConfig{}, fmt.Errorf("config: invalid issue.confidenceThreshold %q", c.ConfidenceThreshold)
	}

	return domain.IssueConfig{
		Enabled:             c.Enabled,
		Label:               c.Label,
		MaxNewPerRun:        c.MaxNewPerRun,
		SeverityThreshold:   threshold,
		ConfidenceThreshold: confidence,
		CloseResolved:       c.CloseResolved,
		Assignees:           c.Assignees,
	}, nil
}
