package scoring

import "github.com/vibecheck-dev/vibecheck/internal/domain"

// Classification is the full set of normalized axes derived from a raw
// finding.
type Classification struct {
	Severity   domain.Severity
	Confidence domain.Confidence
	Effort     domain.Effort
	Layer      domain.Layer
	Autofix    domain.Autofix
}

// Classify runs every scoring axis over a raw finding.
func Classify(r RawFinding) Classification {
	return Classification{
		Severity:   Severity(r),
		Confidence: Confidence(r),
		Effort:     Effort(r),
		Layer:      Layer(r),
		Autofix:    Autofix(r),
	}
}
