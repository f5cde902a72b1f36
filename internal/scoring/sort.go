package scoring

import "github.com/vibecheck-dev/vibecheck/internal/domain"

// CompareFindingsForSort orders findings severity-desc, confidence-desc,
// path-asc, line-asc. It is a total order: ties at every key fall through
// to the next, and two findings identical on all four keys compare equal.
func CompareFindingsForSort(a, b domain.Finding) int {
	if c := compareSeverityDesc(a.Severity, b.Severity); c != 0 {
		return c
	}
	if c := compareConfidenceDesc(a.Confidence, b.Confidence); c != 0 {
		return c
	}
	pa, pb := a.CanonicalPath(), b.CanonicalPath()
	if pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	la, lb := a.CanonicalLocation().StartLine, b.CanonicalLocation().StartLine
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	default:
		return 0
	}
}

func compareSeverityDesc(a, b domain.Severity) int {
	ra, rb := severityRank(a), severityRank(b)
	switch {
	case ra > rb:
		return -1
	case ra < rb:
		return 1
	default:
		return 0
	}
}

func compareConfidenceDesc(a, b domain.Confidence) int {
	ra, rb := confidenceRank(a), confidenceRank(b)
	switch {
	case ra > rb:
		return -1
	case ra < rb:
		return 1
	default:
		return 0
	}
}

func severityRank(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 4
	case domain.SeverityHigh:
		return 3
	case domain.SeverityMedium:
		return 2
	case domain.SeverityLow:
		return 1
	default:
		return 0
	}
}

func confidenceRank(c domain.Confidence) int {
	switch c {
	case domain.ConfidenceHigh:
		return 3
	case domain.ConfidenceMedium:
		return 2
	case domain.ConfidenceLow:
		return 1
	default:
		return 0
	}
}
