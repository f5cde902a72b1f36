package scoring

import (
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// Effort estimates the fix size for a raw finding. An available autofix
// always wins regardless of tool; otherwise location count, then per-tool
// heuristics, decide.
func Effort(r RawFinding) domain.Effort {
	if r.HasAutofix {
		return domain.EffortSmall
	}

	switch {
	case r.Locations > 3:
		return domain.EffortLarge
	case r.Locations > 1:
		return domain.EffortMedium
	}

	switch r.Tool {
	case domain.ToolJSCPD:
		return domain.EffortMedium

	case domain.ToolDependencyCruiser:
		if r.Kind == "cycle" {
			return domain.EffortLarge
		}
		return domain.EffortMedium

	case domain.ToolKnip:
		return domain.EffortSmall

	case domain.ToolTSC, domain.ToolMypy:
		return domain.EffortMedium

	case domain.ToolESLint:
		return domain.EffortSmall

	case domain.ToolTrunk:
		if domain.IsTrunkSublinter(firstWord(r.Title)) && strings.EqualFold(firstWord(r.Title), "prettier") {
			return domain.EffortSmall
		}
		return domain.EffortMedium

	case domain.ToolRuff:
		if strings.HasPrefix(r.RuleID, "N") || strings.HasPrefix(r.RuleID, "D") {
			return domain.EffortSmall
		}
		return domain.EffortMedium

	case domain.ToolBandit:
		if isHardcodedSecretVariant(r.RuleID) {
			return domain.EffortSmall
		}
		return domain.EffortMedium

	case domain.ToolPMD:
		lower := strings.ToLower(r.RuleID)
		if strings.Contains(lower, "unused") || strings.Contains(lower, "empty") {
			return domain.EffortSmall
		}
		return domain.EffortMedium

	case domain.ToolSpotbugs:
		return domain.EffortMedium

	default:
		return domain.EffortMedium
	}
}

var banditHardcodedSecretRules = []string{
	"B105", "B106", "B107", // hardcoded password string/funcarg/default
	"B108", // hardcoded tmp
}

func isHardcodedSecretVariant(ruleID string) bool {
	for _, r := range banditHardcodedSecretRules {
		if strings.EqualFold(ruleID, r) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ruleID), "hardcoded")
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " :\t"); i >= 0 {
		return s[:i]
	}
	return s
}
