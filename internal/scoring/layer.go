package scoring

import (
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// securityTokens are substrings whose presence in a rule id marks a finding
// as security-layer regardless of tool.
var securityTokens = []string{
	"security", "xss", "injection", "csrf", "sql", "xxe", "ssrf", "auth",
	"crypto", "secret", "password", "eval", "dangerous", "hardcoded",
	"random", "prototype", "pollution", "vulnerable",
}

var architectureTokens = []string{"import", "dependency", "cycle"}

// spotbugsLayerTokens is the narrower token set that decides whether a
// spotbugs finding lands in the security layer.
var spotbugsLayerTokens = []string{"security", "sql", "xss"}

// Layer classifies a raw finding's concern area. The checks are an ordered
// cascade: the first one that matches wins.
func Layer(r RawFinding) domain.Layer {
	ruleLower := strings.ToLower(r.RuleID)

	switch {
	case r.Tool == domain.ToolBandit:
		return domain.LayerSecurity

	case r.Tool == domain.ToolSpotbugs:
		if containsAny(ruleLower, spotbugsLayerTokens) {
			return domain.LayerSecurity
		}
		return domain.LayerCode

	case strings.HasPrefix(r.RuleID, "GHSA-"), strings.HasPrefix(r.RuleID, "CVE-"), strings.HasPrefix(r.RuleID, "CWE-"):
		return domain.LayerSecurity

	case r.Tool == domain.ToolTrunk && (strings.Contains(r.RuleID, "GHSA") || strings.Contains(r.RuleID, "CVE")):
		return domain.LayerSecurity

	case containsAny(ruleLower, securityTokens):
		return domain.LayerSecurity

	case r.Tool == domain.ToolRuff && strings.HasPrefix(r.RuleID, "S"):
		return domain.LayerSecurity

	case r.Tool == domain.ToolDependencyCruiser, r.Tool == domain.ToolKnip, containsAny(ruleLower, architectureTokens):
		return domain.LayerArchitecture

	default:
		return domain.LayerCode
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
