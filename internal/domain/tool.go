package domain

import "strings"

// Tool is the closed enum of analyzers whose output this system normalizes.
type Tool string

const (
	ToolTrunk             Tool = "trunk"
	ToolESLint            Tool = "eslint"
	ToolTSC               Tool = "tsc"
	ToolJSCPD             Tool = "jscpd"
	ToolDependencyCruiser Tool = "dependency-cruiser"
	ToolKnip              Tool = "knip"
	ToolSemgrep           Tool = "semgrep"
	ToolRuff              Tool = "ruff"
	ToolMypy              Tool = "mypy"
	ToolBandit            Tool = "bandit"
	ToolPMD               Tool = "pmd"
	ToolSpotbugs          Tool = "spotbugs"
)

// IsValid reports whether t is one of the recognized tool identifiers.
func (t Tool) IsValid() bool {
	switch t {
	case ToolTrunk, ToolESLint, ToolTSC, ToolJSCPD, ToolDependencyCruiser,
		ToolKnip, ToolSemgrep, ToolRuff, ToolMypy, ToolBandit, ToolPMD, ToolSpotbugs:
		return true
	default:
		return false
	}
}

// Lower returns the tool identifier lowercased, for case-insensitive matching
// against issue titles recovered from the tracker.
func (t Tool) Lower() string {
	return strings.ToLower(string(t))
}

// trunkSublinters are the composite analyzers trunk hosts internally. The
// reconciler's fallback-2 index (bySublinter) is keyed on these tokens.
var trunkSublinters = []string{"yamllint", "markdownlint", "checkov", "osv-scanner", "prettier"}

// TrunkSublinters returns the known sublinter tokens hosted by trunk.
func TrunkSublinters() []string {
	out := make([]string, len(trunkSublinters))
	copy(out, trunkSublinters)
	return out
}

// IsTrunkSublinter reports whether token names a known trunk sublinter.
func IsTrunkSublinter(token string) bool {
	token = strings.ToLower(token)
	for _, s := range trunkSublinters {
		if s == token {
			return true
		}
	}
	return false
}
