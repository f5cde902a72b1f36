package domain

// Location identifies one place in the source tree a finding touches.
type Location struct {
	Path      string
	StartLine int
	// EndLine is the last line of the finding's span. Zero means "unknown",
	// in which case renderers treat the span as a single line (StartLine).
	EndLine int
}

// End returns the effective end line, defaulting to StartLine when unset.
func (l Location) End() int {
	if l.EndLine < l.StartLine {
		return l.StartLine
	}
	return l.EndLine
}

// Evidence carries optional supporting material for a finding.
type Evidence struct {
	// Snippet is source-code context, with multiple samples separated by a
	// literal "---" line (see render.BuildCodeSamples).
	Snippet string
	// Links are reference URLs (advisories, documentation).
	Links []string
}

// SuggestedFix is an optional structured remediation plan for a finding.
type SuggestedFix struct {
	Goal       string
	Steps      []string
	Acceptance []string
}
