package render

import (
	"fmt"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// Labels builds the full label set for a finding's issue: base label,
// severity/confidence/effort/layer/tool axes, autofix:safe when
// applicable, and demo when any location is under a test-fixture path.
func Labels(base string, f domain.Finding, isDemo bool) []string {
	labels := []string{
		base,
		fmt.Sprintf("severity:%s", f.Severity),
		fmt.Sprintf("confidence:%s", f.Confidence),
		fmt.Sprintf("effort:%s", f.Effort),
		fmt.Sprintf("layer:%s", f.Layer),
		fmt.Sprintf("tool:%s", f.Tool),
	}
	if f.Autofix == domain.AutofixSafe {
		labels = append(labels, "autofix:safe")
	}
	if isDemo {
		labels = append(labels, "demo")
	}
	return labels
}
