package reconcile

import (
	"regexp"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// toolRuleKey is the fallback-1 index key: lowercased (tool, ruleId).
type toolRuleKey struct {
	tool string
	rule string
}

// indices are the three lookup tables built once, up front, from a linear
// scan of existing issues. Probing order is primary -> tool/rule ->
// sublinter.
type indices struct {
	byFingerprint map[string]domain.ExistingIssue
	byToolRule    map[toolRuleKey]domain.ExistingIssue
	bySublinter   map[string]domain.ExistingIssue
}

// titleToolRulePattern recovers a "tool: ruleId" pair from a title of the
// shape "[label] tool: ruleId …".
var titleToolRulePattern = regexp.MustCompile(`^\[[^\]]+\]\s+([A-Za-z0-9_.-]+):\s*(\S+)`)

// titleLabelPrefixPattern strips the leading "[label] " token.
var titleLabelPrefixPattern = regexp.MustCompile(`^\[[^\]]+\]\s*`)

// firstWordPattern extracts the first word-token in a string.
var firstWordPattern = regexp.MustCompile(`\w+`)

func buildIndices(existing []domain.ExistingIssue) indices {
	idx := indices{
		byFingerprint: make(map[string]domain.ExistingIssue),
		byToolRule:    make(map[toolRuleKey]domain.ExistingIssue),
		bySublinter:   make(map[string]domain.ExistingIssue),
	}

	for _, issue := range existing {
		if issue.Metadata.Fingerprint != "" {
			idx.byFingerprint[issue.Metadata.Fingerprint] = issue
		}
		if tool, rule, ok := parseToolRuleTitle(issue.Title); ok {
			idx.byToolRule[toolRuleKey{tool, rule}] = issue
		}
		if token, ok := firstTitleToken(issue.Title); ok && domain.IsTrunkSublinter(token) {
			idx.bySublinter[strings.ToLower(token)] = issue
		}
	}

	return idx
}

func parseToolRuleTitle(title string) (tool, rule string, ok bool) {
	m := titleToolRulePattern.FindStringSubmatch(title)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), strings.ToLower(m[2]), true
}

func firstTitleToken(title string) (token string, ok bool) {
	stripped := titleLabelPrefixPattern.ReplaceAllString(title, "")
	m := firstWordPattern.FindString(stripped)
	if m == "" {
		return "", false
	}
	return m, true
}
