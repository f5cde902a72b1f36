// Package ruleurl resolves a (tool, ruleId) pair to a best-effort
// documentation URL, for hyperlinking the "rule" cell in a rendered issue
// body.
package ruleurl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

var (
	mdRulePattern = regexp.MustCompile(`^MD\d{3}$`)
	scRulePattern = regexp.MustCompile(`^SC\d{4}$`)
)

// yamllintRules is the closed set of yamllint rule names this system knows
// a documentation anchor for.
var yamllintRules = map[string]bool{
	"braces": true, "brackets": true, "colons": true, "commas": true,
	"comments": true, "comments-indentation": true, "document-end": true,
	"document-start": true, "empty-lines": true, "empty-values": true,
	"hyphens": true, "indentation": true, "key-duplicates": true,
	"key-ordering": true, "line-length": true, "new-line-at-end-of-file": true,
	"new-lines": true, "octal-values": true, "quoted-strings": true,
	"trailing-spaces": true, "truthy": true,
}

// ResolveLink returns a best-effort Markdown link for (tool, ruleId), for
// embedding in the rendered issue body's "Rule" cell. If ruleId is a
// "+"-joined merged rule cluster, each component is resolved and joined
// with a space. An unresolved rule returns the plain ruleId with no link.
func ResolveLink(tool domain.Tool, ruleID string) string {
	if strings.Contains(ruleID, "+") {
		parts := strings.Split(ruleID, "+")
		rendered := make([]string, 0, len(parts))
		for _, p := range parts {
			rendered = append(rendered, linkOne(tool, p))
		}
		return strings.Join(rendered, " ")
	}
	return linkOne(tool, ruleID)
}

func linkOne(tool domain.Tool, ruleID string) string {
	if url := resolveURLOne(tool, ruleID); url != "" {
		return link(ruleID, url)
	}
	return ruleID
}

// ResolveURL returns a best-effort plain documentation URI for (tool,
// ruleId), suitable for a SARIF rule's helpUri (which must be a bare URI,
// never Markdown). If ruleId is a "+"-joined merged rule cluster, the URL
// of the first resolvable component is returned, since helpUri holds a
// single URI. An unresolved rule returns "".
func ResolveURL(tool domain.Tool, ruleID string) string {
	if strings.Contains(ruleID, "+") {
		for _, p := range strings.Split(ruleID, "+") {
			if url := resolveURLOne(tool, p); url != "" {
				return url
			}
		}
		return ""
	}
	return resolveURLOne(tool, ruleID)
}

func resolveURLOne(tool domain.Tool, ruleID string) string {
	if url := cascadeByShape(ruleID); url != "" {
		return url
	}
	if url := directToolURL(tool, ruleID); url != "" {
		return url
	}
	return ""
}

// cascadeByShape handles trunk's composite nature: the ruleId's own shape
// identifies which upstream vendor's documentation to link to, independent
// of which tool reported it.
func cascadeByShape(ruleID string) string {
	switch {
	case strings.HasPrefix(ruleID, "GHSA-"):
		return "https://github.com/advisories/" + ruleID
	case strings.HasPrefix(ruleID, "CVE-"):
		return "https://nvd.nist.gov/vuln/detail/" + ruleID
	case strings.HasPrefix(ruleID, "CWE-"):
		return "https://cwe.mitre.org/data/definitions/" + strings.TrimPrefix(ruleID, "CWE-") + ".html"
	case strings.HasPrefix(ruleID, "CKV_"):
		return "https://www.checkov.io/5.Policy%20Index/all.html"
	case mdRulePattern.MatchString(ruleID):
		return "https://github.com/DavidAnson/markdownlint/blob/main/doc/rules.md#" + strings.ToLower(ruleID)
	case scRulePattern.MatchString(ruleID):
		return "https://www.shellcheck.net/wiki/" + ruleID
	case yamllintRules[ruleID]:
		return "https://yamllint.readthedocs.io/en/stable/rules.html#module-yamllint.rules." + strings.ReplaceAll(ruleID, "-", "_")
	case strings.HasPrefix(ruleID, "@typescript-eslint/"):
		return "https://typescript-eslint.io/rules/" + strings.TrimPrefix(ruleID, "@typescript-eslint/")
	case isLowercaseESLintRule(ruleID):
		return "https://eslint.org/docs/latest/rules/" + ruleID
	default:
		return ""
	}
}

func isLowercaseESLintRule(ruleID string) bool {
	if ruleID == "" || ruleID != strings.ToLower(ruleID) {
		return false
	}
	return regexp.MustCompile(`^[a-z][a-z0-9-]*$`).MatchString(ruleID)
}

func directToolURL(tool domain.Tool, ruleID string) string {
	switch tool {
	case domain.ToolSemgrep:
		return "https://semgrep.dev/r/" + ruleID
	case domain.ToolRuff:
		return "https://docs.astral.sh/ruff/rules/" + strings.ToLower(strings.ReplaceAll(ruleID, " ", "-"))
	case domain.ToolMypy:
		return "https://mypy.readthedocs.io/en/stable/error_code_list.html#code-" + strings.ToLower(ruleID)
	case domain.ToolBandit:
		return "https://bandit.readthedocs.io/en/latest/plugins/" + strings.ToLower(ruleID) + ".html"
	case domain.ToolPMD:
		return "https://pmd.github.io/latest/pmd_rules_java_" + rulesetOf(ruleID) + ".html"
	case domain.ToolSpotbugs:
		return "https://spotbugs.readthedocs.io/en/stable/bugDescriptions.html#" + ruleID
	default:
		return ""
	}
}

// rulesetOf extracts the ruleset token from a PMD ruleId of the shape
// "category/java/<ruleset>/RuleName".
func rulesetOf(ruleID string) string {
	parts := strings.Split(ruleID, "/")
	if len(parts) >= 3 {
		return strings.ToLower(parts[2])
	}
	return "errorprone"
}

func link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", text, url)
}
