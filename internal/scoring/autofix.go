package scoring

import (
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// eslintSafeRules are style/whitespace rules whose autofix never changes
// program behavior.
var eslintSafeRules = map[string]bool{
	"semi": true, "quotes": true, "indent": true, "comma-dangle": true,
	"no-extra-semi": true, "no-trailing-spaces": true, "eol-last": true,
	"space-before-function-paren": true, "object-curly-spacing": true,
	"array-bracket-spacing": true, "prefer-const": true, "no-var": true,
}

// ruffSafePrefixes are rule-code prefixes whose ruff autofix is considered safe.
var ruffSafePrefixes = []string{"I", "W", "E1", "E2", "E3", "E7", "Q", "COM", "UP"}

// Autofix returns the mechanical-fixability level for a raw finding.
func Autofix(r RawFinding) domain.Autofix {
	if !r.HasAutofix {
		return domain.AutofixNone
	}

	switch r.Tool {
	case domain.ToolTrunk:
		if strings.EqualFold(firstWord(r.Title), "prettier") {
			return domain.AutofixSafe
		}
		return domain.AutofixRequiresReview

	case domain.ToolESLint:
		if eslintSafeRules[r.RuleID] {
			return domain.AutofixSafe
		}
		return domain.AutofixRequiresReview

	case domain.ToolRuff:
		for _, p := range ruffSafePrefixes {
			if strings.HasPrefix(r.RuleID, p) {
				return domain.AutofixSafe
			}
		}
		return domain.AutofixRequiresReview

	default:
		return domain.AutofixRequiresReview
	}
}
