package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/render"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// FlapProtectionRuns is the number of consecutive runs a finding may be
// absent before its issue is closed.
const FlapProtectionRuns = 3

// Reconcile maps the current run's deduplicated findings and the
// tracker's existing issues to the list of operations the driver must
// execute. It is a pure function: identical inputs always produce an
// identical, byte-for-byte identical list of operations.
func Reconcile(findings []domain.Finding, existing []domain.ExistingIssue, run domain.RunContext, rc render.BodyContext) ([]Operation, Stats) {
	cfg := run.Config
	idx := buildIndices(existing)
	seenFingerprints := make(map[string]bool)

	var ops []Operation
	var stats Stats

	for _, f := range findings {
		if !cfg.Admits(f) {
			stats.SkippedBelowThreshold++
			continue
		}

		fp := f.Fingerprint()
		seenFingerprints[fp] = true

		issue, found := idx.byFingerprint[fp]
		if !found {
			if tr, ok := idx.byToolRule[toolRuleKey{strings.ToLower(string(f.Tool)), strings.ToLower(f.RuleID)}]; ok {
				issue, found = tr, true
			} else if f.Tool == domain.ToolTrunk {
				if token, ok := firstTitleToken(f.Title); ok {
					if sub, ok := idx.bySublinter[strings.ToLower(token)]; ok {
						issue, found = sub, true
					}
				}
			}
			if found {
				idx.byFingerprint[fp] = issue
				if issue.Metadata.Fingerprint != "" {
					seenFingerprints[issue.Metadata.Fingerprint] = true
				}
			}
		}

		if found {
			if issue.State != domain.IssueOpen {
				continue // closed issue: never reopened
			}
			label := baseLabel(cfg)
			ops = append(ops, Operation{
				Kind:        OpUpdate,
				IssueNumber: issue.Number,
				Finding:     &f,
				Title:       render.Title(label, f),
				Body:        render.Body(f, rc),
				Labels:      render.Labels(label, f, isDemoFinding(f)),
			})
			stats.Updated++
			continue
		}

		if stats.Created >= cfg.MaxNewPerRun {
			stats.SkippedMaxReached++
			continue
		}

		label := baseLabel(cfg)
		ops = append(ops, Operation{
			Kind:    OpCreate,
			Finding: &f,
			Title:   render.Title(label, f),
			Body:    render.Body(f, rc),
			Labels:  render.Labels(label, f, isDemoFinding(f)),
		})
		stats.Created++
	}

	if !cfg.CloseResolved {
		return ops, stats
	}

	closed := make(map[int]bool)

	flapOps := flapProtectedClosures(existing, seenFingerprints, run.RunNumber, closed)
	ops = append(ops, flapOps...)
	stats.Closed += countCloses(flapOps)

	supersedeOps := supersessionClosures(existing, findings, seenFingerprints, closed)
	ops = append(ops, supersedeOps...)
	stats.Closed += countCloses(supersedeOps)

	dupOps := duplicateCollapse(existing, closed)
	ops = append(ops, dupOps...)
	dupClosed := countCloses(dupOps)
	stats.Closed += dupClosed
	stats.SkippedDuplicate += dupClosed

	return ops, stats
}

func countCloses(ops []Operation) int {
	n := 0
	for _, op := range ops {
		if op.Kind == OpClose {
			n++
		}
	}
	return n
}

func baseLabel(cfg domain.IssueConfig) string {
	if cfg.Label != "" {
		return cfg.Label
	}
	return "vibeCheck"
}

func isDemoFinding(f domain.Finding) bool {
	for _, loc := range f.Locations {
		if strings.Contains(strings.ToLower(loc.Path), "/fixtures/") ||
			strings.Contains(strings.ToLower(loc.Path), "/testdata/") ||
			strings.Contains(strings.ToLower(loc.Path), "/demo/") {
			return true
		}
	}
	return false
}

// flapProtectedClosures implements pass (a): an open issue whose
// fingerprint went unseen this run accrues a miss count; once it reaches
// FlapProtectionRuns it is closed, otherwise a grace comment is posted.
func flapProtectedClosures(existing []domain.ExistingIssue, seen map[string]bool, runNumber int, closed map[int]bool) []Operation {
	var ops []Operation
	for _, issue := range existing {
		if issue.State != domain.IssueOpen || closed[issue.Number] {
			continue
		}
		if issue.Metadata.Fingerprint == "" || seen[issue.Metadata.Fingerprint] {
			continue
		}

		consecutiveMisses := runNumber - issue.Metadata.LastSeenRun
		if consecutiveMisses >= FlapProtectionRuns {
			ops = append(ops, Operation{
				Kind:        OpClose,
				IssueNumber: issue.Number,
				Comment:     "This finding was not detected for the last " + fmt.Sprint(consecutiveMisses) + " runs and is considered resolved.",
			})
			closed[issue.Number] = true
		} else {
			remaining := FlapProtectionRuns - consecutiveMisses
			ops = append(ops, Operation{
				Kind:        OpComment,
				IssueNumber: issue.Number,
				Comment:     fmt.Sprintf("This finding was not detected this run. It will be closed automatically after %d more consecutive run(s) without detection.", remaining),
			})
		}
	}
	return ops
}

var singleRuleTitlePattern = regexp.MustCompile(`^\[[^\]]+\]\s+(\w+):\s*\S+`)

// supersessionClosures implements pass (b): a single-rule issue for a
// trunk sublinter is closed when a current finding consolidates that
// sublinter's findings into one merged issue.
func supersessionClosures(existing []domain.ExistingIssue, findings []domain.Finding, seen map[string]bool, closed map[int]bool) []Operation {
	var ops []Operation
	for _, issue := range existing {
		if issue.State != domain.IssueOpen || closed[issue.Number] {
			continue
		}
		if issue.Metadata.Fingerprint != "" && seen[issue.Metadata.Fingerprint] {
			continue
		}

		m := singleRuleTitlePattern.FindStringSubmatch(issue.Title)
		if m == nil {
			continue
		}
		sublinter := strings.ToLower(m[1])
		if !domain.IsTrunkSublinter(sublinter) {
			continue
		}

		if hasConsolidatingFinding(findings, sublinter) {
			ops = append(ops, Operation{
				Kind:        OpClose,
				IssueNumber: issue.Number,
				Comment:     "Superseded by a consolidated issue covering multiple " + sublinter + " findings.",
			})
			closed[issue.Number] = true
		}
	}
	return ops
}

func hasConsolidatingFinding(findings []domain.Finding, sublinter string) bool {
	for _, f := range findings {
		if f.Tool != domain.ToolTrunk {
			continue
		}
		token, ok := firstTitleToken(f.Title)
		if !ok || strings.ToLower(token) != sublinter {
			continue
		}
		if f.IsMerged() || strings.Contains(f.Title, "issues across") || strings.Contains(f.Title, "occurrences)") {
			return true
		}
	}
	return false
}

var (
	occurrencesSuffixPattern = regexp.MustCompile(`\s*\(\d+ occurrences?\)\s*$`)
	trailingInFilePattern    = regexp.MustCompile(`\s+in\s+\S+$`)
	whitespaceCollapse       = regexp.MustCompile(`\s+`)
)

// normalizeTitle canonicalizes a title for duplicate detection.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = titleLabelPrefixPattern.ReplaceAllString(t, "")
	t = occurrencesSuffixPattern.ReplaceAllString(t, "")
	t = trailingInFilePattern.ReplaceAllString(t, "")
	t = whitespaceCollapse.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// duplicateCollapse implements pass (c): among still-open issues, groups
// sharing a normalized title collapse to the highest-numbered issue.
func duplicateCollapse(existing []domain.ExistingIssue, closed map[int]bool) []Operation {
	groups := make(map[string][]domain.ExistingIssue)
	for _, issue := range existing {
		if issue.State != domain.IssueOpen || closed[issue.Number] {
			continue
		}
		key := normalizeTitle(issue.Title)
		groups[key] = append(groups[key], issue)
	}

	var ops []Operation
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sortByNumberDesc(group)
		keep := group[0]
		for _, dup := range group[1:] {
			ops = append(ops, Operation{
				Kind:        OpClose,
				IssueNumber: dup.Number,
				Comment:     fmt.Sprintf("Duplicate of #%d.", keep.Number),
			})
			closed[dup.Number] = true
		}
	}
	return ops
}

func sortByNumberDesc(issues []domain.ExistingIssue) {
	for i := 1; i < len(issues); i++ {
		for j := i; j > 0 && issues[j-1].Number < issues[j].Number; j-- {
			issues[j-1], issues[j] = issues[j], issues[j-1]
		}
	}
}
