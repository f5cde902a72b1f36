package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/render/ruleurl"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// titleCaser renders enum labels ("security" -> "Security") in the Details
// table the way the teacher's Markdown writer title-cases report headings.
var titleCaser = cases.Title(language.English)

// Redactor scrubs secrets out of rendered snippet text before it reaches
// an issue body.
type Redactor interface {
	Redact(input string) (string, error)
}

// BodyContext carries everything Body needs beyond the finding itself.
type BodyContext struct {
	Repo         domain.Repo
	Host         string // tracker host, e.g. "github.com"
	RunNumber    int
	Timestamp    time.Time
	BranchPrefix string
	Redactor     Redactor
}

const maxInlineLocations = 10
const maxCodeSamples = 3
const maxSnippetLines = 50

// Body renders the full deterministic Markdown issue body for a finding.
func Body(f domain.Finding, ctx BodyContext) string {
	var b strings.Builder

	writeSeverityLine(&b, f)
	b.WriteString("\n\n")

	b.WriteString(f.Message)
	b.WriteString("\n\n")

	writeDetailsTable(&b, f)
	b.WriteString("\n")

	if prominence := prominenceLine(f.Severity); prominence != "" {
		b.WriteString(prominence)
		b.WriteString("\n\n")
	}

	writeLocationSection(&b, f, ctx)
	b.WriteString("\n")

	if f.Evidence != nil && f.Evidence.Snippet != "" {
		writeCodeSamples(&b, redactSnippet(f.Evidence.Snippet, ctx.Redactor))
		b.WriteString("\n")
	}

	writeHowToFix(&b, f)
	b.WriteString("\n")

	if f.Evidence != nil {
		if refs := httpLinks(f.Evidence.Links); len(refs) > 0 {
			b.WriteString("**References**\n\n")
			for _, r := range refs {
				fmt.Fprintf(&b, "- %s\n", r)
			}
			b.WriteString("\n")
		}
	}

	writeMetadata(&b, f, ctx)

	b.WriteString("\n")
	b.WriteString(tracker.RenderFingerprintMarker(f.Fingerprint()))
	b.WriteString("\n")
	b.WriteString(tracker.RenderRunMetadataMarker(ctx.RunNumber, ctx.Timestamp.UTC().Format(time.RFC3339)))
	b.WriteString("\n")

	return b.String()
}

func severityEmoji(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return "🔴"
	case domain.SeverityHigh:
		return "🟠"
	case domain.SeverityMedium:
		return "🟡"
	case domain.SeverityLow:
		return "🔵"
	default:
		return "⚪"
	}
}

func writeSeverityLine(b *strings.Builder, f domain.Finding) {
	fmt.Fprintf(b, "%s **%s** · confidence: %s · effort: %s", severityEmoji(f.Severity), f.Severity, f.Confidence, f.Effort)
}

func autofixCell(a domain.Autofix) string {
	switch a {
	case domain.AutofixSafe:
		return "✅ Safe autofix available"
	case domain.AutofixRequiresReview:
		return "⚠️ Autofix requires review"
	default:
		return "Manual fix required"
	}
}

func writeDetailsTable(b *strings.Builder, f domain.Finding) {
	b.WriteString("**Details**\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| Tool | %s |\n", titleCaser.String(string(f.Tool)))
	fmt.Fprintf(b, "| Rule | %s |\n", ruleurl.ResolveLink(f.Tool, f.RuleID))
	fmt.Fprintf(b, "| Layer | %s |\n", titleCaser.String(string(f.Layer)))
	fmt.Fprintf(b, "| Autofix | %s |\n", autofixCell(f.Autofix))
}

func prominenceLine(s domain.Severity) string {
	if s == domain.SeverityCritical || s == domain.SeverityHigh {
		return "> ⚠️ This is a " + string(s) + "-severity finding and should be prioritized."
	}
	return ""
}

func locationURL(ctx BodyContext, loc domain.Location) string {
	anchor := fmt.Sprintf("#L%d", loc.StartLine)
	if loc.End() > loc.StartLine {
		anchor = fmt.Sprintf("#L%d-L%d", loc.StartLine, loc.End())
	}
	return fmt.Sprintf("https://%s/%s/%s/blob/%s/%s%s", ctx.Host, ctx.Repo.Owner, ctx.Repo.Name, ctx.Repo.Commit, loc.Path, anchor)
}

func writeLocationSection(b *strings.Builder, f domain.Finding, ctx BodyContext) {
	b.WriteString("**Location**\n\n")
	canonical := f.CanonicalLocation()
	fmt.Fprintf(b, "[%s#L%d](%s)\n", canonical.Path, canonical.StartLine, locationURL(ctx, canonical))

	rest := f.Locations[1:]
	if len(rest) == 0 {
		return
	}

	render := func(w *strings.Builder) {
		for _, loc := range rest {
			fmt.Fprintf(w, "- [%s#L%d](%s)\n", loc.Path, loc.StartLine, locationURL(ctx, loc))
		}
	}

	if len(rest) <= maxInlineLocations {
		render(b)
	} else {
		b.WriteString("<details>\n<summary>Additional locations</summary>\n\n")
		render(b)
		b.WriteString("\n</details>\n")
	}

	if len(f.Locations) >= 5 {
		writePrioritizationHint(b, f)
	}
}

func writePrioritizationHint(b *strings.Builder, f domain.Finding) {
	counts := make(map[string]int)
	for _, loc := range f.Locations {
		counts[loc.Path]++
	}
	topFile, topCount := "", 0
	for path, count := range counts {
		if count > topCount || (count == topCount && path < topFile) {
			topFile, topCount = path, count
		}
	}

	files := f.UniqueFiles()
	sort.Strings(files)
	if len(files) > 3 {
		fmt.Fprintf(b, "\n_Most occurrences (%d) are in `%s`; affected files span %s .. %s._\n", topCount, topFile, files[0], files[len(files)-1])
	} else {
		fmt.Fprintf(b, "\n_Most occurrences (%d) are in `%s`._\n", topCount, topFile)
	}
}

// redactSnippet scrubs secrets from a code sample before it is embedded in
// an issue body. A redaction failure falls back to the original snippet
// rather than dropping evidence from the rendered issue.
func redactSnippet(snippet string, r Redactor) string {
	if r == nil {
		return snippet
	}
	scrubbed, err := r.Redact(snippet)
	if err != nil {
		return snippet
	}
	return scrubbed
}

func writeCodeSamples(b *strings.Builder, snippet string) {
	samples := strings.Split(snippet, "---")
	remainder := 0
	if len(samples) > maxCodeSamples {
		remainder = len(samples) - maxCodeSamples
		samples = samples[:maxCodeSamples]
	}

	heading := "Code Sample"
	if len(samples) > 1 {
		heading = "Code Samples"
	}
	fmt.Fprintf(b, "**%s**\n\n", heading)

	for _, s := range samples {
		fmt.Fprintf(b, "```\n%s\n```\n\n", truncateSnippet(strings.TrimSpace(s)))
	}

	if remainder > 0 {
		fmt.Fprintf(b, "_%d additional sample(s) omitted._\n", remainder)
	}
}

func truncateSnippet(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxSnippetLines {
		return s
	}
	return strings.Join(lines[:maxSnippetLines], "\n") + "\n… [truncated]"
}

func writeHowToFix(b *strings.Builder, f domain.Finding) {
	b.WriteString("**How to Fix**\n\n")

	if f.SuggestedFix != nil {
		fmt.Fprintf(b, "Goal: %s\n\n", f.SuggestedFix.Goal)
		if len(f.SuggestedFix.Steps) > 0 {
			b.WriteString("Steps:\n\n")
			for i, step := range f.SuggestedFix.Steps {
				fmt.Fprintf(b, "%d. %s\n", i+1, step)
			}
			b.WriteString("\n")
		}
		if len(f.SuggestedFix.Acceptance) > 0 {
			b.WriteString("Done when:\n\n")
			for _, a := range f.SuggestedFix.Acceptance {
				fmt.Fprintf(b, "- [ ] %s\n", a)
			}
		}
		return
	}

	goal, steps, acceptance := defaultFixTemplate(f)
	fmt.Fprintf(b, "Goal: %s\n\n", goal)
	b.WriteString("Steps:\n\n")
	for i, step := range steps {
		fmt.Fprintf(b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\nDone when:\n\n")
	for _, a := range acceptance {
		fmt.Fprintf(b, "- [ ] %s\n", a)
	}
}

func defaultFixTemplate(f domain.Finding) (goal string, steps []string, acceptance []string) {
	goal = fmt.Sprintf("Resolve the %s finding reported by %s", f.RuleID, f.Tool)
	steps = []string{
		fmt.Sprintf("Open %s at the reported location", f.CanonicalPath()),
		"Address the reported condition",
		"Re-run " + string(f.Tool) + " locally to confirm the finding clears",
	}
	acceptance = []string{
		fmt.Sprintf("%s no longer reports %s at this location", f.Tool, f.RuleID),
	}
	return
}

func httpLinks(links []string) []string {
	var out []string
	for _, l := range links {
		if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
			out = append(out, l)
		}
	}
	return out
}

func writeMetadata(b *strings.Builder, f domain.Finding, ctx BodyContext) {
	b.WriteString("<details>\n<summary>Metadata</summary>\n\n")
	fmt.Fprintf(b, "- Fingerprint (short): `%s`\n", f.ShortFingerprint())
	fmt.Fprintf(b, "- Fingerprint: `%s`\n", f.Fingerprint())
	commitShort := ctx.Repo.Commit
	if len(commitShort) > 12 {
		commitShort = commitShort[:12]
	}
	fmt.Fprintf(b, "- Commit: [`%s`](https://%s/%s/%s/commit/%s)\n", commitShort, ctx.Host, ctx.Repo.Owner, ctx.Repo.Name, ctx.Repo.Commit)
	fmt.Fprintf(b, "- Run: %d\n", ctx.RunNumber)
	fmt.Fprintf(b, "- Timestamp: %s\n", ctx.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "- Suggested branch: `%s/fix-%s`\n", ctx.BranchPrefix, f.ShortFingerprint())
	b.WriteString("\n</details>\n")
}
