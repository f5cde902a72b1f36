package render

import (
	"strings"
	"testing"
	"time"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

func sampleBodyFinding() domain.Finding {
	return domain.Finding{
		Tool:       domain.ToolBandit,
		RuleID:     "B105",
		Title:      "Hardcoded credentials",
		Message:    "Potential hardcoded credentials",
		Severity:   domain.SeverityCritical,
		Confidence: domain.ConfidenceHigh,
		Effort:     domain.EffortSmall,
		Layer:      domain.LayerSecurity,
		Autofix:    domain.AutofixNone,
		Locations:  []domain.Location{{Path: "internal/auth/login.go", StartLine: 42, EndLine: 44}},
		Evidence:   &domain.Evidence{Snippet: "password := \"hunter2\"", Links: []string{"https://example.com/advisory"}},
	}
}

func sampleBodyContext() BodyContext {
	return BodyContext{
		Repo:         domain.Repo{Owner: "acme", Name: "widget", Commit: "abcdef1234567890"},
		Host:         "github.com",
		RunNumber:    3,
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		BranchPrefix: "vibecheck",
	}
}

func TestBodyIncludesMarkers(t *testing.T) {
	f := sampleBodyFinding()
	body := Body(f, sampleBodyContext())

	if !strings.Contains(body, "VIBECHECK_FINGERPRINT: "+f.Fingerprint()) {
		t.Fatalf("body missing fingerprint marker:\n%s", body)
	}
	if !strings.Contains(body, "VIBECHECK_RUN: runNumber=3") {
		t.Fatalf("body missing run metadata marker:\n%s", body)
	}
}

func TestBodyIsDeterministic(t *testing.T) {
	f := sampleBodyFinding()
	ctx := sampleBodyContext()

	first := Body(f, ctx)
	second := Body(f, ctx)
	if first != second {
		t.Fatal("Body is not deterministic across identical inputs")
	}
}

func TestBodyRedactsSnippetWhenRedactorSet(t *testing.T) {
	f := sampleBodyFinding()
	ctx := sampleBodyContext()
	ctx.Redactor = stubRedactor{replacement: "[REDACTED]"}

	body := Body(f, ctx)
	if strings.Contains(body, "hunter2") {
		t.Fatalf("expected snippet secret to be redacted:\n%s", body)
	}
	if !strings.Contains(body, "[REDACTED]") {
		t.Fatalf("expected redacted placeholder in body:\n%s", body)
	}
}

func TestBodyFallsBackToOriginalSnippetOnRedactError(t *testing.T) {
	f := sampleBodyFinding()
	ctx := sampleBodyContext()
	ctx.Redactor = stubRedactor{err: errRedactFailed}

	body := Body(f, ctx)
	if !strings.Contains(body, "hunter2") {
		t.Fatalf("expected original snippet retained on redaction failure:\n%s", body)
	}
}

type stubRedactor struct {
	replacement string
	err         error
}

func (s stubRedactor) Redact(input string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.replacement, nil
}

var errRedactFailed = &redactError{}

type redactError struct{}

func (e *redactError) Error() string { return "redaction failed" }
