package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vibecheck-dev/vibecheck/internal/config"
)

func TestMergePrioritizesLaterConfigs(t *testing.T) {
	base := config.Config{Output: config.OutputConfig{Directory: "default"}}
	file := config.Config{Output: config.OutputConfig{Directory: "file"}}
	final := config.Config{Output: config.OutputConfig{Directory: "env"}}

	merged := config.Merge(base, file, final)

	if merged.Output.Directory != "env" {
		t.Fatalf("expected env directory to win, got %s", merged.Output.Directory)
	}
}

func TestLoadReadsFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vibecheck.yaml")
	if err := os.WriteFile(file, []byte("output:\n  directory: file\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("VIBECHECK_OUTPUT_DIRECTORY", "env")

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{dir},
		FileName:    "vibecheck",
		EnvPrefix:   "VIBECHECK",
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Output.Directory != "env" {
		t.Fatalf("expected env override, got %s", cfg.Output.Directory)
	}
}

func TestIssueConfigDefaults(t *testing.T) {
	cfg, err := config.Load(config.LoaderOptions{FileName: "nonexistent", EnvPrefix: "VIBECHECK_TEST_ISSUE"})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if !cfg.Issue.Enabled {
		t.Error("expected issue.enabled to default true")
	}
	if cfg.Issue.Label != "vibeCheck" {
		t.Errorf("expected default label 'vibeCheck', got %s", cfg.Issue.Label)
	}
	if cfg.Issue.MaxNewPerRun != 10 {
		t.Errorf("expected default maxNewPerRun 10, got %d", cfg.Issue.MaxNewPerRun)
	}
	if cfg.Issue.SeverityThreshold != "medium" {
		t.Errorf("expected default severityThreshold 'medium', got %s", cfg.Issue.SeverityThreshold)
	}
	if !cfg.Issue.CloseResolved {
		t.Error("expected closeResolved to default true")
	}
}

func TestIssueConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vibecheck.yaml")
	content := `
issue:
  enabled: true
  label: custom-label
  maxNewPerRun: 3
  severityThreshold: high
  confidenceThreshold: high
  closeResolved: false
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{dir},
		FileName:    "vibecheck",
		EnvPrefix:   "VIBECHECK_TEST_ISSUE_FILE",
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Issue.Label != "custom-label" {
		t.Errorf("expected label 'custom-label', got %s", cfg.Issue.Label)
	}
	if cfg.Issue.MaxNewPerRun != 3 {
		t.Errorf("expected maxNewPerRun 3, got %d", cfg.Issue.MaxNewPerRun)
	}
	if cfg.Issue.CloseResolved {
		t.Error("expected closeResolved false from file")
	}

	domainCfg, err := cfg.Issue.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain returned error: %v", err)
	}
	if domainCfg.Label != "custom-label" {
		t.Errorf("ToDomain Label = %s", domainCfg.Label)
	}
}

func TestIssueConfigToDomainRejectsInvalidThreshold(t *testing.T) {
	cfg := config.IssueConfig{SeverityThreshold: "not-a-real-level", ConfidenceThreshold: "medium"}
	if _, err := cfg.ToDomain(); err == nil {
		t.Fatal("expected error for invalid severityThreshold")
	}
}

func TestObservabilityConfigDefaults(t *testing.T) {
	cfg, err := config.Load(config.LoaderOptions{FileName: "nonexistent", EnvPrefix: "VIBECHECK_TEST_OBS"})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if !cfg.Observability.Logging.Enabled {
		t.Error("expected logging to be enabled by default")
	}
	if cfg.Observability.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.Format != "human" {
		t.Errorf("expected default log format 'human', got %s", cfg.Observability.Logging.Format)
	}
	if !cfg.Observability.Logging.RedactSecrets {
		t.Error("expected secret redaction to be enabled by default")
	}
}

func TestObservabilityConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vibecheck.yaml")
	content := `
observability:
  logging:
    enabled: false
    level: debug
    format: json
    redactSecrets: false
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{dir},
		FileName:    "vibecheck",
		EnvPrefix:   "VIBECHECK_TEST_OBS_FILE",
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Observability.Logging.Enabled {
		t.Error("expected logging to be disabled from file config")
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.RedactSecrets {
		t.Error("expected secret redaction to be disabled from file config")
	}
}

func TestTrackerConfigDefaults(t *testing.T) {
	cfg, err := config.Load(config.LoaderOptions{FileName: "nonexistent", EnvPrefix: "VIBECHECK_TEST_TRACKER"})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Tracker.Provider != "github" {
		t.Errorf("expected default tracker provider 'github', got %s", cfg.Tracker.Provider)
	}
	if cfg.Tracker.BaseURL != "https://api.github.com" {
		t.Errorf("expected default tracker baseURL, got %s", cfg.Tracker.BaseURL)
	}
}

func TestTrackerTokenExpandsEnvVar(t *testing.T) {
	t.Setenv("GH_TOKEN_FOR_TEST", "secret-value")
	dir := t.TempDir()
	file := filepath.Join(dir, "vibecheck.yaml")
	content := "tracker:\n  token: \"${GH_TOKEN_FOR_TEST}\"\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{dir},
		FileName:    "vibecheck",
		EnvPrefix:   "VIBECHECK_TEST_TOKEN_EXPAND",
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Tracker.Token != "secret-value" {
		t.Errorf("expected expanded token 'secret-value', got %s", cfg.Tracker.Token)
	}
}
