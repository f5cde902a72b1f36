package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/cli"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/observability"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/output/sarif"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/render"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/repo"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/store/sqlite"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"
	"github.com/vibecheck-dev/vibecheck/internal/adapter/tracker/github"
	"github.com/vibecheck-dev/vibecheck/internal/config"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
	"github.com/vibecheck-dev/vibecheck/internal/redaction"
	"github.com/vibecheck-dev/vibecheck/internal/scoring"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/dedup"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/normalize"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/reconcile"
	"github.com/vibecheck-dev/vibecheck/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "vibecheck",
		EnvPrefix:   "VIBECHECK",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	issueCfg, err := cfg.Issue.ToDomain()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := observability.NewStdLogger()

	trackerClient := github.New(cfg.Tracker.Token, cfg.Repo.Owner, cfg.Repo.Name)
	if cfg.Tracker.BaseURL != "" {
		trackerClient.SetBaseURL(cfg.Tracker.BaseURL)
	}

	var redactor render.Redactor
	if cfg.Redaction.Enabled {
		redactor = redaction.NewEngine()
	}

	var store *sqlite.Store
	if cfg.Store.Enabled {
		store, err = sqlite.NewStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		defer store.Close()
	}

	commit := cfg.Repo.Ref
	if commit == "" || !looksLikeCommit(commit) {
		if cfg.Repo.RepositoryDir != "" {
			resolver := repo.NewResolver(cfg.Repo.RepositoryDir)
			ref := cfg.Repo.Ref
			if ref == "" {
				commit, err = resolver.HeadCommit(ctx)
			} else {
				commit, err = resolver.ResolveCommit(ctx, ref)
			}
			if err != nil {
				return fmt.Errorf("resolve commit: %w", err)
			}
		}
	}

	syncerImpl := &syncer{
		tracker:        trackerClient,
		logger:         logger,
		store:          store,
		redactor:       redactor,
		issueCfg:       issueCfg,
		host:           trackerHost(cfg.Tracker.BaseURL),
		nowFunc:        time.Now,
		fallbackCommit: commit,
	}
	exporter := &sarifExporter{writer: sarif.NewWriter(func() string { return time.Now().UTC().Format("20060102T150405Z") })}

	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:        syncerImpl,
		Exporter:      exporter,
		Normalizer:    &normalizer{},
		Args:          cli.Arguments{OutWriter: os.Stdout, ErrWriter: os.Stderr},
		DefaultOutput: cfg.Output.Directory,
		DefaultRepo:   cfg.Repo.Owner + "/" + cfg.Repo.Name,
		Version:       version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

// syncer implements cli.Syncer: it loads a findings file, deduplicates it,
// reconciles it against the tracker, executes the resulting operations, and
// records a diagnostic audit trail.
type syncer struct {
	tracker        tracker.Tracker
	logger         observability.RunLogger
	store          *sqlite.Store
	redactor       render.Redactor
	issueCfg       domain.IssueConfig
	host           string
	nowFunc        func() time.Time
	fallbackCommit string
}

func (s *syncer) Sync(ctx context.Context, req cli.SyncRequest) (cli.SyncResult, error) {
	findings, err := loadFindings(req.FindingsPath)
	if err != nil {
		return cli.SyncResult{}, err
	}
	findings = dedup.Dedup(findings)
	sort.Slice(findings, func(i, j int) bool {
		return scoring.CompareFindingsForSort(findings[i], findings[j]) < 0
	})

	repoCtx := req.Repo
	if repoCtx.Commit == "" {
		repoCtx.Commit = s.fallbackCommit
	}

	now := s.nowFunc()
	rc := render.BodyContext{
		Repo:         repoCtx,
		Host:         s.host,
		RunNumber:    req.RunNumber,
		Timestamp:    now,
		BranchPrefix: "vibecheck",
		Redactor:     s.redactor,
	}
	run := domain.RunContext{
		Repo:      repoCtx,
		RunNumber: req.RunNumber,
		Config:    s.issueCfg,
	}

	label := s.issueCfg.Label
	if label == "" {
		label = "vibeCheck"
	}
	if err := s.tracker.EnsureLabels(ctx, []tracker.LabelSpec{{Name: label, Color: "5319e7", Description: "Findings tracked by vibeCheck"}}); err != nil {
		return cli.SyncResult{}, fmt.Errorf("ensure labels: %w", err)
	}

	existing, err := s.tracker.SearchIssuesByLabel(ctx, []string{label})
	if err != nil {
		return cli.SyncResult{}, fmt.Errorf("search issues: %w", err)
	}

	ops, stats := reconcile.Reconcile(findings, existing, run, rc)
	result := reconcile.Run(ctx, s.tracker, ops, s.logger)

	if s.store != nil {
		if err := s.recordRun(ctx, run, result); err != nil {
			s.logger.LogWarning(ctx, "failed to record audit log", map[string]interface{}{"error": err.Error()})
		}
	}

	return cli.SyncResult{Stats: stats, Failures: len(result.Failures)}, nil
}

func (s *syncer) recordRun(ctx context.Context, run domain.RunContext, result reconcile.DriverResult) error {
	runID := fmt.Sprintf("%s@%s#%d", run.Repo.FullName(), run.Repo.Commit, run.RunNumber)
	if err := s.store.RecordRun(ctx, sqlite.RunSummary{
		RunID:      runID,
		Timestamp:  time.Now().UTC(),
		Repository: run.Repo.FullName(),
		RunNumber:  run.RunNumber,
		Stats:      result.Stats,
	}); err != nil {
		return err
	}

	records := make([]sqlite.OperationRecord, 0, len(result.Failures))
	for _, failure := range result.Failures {
		fp := ""
		if failure.Operation.Finding != nil {
			fp = failure.Operation.Finding.Fingerprint()
		}
		records = append(records, sqlite.OperationRecord{
			RunID:        runID,
			Kind:         string(failure.Operation.Kind),
			IssueNumber:  failure.Operation.IssueNumber,
			Fingerprint:  fp,
			Title:        failure.Operation.Title,
			Succeeded:    false,
			ErrorMessage: failure.Err.Error(),
			Timestamp:    time.Now().UTC(),
		})
	}
	return s.store.RecordOperations(ctx, records)
}

// sarifExporter implements cli.SarifExporter: it loads a findings file and
// writes it to disk as a SARIF 2.1.0 log.
type sarifExporter struct {
	writer *sarif.Writer
}

func (e *sarifExporter) Export(ctx context.Context, req cli.ExportRequest) (string, error) {
	findings, err := loadFindings(req.FindingsPath)
	if err != nil {
		return "", err
	}
	return e.writer.Write(ctx, sarif.Export{
		OutputDir: req.OutputDir,
		Repo:      req.Repo,
		RunNumber: req.RunNumber,
		Findings:  findings,
	})
}

// normalizer implements cli.Normalizer: it reads raw per-tool findings,
// scores and classifies them via internal/usecase/normalize, and writes the
// resulting findings file.
type normalizer struct{}

func (n *normalizer) Normalize(req cli.NormalizeRequest) error {
	data, err := os.ReadFile(req.InputPath)
	if err != nil {
		return fmt.Errorf("read raw findings file %s: %w", req.InputPath, err)
	}

	var raw []normalize.RawFinding
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse raw findings file %s: %w", req.InputPath, err)
	}

	findings := normalize.Normalize(raw)

	out, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode findings: %w", err)
	}
	if err := os.WriteFile(req.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write findings file %s: %w", req.OutputPath, err)
	}
	return nil
}

func loadFindings(path string) ([]domain.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read findings file %s: %w", path, err)
	}
	var findings []domain.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("parse findings file %s: %w", path, err)
	}
	return findings, nil
}

func trackerHost(baseURL string) string {
	switch {
	case baseURL == "" || baseURL == "https://api.github.com":
		return "github.com"
	default:
		return baseURL
	}
}

func looksLikeCommit(ref string) bool {
	if len(ref) != 40 {
		return false
	}
	for _, r := range ref {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+"/.config/vibecheck")
	}
	return paths
}
