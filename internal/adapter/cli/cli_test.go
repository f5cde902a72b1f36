package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/cli"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/reconcile"
)

type syncStub struct {
	request cli.SyncRequest
	result  cli.SyncResult
	err     error
}

func (s *syncStub) Sync(ctx context.Context, req cli.SyncRequest) (cli.SyncResult, error) {
	s.request = req
	return s.result, s.err
}

type exportStub struct {
	request cli.ExportRequest
	path    string
	err     error
}

func (e *exportStub) Export(ctx context.Context, req cli.ExportRequest) (string, error) {
	e.request = req
	return e.path, e.err
}

type normalizeStub struct {
	request cli.NormalizeRequest
	err     error
}

func (n *normalizeStub) Normalize(req cli.NormalizeRequest) error {
	n.request = req
	return n.err
}

func TestSyncCommandInvokesSyncer(t *testing.T) {
	stub := &syncStub{result: cli.SyncResult{Stats: reconcile.Stats{Created: 2, Updated: 1}}}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   stub,
		Exporter: &exportStub{},
		Args:     cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"sync", "--findings", "findings.json", "--repo", "acme/widget", "--commit", "abc123", "--run", "5"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.request.FindingsPath != "findings.json" {
		t.Fatalf("expected findings path findings.json, got %s", stub.request.FindingsPath)
	}
	if stub.request.Repo != (domain.Repo{Owner: "acme", Name: "widget", Commit: "abc123"}) {
		t.Fatalf("unexpected repo: %+v", stub.request.Repo)
	}
	if stub.request.RunNumber != 5 {
		t.Fatalf("expected run number 5, got %d", stub.request.RunNumber)
	}

	var decoded cli.SyncResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}
	if decoded.Stats.Created != 2 {
		t.Fatalf("expected created=2 in output, got %+v", decoded.Stats)
	}
}

func TestSyncCommandTableFormat(t *testing.T) {
	stub := &syncStub{result: cli.SyncResult{Stats: reconcile.Stats{Created: 3}, Failures: 1}}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   stub,
		Exporter: &exportStub{},
		Args:     cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"sync", "--findings", "findings.json", "--repo", "acme/widget", "--format", "table"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "created  3") {
		t.Fatalf("expected table output to include created count, got %q", out)
	}
	if !strings.Contains(out, "failures 1") {
		t.Fatalf("expected table output to include failures, got %q", out)
	}
}

func TestSyncCommandRequiresRepo(t *testing.T) {
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   &syncStub{},
		Exporter: &exportStub{},
		Args:     cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"sync", "--findings", "findings.json", "--repo", "not-owner-slash-name"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for malformed --repo")
	}
}

func TestExportSarifCommandInvokesExporter(t *testing.T) {
	stub := &exportStub{path: "out/acme/widget_abc123/ts/run-1.sarif"}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   &syncStub{},
		Exporter: stub,
		Args:     cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"export-sarif", "--findings", "findings.json", "--repo", "acme/widget", "--commit", "abc123"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.request.FindingsPath != "findings.json" {
		t.Fatalf("expected findings path findings.json, got %s", stub.request.FindingsPath)
	}
	if !strings.Contains(buf.String(), "run-1.sarif") {
		t.Fatalf("expected output path to be printed, got %q", buf.String())
	}
}

func TestNormalizeCommandInvokesNormalizer(t *testing.T) {
	stub := &normalizeStub{}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:     &syncStub{},
		Exporter:   &exportStub{},
		Normalizer: stub,
		Args:       cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"normalize", "--input", "raw.json", "--output", "findings.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.request.InputPath != "raw.json" || stub.request.OutputPath != "findings.json" {
		t.Fatalf("unexpected request: %+v", stub.request)
	}
	if strings.TrimSpace(buf.String()) != "findings.json" {
		t.Fatalf("expected output path printed, got %q", buf.String())
	}
}

func TestNormalizeCommandOmittedWhenNoNormalizer(t *testing.T) {
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   &syncStub{},
		Exporter: &exportStub{},
		Args:     cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
	})

	for _, cmd := range root.Commands() {
		if cmd.Name() == "normalize" {
			t.Fatal("expected normalize command to be absent when no Normalizer is wired")
		}
	}
}

func TestVersionFlagEmitsVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Syncer:   &syncStub{},
		Exporter: &exportStub{},
		Args:     cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
		Version:  "v9.9.9",
	})

	root.SetArgs([]string{"--version"})
	err := root.Execute()
	if !errors.Is(err, cli.ErrVersionRequested) {
		t.Fatalf("expected version sentinel, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != "v9.9.9" {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
