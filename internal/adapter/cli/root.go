// Package cli wires the synchronizer's operations into a cobra command
// tree: "sync" drives one reconciliation pass against a tracker, and
// "export-sarif" emits the current finding set as a SARIF log.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
	"github.com/vibecheck-dev/vibecheck/internal/usecase/reconcile"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// SyncRequest is the input a single sync invocation is built from.
type SyncRequest struct {
	FindingsPath string
	Repo         domain.Repo
	RunNumber    int
}

// SyncResult is what a sync invocation reports back to the caller.
type SyncResult struct {
	Stats    reconcile.Stats
	Failures int
}

// Syncer drives one reconciliation pass: load findings, reconcile against
// the tracker, execute the resulting operations.
type Syncer interface {
	Sync(ctx context.Context, req SyncRequest) (SyncResult, error)
}

// ExportRequest is the input a single SARIF export is built from.
type ExportRequest struct {
	FindingsPath string
	OutputDir    string
	Repo         domain.Repo
	RunNumber    int
}

// SarifExporter writes the current finding set to a SARIF log on disk.
type SarifExporter interface {
	Export(ctx context.Context, req ExportRequest) (string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Syncer        Syncer
	Exporter      SarifExporter
	Normalizer    Normalizer
	Args          Arguments
	DefaultOutput string
	DefaultRepo   string
	Version       string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "vibecheck",
		Short: "Finding-to-issue synchronizer",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(syncCommand(deps.Syncer, deps.DefaultRepo))
	root.AddCommand(exportSarifCommand(deps.Exporter, deps.DefaultOutput, deps.DefaultRepo))
	if deps.Normalizer != nil {
		root.AddCommand(normalizeCommand(deps.Normalizer))
	}

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

// parseRepo splits "owner/name" into its components.
func parseRepo(spec string) (owner, name string, err error) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '/' {
			return spec[:i], spec[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("repo must be in owner/name form, got %q", spec)
}
