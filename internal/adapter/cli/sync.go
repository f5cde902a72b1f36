package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

func syncCommand(syncer Syncer, defaultRepo string) *cobra.Command {
	var findingsPath string
	var repoSpec string
	var commit string
	var runNumber int
	var format string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile a findings file against the issue tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if findingsPath == "" {
				return fmt.Errorf("--findings is required")
			}
			if repoSpec == "" {
				repoSpec = defaultRepo
			}
			owner, name, err := parseRepo(repoSpec)
			if err != nil {
				return err
			}

			result, err := syncer.Sync(cmd.Context(), SyncRequest{
				FindingsPath: findingsPath,
				Repo:         domain.Repo{Owner: owner, Name: name, Commit: commit},
				RunNumber:    runNumber,
			})
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			return writeSyncResult(cmd, format, result)
		},
	}

	cmd.Flags().StringVar(&findingsPath, "findings", "", "Path to a JSON file containing the normalized finding set")
	cmd.Flags().StringVar(&repoSpec, "repo", "", "Repository in owner/name form")
	cmd.Flags().StringVar(&commit, "commit", "", "Commit SHA the findings were produced from")
	cmd.Flags().IntVar(&runNumber, "run", 1, "Monotonic run number, used for flap-protection bookkeeping")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or table")

	return cmd
}

func writeSyncResult(cmd *cobra.Command, format string, result SyncResult) error {
	switch format {
	case "table":
		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "created  %d\n", result.Stats.Created)
		_, _ = fmt.Fprintf(w, "updated  %d\n", result.Stats.Updated)
		_, _ = fmt.Fprintf(w, "closed   %d\n", result.Stats.Closed)
		_, _ = fmt.Fprintf(w, "skipped (threshold)  %d\n", result.Stats.SkippedBelowThreshold)
		_, _ = fmt.Fprintf(w, "skipped (duplicate)  %d\n", result.Stats.SkippedDuplicate)
		_, _ = fmt.Fprintf(w, "skipped (max reached) %d\n", result.Stats.SkippedMaxReached)
		_, _ = fmt.Fprintf(w, "failures %d\n", result.Failures)
		return nil
	case "json", "":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown --format %q, want json or table", format)
	}
}
