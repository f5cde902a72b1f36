package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

func exportSarifCommand(exporter SarifExporter, defaultOutput, defaultRepo string) *cobra.Command {
	var findingsPath string
	var outputDir string
	var repoSpec string
	var commit string
	var runNumber int

	cmd := &cobra.Command{
		Use:   "export-sarif",
		Short: "Export the current finding set as a SARIF 2.1.0 log",
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

			path, err := exporter.Export(cmd.Context(), ExportRequest{
				FindingsPath: findingsPath,
				OutputDir:    outputDir,
				Repo:         domain.Repo{Owner: owner, Name: name, Commit: commit},
				RunNumber:    runNumber,
			})
			if err != nil {
				return fmt.Errorf("export-sarif: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	if defaultOutput == "" {
		defaultOutput = "out"
	}
	cmd.Flags().StringVar(&findingsPath, "findings", "", "Path to a JSON file containing the normalized finding set")
	cmd.Flags().StringVar(&outputDir, "output", defaultOutput, "Directory to write the SARIF log under")
	cmd.Flags().StringVar(&repoSpec, "repo", "", "Repository in owner/name form")
	cmd.Flags().StringVar(&commit, "commit", "", "Commit SHA the findings were produced from")
	cmd.Flags().IntVar(&runNumber, "run", 1, "Run number recorded in the SARIF output")

	return cmd
}
