package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NormalizeRequest is the input a single normalize invocation is built from.
type NormalizeRequest struct {
	InputPath  string
	OutputPath string
}

// Normalizer scores and classifies raw per-tool analyzer output into the
// normalized finding set consumed by sync and export-sarif.
type Normalizer interface {
	Normalize(req NormalizeRequest) error
}

func normalizeCommand(normalizer Normalizer) *cobra.Command {
	var inputPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Score and classify raw per-tool output into a findings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return fmt.Errorf("--input is required")
			}
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}
			if err := normalizer.Normalize(NormalizeRequest{InputPath: inputPath, OutputPath: outputPath}); err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a JSON file containing raw per-tool findings")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to write the normalized findings JSON to")

	return cmd
}
