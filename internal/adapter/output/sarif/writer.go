// Package sarif exports normalized findings as a SARIF 2.1.0 log, so
// results from this system can be consumed by any tool that understands
// the standard (code scanning dashboards, other CI integrations).
package sarif

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/render/ruleurl"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// Export is the input a single SARIF run is built from.
type Export struct {
	OutputDir string
	Repo      domain.Repo
	RunNumber int
	Findings  []domain.Finding
}

// Writer persists findings to disk as a SARIF log.
type Writer struct {
	now func() string
}

// NewWriter creates a new SARIF writer. now supplies the timestamp used to
// name each run's output directory.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists the export to disk as a SARIF file and returns its path.
func (w *Writer) Write(ctx context.Context, export Export) (string, error) {
	outputDir := filepath.Join(export.OutputDir, fmt.Sprintf("%s_%s", export.Repo.FullName(), export.Repo.Commit), w.now())
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filePath := filepath.Join(outputDir, fmt.Sprintf("run-%d.sarif", export.RunNumber))

	doc := convertToSARIF(export)

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create sarif file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("encode sarif: %w", err)
	}

	return filePath, nil
}

func convertToSARIF(export Export) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(export.Findings))
	rules := make(map[string]map[string]interface{})

	for _, f := range export.Findings {
		messageText := f.Message
		if messageText == "" {
			messageText = f.Title
		}

		result := map[string]interface{}{
			"ruleId": f.RuleID,
			"level":  convertSeverity(f.Severity),
			"message": map[string]interface{}{
				"text": messageText,
			},
		}

		locations := make([]map[string]interface{}, 0, len(f.Locations))
		for _, loc := range f.Locations {
			region := map[string]interface{}{"startLine": loc.StartLine}
			if loc.End() > loc.StartLine {
				region["endLine"] = loc.End()
			}
			locations = append(locations, map[string]interface{}{
				"physicalLocation": map[string]interface{}{
					"artifactLocation": map[string]interface{}{"uri": loc.Path},
					"region":           region,
				},
			})
		}
		if len(locations) > 0 {
			result["locations"] = locations
		}

		result["properties"] = map[string]interface{}{
			"confidence": string(f.Confidence),
			"effort":     string(f.Effort),
			"layer":      string(f.Layer),
			"autofix":    string(f.Autofix),
			"fingerprint": f.Fingerprint(),
		}

		results = append(results, result)

		if _, ok := rules[f.RuleID]; !ok {
			rule := map[string]interface{}{
				"id":               f.RuleID,
				"name":             f.RuleID,
				"shortDescription": map[string]interface{}{"text": f.Title},
			}
			if helpURI := ruleurl.ResolveURL(f.Tool, f.RuleID); helpURI != "" {
				rule["helpUri"] = helpURI
			}
			rules[f.RuleID] = rule
		}
	}

	ruleList := make([]map[string]interface{}, 0, len(rules))
	for _, r := range rules {
		ruleList = append(ruleList, r)
	}

	return map[string]interface{}{
		"version": "2.1.0",
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":            "vibecheck",
						"informationUri":  "https://github.com/vibecheck-dev/vibecheck",
						"version":         "1.0.0",
						"semanticVersion": "1.0.0",
						"rules":           ruleList,
					},
				},
				"results": results,
				"properties": map[string]interface{}{
					"repository": export.Repo.FullName(),
					"commit":     export.Repo.Commit,
					"runNumber":  export.RunNumber,
					"findings":   len(export.Findings),
				},
			},
		},
	}
}

func convertSeverity(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical, domain.SeverityHigh:
		return "error"
	case domain.SeverityMedium:
		return "warning"
	case domain.SeverityLow:
		return "note"
	default:
		return "warning"
	}
}
