// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/scoring"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	scoreJSON    bool
	scoreQuiet   bool
	scoreExplain bool
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var scoreCmd = &cobra.Command{
	Use:   "score [review-file]",
	Short: "Compute the risk verdict for a review document",
	Long: `Score a review document and print the section and project verdicts.

The score is recomputed from the document on every run: per section,
each question contributes the maximum score any artifact gave it, and
the section total is the sum of those maxima. A section fails when its
total reaches the fail threshold. The project verdict fails when any
section fails.

Examples:
  aimcr score draft_PROJ001_20260829_143000.json
  aimcr score AIMCR-PROJ001-29-08-2026        # scored submission
  aimcr score review.json --json              # JSON output for automation
  aimcr score review.json --explain           # per-question breakdown
  aimcr score review.json --quiet             # exit code only

Exit Codes:
  0 = All sections pass
  1 = At least one section failed
  2 = Error (file not found, unreadable)`,
	Args: cobra.ExactArgs(1),
	Run:  runScoreCommand,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false,
		"Output as JSON")
	scoreCmd.Flags().BoolVar(&scoreQuiet, "quiet", false,
		"Only exit code, no output")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false,
		"Show per-question score maxima")

	rootCmd.AddCommand(scoreCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runScoreCommand(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		outputScoreError("Failed to open workspace", err)
		os.Exit(scoring.ExitError)
	}
	doc, err := resolveDocument(s, args[0])
	if err != nil {
		outputScoreError("Failed to load review", err)
		os.Exit(scoring.ExitError)
	}

	summary := scoring.Summarize(doc)

	if !scoreQuiet {
		if scoreJSON {
			outputScoreJSON(summary)
		} else {
			outputScoreText(doc, summary)
		}
	}

	if summary.Project.Verdict == scoring.VerdictFail {
		os.Exit(scoring.ExitFail)
	}
	os.Exit(scoring.ExitPass)
}

// =============================================================================
// OUTPUT FUNCTIONS
// =============================================================================

func outputScoreError(msg string, err error) {
	if scoreJSON {
		result := map[string]interface{}{
			"success": false,
			"error":   fmt.Sprintf("%s: %v", msg, err),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(result)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	}
}

func outputScoreJSON(summary scoring.Summary) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
		os.Exit(scoring.ExitError)
	}
}

func outputScoreText(doc *review.Document, summary scoring.Summary) {
	for _, cat := range review.Categories() {
		sec := summary.Section(cat)
		verdict := ux.VerdictStyle(string(sec.Verdict)).Render(string(sec.Verdict))
		fmt.Printf("%-24s total %-3d highest %s (%s)  %s\n",
			cat.Display(),
			sec.TotalScore,
			ux.RiskStyle(sec.HighestScore).Render(fmt.Sprintf("%d", sec.HighestScore)),
			sec.Category,
			verdict,
		)
		if scoreExplain && sec.ArtifactCount > 0 {
			for _, q := range scoring.QuestionMaxima(cat.Questions(), doc.Artifacts(cat)) {
				fmt.Printf("    %s %s\n",
					ux.RiskStyle(q.Max).Render(fmt.Sprintf("%d", q.Max)), q.Question)
			}
		}
	}
	fmt.Println()
	proj := summary.Project
	fmt.Printf("Cumulative: %s (%s)  %s\n",
		ux.RiskStyle(proj.CumulativeScore).Render(fmt.Sprintf("%d", proj.CumulativeScore)),
		proj.Category,
		ux.VerdictStyle(string(proj.Verdict)).Render(string(proj.Verdict)),
	)
}
