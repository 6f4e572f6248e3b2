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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/cmd/aimcr/config"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/report"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	reportFormat string
	reportOutput string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var reportCmd = &cobra.Command{
	Use:   "report [review-file]",
	Short: "Generate a review report",
	Long: `Render a review document as a styled terminal report, a markdown
document, or the raw JSON summary record.

Examples:
  aimcr report AIMCR-PROJ001-29-08-2026
  aimcr report draft_PROJ001_20260829_143000.json --format markdown -o review.md
  aimcr report review.json --format json`,
	Args: cobra.ExactArgs(1),
	Run:  runReportCommand,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"Output format: text, markdown, or json (default from config)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"Write the report to a file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runReportCommand(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}
	doc, err := resolveDocument(s, args[0])
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	name := reportFormat
	if name == "" {
		name = config.Global.Report.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			ux.Error(fmt.Sprintf("Failed to create output file: %v", err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := report.New(doc, timeNow()).Render(out, format); err != nil {
		ux.Error(fmt.Sprintf("Failed to render report: %v", err))
		os.Exit(1)
	}
	if reportOutput != "" {
		ux.Success(fmt.Sprintf("Report written to %s", reportOutput))
	}
}
