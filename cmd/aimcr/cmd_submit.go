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
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/form"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/gitsync"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/store"
	"github.com/AleutianAI/aimcr/pkg/scoring"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	submitResubmit string
	submitYes      bool
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var submitCmd = &cobra.Command{
	Use:   "submit [draft-file]",
	Short: "Submit a completed review into the workspace record",
	Long: `Validate a draft, archive a pre-submission checkpoint, and write
the final submission folder. When the workspace has a git remote
configured, the submission is committed and pushed; a sync failure
fails the submission.

A resubmission replaces the record inside the original submission
folder and appends to the document's submission history.

Examples:
  aimcr submit draft_PROJ001_20260829_143000.json
  aimcr submit draft_PROJ001_20260829_143000.json --resubmit AIMCR-PROJ001-12-08-2026
  aimcr submit review.json --yes   # skip the confirmation prompt`,
	Args: cobra.ExactArgs(1),
	Run:  runSubmitCommand,
}

func init() {
	submitCmd.Flags().StringVar(&submitResubmit, "resubmit", "",
		"Submission folder to resubmit into")
	submitCmd.Flags().BoolVar(&submitYes, "yes", false,
		"Skip the confirmation prompt")

	rootCmd.AddCommand(submitCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runSubmitCommand(cmd *cobra.Command, args []string) {
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
	if submitResubmit != "" {
		doc.OriginalFolder = submitResubmit
	}

	if err := doc.Validate(); err != nil {
		ux.Error(fmt.Sprintf("Review is not ready to submit: %v", err))
		os.Exit(1)
	}

	summary := scoring.Summarize(doc)
	proj := summary.Project
	fmt.Printf("Cumulative risk: %s (%s)  %s\n",
		ux.RiskStyle(proj.CumulativeScore).Render(fmt.Sprintf("%d", proj.CumulativeScore)),
		proj.Category,
		ux.VerdictStyle(string(proj.Verdict)).Render(string(proj.Verdict)),
	)

	if !submitYes {
		confirmed := false
		if err := form.ConfirmSubmit(doc.Metadata.ProjectID, &confirmed).Run(); err != nil {
			ux.Error(fmt.Sprintf("Confirmation failed: %v", err))
			os.Exit(1)
		}
		if !confirmed {
			ux.Muted("Submission cancelled.")
			return
		}
	}

	now := timeNow()

	if _, err := s.ArchiveCheckpoint(doc, doc.Metadata.ProjectID, store.CheckpointTypePreSubmission, now); err != nil {
		ux.Error(fmt.Sprintf("Failed to archive checkpoint: %v", err))
		os.Exit(1)
	}

	folder, err := s.SaveSubmission(doc, now)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to write submission: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Submission written: %s", folder))

	ctx, cancel := commandContext()
	defer cancel()
	err = ux.WithSpinner("Syncing workspace", func() error {
		return autoSync(ctx, gitsync.FinalCommitMessage(doc.Metadata.ProjectID), true)
	})
	if err != nil {
		ux.Error(fmt.Sprintf("Submission sync failed: %v", err))
		ux.Muted("The submission folder is on disk; fix the git remote and run 'aimcr workspace sync'.")
		os.Exit(1)
	}
	ux.Success("Submission recorded in workspace history")
}
