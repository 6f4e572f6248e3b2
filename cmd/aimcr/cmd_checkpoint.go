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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var (
	checkpointCmd = &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect and restore form checkpoints",
		Long: `Checkpoints are automatic snapshots of a review's form state,
archived per project. A pre-submission checkpoint is always taken
before a submission is written, so any submitted review can be
recovered to its last editable state.`,
	}

	checkpointListCmd = &cobra.Command{
		Use:   "list [project-id]",
		Short: "List checkpoints for a project, newest first",
		Args:  cobra.ExactArgs(1),
		Run:   runCheckpointList,
	}

	checkpointRestoreCmd = &cobra.Command{
		Use:   "restore [checkpoint-file]",
		Short: "Restore a checkpoint into a new draft",
		Args:  cobra.ExactArgs(1),
		Run:   runCheckpointRestore,
	}
)

func init() {
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointRestoreCmd)
	rootCmd.AddCommand(checkpointCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runCheckpointList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}
	checkpoints, err := s.ListCheckpoints(args[0])
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to list checkpoints: %v", err))
		os.Exit(1)
	}
	if len(checkpoints) == 0 {
		ux.Muted(fmt.Sprintf("No checkpoints for %s.", args[0]))
		return
	}
	for _, cp := range checkpoints {
		fmt.Printf("  %-48s %-16s %s\n", cp.Name, cp.Type, cp.Timestamp)
	}
}

func runCheckpointRestore(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}

	path := args[0]
	if _, statErr := os.Stat(path); statErr != nil && !filepath.IsAbs(path) {
		// Allow checkpoints/<project>/<name> relative to the workspace.
		path = filepath.Join(s.Root(), path)
	}

	cp, err := s.LoadCheckpoint(path)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to load checkpoint: %v", err))
		os.Exit(1)
	}

	draftPath, err := s.SaveDraft(cp.FormData, timeNow())
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to save restored draft: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Checkpoint restored to %s", filepath.Base(draftPath)))
}
