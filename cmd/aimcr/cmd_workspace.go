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
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/cmd/aimcr/config"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var (
	workspaceCmd = &cobra.Command{
		Use:   "workspace",
		Short: "Manage the review workspace and its git history",
	}

	workspaceInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the workspace and its git repository",
		Long: `Create the workspace directory layout and initialize its git
repository. With a remote configured, the remote is cloned instead.

Examples:
  aimcr workspace init`,
		Run: runWorkspaceInit,
	}

	workspaceSyncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Commit and push pending workspace changes",
		Run:   runWorkspaceSync,
	}

	workspaceStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show workspace contents and pending git changes",
		Run:   runWorkspaceStatus,
	}
)

func init() {
	workspaceCmd.AddCommand(workspaceInitCmd)
	workspaceCmd.AddCommand(workspaceSyncCmd)
	workspaceCmd.AddCommand(workspaceStatusCmd)
	rootCmd.AddCommand(workspaceCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runWorkspaceInit(cmd *cobra.Command, args []string) {
	if _, err := openStore(); err != nil {
		ux.Error(fmt.Sprintf("Failed to create workspace: %v", err))
		os.Exit(1)
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := syncClient().CloneOrPull(ctx, config.Global.Workspace.Remote); err != nil {
		ux.Error(fmt.Sprintf("Failed to initialize git repository: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Workspace ready at %s", workspacePath()))
}

func runWorkspaceSync(cmd *cobra.Command, args []string) {
	ctx, cancel := commandContext()
	defer cancel()
	err := ux.WithSpinner("Syncing workspace", func() error {
		return autoSync(ctx, "workspace sync", true)
	})
	if err != nil {
		ux.Error(fmt.Sprintf("Sync failed: %v", err))
		os.Exit(1)
	}
	ux.Success("Workspace synced")
}

func runWorkspaceStatus(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}

	ctx, cancel := commandContext()
	defer cancel()

	drafts, err := s.ListDrafts(ctx)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to list drafts: %v", err))
		os.Exit(1)
	}
	submissions, err := s.ListSubmissions()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to list submissions: %v", err))
		os.Exit(1)
	}

	ux.Title("Workspace Status")
	fmt.Printf("  Path:        %s\n", workspacePath())
	fmt.Printf("  Drafts:      %d\n", len(drafts))
	fmt.Printf("  Submissions: %d\n", len(submissions))
	for _, sub := range submissions {
		revisions := ""
		if sub.RevisionCount > 1 {
			revisions = fmt.Sprintf("  (%d revisions)", sub.RevisionCount)
		}
		fmt.Printf("    %-38s %s%s\n", sub.Folder, sub.Modified.Format("2006-01-02 15:04"), revisions)
	}

	status, err := syncClient().Status(ctx)
	if err != nil {
		ux.Warning(fmt.Sprintf("git status unavailable: %v", err))
		return
	}
	if strings.TrimSpace(status) == "" {
		ux.Success("No pending git changes")
		return
	}
	ux.Warning("Pending git changes:")
	for _, line := range strings.Split(strings.TrimRight(status, "\n"), "\n") {
		fmt.Printf("    %s\n", line)
	}
}
