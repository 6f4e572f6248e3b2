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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/report"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/store"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var draftWatch bool

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var (
	draftCmd = &cobra.Command{
		Use:   "draft",
		Short: "Manage in-progress review drafts",
	}

	draftListCmd = &cobra.Command{
		Use:   "list",
		Short: "List drafts in the workspace",
		Long: `List in-progress drafts, newest first.

With --watch, the listing refreshes whenever a draft file changes,
which is useful when the workspace is shared between machines.

Examples:
  aimcr draft list
  aimcr draft list --watch`,
		Run: runDraftList,
	}

	draftShowCmd = &cobra.Command{
		Use:   "show [draft-file]",
		Short: "Render a draft as a text report",
		Args:  cobra.ExactArgs(1),
		Run:   runDraftShow,
	}

	draftDeleteCmd = &cobra.Command{
		Use:   "delete [draft-file]",
		Short: "Delete a draft from the workspace",
		Args:  cobra.ExactArgs(1),
		Run:   runDraftDelete,
	}

	draftSaveCmd = &cobra.Command{
		Use:   "save [review-file]",
		Short: "Import a review JSON as a workspace draft",
		Long: `Copy a review document from anywhere into the workspace drafts
directory under the standard draft naming scheme. Useful for pulling a
submitted review back into editable form or importing a file exported
from another machine.`,
		Args: cobra.ExactArgs(1),
		Run:  runDraftSave,
	}
)

func init() {
	draftListCmd.Flags().BoolVar(&draftWatch, "watch", false,
		"Refresh the listing when draft files change")

	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	draftCmd.AddCommand(draftSaveCmd)
	rootCmd.AddCommand(draftCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runDraftList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := printDraftList(ctx, s); err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
	if !draftWatch {
		return
	}

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ux.Muted("Watching for draft changes. Ctrl-C to stop.")
	if err := watchDraftList(watchCtx, s, func() {
		fmt.Println()
		if err := printDraftList(watchCtx, s); err != nil {
			ux.Warning(err.Error())
		}
	}); err != nil {
		ux.Error(fmt.Sprintf("Failed to watch drafts: %v", err))
		os.Exit(1)
	}
}

// watchDraftList invokes onChange whenever a draft file changes, until
// the context is cancelled.
func watchDraftList(ctx context.Context, s *store.Store, onChange func()) error {
	refresh := make(chan struct{}, 1)
	watcher, err := store.NewDraftWatcher(s, func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	// Start blocks until ctx is cancelled, so it gets its own goroutine
	// while this one consumes the refresh signals.
	go watcher.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-refresh:
			onChange()
		}
	}
}

func printDraftList(ctx context.Context, s *store.Store) error {
	drafts, err := s.ListDrafts(ctx)
	if err != nil {
		return fmt.Errorf("listing drafts: %w", err)
	}
	if len(drafts) == 0 {
		ux.Muted("No drafts in the workspace.")
		return nil
	}
	for _, d := range drafts {
		title := d.ProposalTitle
		if title == "" {
			title = "Untitled"
		}
		fmt.Printf("  %-42s %-16s %s  %s\n",
			d.Name, d.ProjectID, d.Modified.Format("2006-01-02 15:04"), title)
	}
	return nil
}

func runDraftShow(cmd *cobra.Command, args []string) {
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
	if err := report.New(doc, timeNow()).Render(os.Stdout, report.FormatText); err != nil {
		ux.Error(fmt.Sprintf("Failed to render draft: %v", err))
		os.Exit(1)
	}
}

func runDraftSave(cmd *cobra.Command, args []string) {
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
	path, err := s.SaveDraft(doc, timeNow())
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to save draft: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Draft saved: %s", filepath.Base(path)))
}

func runDraftDelete(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}
	path := args[0]
	if !filepath.IsAbs(path) {
		if _, statErr := os.Stat(path); statErr != nil {
			path = filepath.Join(s.DraftsDir(), filepath.Base(path))
		}
	}
	if err := s.DeleteDraft(path); err != nil {
		ux.Error(fmt.Sprintf("Failed to delete draft: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Deleted %s", filepath.Base(path)))
}
