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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/aimcr/cmd/aimcr/config"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/form"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/gitsync"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/session"
	"github.com/AleutianAI/aimcr/pkg/logging"
	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var reviewResume bool

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var (
	reviewCmd = &cobra.Command{
		Use:   "review",
		Short: "Fill in or edit a model control review",
	}

	reviewNewCmd = &cobra.Command{
		Use:   "new",
		Short: "Start a new review form",
		Long: `Start an interactive review form.

Progress is journaled locally after every completed section, so an
interrupted session can be picked up again with --resume. Finishing
the form writes a draft into the workspace.

Examples:
  aimcr review new
  aimcr review new --resume   # continue the most recent session`,
		Run: runReviewNew,
	}

	reviewEditCmd = &cobra.Command{
		Use:   "edit [draft-file]",
		Short: "Edit an existing draft",
		Args:  cobra.ExactArgs(1),
		Run:   runReviewEdit,
	}
)

func init() {
	reviewNewCmd.Flags().BoolVar(&reviewResume, "resume", false,
		"Resume the most recent interrupted session")

	reviewCmd.AddCommand(reviewNewCmd)
	reviewCmd.AddCommand(reviewEditCmd)
	rootCmd.AddCommand(reviewCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runReviewNew(cmd *cobra.Command, args []string) {
	journal, sessionID, doc := openSession()
	if journal != nil {
		defer journal.Close()
	}

	if doc == nil {
		doc = review.NewDocument()
		doc.Metadata.ReviewerName = config.Global.Reviewer.Name
		doc.Metadata.ReviewerID = config.Global.Reviewer.ID
		doc.Metadata.AIMCRDate = time.Now().Format("2006-01-02")
	}

	runReviewFlow(journal, sessionID, doc, false)
}

func runReviewEdit(cmd *cobra.Command, args []string) {
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

	journal, sessionID, _ := openSession()
	if journal != nil {
		defer journal.Close()
	}

	runReviewFlow(journal, sessionID, doc, true)
}

// runReviewFlow walks the form sections, journaling after each one,
// then writes the finished draft.
func runReviewFlow(journal *session.Journal, sessionID uuid.UUID, doc *review.Document, editing bool) {
	ux.Title("KSL AI Model Control Review")

	if editing {
		if err := form.ReviewForm(doc).Run(); err != nil {
			abortReview(err)
		}
		checkpointSession(journal, sessionID, doc)
	} else {
		if err := huh.NewForm(form.MetadataGroup(&doc.Metadata)).Run(); err != nil {
			abortReview(err)
		}
		checkpointSession(journal, sessionID, doc)
	}

	for _, cat := range review.Categories() {
		for {
			add := false
			prompt := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Add an item to %s?", cat.Display())).
					Value(&add),
			))
			if err := prompt.Run(); err != nil {
				abortReview(err)
			}
			if !add {
				break
			}
			idx, err := doc.AddArtifact(cat)
			if err != nil {
				abortReview(err)
			}
			artifacts := doc.Artifacts(cat)
			if err := huh.NewForm(form.ArtifactGroup(cat, &artifacts[idx])).Run(); err != nil {
				abortReview(err)
			}
			checkpointSession(journal, sessionID, doc)
		}
	}

	if !editing {
		if err := huh.NewForm(form.ClosingGroup(doc)).Run(); err != nil {
			abortReview(err)
		}
		checkpointSession(journal, sessionID, doc)
	}

	finishReview(journal, sessionID, doc)
}

func finishReview(journal *session.Journal, sessionID uuid.UUID, doc *review.Document) {
	s, err := openStore()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to open workspace: %v", err))
		os.Exit(1)
	}
	now := time.Now()
	path, err := s.SaveDraft(doc, now)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to save draft: %v", err))
		os.Exit(1)
	}
	ux.Success(fmt.Sprintf("Draft saved: %s", filepath.Base(path)))

	if journal != nil {
		if err := journal.Delete(sessionID); err != nil {
			logging.Default().Warn("session cleanup failed", "error", err)
		}
	}

	if config.Global.Workspace.AutoSync {
		ctx, cancel := commandContext()
		defer cancel()
		msg := gitsync.DraftCommitMessage(doc.Metadata.ProjectID, now)
		if err := autoSync(ctx, msg, false); err != nil {
			ux.Warning(fmt.Sprintf("workspace sync failed: %v", err))
		}
	}
}

// openSession opens the local session journal. A nil journal disables
// session recovery but never blocks the review itself.
func openSession() (*session.Journal, uuid.UUID, *review.Document) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, uuid.Nil, nil
	}
	ttl := time.Duration(config.Global.Session.TTLHours) * time.Hour
	journal, err := session.NewJournal(session.DefaultConfig(filepath.Join(home, ".aimcr", "sessions")), ttl)
	if err != nil {
		logging.Default().Warn("session journal unavailable", "error", err)
		return nil, uuid.Nil, nil
	}

	if reviewResume {
		id, doc, err := journal.Latest()
		if err == nil {
			ux.Info("Resuming previous session")
			return journal, id, doc
		}
		ux.Warning("No session to resume; starting fresh")
	}
	return journal, uuid.New(), nil
}

func checkpointSession(journal *session.Journal, sessionID uuid.UUID, doc *review.Document) {
	if journal == nil || config.Global.Session.AutosaveSeconds <= 0 {
		return
	}
	if err := journal.Save(sessionID, doc); err != nil {
		logging.Default().Warn("session autosave failed", "error", err)
	}
}

func abortReview(err error) {
	if errors.Is(err, huh.ErrUserAborted) {
		ux.Muted("Review aborted; progress kept in the session journal.")
		os.Exit(0)
	}
	ux.Error(fmt.Sprintf("Form error: %v", err))
	os.Exit(1)
}
