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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AleutianAI/aimcr/cmd/aimcr/config"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/gitsync"
	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/store"
	"github.com/AleutianAI/aimcr/pkg/logging"
	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// timeNow is swapped out in tests that need fixed timestamps.
var timeNow = time.Now

// expandPath resolves a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

// workspacePath returns the configured workspace root, expanded.
func workspacePath() string {
	return expandPath(config.Global.Workspace.Path)
}

// openStore opens the workspace document store.
func openStore() (*store.Store, error) {
	return store.New(workspacePath(), logging.Default())
}

// syncClient returns a git client rooted at the workspace, pinned to
// the configured branch.
func syncClient() *gitsync.Client {
	return gitsync.New(workspacePath(), logging.Default()).
		WithBranch(config.Global.Workspace.Branch)
}

// autoSync commits and optionally pushes workspace changes.
//
// Draft saves treat sync as best-effort: a missing git binary or a
// failed push is a warning, not a failure. Submissions pass
// mandatory=true and get the error back instead.
func autoSync(ctx context.Context, message string, mandatory bool) error {
	client := syncClient()
	if err := client.CloneOrPull(ctx, config.Global.Workspace.Remote); err != nil {
		if !mandatory {
			if errors.Is(err, gitsync.ErrGitNotInstalled) {
				ux.Warning("git is not installed; workspace history disabled")
			} else {
				ux.Warning(fmt.Sprintf("workspace sync skipped: %v", err))
			}
			return nil
		}
		return err
	}
	err := client.Commit(ctx, message)
	if err == nil && config.Global.Workspace.Remote != "" {
		err = client.Push(ctx)
	}
	if err != nil && !mandatory {
		ux.Warning(fmt.Sprintf("workspace sync failed: %v", err))
		return nil
	}
	return err
}

// resolveDocument loads a review document from a path argument.
//
// Accepts a JSON file path, a submission folder path, or a bare
// submission folder name under the workspace.
func resolveDocument(s *store.Store, arg string) (*review.Document, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("no review file given")
	}

	candidates := []string{
		arg,
		filepath.Join(s.DraftsDir(), arg),
		filepath.Join(s.SubmissionsDir(), arg),
	}
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			path = filepath.Join(path, "aimcr_data.json")
			if _, err := os.Stat(path); err != nil {
				continue
			}
		}
		return s.LoadDraft(path)
	}
	return nil, fmt.Errorf("review file not found: %s", arg)
}

// commandContext returns a context bounded by a sensible CLI timeout.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}
