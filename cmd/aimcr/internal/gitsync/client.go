// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package gitsync keeps the review workspace in sync with a git remote.
//
// # Description
//
// The workspace is an ordinary git clone. Drafts and submissions are
// committed as they are saved, giving reviewers a full history and
// making the remote the system of record. Sync is best-effort for
// drafts (a failed push is a warning) and mandatory for submissions.
//
// # Thread Safety
//
// Client issues one git subprocess at a time per call; concurrent
// calls against the same workspace are serialized by git's own
// index lock.
package gitsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/AleutianAI/aimcr/pkg/logging"
)

// Client runs git operations against a workspace clone.
type Client struct {
	dir    string
	branch string
	logger *logging.Logger
}

// New creates a Client for the workspace at dir.
func New(dir string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{dir: dir, logger: logger}
}

// WithBranch pins clone, pull, and push to a named branch.
//
// An empty branch keeps git's default branch behavior.
func (c *Client) WithBranch(branch string) *Client {
	c.branch = strings.TrimSpace(branch)
	return c
}

// Dir returns the workspace directory.
func (c *Client) Dir() string {
	return c.dir
}

// DraftCommitMessage builds the commit message for a draft save.
// An unnamed draft commits as project "unnamed", matching the draft
// filename fallback.
func DraftCommitMessage(projectID string, now time.Time) string {
	if strings.TrimSpace(projectID) == "" {
		projectID = "unnamed"
	}
	return fmt.Sprintf("draft: %s %s", projectID, now.Format("20060102_150405"))
}

// FinalCommitMessage builds the commit message for a submission.
func FinalCommitMessage(projectID string) string {
	return fmt.Sprintf("FINAL: %s", projectID)
}

// CloneOrPull brings the workspace up to date with the remote.
//
// A missing .git directory triggers a clone into the workspace path;
// otherwise the existing clone is pulled. An empty remote with no
// existing clone initializes a fresh local-only repository.
func (c *Client) CloneOrPull(ctx context.Context, remote string) error {
	if _, err := os.Stat(filepath.Join(c.dir, ".git")); os.IsNotExist(err) {
		if remote == "" {
			initArgs := []string{"init"}
			if c.branch != "" {
				initArgs = append(initArgs, "-b", c.branch)
			}
			if _, err := c.run(ctx, initArgs...); err != nil {
				return err
			}
			c.logger.Info("initialized local workspace repository", "dir", c.dir)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(c.dir), 0755); err != nil {
			return fmt.Errorf("create workspace parent: %w", err)
		}
		cloneArgs := []string{"clone"}
		if c.branch != "" {
			cloneArgs = append(cloneArgs, "-b", c.branch)
		}
		cloneArgs = append(cloneArgs, remote, c.dir)
		if _, err := c.runIn(ctx, filepath.Dir(c.dir), cloneArgs...); err != nil {
			return err
		}
		c.logger.Info("workspace cloned", "remote", remote, "dir", c.dir)
		return nil
	}

	if remote == "" {
		return nil
	}
	pullArgs := []string{"pull"}
	if c.branch != "" {
		pullArgs = append(pullArgs, "origin", c.branch)
	}
	if _, err := c.run(ctx, pullArgs...); err != nil {
		return err
	}
	c.logger.Info("workspace updated", "dir", c.dir)
	return nil
}

// Status returns the porcelain status output for the workspace.
func (c *Client) Status(ctx context.Context) (string, error) {
	return c.run(ctx, "status", "--porcelain")
}

// HasChanges reports whether the workspace has uncommitted changes.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit stages everything and commits with the given message.
//
// A clean tree is not an error; the commit is skipped and logged.
func (c *Client) Commit(ctx context.Context, message string) error {
	if _, err := c.run(ctx, "add", "-A"); err != nil {
		return err
	}
	dirty, err := c.HasChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		c.logger.Info("no changes to commit", "dir", c.dir)
		return nil
	}
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return err
	}
	c.logger.Info("committed", "message", message)
	return nil
}

// Push pushes committed changes to the remote.
func (c *Client) Push(ctx context.Context) error {
	pushArgs := []string{"push"}
	if c.branch != "" {
		pushArgs = append(pushArgs, "-u", "origin", c.branch)
	}
	if _, err := c.run(ctx, pushArgs...); err != nil {
		return err
	}
	c.logger.Info("pushed to remote")
	return nil
}

// CommitAndPush commits staged workspace changes and pushes them.
func (c *Client) CommitAndPush(ctx context.Context, message string) error {
	if err := c.Commit(ctx, message); err != nil {
		return err
	}
	return c.Push(ctx)
}

// run executes a git subcommand in the workspace directory.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	return c.runIn(ctx, c.dir, args...)
}

// runIn executes a git subcommand in an explicit directory.
func (c *Client) runIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrGitNotInstalled
		}
		name := "git " + strings.Join(args, " ")
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", NewCommandError(name, exitCode, stderr.String(), err)
	}
	return stdout.String(), nil
}
