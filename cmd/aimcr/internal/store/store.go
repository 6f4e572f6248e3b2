// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store implements the filesystem workspace layout for reviews.
//
// # Description
//
// The workspace holds three kinds of records under one root:
//
//	<root>/drafts/draft_<project>_<ts>.json
//	<root>/checkpoints/<project>/checkpoint_<type>_<ts>.json
//	<root>/submissions/AIMCR-<project>-<dd-mm-yyyy>/aimcr_data.json
//
// Listings tolerate malformed JSON: unreadable entries are skipped and
// logged, never aborting the listing.
//
// # Thread Safety
//
// Store methods are safe for concurrent use; each file operation is
// independent. Concurrent writes to the same draft path last-write-win.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AleutianAI/aimcr/pkg/logging"
	"github.com/AleutianAI/aimcr/pkg/review"
)

// Timestamp layouts used in workspace filenames.
const (
	fileStampLayout   = "20060102_150405"
	folderDateLayout  = "02-01-2006"
	submissionDocName = "aimcr_data.json"
)

// Store provides access to workspace drafts, checkpoints, and submissions.
type Store struct {
	root   string
	logger *logging.Logger
}

// New creates a Store rooted at the given workspace directory.
//
// The directory is created if it does not exist. A nil logger falls
// back to the package default.
func New(root string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create workspace root %s: %w", root, err)
	}
	return &Store{root: root, logger: logger}, nil
}

// Root returns the workspace root directory.
func (s *Store) Root() string {
	return s.root
}

// DraftsDir returns the drafts directory path.
func (s *Store) DraftsDir() string {
	return filepath.Join(s.root, "drafts")
}

// CheckpointsDir returns the checkpoint directory for a project.
func (s *Store) CheckpointsDir(projectID string) string {
	return filepath.Join(s.root, "checkpoints", projectID)
}

// SubmissionsDir returns the submissions directory path.
func (s *Store) SubmissionsDir() string {
	return filepath.Join(s.root, "submissions")
}

// writeJSON marshals v with two-space indentation and writes it atomically
// enough for a single-editor workspace (write then rename is not needed
// because git provides the history).
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readDocument reads and decodes a review document from path.
func readDocument(path string) (*review.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc review.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}
