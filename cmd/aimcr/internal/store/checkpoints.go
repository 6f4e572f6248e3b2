// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AleutianAI/aimcr/pkg/review"
)

// CheckpointTypePreSubmission is the default checkpoint type, written
// right before a submission is finalized.
const CheckpointTypePreSubmission = "pre_submission"

// CheckpointMetadata identifies when and why a checkpoint was taken.
type CheckpointMetadata struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	ProjectID string `json:"project_id"`
}

// Checkpoint pairs checkpoint metadata with the archived form state.
type Checkpoint struct {
	Metadata CheckpointMetadata `json:"checkpoint_metadata"`
	FormData *review.Document   `json:"form_data"`
}

// CheckpointInfo describes one checkpoint file in a listing.
type CheckpointInfo struct {
	Path      string
	Name      string
	Type      string
	Timestamp string
}

// ArchiveCheckpoint snapshots the document under checkpoints/<project>/.
//
// Submission bookkeeping fields are not part of the archived form
// state. Returns the path written.
func (s *Store) ArchiveCheckpoint(doc *review.Document, projectID, checkpointType string, now time.Time) (string, error) {
	if checkpointType == "" {
		checkpointType = CheckpointTypePreSubmission
	}
	dir := s.CheckpointsDir(projectID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create checkpoints dir: %w", err)
	}

	// Strip submission bookkeeping from the archived copy
	snapshot := *doc
	snapshot.SubmissionHistory = nil
	snapshot.OriginalFolder = ""

	cp := Checkpoint{
		Metadata: CheckpointMetadata{
			Type:      checkpointType,
			Timestamp: now.Format(time.RFC3339),
			ProjectID: projectID,
		},
		FormData: &snapshot,
	}

	filename := fmt.Sprintf("checkpoint_%s_%s.json", checkpointType, now.Format(fileStampLayout))
	path := filepath.Join(dir, filename)
	if err := writeJSON(path, cp); err != nil {
		return "", err
	}
	s.logger.Info("checkpoint archived",
		"project_id", projectID,
		"type", checkpointType,
		"path", path)
	return path, nil
}

// ListCheckpoints returns a project's checkpoints, newest first.
//
// Malformed checkpoint files are logged and skipped.
func (s *Store) ListCheckpoints(projectID string) ([]CheckpointInfo, error) {
	dir := s.CheckpointsDir(projectID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []CheckpointInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoints dir: %w", err)
	}

	var checkpoints []CheckpointInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "checkpoint_") ||
			!strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable checkpoint", "path", path, "error", err)
			continue
		}
		var cp Checkpoint
		if err := json.Unmarshal(data, &cp); err != nil {
			s.logger.Warn("skipping malformed checkpoint", "path", path, "error", err)
			continue
		}
		info := CheckpointInfo{
			Path:      path,
			Name:      entry.Name(),
			Type:      cp.Metadata.Type,
			Timestamp: cp.Metadata.Timestamp,
		}
		if info.Type == "" {
			info.Type = "unknown"
		}
		checkpoints = append(checkpoints, info)
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		return checkpoints[i].Timestamp > checkpoints[j].Timestamp
	})
	return checkpoints, nil
}

// LoadCheckpoint reads a checkpoint file and returns the archived form
// state with its metadata.
func (s *Store) LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cp.FormData == nil {
		return nil, fmt.Errorf("checkpoint %s has no form data", path)
	}
	return &cp, nil
}
