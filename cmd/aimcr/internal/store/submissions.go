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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/validation"
)

// SubmissionInfo describes one submission folder in a listing.
type SubmissionInfo struct {
	Folder        string
	Path          string
	ProjectID     string
	ProposalTitle string
	Modified      time.Time

	// RevisionCount is the number of submission history events,
	// including the initial submission.
	RevisionCount int
}

// SubmissionFolderName builds the dated folder name for a project.
func SubmissionFolderName(projectID string, now time.Time) string {
	return fmt.Sprintf("AIMCR-%s-%s", projectID, now.Format(folderDateLayout))
}

// SaveSubmission writes the document into its submission folder.
//
// A fresh submission gets a new dated folder; a document loaded from
// an existing submission (OriginalFolder set) is written back into
// that folder and recorded as a resubmission. The saved file carries
// the appended submission history but not the folder bookkeeping.
// Returns the folder path written.
func (s *Store) SaveSubmission(doc *review.Document, now time.Time) (string, error) {
	projectID, err := validation.SanitizeProjectID(doc.Metadata.ProjectID)
	if err != nil {
		return "", fmt.Errorf("submission requires a valid project id: %w", err)
	}
	if err := os.MkdirAll(s.SubmissionsDir(), 0755); err != nil {
		return "", fmt.Errorf("create submissions dir: %w", err)
	}

	// OriginalFolder can arrive from a flag; validate before joining it
	// onto the workspace path.
	resubmission := doc.OriginalFolder != ""
	folderName := doc.OriginalFolder
	if folderName == "" {
		folderName = SubmissionFolderName(projectID, now)
	} else if err := validation.ValidateFolderName(folderName); err != nil {
		return "", err
	}
	folderPath := filepath.Join(s.SubmissionsDir(), folderName)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return "", fmt.Errorf("create submission folder: %w", err)
	}

	// The saved copy keeps the history but drops folder bookkeeping
	saved := *doc
	saved.OriginalFolder = ""
	saved.RecordSubmission(now.Format(time.RFC3339), resubmission)

	if err := writeJSON(filepath.Join(folderPath, submissionDocName), &saved); err != nil {
		return "", err
	}

	// Carry the appended history back to the caller's document
	doc.SubmissionHistory = saved.SubmissionHistory

	action := "initial_submission"
	if resubmission {
		action = "resubmission"
	}
	s.logger.Info("submission saved",
		"project_id", projectID,
		"folder", folderName,
		"action", action)
	return folderPath, nil
}

// ListSubmissions returns all readable submissions, newest first.
//
// Folders without a readable aimcr_data.json are logged and skipped.
func (s *Store) ListSubmissions() ([]SubmissionInfo, error) {
	entries, err := os.ReadDir(s.SubmissionsDir())
	if os.IsNotExist(err) {
		return []SubmissionInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read submissions dir: %w", err)
	}

	var submissions []SubmissionInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "AIMCR-") {
			continue
		}
		folderPath := filepath.Join(s.SubmissionsDir(), entry.Name())
		jsonPath := filepath.Join(folderPath, submissionDocName)
		stat, err := os.Stat(jsonPath)
		if err != nil {
			continue
		}
		doc, err := readDocument(jsonPath)
		if err != nil {
			s.logger.Warn("skipping malformed submission", "path", jsonPath, "error", err)
			continue
		}

		info := SubmissionInfo{
			Folder:        entry.Name(),
			Path:          folderPath,
			ProjectID:     doc.Metadata.ProjectID,
			ProposalTitle: doc.Metadata.ProposalTitle,
			Modified:      stat.ModTime(),
			RevisionCount: len(doc.SubmissionHistory),
		}
		if info.ProjectID == "" {
			info.ProjectID = "Unknown"
		}
		if info.ProposalTitle == "" {
			info.ProposalTitle = "Untitled"
		}
		submissions = append(submissions, info)
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].Modified.After(submissions[j].Modified)
	})
	return submissions, nil
}

// LoadSubmission reads a submission for editing.
//
// The returned document remembers its folder so a later save becomes
// a resubmission into the same place.
func (s *Store) LoadSubmission(folderName string) (*review.Document, error) {
	if err := validation.ValidateFolderName(folderName); err != nil {
		return nil, err
	}
	jsonPath := filepath.Join(s.SubmissionsDir(), folderName, submissionDocName)
	doc, err := readDocument(jsonPath)
	if err != nil {
		return nil, err
	}
	doc.OriginalFolder = folderName
	return doc, nil
}
