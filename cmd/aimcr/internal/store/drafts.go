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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/aimcr/pkg/review"
)

// DraftInfo describes one draft file in the workspace listing.
type DraftInfo struct {
	Path          string
	Name          string
	ProjectID     string
	ProposalTitle string
	Modified      time.Time
}

// SaveDraft writes the document as a new timestamped draft file.
//
// The filename is draft_<project>_<ts>.json; a blank project id
// becomes "unnamed". Returns the path written.
func (s *Store) SaveDraft(doc *review.Document, now time.Time) (string, error) {
	if err := os.MkdirAll(s.DraftsDir(), 0755); err != nil {
		return "", fmt.Errorf("create drafts dir: %w", err)
	}

	projectID := strings.TrimSpace(doc.Metadata.ProjectID)
	if projectID == "" {
		projectID = "unnamed"
	}
	filename := fmt.Sprintf("draft_%s_%s.json", projectID, now.Format(fileStampLayout))
	path := filepath.Join(s.DraftsDir(), filename)

	if err := writeJSON(path, doc); err != nil {
		return "", err
	}
	s.logger.Info("draft saved", "project_id", projectID, "path", path)
	return path, nil
}

// ListDrafts returns all readable drafts sorted by mtime, newest first.
//
// Draft metadata comes from the file contents, so files are parsed in
// parallel. Unreadable or malformed files are logged and skipped.
func (s *Store) ListDrafts(ctx context.Context) ([]DraftInfo, error) {
	entries, err := os.ReadDir(s.DraftsDir())
	if os.IsNotExist(err) {
		return []DraftInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drafts dir: %w", err)
	}

	var (
		mu     sync.Mutex
		drafts []DraftInfo
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "draft_") ||
			!strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		entry := entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(s.DraftsDir(), entry.Name())
			info, err := entry.Info()
			if err != nil {
				s.logger.Warn("skipping unreadable draft", "path", path, "error", err)
				return nil
			}
			doc, err := readDocument(path)
			if err != nil {
				s.logger.Warn("skipping malformed draft", "path", path, "error", err)
				return nil
			}
			mu.Lock()
			drafts = append(drafts, DraftInfo{
				Path:          path,
				Name:          entry.Name(),
				ProjectID:     doc.Metadata.ProjectID,
				ProposalTitle: doc.Metadata.ProposalTitle,
				Modified:      info.ModTime(),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].Modified.After(drafts[j].Modified)
	})
	return drafts, nil
}

// LoadDraft reads a draft document from path.
func (s *Store) LoadDraft(path string) (*review.Document, error) {
	return readDocument(path)
}

// DeleteDraft removes a draft file.
func (s *Store) DeleteDraft(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete draft %s: %w", path, err)
	}
	s.logger.Info("draft deleted", "path", path)
	return nil
}
