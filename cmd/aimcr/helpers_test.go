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
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/store"
	"github.com/AleutianAI/aimcr/pkg/review"
)

func TestExpandPath(t *testing.T) {
	if got := expandPath("/tmp/workspace"); got != "/tmp/workspace" {
		t.Errorf("expandPath(absolute) = %q, want unchanged", got)
	}
	if got := expandPath("relative/dir"); got != "relative/dir" {
		t.Errorf("expandPath(relative) = %q, want unchanged", got)
	}
	got := expandPath("~/workspace")
	if strings.HasPrefix(got, "~") {
		t.Errorf("expandPath(~/workspace) = %q, tilde not expanded", got)
	}
	if !strings.HasSuffix(got, "workspace") {
		t.Errorf("expandPath(~/workspace) = %q, suffix lost", got)
	}
}

func TestResolveDocument(t *testing.T) {
	s, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	doc := review.NewDocument()
	doc.Metadata.ProjectID = "PROJ001"
	doc.Metadata.ReviewerName = "R. Chen"

	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	draftPath, err := s.SaveDraft(doc, now)
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	folder, err := s.SaveSubmission(doc, now)
	if err != nil {
		t.Fatalf("SaveSubmission: %v", err)
	}

	tests := []struct {
		name string
		arg  string
	}{
		{"absolute draft path", draftPath},
		{"bare draft filename", filepath.Base(draftPath)},
		{"bare submission folder", folder},
		{"submission folder path", filepath.Join(s.SubmissionsDir(), folder)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDocument(s, tt.arg)
			if err != nil {
				t.Fatalf("resolveDocument(%q) error = %v", tt.arg, err)
			}
			if got.Metadata.ProjectID != "PROJ001" {
				t.Errorf("ProjectID = %q, want PROJ001", got.Metadata.ProjectID)
			}
		})
	}
}

func TestResolveDocument_Missing(t *testing.T) {
	s, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if _, err := resolveDocument(s, "no_such_review.json"); err == nil {
		t.Errorf("resolveDocument() with missing file should error")
	}
	if _, err := resolveDocument(s, "  "); err == nil {
		t.Errorf("resolveDocument() with blank argument should error")
	}
}
