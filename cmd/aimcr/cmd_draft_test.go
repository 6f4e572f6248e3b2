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
	"sync/atomic"
	"testing"
	"time"

	"github.com/AleutianAI/aimcr/cmd/aimcr/internal/store"
	"github.com/AleutianAI/aimcr/pkg/review"
)

// A draft written while watching must reach the refresh callback; the
// consumer loop runs in the calling goroutine while the watcher runs
// in its own.
func TestWatchDraftList_RefreshesOnDraftWrite(t *testing.T) {
	s, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var refreshes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchDraftList(ctx, s, func() {
			refreshes.Add(1)
		})
	}()

	// Give the watcher time to establish before writing.
	time.Sleep(100 * time.Millisecond)

	doc := review.NewDocument()
	doc.Metadata.ProjectID = "PROJ001"
	if _, err := s.SaveDraft(doc, time.Now()); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for refreshes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("draft write never triggered a listing refresh")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchDraftList() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watchDraftList did not return after cancellation")
	}
}
