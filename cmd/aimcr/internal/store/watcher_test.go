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
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDraftWatcher_NotifiesOnDraftWrite(t *testing.T) {
	s := newTestStore(t)

	var hits atomic.Int32
	w, err := NewDraftWatcher(s, func() { hits.Add(1) })
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watch time to establish
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(s.DraftsDir(), "draft_PROJ001_20260829_120000.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if hits.Load() > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watcher callback never fired for draft write")
}

func TestDraftWatcher_IgnoresOtherFiles(t *testing.T) {
	s := newTestStore(t)

	var hits atomic.Int32
	w, err := NewDraftWatcher(s, func() { hits.Add(1) })
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(s.DraftsDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("scratch"), 0644))

	time.Sleep(300 * time.Millisecond)
	if hits.Load() != 0 {
		t.Fatalf("callback fired %d times for non-draft file", hits.Load())
	}
}
