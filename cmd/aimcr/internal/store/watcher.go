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
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/AleutianAI/aimcr/pkg/logging"
)

// DraftWatcher watches the drafts directory for changes.
//
// # Description
//
// Detects drafts created, modified, or removed by another process
// (e.g. a git pull in a second terminal) and invokes the callback so
// a live listing can refresh.
//
// # Thread Safety
//
// Safe for concurrent use. Start should only be called once.
type DraftWatcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	callback func()
	logger   *logging.Logger
}

// NewDraftWatcher creates a watcher over the store's drafts directory.
//
// The directory is created if missing so the watch can be established
// before the first draft exists.
func NewDraftWatcher(s *Store, callback func()) (*DraftWatcher, error) {
	if err := os.MkdirAll(s.DraftsDir(), 0755); err != nil {
		return nil, fmt.Errorf("create drafts dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &DraftWatcher{
		dir:      s.DraftsDir(),
		watcher:  watcher,
		callback: callback,
		logger:   s.logger,
	}, nil
}

// Start begins watching for draft changes.
//
// Blocks until the context is cancelled. Should be run in a goroutine.
func (w *DraftWatcher) Start(ctx context.Context) {
	if err := w.watcher.Add(w.dir); err != nil {
		w.logger.Warn("failed to watch drafts dir", "path", w.dir, "error", err)
		return
	}
	w.logger.Debug("watching drafts dir", "path", w.dir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("draft watcher error", "error", err)

		case <-ctx.Done():
			w.logger.Debug("draft watcher stopping")
			return
		}
	}
}

// handleEvent processes a single fsnotify event.
func (w *DraftWatcher) handleEvent(event fsnotify.Event) {
	// Only draft files matter
	base := filepath.Base(event.Name)
	if !strings.HasPrefix(base, "draft_") || !strings.HasSuffix(base, ".json") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("draft changed", "path", event.Name, "op", event.Op.String())
	if w.callback != nil {
		w.callback()
	}
}

// Stop stops the watcher. Safe to call multiple times.
func (w *DraftWatcher) Stop() error {
	return w.watcher.Close()
}
