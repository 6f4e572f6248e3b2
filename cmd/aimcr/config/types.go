// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
)

// CurrentConfigVersion tracks the config schema for future migrations.
const CurrentConfigVersion = "1"

type AimcrConfig struct {
	// Meta: config schema bookkeeping
	Meta MetaConfig `yaml:"meta"`

	// Workspace: where drafts, checkpoints, and submissions live
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Reviewer: defaults pre-filled into new review forms
	Reviewer ReviewerConfig `yaml:"reviewer"`

	// Session: autosave behavior for in-progress reviews
	Session SessionConfig `yaml:"session"`

	// Report: default rendering options
	Report ReportConfig `yaml:"report"`
}

type MetaConfig struct {
	Version string `yaml:"version"`
}

type WorkspaceConfig struct {
	Path     string `yaml:"path"`      // e.g. ~/.aimcr/workspace
	Remote   string `yaml:"remote"`    // git remote URL, empty disables sync
	Branch   string `yaml:"branch"`    // e.g. main
	AutoSync bool   `yaml:"auto_sync"` // commit and push on save/submit
}

type ReviewerConfig struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

type SessionConfig struct {
	// AutosaveSeconds between badger journal writes; 0 disables autosave
	AutosaveSeconds int `yaml:"autosave_seconds"`

	// TTLHours before an abandoned session journal expires
	TTLHours int `yaml:"ttl_hours"`
}

type ReportConfig struct {
	// Format can be "text", "markdown", or "json"
	Format string `yaml:"format"`
}

func DefaultConfig() AimcrConfig {
	workspace := "workspace"
	if home, err := os.UserHomeDir(); err == nil {
		workspace = filepath.Join(home, ".aimcr", "workspace")
	}
	return AimcrConfig{
		Meta: MetaConfig{
			Version: CurrentConfigVersion,
		},
		Workspace: WorkspaceConfig{
			Path:     workspace,
			Remote:   "",
			Branch:   "main",
			AutoSync: false,
		},
		Reviewer: ReviewerConfig{},
		Session: SessionConfig{
			AutosaveSeconds: 30,
			TTLHours:        72,
		},
		Report: ReportConfig{
			Format: "text",
		},
	}
}
