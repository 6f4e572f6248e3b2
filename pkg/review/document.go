// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package review

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by artifact mutations with an index
// outside the category's collection. The document is never modified when
// this error is returned.
var ErrIndexOutOfRange = errors.New("artifact index out of range")

// Artifacts returns the artifact collection for the category.
// The returned slice aliases the document; mutations through it are
// visible in the document.
func (d *Document) Artifacts(cat Category) []Artifact {
	switch cat {
	case CategoryThirdPartySoftware:
		return d.ThirdPartySoftware
	case CategorySourceCode:
		return d.SourceCode
	case CategoryDatasets:
		return d.Datasets
	case CategoryModels:
		return d.Models
	default:
		return nil
	}
}

func (d *Document) setArtifacts(cat Category, arts []Artifact) {
	switch cat {
	case CategoryThirdPartySoftware:
		d.ThirdPartySoftware = arts
	case CategorySourceCode:
		d.SourceCode = arts
	case CategoryDatasets:
		d.Datasets = arts
	case CategoryModels:
		d.Models = arts
	}
}

// AddArtifact appends a new artifact to the category with every check at
// the creation default score and an auto-generated placeholder name.
// Returns the index of the new artifact.
func (d *Document) AddArtifact(cat Category) (int, error) {
	if !cat.Valid() {
		return 0, fmt.Errorf("add artifact: unknown category %q", cat)
	}
	arts := d.Artifacts(cat)
	a := NewArtifact(cat, fmt.Sprintf("Artifact %d", len(arts)+1))
	d.setArtifacts(cat, append(arts, a))
	return len(arts), nil
}

// UpdateArtifact replaces the artifact at idx in the category.
func (d *Document) UpdateArtifact(cat Category, idx int, a Artifact) error {
	if !cat.Valid() {
		return fmt.Errorf("update artifact: unknown category %q", cat)
	}
	arts := d.Artifacts(cat)
	if idx < 0 || idx >= len(arts) {
		return fmt.Errorf("update artifact %s[%d]: %w", cat, idx, ErrIndexOutOfRange)
	}
	arts[idx] = a
	return nil
}

// RemoveArtifact deletes the artifact at idx from the category.
func (d *Document) RemoveArtifact(cat Category, idx int) error {
	if !cat.Valid() {
		return fmt.Errorf("remove artifact: unknown category %q", cat)
	}
	arts := d.Artifacts(cat)
	if idx < 0 || idx >= len(arts) {
		return fmt.Errorf("remove artifact %s[%d]: %w", cat, idx, ErrIndexOutOfRange)
	}
	d.setArtifacts(cat, append(arts[:idx], arts[idx+1:]...))
	return nil
}

// SetMetadata replaces the document metadata.
func (d *Document) SetMetadata(m Metadata) {
	d.Metadata = m
}

// ArtifactCount returns the total number of artifacts across all sections.
func (d *Document) ArtifactCount() int {
	n := 0
	for _, cat := range Categories() {
		n += len(d.Artifacts(cat))
	}
	return n
}

// RecordSubmission appends a submission event with the given timestamp.
func (d *Document) RecordSubmission(timestamp string, resubmission bool) {
	action := "initial_submission"
	if resubmission {
		action = "resubmission"
	}
	d.SubmissionHistory = append(d.SubmissionHistory, SubmissionEvent{
		Timestamp: timestamp,
		Action:    action,
	})
}
