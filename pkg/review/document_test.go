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
	"testing"
)

// TestDocument_AddArtifact verifies creation defaults and numbering.
func TestDocument_AddArtifact(t *testing.T) {
	doc := NewDocument()

	idx, err := doc.AddArtifact(CategoryThirdPartySoftware)
	if err != nil {
		t.Fatalf("AddArtifact: %v", err)
	}
	if idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}

	idx, err = doc.AddArtifact(CategoryThirdPartySoftware)
	if err != nil {
		t.Fatalf("AddArtifact: %v", err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	arts := doc.Artifacts(CategoryThirdPartySoftware)
	if len(arts) != 2 {
		t.Fatalf("artifact count = %d, want 2", len(arts))
	}
	if arts[1].Name != "Artifact 2" {
		t.Errorf("auto name = %q, want %q", arts[1].Name, "Artifact 2")
	}
	if len(arts[0].Checks) != 6 {
		t.Errorf("check count = %d, want 6", len(arts[0].Checks))
	}
}

// TestDocument_AddArtifact_UnknownCategory verifies category validation.
func TestDocument_AddArtifact_UnknownCategory(t *testing.T) {
	doc := NewDocument()
	if _, err := doc.AddArtifact(Category("firmware")); err == nil {
		t.Errorf("AddArtifact(firmware) = nil error, want error")
	}
}

// TestDocument_UpdateArtifact verifies in-place replacement.
func TestDocument_UpdateArtifact(t *testing.T) {
	doc := NewDocument()
	doc.AddArtifact(CategoryModels)

	a := NewArtifact(CategoryModels, "renamed")
	a.IsProprietary = true
	if err := doc.UpdateArtifact(CategoryModels, 0, a); err != nil {
		t.Fatalf("UpdateArtifact: %v", err)
	}

	got := doc.Models[0]
	if got.Name != "renamed" || !got.IsProprietary {
		t.Errorf("artifact = %+v, want renamed proprietary", got)
	}
}

// TestDocument_RemoveArtifact verifies deletion and order preservation.
func TestDocument_RemoveArtifact(t *testing.T) {
	doc := NewDocument()
	for i := 0; i < 3; i++ {
		doc.AddArtifact(CategoryDatasets)
	}

	if err := doc.RemoveArtifact(CategoryDatasets, 1); err != nil {
		t.Fatalf("RemoveArtifact: %v", err)
	}

	arts := doc.Artifacts(CategoryDatasets)
	if len(arts) != 2 {
		t.Fatalf("artifact count = %d, want 2", len(arts))
	}
	if arts[0].Name != "Artifact 1" || arts[1].Name != "Artifact 3" {
		t.Errorf("names = %q, %q; want Artifact 1, Artifact 3", arts[0].Name, arts[1].Name)
	}
}

// TestDocument_IndexOutOfRange verifies the defensive mutation contract:
// the error is detectable and the document is untouched.
func TestDocument_IndexOutOfRange(t *testing.T) {
	doc := NewDocument()
	doc.AddArtifact(CategorySourceCode)

	for _, idx := range []int{-1, 1, 99} {
		if err := doc.RemoveArtifact(CategorySourceCode, idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveArtifact(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if err := doc.UpdateArtifact(CategorySourceCode, idx, Artifact{}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("UpdateArtifact(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}

	if len(doc.SourceCode) != 1 {
		t.Errorf("artifact count = %d after failed mutations, want 1", len(doc.SourceCode))
	}
}

// TestDocument_RecordSubmission verifies history append semantics.
func TestDocument_RecordSubmission(t *testing.T) {
	doc := NewDocument()

	doc.RecordSubmission("2026-08-29T10:00:00Z", false)
	doc.RecordSubmission("2026-08-30T09:00:00Z", true)

	if len(doc.SubmissionHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(doc.SubmissionHistory))
	}
	if doc.SubmissionHistory[0].Action != "initial_submission" {
		t.Errorf("first action = %q, want initial_submission", doc.SubmissionHistory[0].Action)
	}
	if doc.SubmissionHistory[1].Action != "resubmission" {
		t.Errorf("second action = %q, want resubmission", doc.SubmissionHistory[1].Action)
	}
}

// TestDocument_Validate verifies submit-time gating.
func TestDocument_Validate(t *testing.T) {
	doc := NewDocument()
	if err := doc.Validate(); err == nil {
		t.Errorf("Validate() on empty metadata = nil, want error")
	}

	doc.SetMetadata(Metadata{ProjectID: "PROJ001", ReviewerName: "R. Chen"})
	doc.AddArtifact(CategoryModels)
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	doc.SetMetadata(Metadata{ProjectID: "../escape", ReviewerName: "R. Chen"})
	if err := doc.Validate(); err == nil {
		t.Errorf("Validate() with traversal project id = nil, want error")
	}
}

// TestParseCategory verifies category parsing.
func TestParseCategory(t *testing.T) {
	for _, cat := range Categories() {
		got, err := ParseCategory(string(cat))
		if err != nil || got != cat {
			t.Errorf("ParseCategory(%q) = %q, %v", cat, got, err)
		}
	}
	if _, err := ParseCategory("hardware"); err == nil {
		t.Errorf("ParseCategory(hardware) = nil error, want error")
	}
}

// TestCategory_Questions verifies the template is six questions per
// category and copies are independent.
func TestCategory_Questions(t *testing.T) {
	for _, cat := range Categories() {
		qs := cat.Questions()
		if len(qs) != 6 {
			t.Errorf("%s question count = %d, want 6", cat, len(qs))
		}
		qs[0] = "mutated"
		if cat.Questions()[0] == "mutated" {
			t.Errorf("%s Questions() returned shared backing array", cat)
		}
	}
}
