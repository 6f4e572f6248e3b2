// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/AleutianAI/aimcr/pkg/review"
)

func testTime() time.Time {
	return time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
}

func testDocument() *review.Document {
	doc := review.NewDocument()
	doc.Metadata = review.Metadata{
		ProjectID:     "PROJ001",
		ProposalTitle: "Coastal Erosion Forecasting",
		ReviewerName:  "R. Chen",
	}
	model := review.NewArtifact(review.CategoryModels, "erosion-net")
	model.IsProprietary = true
	model.Checks[0].Score = 4
	model.Checks[0].Notes = "weights sourced from an external vendor"
	model.Checks[1].Score = 2
	doc.Models = append(doc.Models, model)

	code := review.NewArtifact(review.CategorySourceCode, "training pipeline")
	code.Checks[2].Score = 3
	doc.SourceCode = append(doc.SourceCode, code)
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitNotes_Overflow(t *testing.T) {
	long := strings.Repeat("x", maxNotesInTable+1)
	checks := review.CheckList{
		{Name: "short", Score: 2, Notes: "fine"},
		{Name: "long", Score: 5, Notes: long},
	}
	rows, overflow := splitNotes(checks)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0][2] != "fine" {
		t.Errorf("rows[0][2] = %q, want %q", rows[0][2], "fine")
	}
	if rows[1][2] != "See detailed notes below" {
		t.Errorf("rows[1][2] = %q, want overflow marker", rows[1][2])
	}
	if len(overflow) != 1 {
		t.Fatalf("len(overflow) = %d, want 1", len(overflow))
	}
	if overflow[0][0] != "long" || overflow[0][1] != long {
		t.Errorf("overflow[0] = %v, want the long note", overflow[0][0])
	}
}

func TestSplitNotes_ExactBoundaryStaysInTable(t *testing.T) {
	notes := strings.Repeat("y", maxNotesInTable)
	rows, overflow := splitNotes(review.CheckList{{Name: "edge", Score: 1, Notes: notes}})
	if len(overflow) != 0 {
		t.Fatalf("len(overflow) = %d, want 0", len(overflow))
	}
	if rows[0][2] != notes {
		t.Errorf("notes at the boundary should stay in the table")
	}
}

func TestRenderJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	r := New(testDocument(), testTime())
	if err := r.Render(&buf, FormatJSON); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var got struct {
		Sections map[string]struct {
			TotalScore   int    `json:"total_score"`
			HighestScore int    `json:"highest_score"`
			Category     string `json:"risk_category"`
			Verdict      string `json:"pass_fail"`
		} `json:"sections"`
		Project struct {
			CumulativeScore int    `json:"cumulative_score"`
			Verdict         string `json:"cumulative_pass_fail"`
		} `json:"project"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Sections) != 4 {
		t.Fatalf("len(sections) = %d, want 4", len(got.Sections))
	}
	models := got.Sections["models"]
	if models.HighestScore != 4 {
		t.Errorf("models highest_score = %d, want 4", models.HighestScore)
	}
	if got.Project.CumulativeScore != 4 {
		t.Errorf("cumulative_score = %d, want 4", got.Project.CumulativeScore)
	}
	if got.Project.Verdict != "PASS" {
		t.Errorf("cumulative_pass_fail = %q, want PASS", got.Project.Verdict)
	}
}

func TestRenderJSON_Deterministic(t *testing.T) {
	doc := testDocument()
	var a, b bytes.Buffer
	if err := New(doc, testTime()).Render(&a, FormatJSON); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if err := New(doc, testTime()).Render(&b, FormatJSON); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("identical documents produced different JSON")
	}
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := New(testDocument(), testTime()).Render(&buf, FormatMarkdown); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# KSL AI Model Control Review",
		"**Project ID:** PROJ001",
		"**Principal Investigator:** N/A",
		"### 1. erosion-net",
		"Marked as Proprietary in Proposal: Yes",
		"| Check | Risk Score | Notes |",
		"**Total Risk Score: 10**",
		"No items in this category.",
		"| Section | Section Score | Risk Category | Status | Items | Artifacts |",
		"None recorded.",
		"Not provided.",
		"Report generated on 2026-08-29 14:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestRenderMarkdown_EscapesPipes(t *testing.T) {
	doc := review.NewDocument()
	a := review.NewArtifact(review.CategoryDatasets, "a|b")
	a.Checks[0].Notes = "value | with pipes"
	doc.Datasets = append(doc.Datasets, a)

	var buf bytes.Buffer
	if err := New(doc, testTime()).Render(&buf, FormatMarkdown); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `a\|b`) {
		t.Errorf("artifact name pipe not escaped")
	}
	if !strings.Contains(out, `value \| with pipes`) {
		t.Errorf("notes pipe not escaped")
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := New(testDocument(), testTime()).Render(&buf, FormatText); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"KSL AI Model Control Review",
		"Project ID",
		"1. erosion-net",
		"[PROPRIETARY]",
		"Marked as Proprietary in Proposal: Yes",
		"Total Risk Score",
		"No items in this category.",
		"CUMULATIVE RISK LEVEL",
		"Highest risk across all sections",
		"Observations",
		"None recorded.",
		"Report generated on 2026-08-29 14:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestRenderText_LongNotesAfterTable(t *testing.T) {
	doc := review.NewDocument()
	a := review.NewArtifact(review.CategorySourceCode, "pipeline")
	a.Checks[0].Score = 3
	a.Checks[0].Notes = strings.Repeat("detail ", 200)

	doc.SourceCode = append(doc.SourceCode, a)

	var buf bytes.Buffer
	if err := New(doc, testTime()).Render(&buf, FormatText); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "See detailed notes below") {
		t.Errorf("long notes should be deferred from the table")
	}
	if !strings.Contains(out, "► "+a.Checks[0].Name) {
		t.Errorf("long notes should be rendered after the table")
	}
}

func TestRenderText_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := New(review.NewDocument(), testTime()).Render(&buf, FormatText); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No risk data available") {
		t.Errorf("empty document should render the no-data cumulative box")
	}
	if strings.Count(out, "No items in this category.") != 4 {
		t.Errorf("all four sections should report no items")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := New(review.NewDocument(), testTime()).Render(&buf, Format("pdf")); err == nil {
		t.Errorf("Render() with unknown format should error")
	}
}
