// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders a review document and its computed risk
// summary in terminal, markdown, or JSON form.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/scoring"
)

// Format selects the report output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, markdown, or json)", s)
	}
}

// maxNotesInTable is the notes length cutoff: anything longer is
// rendered after the check table instead of inside it.
const maxNotesInTable = 800

// Fixed report strings, shared by the text and markdown renderers.
const (
	reportTitle       = "KSL AI Model Control Review"
	emptySection      = "No items in this category."
	noChecks          = "No checks recorded."
	noRiskData        = "No risk data available"
	cumulativeCaption = "Highest risk across all sections"
	noObservations    = "None recorded."
	noRecommendation  = "Not provided."
)

// Report pairs a document with its computed summary.
type Report struct {
	Doc         *review.Document
	Summary     scoring.Summary
	GeneratedAt time.Time
}

// New computes the summary for a document and wraps both for rendering.
func New(doc *review.Document, now time.Time) Report {
	return Report{
		Doc:         doc,
		Summary:     scoring.Summarize(doc),
		GeneratedAt: now,
	}
}

// Render writes the report to w in the requested format.
func (r Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.renderText(w)
	case FormatMarkdown:
		return r.renderMarkdown(w)
	case FormatJSON:
		return r.renderJSON(w)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// metadataRows returns the label/value pairs of the review header, in
// the order the review document presents them.
func (r Report) metadataRows() [][2]string {
	md := r.Doc.Metadata
	orDefault := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "N/A"
		}
		return v
	}
	return [][2]string{
		{"Proposal Title", orDefault(md.ProposalTitle)},
		{"Principal Investigator", orDefault(md.PrincipalInvestigator)},
		{"Proposal Date", orDefault(md.ProposalDate)},
		{"Reviewer Name", orDefault(md.ReviewerName)},
		{"Reviewer ID", orDefault(md.ReviewerID)},
		{"AIMCR Date", orDefault(md.AIMCRDate)},
		{"Project ID", orDefault(md.ProjectID)},
	}
}

// splitNotes partitions an artifact's checks into table rows and
// overflow notes. Overflow cells carry a reference marker.
func splitNotes(checks review.CheckList) (rows [][3]string, overflow [][2]string) {
	for _, check := range checks {
		score := fmt.Sprintf("%d", check.Score)
		notes := strings.TrimSpace(check.Notes)
		if len(notes) > maxNotesInTable {
			rows = append(rows, [3]string{check.Name, score, "See detailed notes below"})
			overflow = append(overflow, [2]string{check.Name, notes})
			continue
		}
		rows = append(rows, [3]string{check.Name, score, notes})
	}
	return rows, overflow
}
