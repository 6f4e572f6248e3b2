// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package review defines the AI Model Control Review document model:
// checks, artifacts, the four review categories, and the top-level
// review document with its mutation operations.
//
// The package owns the JSON shape exchanged with the persistence layer
// and the report renderer. Two historical encodings of an artifact's
// checks exist in workspaces: an ordered list of {name, score, notes}
// objects, and an object keyed by question name. Both are accepted on
// input; the list form is always produced on output.
package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Score bounds for a check rating. A score of ScoreAbsent marks a check
// whose rating is missing or unparseable; such checks are excluded from
// aggregation rather than silently defaulted.
const (
	ScoreAbsent  = 0
	ScoreMin     = 1
	ScoreMax     = 5
	ScoreDefault = 1 // applied only at artifact creation time
)

// Check is one scored question with free-text justification.
type Check struct {
	Name  string `json:"name" validate:"required"`
	Score int    `json:"score" validate:"min=0,max=5"`
	Notes string `json:"notes"`
}

// Rated reports whether the check carries a usable rating.
func (c Check) Rated() bool {
	return c.Score >= ScoreMin && c.Score <= ScoreMax
}

// CheckList is an ordered collection of checks.
//
// On input it accepts either the canonical list form or the legacy
// object-keyed form; see UnmarshalJSON. It always marshals as a list.
type CheckList []Check

// looseCheck tolerates missing or non-numeric scores on the wire.
type looseCheck struct {
	Name  string          `json:"name"`
	Score json.RawMessage `json:"score"`
	Notes string          `json:"notes"`
}

// parseScore converts a raw score value to an int, mapping anything
// missing or non-numeric to ScoreAbsent. Fractional scores from legacy
// records are truncated, matching how historical tooling read them.
func parseScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return ScoreAbsent
	}
	if i, err := strconv.Atoi(string(raw)); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return int(f)
	}
	return ScoreAbsent
}

// UnmarshalJSON decodes either encoding of a check collection.
//
// List form:   [{"name": q, "score": 3, "notes": ""}, ...]
// Object form: {"q": {"score": 3, "notes": ""}, ...}
//
// Object keys are decoded in lexicographic order; Document unmarshalling
// restores template order afterwards (see normalizeChecks). A malformed
// score in either form becomes ScoreAbsent, never an error.
func (cl *CheckList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*cl = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var loose []looseCheck
		if err := json.Unmarshal(data, &loose); err != nil {
			return fmt.Errorf("decode check list: %w", err)
		}
		out := make(CheckList, 0, len(loose))
		for _, lc := range loose {
			out = append(out, Check{Name: lc.Name, Score: parseScore(lc.Score), Notes: lc.Notes})
		}
		*cl = out
		return nil
	case '{':
		var keyed map[string]looseCheck
		if err := json.Unmarshal(data, &keyed); err != nil {
			return fmt.Errorf("decode keyed checks: %w", err)
		}
		names := make([]string, 0, len(keyed))
		for name := range keyed {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make(CheckList, 0, len(names))
		for _, name := range names {
			lc := keyed[name]
			out = append(out, Check{Name: name, Score: parseScore(lc.Score), Notes: lc.Notes})
		}
		*cl = out
		return nil
	default:
		return fmt.Errorf("checks must be a list or an object, got %q", trimmed[0])
	}
}

// Get returns the check with the given question name, if present.
func (cl CheckList) Get(name string) (Check, bool) {
	for _, c := range cl {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Artifact is one reviewed item within a category.
//
// IsProprietary is only meaningful for the models category. It is
// descriptive and never contributes to scoring.
type Artifact struct {
	Name          string    `json:"name"`
	Checks        CheckList `json:"checks" validate:"dive"`
	IsProprietary bool      `json:"is_proprietary,omitempty"`
}

// DisplayName returns the artifact name, or a placeholder when blank.
func (a Artifact) DisplayName() string {
	if a.Name == "" {
		return "(Unnamed component)"
	}
	return a.Name
}

// NewArtifact creates an artifact for the category with one check per
// template question, all at the creation default score.
func NewArtifact(cat Category, name string) Artifact {
	questions := cat.Questions()
	checks := make(CheckList, 0, len(questions))
	for _, q := range questions {
		checks = append(checks, Check{Name: q, Score: ScoreDefault})
	}
	return Artifact{Name: name, Checks: checks}
}

// Metadata holds the proposal and reviewer identification fields.
type Metadata struct {
	ProjectID             string `json:"project_id" validate:"required,projectid"`
	ProposalTitle         string `json:"proposal_title"`
	PrincipalInvestigator string `json:"principal_investigator"`
	ProposalDate          string `json:"proposal_date"`
	ReviewerName          string `json:"reviewer_name" validate:"required"`
	ReviewerID            string `json:"reviewer_id"`
	AIMCRDate             string `json:"aimcr_date"`
}

// SubmissionEvent records one submit action in a document's history.
type SubmissionEvent struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"` // initial_submission or resubmission
}

// Document is the top-level review record: metadata, the four artifact
// collections, and the reviewer's free-text conclusions.
//
// Underscore-prefixed fields are internal bookkeeping: the submission
// history survives saves, while the original-submission-folder marker is
// transient and stripped by the store before writing.
type Document struct {
	Metadata           Metadata   `json:"metadata"`
	ThirdPartySoftware []Artifact `json:"third_party_software"`
	SourceCode         []Artifact `json:"source_code"`
	Datasets           []Artifact `json:"datasets_user_files"`
	Models             []Artifact `json:"models"`
	Observations       string     `json:"observations"`
	Recommendation     string     `json:"recommendation"`

	SubmissionHistory []SubmissionEvent `json:"_submission_history,omitempty"`
	OriginalFolder    string            `json:"_original_submission_folder,omitempty"`
}

// NewDocument creates an empty review document.
func NewDocument() *Document {
	return &Document{
		ThirdPartySoftware: []Artifact{},
		SourceCode:         []Artifact{},
		Datasets:           []Artifact{},
		Models:             []Artifact{},
	}
}

// UnmarshalJSON decodes a document and restores template check order
// inside every artifact.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Document(a)
	d.normalize()
	return nil
}

// normalize reorders every artifact's checks into template order.
// Checks whose names are not in the category's question list (legacy or
// renamed questions) are kept after the known ones, in their existing
// order. They remain visible in reports but are ignored by aggregation.
func (d *Document) normalize() {
	for _, cat := range Categories() {
		arts := d.Artifacts(cat)
		for i := range arts {
			arts[i].Checks = normalizeChecks(cat, arts[i].Checks)
		}
	}
}

func normalizeChecks(cat Category, checks CheckList) CheckList {
	if len(checks) == 0 {
		return checks
	}
	known := make(map[string]bool, len(checks))
	out := make(CheckList, 0, len(checks))
	for _, q := range cat.Questions() {
		if c, ok := checks.Get(q); ok {
			out = append(out, c)
			known[q] = true
		}
	}
	for _, c := range checks {
		if !known[c.Name] {
			out = append(out, c)
		}
	}
	return out
}
