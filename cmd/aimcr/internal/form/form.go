// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package form builds the interactive review data-entry forms.
//
// The forms edit a review.Document in place: each field binds directly
// to a document field, so completing a group leaves the document ready
// to autosave.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/scoring"
	"github.com/AleutianAI/aimcr/pkg/validation"
)

// ScoreOptions returns the 1-5 select options with risk tier labels.
func ScoreOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, review.ScoreMax)
	for score := review.ScoreMin; score <= review.ScoreMax; score++ {
		label := fmt.Sprintf("%d - %s", score, scoring.CategoryForScore(score))
		opts = append(opts, huh.NewOption(label, score))
	}
	return opts
}

// MetadataGroup builds the project metadata entry group.
func MetadataGroup(md *review.Metadata) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Project ID").
			Description("Letters, digits, hyphen, underscore").
			Value(&md.ProjectID).
			Validate(func(s string) error {
				return validation.ValidateProjectID(strings.TrimSpace(s))
			}),
		huh.NewInput().
			Title("Proposal Title").
			Value(&md.ProposalTitle),
		huh.NewInput().
			Title("Principal Investigator").
			Value(&md.PrincipalInvestigator),
		huh.NewInput().
			Title("Proposal Date").
			Value(&md.ProposalDate),
		huh.NewInput().
			Title("Reviewer Name").
			Value(&md.ReviewerName).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("reviewer name is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Reviewer ID").
			Value(&md.ReviewerID),
		huh.NewInput().
			Title("AIMCR Date").
			Value(&md.AIMCRDate),
	).Title("Project Metadata")
}

// ArtifactGroup builds the check entry group for one artifact.
//
// Score selects and note fields bind into the artifact's check slice,
// so the caller must keep the artifact alive until the form runs.
func ArtifactGroup(category review.Category, a *review.Artifact) *huh.Group {
	fields := []huh.Field{
		huh.NewInput().
			Title("Component Name").
			Value(&a.Name),
	}
	if category == review.CategoryModels {
		fields = append(fields, huh.NewConfirm().
			Title("Proprietary model?").
			Value(&a.IsProprietary))
	}
	for i := range a.Checks {
		check := &a.Checks[i]
		fields = append(fields,
			huh.NewSelect[int]().
				Title(check.Name).
				Options(ScoreOptions()...).
				Value(&check.Score),
			huh.NewText().
				Title("Notes").
				Lines(2).
				Value(&check.Notes),
		)
	}
	return huh.NewGroup(fields...).Title(category.Display())
}

// ClosingGroup builds the observations and recommendation group.
func ClosingGroup(doc *review.Document) *huh.Group {
	return huh.NewGroup(
		huh.NewText().
			Title("Observations").
			Lines(4).
			Value(&doc.Observations),
		huh.NewText().
			Title("Recommendation").
			Lines(4).
			Value(&doc.Recommendation),
	).Title("Review Summary")
}

// ReviewForm assembles the full document form: metadata, every
// artifact in category order, then the closing summary.
func ReviewForm(doc *review.Document) *huh.Form {
	groups := []*huh.Group{MetadataGroup(&doc.Metadata)}
	for _, cat := range review.Categories() {
		artifacts := doc.Artifacts(cat)
		for i := range artifacts {
			groups = append(groups, ArtifactGroup(cat, &artifacts[i]))
		}
	}
	groups = append(groups, ClosingGroup(doc))
	return huh.NewForm(groups...)
}

// ConfirmSubmit builds the final submission confirmation prompt.
func ConfirmSubmit(projectID string, confirmed *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Submit %s?", projectID)).
			Description("The submission is committed and pushed to the workspace remote.").
			Affirmative("Submit").
			Negative("Cancel").
			Value(confirmed),
	))
}
