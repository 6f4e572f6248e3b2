// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scoring

import "github.com/AleutianAI/aimcr/pkg/review"

// ScoringAlgorithmVersion is the version of the risk scoring algorithm.
// Increment when making changes that affect computed verdicts.
const ScoringAlgorithmVersion = "1.0"

// FailThreshold is the section total score at or above which a section
// fails. It is the worst case of a six-to-eight question section scored
// near maximum, and is a review-process constant, not a tunable.
const FailThreshold = 21

// Exit codes for the score command.
const (
	ExitPass  = 0 // All sections at or below the fail threshold
	ExitFail  = 1 // At least one section failed
	ExitError = 2 // Input could not be read or parsed
)

// RiskCategory labels a risk score for display.
type RiskCategory string

const (
	RiskNone     RiskCategory = "No Risk"
	RiskLow      RiskCategory = "Low Risk"
	RiskMedium   RiskCategory = "Medium Risk"
	RiskHigh     RiskCategory = "High Risk"
	RiskCritical RiskCategory = "Critical Risk"
	RiskNoData   RiskCategory = "No Data"
	RiskUnknown  RiskCategory = "Unknown"
)

// CategoryForScore maps an individual check score to its risk category.
// Zero means no rated checks exist; anything outside 0..5 comes from a
// corrupt record and is labeled Unknown rather than guessed at.
func CategoryForScore(score int) RiskCategory {
	switch score {
	case 0:
		return RiskNoData
	case 1:
		return RiskNone
	case 2:
		return RiskLow
	case 3:
		return RiskMedium
	case 4:
		return RiskHigh
	case 5:
		return RiskCritical
	default:
		return RiskUnknown
	}
}

// Verdict is a section or project pass/fail outcome.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
	VerdictNA   Verdict = "N/A"
)

// SectionResult is the derived risk verdict for one category's artifacts.
// It is recomputed from document state on every read and never stored as
// authoritative.
type SectionResult struct {
	TotalScore    int          `json:"total_score"`
	HighestScore  int          `json:"highest_score"`
	Category      RiskCategory `json:"risk_category"`
	Verdict       Verdict      `json:"pass_fail"`
	ArtifactCount int          `json:"artifact_count"`

	// ContributingArtifacts names the artifacts holding at least one
	// check equal to HighestScore, in document order.
	ContributingArtifacts []string `json:"contributing_artifacts"`
}

// ProjectResult is the cumulative verdict across all four sections.
type ProjectResult struct {
	CumulativeScore int          `json:"cumulative_score"`
	Category        RiskCategory `json:"cumulative_category"`
	Verdict         Verdict      `json:"cumulative_pass_fail"`
}

// QuestionMax is one per-question maximum, exposed for score breakdowns.
type QuestionMax struct {
	Question string `json:"question"`
	Max      int    `json:"max"`
}

// Summary is the full computed output for a review document: one result
// per category plus the project-level rollup. Category keys marshal in
// sorted order, so identical documents produce byte-identical summaries.
type Summary struct {
	Sections map[review.Category]SectionResult `json:"sections"`
	Project  ProjectResult                     `json:"project"`
}

// Section returns the result for the category, or a zero SectionResult.
func (s Summary) Section(cat review.Category) SectionResult {
	return s.Sections[cat]
}
