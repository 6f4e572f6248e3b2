// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scoring implements the risk-scoring and aggregation engine for
// AI Model Control Reviews.
//
// The core rule is "max per question, then sum": a section's total is
// the sum, over the category's fixed question list, of the highest score
// any artifact gave that question. A portfolio's risk is bounded by the
// worst answer to each question, not by portfolio size.
//
// Every function in this package is pure and deterministic: identical
// input yields byte-identical output, with no side effects. Malformed
// checks (absent score, unknown question name) are excluded from
// aggregation rather than failing the section.
package scoring

import (
	"strings"

	"github.com/AleutianAI/aimcr/pkg/review"
)

// ScoreSection computes the risk verdict for one category's artifacts.
//
// # Inputs
//
//   - questions: The category's fixed question list, in template order.
//   - artifacts: All artifacts of the section, in document order.
//
// # Outputs
//
//   - SectionResult: Zero-valued with "No Data"/"N/A" labels when the
//     section has no artifacts; otherwise the computed verdict.
func ScoreSection(questions []string, artifacts []review.Artifact) SectionResult {
	if len(artifacts) == 0 {
		return SectionResult{
			Category:              RiskNoData,
			Verdict:               VerdictNA,
			ContributingArtifacts: []string{},
		}
	}

	total := 0
	for _, qm := range QuestionMaxima(questions, artifacts) {
		total += qm.Max
	}

	highest := highestScore(artifacts)

	verdict := VerdictPass
	if total >= FailThreshold {
		verdict = VerdictFail
	}

	return SectionResult{
		TotalScore:            total,
		HighestScore:          highest,
		Category:              CategoryForScore(highest),
		Verdict:               verdict,
		ArtifactCount:         len(artifacts),
		ContributingArtifacts: contributingArtifacts(artifacts, highest),
	}
}

// QuestionMaxima computes the per-question maximum score across all
// artifacts, in question order. A question no artifact rated has a
// maximum of zero; it contributes nothing to the total rather than
// inheriting a default. Checks with names outside the question list are
// ignored here (legacy questions still render in reports, they just
// don't score).
func QuestionMaxima(questions []string, artifacts []review.Artifact) []QuestionMax {
	out := make([]QuestionMax, 0, len(questions))
	for _, q := range questions {
		m := 0
		for _, a := range artifacts {
			if c, ok := a.Checks.Get(q); ok && c.Rated() && c.Score > m {
				m = c.Score
			}
		}
		out = append(out, QuestionMax{Question: q, Max: m})
	}
	return out
}

// highestScore finds the maximum individual check score across every
// check of every artifact, including checks whose names are not in the
// canonical question list. This is the quantity behind the section's
// risk category label, distinct from the summed total.
func highestScore(artifacts []review.Artifact) int {
	m := 0
	for _, a := range artifacts {
		for _, c := range a.Checks {
			if c.Rated() && c.Score > m {
				m = c.Score
			}
		}
	}
	return m
}

// contributingArtifacts names every artifact holding at least one rated
// check equal to the section's highest score. Blank names fall back to
// "Unnamed" so the report's explanation column is never empty.
func contributingArtifacts(artifacts []review.Artifact, highest int) []string {
	names := []string{}
	if highest < review.ScoreMin {
		return names
	}
	for _, a := range artifacts {
		for _, c := range a.Checks {
			if c.Rated() && c.Score == highest {
				name := strings.TrimSpace(a.Name)
				if name == "" {
					name = "Unnamed"
				}
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// ArtifactTotal is the plain sum of one artifact's rated check scores,
// shown per artifact in the rendered report. Unlike the section total it
// does not take per-question maxima.
func ArtifactTotal(a review.Artifact) int {
	total := 0
	for _, c := range a.Checks {
		if c.Rated() {
			total += c.Score
		}
	}
	return total
}
