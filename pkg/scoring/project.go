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

// ScoreProject combines section results into the project-level verdict.
//
// The cumulative score is the maximum of all sections' highest scores
// (empty "No Data" sections participate as zero). The verdict is an OR
// over section failures: one failing section fails the project even when
// every individual score is modest, because a section can fail on its
// summed total alone.
func ScoreProject(sections []SectionResult) ProjectResult {
	cumulative := 0
	verdict := VerdictPass
	for _, s := range sections {
		if s.HighestScore > cumulative {
			cumulative = s.HighestScore
		}
		if s.Verdict == VerdictFail {
			verdict = VerdictFail
		}
	}
	return ProjectResult{
		CumulativeScore: cumulative,
		Category:        CategoryForScore(cumulative),
		Verdict:         verdict,
	}
}

// Summarize computes the full risk summary for a review document.
//
// The summary is an ephemeral view: it is recomputed from current
// document state on every call, never updated incrementally, so it can
// never go stale after a partial edit.
func Summarize(doc *review.Document) Summary {
	sections := make(map[review.Category]SectionResult, 4)
	ordered := make([]SectionResult, 0, 4)
	for _, cat := range review.Categories() {
		res := ScoreSection(cat.Questions(), doc.Artifacts(cat))
		sections[cat] = res
		ordered = append(ordered, res)
	}
	return Summary{
		Sections: sections,
		Project:  ScoreProject(ordered),
	}
}
