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

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/AleutianAI/aimcr/pkg/review"
)

// uniformArtifact builds an artifact scoring the same value on every
// question of the category.
func uniformArtifact(cat review.Category, name string, score int) review.Artifact {
	a := review.NewArtifact(cat, name)
	for i := range a.Checks {
		a.Checks[i].Score = score
	}
	return a
}

// TestScoreSection_Empty verifies the no-data contract for a section
// with zero artifacts.
func TestScoreSection_Empty(t *testing.T) {
	got := ScoreSection(review.CategorySourceCode.Questions(), nil)

	if got.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", got.TotalScore)
	}
	if got.HighestScore != 0 {
		t.Errorf("HighestScore = %d, want 0", got.HighestScore)
	}
	if got.Category != RiskNoData {
		t.Errorf("Category = %q, want %q", got.Category, RiskNoData)
	}
	if got.Verdict != VerdictNA {
		t.Errorf("Verdict = %q, want %q", got.Verdict, VerdictNA)
	}
	if len(got.ContributingArtifacts) != 0 {
		t.Errorf("ContributingArtifacts = %v, want empty", got.ContributingArtifacts)
	}
}

// TestScoreSection_MaxPerQuestion verifies the core rule: per-question
// maxima are summed, so two artifacts scored 2 and 4 everywhere total to
// 4 per question, not 6.
func TestScoreSection_MaxPerQuestion(t *testing.T) {
	cat := review.CategoryThirdPartySoftware
	questions := cat.Questions()
	artifacts := []review.Artifact{
		uniformArtifact(cat, "A", 2),
		uniformArtifact(cat, "B", 4),
	}

	got := ScoreSection(questions, artifacts)

	if want := 4 * len(questions); got.TotalScore != want {
		t.Errorf("TotalScore = %d, want %d", got.TotalScore, want)
	}
	if got.HighestScore != 4 {
		t.Errorf("HighestScore = %d, want 4", got.HighestScore)
	}
	if got.Category != RiskHigh {
		t.Errorf("Category = %q, want %q", got.Category, RiskHigh)
	}
}

// TestScoreSection_FailThreshold verifies the 21-point boundary on a
// six-question section.
func TestScoreSection_FailThreshold(t *testing.T) {
	cat := review.CategorySourceCode
	questions := cat.Questions()
	if len(questions) != 6 {
		t.Fatalf("question count = %d, want 6", len(questions))
	}

	// All 4s: total 24 >= 21.
	failing := ScoreSection(questions, []review.Artifact{uniformArtifact(cat, "hot", 4)})
	if failing.TotalScore != 24 {
		t.Errorf("TotalScore = %d, want 24", failing.TotalScore)
	}
	if failing.Verdict != VerdictFail {
		t.Errorf("Verdict = %q, want %q", failing.Verdict, VerdictFail)
	}

	// All 3s: total 18 < 21.
	passing := ScoreSection(questions, []review.Artifact{uniformArtifact(cat, "warm", 3)})
	if passing.TotalScore != 18 {
		t.Errorf("TotalScore = %d, want 18", passing.TotalScore)
	}
	if passing.Verdict != VerdictPass {
		t.Errorf("Verdict = %q, want %q", passing.Verdict, VerdictPass)
	}
}

// TestScoreSection_CriticalPropagates verifies that a single 5 anywhere
// forces the critical label regardless of other scores.
func TestScoreSection_CriticalPropagates(t *testing.T) {
	cat := review.CategoryDatasets
	a := uniformArtifact(cat, "quiet", 1)
	a.Checks[3].Score = 5

	got := ScoreSection(cat.Questions(), []review.Artifact{a})

	if got.HighestScore != 5 {
		t.Errorf("HighestScore = %d, want 5", got.HighestScore)
	}
	if got.Category != RiskCritical {
		t.Errorf("Category = %q, want %q", got.Category, RiskCritical)
	}
}

// TestScoreSection_ContributingArtifacts verifies that exactly the
// artifacts holding the highest score are named.
func TestScoreSection_ContributingArtifacts(t *testing.T) {
	cat := review.CategoryModels
	q := cat.Questions()[0]
	mk := func(name string, score int) review.Artifact {
		a := review.NewArtifact(cat, name)
		for i := range a.Checks {
			if a.Checks[i].Name == q {
				a.Checks[i].Score = score
			}
		}
		return a
	}
	artifacts := []review.Artifact{mk("alpha", 3), mk("beta", 5), mk("gamma", 5)}

	got := ScoreSection(cat.Questions(), artifacts)

	if got.HighestScore != 5 {
		t.Fatalf("HighestScore = %d, want 5", got.HighestScore)
	}
	want := []string{"beta", "gamma"}
	if !reflect.DeepEqual(got.ContributingArtifacts, want) {
		t.Errorf("ContributingArtifacts = %v, want %v", got.ContributingArtifacts, want)
	}
}

// TestScoreSection_MalformedChecks verifies that absent scores and
// unknown question names degrade gracefully instead of skewing the sum.
func TestScoreSection_MalformedChecks(t *testing.T) {
	cat := review.CategorySourceCode
	a := review.Artifact{
		Name: "legacy",
		Checks: review.CheckList{
			{Name: cat.Questions()[0], Score: 3},
			{Name: cat.Questions()[1], Score: review.ScoreAbsent}, // rating lost upstream
			{Name: "Retired question from the 2023 template", Score: 4},
		},
	}

	got := ScoreSection(cat.Questions(), []review.Artifact{a})

	// Only the first check scores: the absent rating and the unknown
	// question contribute nothing to the total.
	if got.TotalScore != 3 {
		t.Errorf("TotalScore = %d, want 3", got.TotalScore)
	}
	// The unknown question still counts toward the highest individual
	// score, which drives the category label.
	if got.HighestScore != 4 {
		t.Errorf("HighestScore = %d, want 4", got.HighestScore)
	}
	if got.Category != RiskHigh {
		t.Errorf("Category = %q, want %q", got.Category, RiskHigh)
	}
}

// TestScoreSection_AllRatingsAbsent verifies the label when artifacts
// exist but no check carries a usable rating.
func TestScoreSection_AllRatingsAbsent(t *testing.T) {
	cat := review.CategoryThirdPartySoftware
	a := review.Artifact{Name: "corrupt", Checks: review.CheckList{
		{Name: cat.Questions()[0], Score: review.ScoreAbsent},
	}}

	got := ScoreSection(cat.Questions(), []review.Artifact{a})

	if got.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", got.TotalScore)
	}
	if got.Category != RiskNoData {
		t.Errorf("Category = %q, want %q", got.Category, RiskNoData)
	}
	if len(got.ContributingArtifacts) != 0 {
		t.Errorf("ContributingArtifacts = %v, want empty", got.ContributingArtifacts)
	}
	// Artifacts are present, so the section is scored, not N/A.
	if got.Verdict != VerdictPass {
		t.Errorf("Verdict = %q, want %q", got.Verdict, VerdictPass)
	}
}

// TestScoreSection_UnnamedContributor verifies the blank-name fallback
// in the contributing artifact list.
func TestScoreSection_UnnamedContributor(t *testing.T) {
	cat := review.CategoryModels
	a := uniformArtifact(cat, "  ", 5)

	got := ScoreSection(cat.Questions(), []review.Artifact{a})

	want := []string{"Unnamed"}
	if !reflect.DeepEqual(got.ContributingArtifacts, want) {
		t.Errorf("ContributingArtifacts = %v, want %v", got.ContributingArtifacts, want)
	}
}

// TestScoreProject_ORofFailures verifies that one failing section fails
// the project even when other sections carry higher individual scores.
func TestScoreProject_ORofFailures(t *testing.T) {
	sections := []SectionResult{
		{HighestScore: 3, TotalScore: 21, Verdict: VerdictFail},
		{HighestScore: 4, TotalScore: 10, Verdict: VerdictPass},
		{HighestScore: 4, TotalScore: 12, Verdict: VerdictPass},
		{Category: RiskNoData, Verdict: VerdictNA},
	}

	got := ScoreProject(sections)

	if got.CumulativeScore != 4 {
		t.Errorf("CumulativeScore = %d, want 4", got.CumulativeScore)
	}
	if got.Verdict != VerdictFail {
		t.Errorf("Verdict = %q, want %q", got.Verdict, VerdictFail)
	}
	if got.Category != RiskHigh {
		t.Errorf("Category = %q, want %q", got.Category, RiskHigh)
	}
}

// TestScoreProject_Empty verifies the all-sections-empty rollup.
func TestScoreProject_Empty(t *testing.T) {
	sections := []SectionResult{
		{Category: RiskNoData, Verdict: VerdictNA},
		{Category: RiskNoData, Verdict: VerdictNA},
		{Category: RiskNoData, Verdict: VerdictNA},
		{Category: RiskNoData, Verdict: VerdictNA},
	}

	got := ScoreProject(sections)

	if got.CumulativeScore != 0 {
		t.Errorf("CumulativeScore = %d, want 0", got.CumulativeScore)
	}
	if got.Category != RiskNoData {
		t.Errorf("Category = %q, want %q", got.Category, RiskNoData)
	}
	if got.Verdict != VerdictPass {
		t.Errorf("Verdict = %q, want %q", got.Verdict, VerdictPass)
	}
}

// TestSummarize_Scenario runs the end-to-end scenario: one third-party
// artifact scored 2 on all six questions, other sections empty.
func TestSummarize_Scenario(t *testing.T) {
	doc := review.NewDocument()
	doc.ThirdPartySoftware = []review.Artifact{
		uniformArtifact(review.CategoryThirdPartySoftware, "pkgA", 2),
	}

	got := Summarize(doc)

	section := got.Section(review.CategoryThirdPartySoftware)
	if section.TotalScore != 12 {
		t.Errorf("section TotalScore = %d, want 12", section.TotalScore)
	}
	if section.HighestScore != 2 {
		t.Errorf("section HighestScore = %d, want 2", section.HighestScore)
	}
	if section.Category != RiskLow {
		t.Errorf("section Category = %q, want %q", section.Category, RiskLow)
	}
	if section.Verdict != VerdictPass {
		t.Errorf("section Verdict = %q, want %q", section.Verdict, VerdictPass)
	}

	if got.Project.CumulativeScore != 2 {
		t.Errorf("CumulativeScore = %d, want 2", got.Project.CumulativeScore)
	}
	if got.Project.Category != RiskLow {
		t.Errorf("project Category = %q, want %q", got.Project.Category, RiskLow)
	}
	if got.Project.Verdict != VerdictPass {
		t.Errorf("project Verdict = %q, want %q", got.Project.Verdict, VerdictPass)
	}

	empty := got.Section(review.CategoryModels)
	if empty.Category != RiskNoData || empty.Verdict != VerdictNA {
		t.Errorf("empty section = %+v, want No Data / N/A", empty)
	}
}

// TestSummarize_Idempotent verifies byte-identical output across calls
// with no mutation in between.
func TestSummarize_Idempotent(t *testing.T) {
	doc := review.NewDocument()
	doc.SourceCode = []review.Artifact{
		uniformArtifact(review.CategorySourceCode, "svc", 3),
		uniformArtifact(review.CategorySourceCode, "lib", 4),
	}
	doc.Models = []review.Artifact{
		uniformArtifact(review.CategoryModels, "llm", 2),
	}

	first, err := json.Marshal(Summarize(doc))
	if err != nil {
		t.Fatalf("marshal first summary: %v", err)
	}
	second, err := json.Marshal(Summarize(doc))
	if err != nil {
		t.Fatalf("marshal second summary: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("summaries differ:\n first = %s\nsecond = %s", first, second)
	}
}

// TestArtifactTotal verifies the per-artifact plain sum, skipping
// absent ratings.
func TestArtifactTotal(t *testing.T) {
	a := review.Artifact{Checks: review.CheckList{
		{Name: "a", Score: 2},
		{Name: "b", Score: 5},
		{Name: "c", Score: review.ScoreAbsent},
	}}

	if got := ArtifactTotal(a); got != 7 {
		t.Errorf("ArtifactTotal = %d, want 7", got)
	}
}

// TestCategoryForScore covers the full label table.
func TestCategoryForScore(t *testing.T) {
	cases := []struct {
		score int
		want  RiskCategory
	}{
		{0, RiskNoData},
		{1, RiskNone},
		{2, RiskLow},
		{3, RiskMedium},
		{4, RiskHigh},
		{5, RiskCritical},
		{6, RiskUnknown},
		{-1, RiskUnknown},
	}
	for _, tc := range cases {
		if got := CategoryForScore(tc.score); got != tc.want {
			t.Errorf("CategoryForScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
