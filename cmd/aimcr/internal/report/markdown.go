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
	"fmt"
	"io"
	"strings"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/scoring"
)

// mdEscape makes free text safe inside a markdown table cell.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", "<br>")
}

func mdTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

func (r Report) renderMarkdown(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# " + reportTitle + "\n\n")
	for _, row := range r.metadataRows() {
		fmt.Fprintf(&b, "**%s:** %s  \n", row[0], mdEscape(row[1]))
	}
	b.WriteString("\n")

	for _, cat := range review.Categories() {
		b.WriteString("## " + cat.Display() + "\n\n")
		artifacts := r.Doc.Artifacts(cat)
		if len(artifacts) == 0 {
			b.WriteString(emptySection + "\n\n")
			continue
		}
		for i, a := range artifacts {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, mdEscape(a.DisplayName()))
			if cat == review.CategoryModels {
				yesNo := "No"
				if a.IsProprietary {
					yesNo = "Yes"
				}
				fmt.Fprintf(&b, "Marked as Proprietary in Proposal: %s\n\n", yesNo)
			}
			if len(a.Checks) == 0 {
				b.WriteString(noChecks + "\n\n")
				continue
			}
			rows, overflow := splitNotes(a.Checks)
			mdRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				mdRows = append(mdRows, []string{
					mdEscape(row[0]), row[1], mdEscape(row[2]),
				})
			}
			mdTable(&b, []string{"Check", "Risk Score", "Notes"}, mdRows)
			b.WriteString("\n")
			for _, note := range overflow {
				fmt.Fprintf(&b, "► %s:\n\n%s\n\n", mdEscape(note[0]), note[1])
			}
			fmt.Fprintf(&b, "**Total Risk Score: %d**\n\n", scoring.ArtifactTotal(a))
		}
	}

	b.WriteString("## Risk Summary\n\n")
	rows := make([][]string, 0, len(review.Categories()))
	for _, cat := range review.Categories() {
		sec := r.Summary.Section(cat)
		row := []string{cat.Display()}
		if sec.ArtifactCount == 0 {
			row = append(row, "—", string(scoring.RiskNoData), "—", "0", "—")
		} else {
			artifacts := "—"
			switch len(sec.ContributingArtifacts) {
			case 0:
			case 1:
				artifacts = mdEscape(sec.ContributingArtifacts[0])
			default:
				bullets := make([]string, 0, len(sec.ContributingArtifacts))
				for _, name := range sec.ContributingArtifacts {
					bullets = append(bullets, "• "+mdEscape(name))
				}
				artifacts = strings.Join(bullets, "<br>")
			}
			row = append(row,
				fmt.Sprintf("%d", sec.HighestScore),
				string(sec.Category),
				string(sec.Verdict),
				fmt.Sprintf("%d", sec.ArtifactCount),
				artifacts,
			)
		}
		rows = append(rows, row)
	}
	mdTable(&b, []string{"Section", "Section Score", "Risk Category", "Status", "Items", "Artifacts"}, rows)
	b.WriteString("\n")

	b.WriteString("## Cumulative Risk Level\n\n")
	proj := r.Summary.Project
	if proj.CumulativeScore == 0 {
		b.WriteString(noRiskData + "\n\n")
	} else {
		fmt.Fprintf(&b, "**%d — %s — %s**\n\n", proj.CumulativeScore, proj.Category, proj.Verdict)
		b.WriteString(cumulativeCaption + "\n\n")
	}

	b.WriteString("## Observations\n\n")
	if strings.TrimSpace(r.Doc.Observations) == "" {
		b.WriteString(noObservations + "\n\n")
	} else {
		b.WriteString(r.Doc.Observations + "\n\n")
	}
	b.WriteString("## Recommendation\n\n")
	if strings.TrimSpace(r.Doc.Recommendation) == "" {
		b.WriteString(noRecommendation + "\n\n")
	} else {
		b.WriteString(r.Doc.Recommendation + "\n\n")
	}

	fmt.Fprintf(&b, "---\n\n*Report generated on %s*\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	_, err := io.WriteString(w, b.String())
	return err
}
