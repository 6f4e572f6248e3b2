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

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/aimcr/pkg/review"
	"github.com/AleutianAI/aimcr/pkg/scoring"
	"github.com/AleutianAI/aimcr/pkg/ux"
)

// cellStyler optionally styles a rendered table cell by column index.
// The cell is padded before styling so widths stay aligned.
type cellStyler func(col int, row []string, cell string) string

// writeTable renders an aligned plain-text table. Only the last column
// may contain newlines; continuation lines are indented to the column.
func writeTable(b *strings.Builder, headers []string, rows [][]string, style cellStyler) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				for _, line := range strings.Split(cell, "\n") {
					if w := lipgloss.Width(line); w > widths[i] {
						widths[i] = w
					}
				}
				continue
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		if gap := w - lipgloss.Width(s); gap > 0 {
			return s + strings.Repeat(" ", gap)
		}
		return s
	}

	var line []string
	for i, h := range headers {
		line = append(line, ux.Styles.Bold.Render(pad(h, widths[i])))
	}
	b.WriteString("  " + strings.Join(line, "  ") + "\n")
	var rule []string
	for _, w := range widths {
		rule = append(rule, strings.Repeat("─", w))
	}
	b.WriteString("  " + ux.Styles.Muted.Render(strings.Join(rule, "──")) + "\n")

	for _, row := range rows {
		last := len(row) - 1
		lines := strings.Split(row[last], "\n")
		cells := make([]string, 0, len(row))
		for i := 0; i < last; i++ {
			cell := pad(row[i], widths[i])
			if style != nil {
				cell = style(i, row, cell)
			}
			cells = append(cells, cell)
		}
		first := lines[0]
		if style != nil {
			first = style(last, row, first)
		}
		cells = append(cells, first)
		b.WriteString("  " + strings.Join(cells, "  ") + "\n")

		indent := 2
		for i := 0; i < last; i++ {
			indent += widths[i] + 2
		}
		for _, cont := range lines[1:] {
			b.WriteString(strings.Repeat(" ", indent) + cont + "\n")
		}
	}
}

func (r Report) renderText(w io.Writer) error {
	var b strings.Builder

	b.WriteString(ux.Styles.Title.Render(reportTitle) + "\n")
	b.WriteString(ux.Styles.Muted.Render(strings.Repeat("═", lipgloss.Width(reportTitle))) + "\n\n")

	labelWidth := 0
	for _, row := range r.metadataRows() {
		if w := len(row[0]); w > labelWidth {
			labelWidth = w
		}
	}
	for _, row := range r.metadataRows() {
		fmt.Fprintf(&b, "  %-*s  %s\n", labelWidth+1, row[0]+":", row[1])
	}
	b.WriteString("\n")

	for _, cat := range review.Categories() {
		b.WriteString(ux.Styles.Subtitle.Render(cat.Display()) + "\n")
		artifacts := r.Doc.Artifacts(cat)
		if len(artifacts) == 0 {
			b.WriteString("  " + ux.Styles.Muted.Render(emptySection) + "\n\n")
			continue
		}
		for i, a := range artifacts {
			name := fmt.Sprintf("%d. %s", i+1, a.DisplayName())
			if a.IsProprietary {
				name += "  " + ux.Styles.Warning.Render("[PROPRIETARY]")
			}
			b.WriteString("\n  " + ux.Styles.Bold.Render(name) + "\n")
			if cat == review.CategoryModels {
				yesNo := "No"
				if a.IsProprietary {
					yesNo = "Yes"
				}
				fmt.Fprintf(&b, "  Marked as Proprietary in Proposal: %s\n", yesNo)
			}
			if len(a.Checks) == 0 {
				b.WriteString("  " + ux.Styles.Muted.Render(noChecks) + "\n")
				continue
			}
			rows, overflow := splitNotes(a.Checks)
			tableRows := make([][]string, 0, len(rows))
			scores := make([]int, 0, len(rows))
			for j, row := range rows {
				tableRows = append(tableRows, []string{row[0], row[1], row[2]})
				scores = append(scores, a.Checks[j].Score)
			}
			idx := 0
			writeTable(&b, []string{"Check", "Risk Score", "Notes"}, tableRows, func(col int, row []string, cell string) string {
				if col == 1 {
					styled := ux.RiskStyle(scores[idx%len(scores)]).Render(cell)
					idx++
					return styled
				}
				return cell
			})
			for _, note := range overflow {
				b.WriteString("\n  ► " + note[0] + ":\n")
				for _, line := range strings.Split(note[1], "\n") {
					b.WriteString("    " + line + "\n")
				}
			}
			total := scoring.ArtifactTotal(a)
			fmt.Fprintf(&b, "  Total Risk Score: %s\n", ux.Styles.Bold.Render(fmt.Sprintf("%d", total)))
		}
		b.WriteString("\n")
	}

	b.WriteString(ux.Styles.Subtitle.Render("Risk Summary") + "\n")
	summaryRows := make([][]string, 0, 4)
	rowScores := make([]int, 0, 4)
	rowVerdicts := make([]string, 0, 4)
	for _, cat := range review.Categories() {
		sec := r.Summary.Section(cat)
		if sec.ArtifactCount == 0 {
			summaryRows = append(summaryRows, []string{cat.Display(), "—", string(scoring.RiskNoData), "—", "0", "—"})
			rowScores = append(rowScores, 0)
			rowVerdicts = append(rowVerdicts, string(scoring.VerdictNA))
			continue
		}
		artifacts := "—"
		switch len(sec.ContributingArtifacts) {
		case 0:
		case 1:
			artifacts = sec.ContributingArtifacts[0]
		default:
			bullets := make([]string, 0, len(sec.ContributingArtifacts))
			for _, n := range sec.ContributingArtifacts {
				bullets = append(bullets, "• "+n)
			}
			artifacts = strings.Join(bullets, "\n")
		}
		summaryRows = append(summaryRows, []string{
			cat.Display(),
			fmt.Sprintf("%d", sec.HighestScore),
			string(sec.Category),
			string(sec.Verdict),
			fmt.Sprintf("%d", sec.ArtifactCount),
			artifacts,
		})
		rowScores = append(rowScores, sec.HighestScore)
		rowVerdicts = append(rowVerdicts, string(sec.Verdict))
	}
	rowIdx := -1
	writeTable(&b, []string{"Section", "Section Score", "Risk Category", "Status", "Items", "Artifacts"}, summaryRows, func(col int, row []string, cell string) string {
		if col == 0 {
			rowIdx++
		}
		switch col {
		case 1, 2:
			return ux.RiskStyle(rowScores[rowIdx]).Render(cell)
		case 3:
			return ux.VerdictStyle(rowVerdicts[rowIdx]).Render(cell)
		}
		return cell
	})
	b.WriteString("\n")

	proj := r.Summary.Project
	if proj.CumulativeScore == 0 {
		b.WriteString(ux.Styles.Box.Render(ux.Styles.Bold.Render("CUMULATIVE RISK LEVEL")+"\n"+ux.Styles.Muted.Render(noRiskData)) + "\n\n")
	} else {
		body := fmt.Sprintf("%s\n%s  %s  %s\n%s",
			ux.Styles.Bold.Render("CUMULATIVE RISK LEVEL"),
			ux.RiskStyle(proj.CumulativeScore).Render(fmt.Sprintf("%d", proj.CumulativeScore)),
			ux.RiskStyle(proj.CumulativeScore).Render(string(proj.Category)),
			ux.VerdictStyle(string(proj.Verdict)).Render(string(proj.Verdict)),
			ux.Styles.Muted.Render(cumulativeCaption),
		)
		b.WriteString(ux.Styles.Box.Render(body) + "\n\n")
	}

	b.WriteString(ux.Styles.Subtitle.Render("Observations") + "\n")
	if strings.TrimSpace(r.Doc.Observations) == "" {
		b.WriteString("  " + ux.Styles.Muted.Render(noObservations) + "\n\n")
	} else {
		for _, line := range strings.Split(r.Doc.Observations, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(ux.Styles.Subtitle.Render("Recommendation") + "\n")
	if strings.TrimSpace(r.Doc.Recommendation) == "" {
		b.WriteString("  " + ux.Styles.Muted.Render(noRecommendation) + "\n\n")
	} else {
		for _, line := range strings.Split(r.Doc.Recommendation, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(ux.Styles.Muted.Render("Report generated on "+r.GeneratedAt.Format("2006-01-02 15:04:05")) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
