// Package report turns analysis results into renderable CLI reports and
// standalone HTML pages.
package report

import (
	"fmt"
	"strconv"

	"github.com/codalyzer/codalyzer/internal/output"
	"github.com/codalyzer/codalyzer/pkg/models"
)

// Build assembles a Renderable report for one analysis result. The CLI feeds
// it to a Formatter, which picks text, markdown, or JSON rendering.
func Build(result *models.AnalysisResult) *output.Report {
	sections := []output.Renderable{
		&output.Section{
			Title:   "Summary",
			Content: result.Summary,
		},
		complexityTable(result),
	}

	if len(result.Issues) > 0 {
		sections = append(sections, issuesTable(result.Issues))
	}
	if result.SuggestedName != "" {
		sections = append(sections, &output.Section{
			Title:   "Suggested Name",
			Content: result.SuggestedName,
		})
	}

	title := fmt.Sprintf("%s (%s)", result.FileName, result.Language)
	return &output.Report{
		Title:    title,
		Sections: sections,
		Data:     result,
	}
}

func complexityTable(result *models.AnalysisResult) *output.Table {
	rows := [][]string{
		metricRow("Best", result.TimeComplexity.Best),
		metricRow("Average", result.TimeComplexity.Average),
		metricRow("Worst", result.TimeComplexity.Worst),
		metricRow("Space", result.SpaceComplexity),
	}
	return output.NewTable("Complexity", []string{"Case", "Notation", "Rating", "Notes"}, rows, nil, nil)
}

func metricRow(label string, m models.ComplexityMetric) []string {
	return []string{
		label,
		m.Notation,
		output.RatingColor(string(m.Rating), string(m.Rating)),
		m.Description,
	}
}

func issuesTable(issues []models.Issue) *output.Table {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{
			strconv.Itoa(issue.Line),
			output.IssueColor(string(issue.Type), string(issue.Type)),
			issue.Title,
			issue.Description,
		}
	}
	footer := []string{"", "", "Total", strconv.Itoa(len(issues))}
	return output.NewTable("Issues", []string{"Line", "Type", "Title", "Description"}, rows, footer, nil)
}
