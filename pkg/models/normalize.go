package models

import "fmt"

// Normalize repairs a partially-valid analysis result in place so the
// frontend always receives a complete report. LLM output is untrusted:
// fields go missing, ratings drift outside the allowed set, issues arrive
// without IDs. Rather than rejecting a mostly-good response, fill the gaps
// with conservative defaults.
func (a *AnalysisResult) Normalize(code, filename string) {
	if a.FileName == "" {
		if filename != "" && filename != "untitled" {
			a.FileName = filename
		} else {
			a.FileName = "analyzed_code.js"
		}
	}
	if a.Language == "" {
		a.Language = "JavaScript"
	}

	normalizeTimeCase(&a.TimeComplexity.Best)
	normalizeTimeCase(&a.TimeComplexity.Average)
	normalizeTimeCase(&a.TimeComplexity.Worst)

	if a.SpaceComplexity.Notation == "" {
		a.SpaceComplexity = ComplexityMetric{
			Notation:    "O(1)",
			Description: "Constant space",
			Rating:      RatingExcellent,
		}
	}
	if !a.SpaceComplexity.Rating.Valid() {
		a.SpaceComplexity.Rating = RatingGood
	}

	if a.Issues == nil {
		a.Issues = []Issue{}
	}
	for i := range a.Issues {
		issue := &a.Issues[i]
		if issue.ID == "" {
			issue.ID = fmt.Sprintf("issue-%d", i+1)
		}
		if issue.Line < 1 {
			issue.Line = 1
		}
		if !issue.Type.Valid() {
			issue.Type = IssueOptimization
		}
		if issue.Title == "" {
			issue.Title = "Issue detected"
		}
		if issue.Description == "" {
			issue.Description = "See code for details"
		}
	}

	if a.Summary == "" {
		a.Summary = "Code analysis completed."
	}
	if a.SourceCode == "" {
		a.SourceCode = code
	}
}

// normalizeTimeCase fills an absent time-complexity case and clamps
// out-of-range ratings to Fair.
func normalizeTimeCase(m *ComplexityMetric) {
	if m.Notation == "" {
		m.Notation = "O(n)"
		m.Description = "Could not determine"
	}
	if !m.Rating.Valid() {
		m.Rating = RatingFair
	}
}
