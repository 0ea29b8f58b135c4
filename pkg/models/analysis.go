// Package models defines the analysis report data model shared by the API
// server, the provider client, and the CLI. JSON field names match what the
// dashboard frontend consumes.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCodeLength is the largest snippet accepted for analysis.
const MaxCodeLength = 50000

// Rating grades a complexity metric.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingCritical  Rating = "Critical"
)

// Valid reports whether r is one of the defined ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingFair, RatingPoor, RatingCritical:
		return true
	}
	return false
}

// IssueType categorizes a reported code issue.
type IssueType string

const (
	IssueHighImpact   IssueType = "High Impact"
	IssueOptimization IssueType = "Optimization"
	IssueMemory       IssueType = "Memory"
	IssueGoodPractice IssueType = "Good Practice"
	IssueSecurity     IssueType = "Security"
)

// Valid reports whether t is one of the defined issue types.
func (t IssueType) Valid() bool {
	switch t {
	case IssueHighImpact, IssueOptimization, IssueMemory, IssueGoodPractice, IssueSecurity:
		return true
	}
	return false
}

// ComplexityMetric is a single Big-O estimate with a qualitative rating.
type ComplexityMetric struct {
	Notation    string `json:"notation"`
	Description string `json:"description"`
	Rating      Rating `json:"rating"`
}

// TimeComplexity breaks time complexity into best, average, and worst case.
type TimeComplexity struct {
	Best    ComplexityMetric `json:"best"`
	Average ComplexityMetric `json:"average"`
	Worst   ComplexityMetric `json:"worst"`
}

// Issue is one problem or optimization opportunity found in the snippet.
type Issue struct {
	ID          string    `json:"id"`
	Line        int       `json:"line"`
	Type        IssueType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Snippet     string    `json:"snippet,omitempty"`
}

// AnalysisResult is the complete complexity report for one snippet.
type AnalysisResult struct {
	ID              string           `json:"id,omitempty"`
	FileName        string           `json:"fileName"`
	Language        string           `json:"language"`
	Timestamp       string           `json:"timestamp"`
	SourceCode      string           `json:"sourceCode"`
	TimeComplexity  TimeComplexity   `json:"timeComplexity"`
	SpaceComplexity ComplexityMetric `json:"spaceComplexity"`
	Issues          []Issue          `json:"issues"`
	Summary         string           `json:"summary"`
	SuggestedName   string           `json:"suggestedName,omitempty"`
}

// AnalyzeRequest is the payload accepted by POST /api/analyze.
type AnalyzeRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

// ErrEmptyCode is returned when a request carries no code to analyze.
var ErrEmptyCode = errors.New("code cannot be empty")

// Validate checks request bounds and fills defaults for optional fields.
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ErrEmptyCode
	}
	if len(r.Code) > MaxCodeLength {
		return fmt.Errorf("code exceeds maximum length of %d characters", MaxCodeLength)
	}
	if r.Filename == "" {
		r.Filename = "untitled"
	}
	if r.Language == "" {
		r.Language = "auto"
	}
	return nil
}

// AnalyzeResponse wraps a successful analysis.
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Result  *AnalysisResult `json:"result"`
	Model   string          `json:"model"`
}

// ErrorResponse is the JSON body for failed API calls.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
