package detect

import (
	"regexp"
	"strings"
)

// countLiteral counts non-overlapping occurrences of substr in content,
// scanning left to right and capped at maxSignalCount.
func countLiteral(content, substr string) int {
	if substr == "" {
		return 0
	}
	count := 0
	for count < maxSignalCount {
		i := strings.Index(content, substr)
		if i < 0 {
			break
		}
		count++
		content = content[i+len(substr):]
	}
	return count
}

// countPattern counts global regex matches in content, capped at
// maxSignalCount.
func countPattern(re *regexp.Regexp, content string) int {
	return len(re.FindAllStringIndex(content, maxSignalCount))
}

// scoreContent computes the raw score of every configured language for the
// given content. Languages with no matching signals score zero. The result
// map is fresh per call; nothing is shared between invocations.
func scoreContent(content string) map[string]float64 {
	scores := make(map[string]float64, len(profiles))
	for _, p := range profiles {
		var score float64
		for _, kw := range p.Keywords {
			score += float64(countLiteral(content, kw)) * p.KeywordWeight
		}
		for _, b := range p.Builtins {
			score += float64(countLiteral(content, b)) * p.BuiltinWeight
		}
		for _, re := range p.Patterns {
			score += float64(countPattern(re, content)) * p.PatternWeight
		}
		scores[p.Name] = score
	}
	return scores
}
