package detect

import "strings"

// Detect returns the best-guess language for a snippet, or "" when no guess
// clears the confidence floor.
//
// A recognized filename extension is authoritative and short-circuits all
// content analysis, even when the content contradicts it: file metadata is
// trusted over inference. Without an extension match, content is scored
// against every profile, disambiguated, and the highest-scoring language is
// returned if its score strictly exceeds the floor. Ties go to the profile
// declared first.
//
// Detect never fails: malformed or empty input yields "", not an error. It
// is safe for concurrent use.
func Detect(fileName, content string) string {
	if lang := ByExtension(fileName); lang != "" {
		return lang
	}

	if len(strings.TrimSpace(content)) < minContentLength {
		return ""
	}

	scores := scoreContent(content)
	disambiguate(content, scores)

	var best string
	var bestScore float64 = scoreFloor
	for _, p := range profiles {
		if scores[p.Name] > bestScore {
			best = p.Name
			bestScore = scores[p.Name]
		}
	}
	return best
}

// ByExtension resolves a language from the filename extension alone.
// Returns "" when the filename has no recognized extension.
func ByExtension(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 || i == len(fileName)-1 {
		return ""
	}
	return extLanguages[strings.ToLower(fileName[i+1:])]
}
