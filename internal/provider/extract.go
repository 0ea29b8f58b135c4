package provider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*\n?(.*?)\n?```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*\n?(.*?)\n?```")
)

// extractJSON pulls a JSON object out of raw model output. Models asked for
// bare JSON still wrap it in markdown fences or prose often enough that we
// try progressively looser extractions: direct parse, ```json fence, bare
// fence, then the outermost brace-delimited block.
func extractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return json.RawMessage(trimmed), nil
	}

	for _, re := range []*regexp.Regexp{fencedJSONRe, fencedAnyRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	// Outermost { ... } block.
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	preview := text
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	return nil, fmt.Errorf("%w: could not extract valid JSON from %q", ErrBadResponse, preview)
}
