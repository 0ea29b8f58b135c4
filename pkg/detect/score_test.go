package detect

import (
	"regexp"
	"strings"
	"testing"
)

func TestCountLiteral(t *testing.T) {
	tests := []struct {
		name    string
		content string
		substr  string
		want    int
	}{
		{"absent", "hello world", "def ", 0},
		{"single", "def foo():", "def ", 1},
		{"multiple", "def a():\ndef b():\ndef c():", "def ", 3},
		{"capped at five", strings.Repeat("pass\n", 20), "pass", maxSignalCount},
		{"non-overlapping", "aaaa", "aa", 2},
		{"empty substr", "content", "", 0},
		{"empty content", "", "def ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLiteral(tt.content, tt.substr); got != tt.want {
				t.Errorf("countLiteral(%q, %q) = %d, want %d", tt.content, tt.substr, got, tt.want)
			}
		})
	}
}

func TestCountPattern(t *testing.T) {
	re := regexp.MustCompile(`(?m)^\s*def\s+\w+`)

	if got := countPattern(re, "no match here"); got != 0 {
		t.Errorf("countPattern() = %d, want 0", got)
	}
	if got := countPattern(re, "def a():\n  pass\ndef b():\n  pass\n"); got != 2 {
		t.Errorf("countPattern() = %d, want 2", got)
	}

	many := strings.Repeat("def f():\n", 12)
	if got := countPattern(re, many); got != maxSignalCount {
		t.Errorf("countPattern() = %d, want cap %d", got, maxSignalCount)
	}
}

func TestScoreContent_AllLanguagesPresent(t *testing.T) {
	scores := scoreContent("def foo(x):\n    return x\n")
	if len(scores) != len(profiles) {
		t.Fatalf("len(scores) = %d, want %d (every language scored)", len(scores), len(profiles))
	}
	for _, p := range profiles {
		if _, ok := scores[p.Name]; !ok {
			t.Errorf("missing score entry for %s", p.Name)
		}
	}
	if scores[LangPython] <= 0 {
		t.Errorf("python score = %v, want > 0", scores[LangPython])
	}
}

func TestScoreContent_ZeroForUnrelated(t *testing.T) {
	scores := scoreContent("plain prose with no source code signals whatsoever")
	for lang, s := range scores {
		if s != 0 {
			t.Errorf("%s score = %v, want 0", lang, s)
		}
	}
}
