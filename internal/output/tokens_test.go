package output

import (
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minRange int
		maxRange int
	}{
		{
			name:     "empty string",
			text:     "",
			minRange: 0,
			maxRange: 0,
		},
		{
			name:     "short snippet",
			text:     "x = 1",
			minRange: 1,
			maxRange: 3,
		},
		{
			name:     "function",
			text:     "def fib(n):\n    return fib(n-1) + fib(n-2)",
			minRange: 8,
			maxRange: 15,
		},
		{
			name:     "1000 characters",
			text:     string(make([]byte, 1000)),
			minRange: 200,
			maxRange: 350,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.text)
			if got < tt.minRange || got > tt.maxRange {
				t.Errorf("EstimateTokens() = %v, want between %v and %v", got, tt.minRange, tt.maxRange)
			}
		})
	}
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		tokens   int
		expected string
	}{
		{100, "100"},
		{1000, "1.0k"},
		{1500, "1.5k"},
		{12500, "12.5k"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatTokenCount(tt.tokens); got != tt.expected {
				t.Errorf("FormatTokenCount(%d) = %v, want %v", tt.tokens, got, tt.expected)
			}
		})
	}
}

func TestTokenBudgetInfo(t *testing.T) {
	text := string(make([]byte, 8000)) // ~2k tokens at 4 chars/token
	info := GetTokenBudgetInfo(text, Budget32K)

	if info.Tokens < 1500 || info.Tokens > 2500 {
		t.Errorf("Tokens = %d, want ~2000", info.Tokens)
	}
	if info.Budget != Budget32K {
		t.Errorf("Budget = %d, want %d", info.Budget, Budget32K)
	}
	if info.UsagePercent < 4 || info.UsagePercent > 9 {
		t.Errorf("UsagePercent = %.1f, want ~6%%", info.UsagePercent)
	}
	if info.BudgetLabel != "32k" {
		t.Errorf("BudgetLabel = %q, want 32k", info.BudgetLabel)
	}
}

func TestTokenBudgetInfoDefault(t *testing.T) {
	info := GetTokenBudgetInfo("x = 1", 0)
	if info.Budget != DefaultBudget {
		t.Errorf("Budget = %d, want default %d", info.Budget, DefaultBudget)
	}
	if info.Remaining != info.Budget-info.Tokens {
		t.Errorf("Remaining = %d, want %d", info.Remaining, info.Budget-info.Tokens)
	}
}
