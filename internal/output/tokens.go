package output

import (
	"fmt"
	"unicode/utf8"
)

// TokenBudgetInfo reports how much of the model's context window a snippet
// will consume.
type TokenBudgetInfo struct {
	Tokens       int     // Estimated token count
	Budget       int     // Token budget (context window size)
	BudgetLabel  string  // Human-readable budget label (e.g., "32k", "1000k")
	UsagePercent float64 // Percentage of budget used
	Remaining    int     // Estimated tokens remaining
}

// Context window sizes for the supported Gemini model tiers.
const (
	Budget32K  = 32000
	Budget128K = 128000
	Budget1M   = 1000000
)

// DefaultBudget matches the gemini-2.0-flash context window.
const DefaultBudget = Budget1M

// CharsPerToken is the approximate character-to-token ratio for source code.
// Code averages around 4 chars/token due to syntax and identifiers.
const CharsPerToken = 4.0

// EstimateTokens returns an approximate token count for a snippet. It is a
// character-based heuristic; the exact count depends on the tokenizer.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	runeCount := utf8.RuneCountInString(text)
	tokens := float64(runeCount) / CharsPerToken
	return int(tokens + 0.5)
}

// FormatTokenCount formats a token count for display. Counts >= 1000 are
// formatted as "X.Xk".
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("%d", tokens)
	}
	return fmt.Sprintf("%.1fk", float64(tokens)/1000)
}

// GetTokenBudgetInfo calculates context usage for a snippet.
func GetTokenBudgetInfo(text string, budget int) TokenBudgetInfo {
	if budget <= 0 {
		budget = DefaultBudget
	}

	tokens := EstimateTokens(text)
	remaining := budget - tokens
	if remaining < 0 {
		remaining = 0
	}

	return TokenBudgetInfo{
		Tokens:       tokens,
		Budget:       budget,
		BudgetLabel:  formatBudgetLabel(budget),
		UsagePercent: float64(tokens) / float64(budget) * 100,
		Remaining:    remaining,
	}
}

func formatBudgetLabel(budget int) string {
	if budget >= 1000 {
		return fmt.Sprintf("%dk", budget/1000)
	}
	return fmt.Sprintf("%d", budget)
}
