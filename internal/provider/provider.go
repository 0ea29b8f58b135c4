// Package provider implements LLM backends that turn a code snippet into a
// structured complexity report. The Gemini REST client is the only backend
// today; the Provider interface keeps the server and CLI decoupled from it.
package provider

import (
	"context"
	"errors"

	"github.com/codalyzer/codalyzer/pkg/models"
)

// Request carries one snippet to analyze. Language is either a concrete
// language name or "auto".
type Request struct {
	Code     string
	Filename string
	Language string
}

// Provider analyzes code snippets.
type Provider interface {
	// Analyze sends the snippet to the backend and returns a complete,
	// normalized report.
	Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error)

	// Available reports whether the provider is configured and usable.
	Available() bool

	// Model returns the backend model identifier.
	Model() string
}

// ErrUnavailable is returned when the provider has no API key configured.
var ErrUnavailable = errors.New("provider not available: API key not configured")

// ErrRateLimited is returned when the backend rejected the request for quota
// reasons even after retries.
var ErrRateLimited = errors.New("provider rate limit exceeded")

// ErrBadResponse wraps failures to parse or validate the backend's output.
var ErrBadResponse = errors.New("provider returned an unusable response")
