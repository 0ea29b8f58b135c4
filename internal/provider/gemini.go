package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/codalyzer/codalyzer/pkg/config"
	"github.com/codalyzer/codalyzer/pkg/models"
)

const (
	baseRetryDelay = time.Second
	maxRetryDelay  = 30 * time.Second
)

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	cfg    config.ProviderConfig
	client *http.Client
	logger *slog.Logger
}

// NewGemini builds a Gemini provider from config. The provider is created
// even without an API key so availability can be reported at request time.
func NewGemini(cfg config.ProviderConfig, logger *slog.Logger) *Gemini {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gemini{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Available reports whether an API key is configured.
func (g *Gemini) Available() bool {
	return g.cfg.APIKey != ""
}

// Model returns the configured model identifier.
func (g *Gemini) Model() string {
	return g.cfg.Model
}

// Wire types for the generateContent endpoint.

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Analyze sends the snippet to Gemini and returns the normalized report.
func (g *Gemini) Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}

	body := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: buildPrompt(req)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.cfg.Temperature,
			MaxOutputTokens: g.cfg.MaxTokens,
		},
	}

	text, err := g.generate(ctx, body)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := validateResult(raw); err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	result.Normalize(req.Code, req.Filename)
	result.ID = uuid.NewString()
	result.Timestamp = time.Now().Format("Jan 02, 3:04 PM")
	return &result, nil
}

// generate performs the HTTP call with exponential backoff on 429 and 5xx.
func (g *Gemini) generate(ctx context.Context, body geminiRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.cfg.BaseURL, g.cfg.Model, g.cfg.APIKey)

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			g.logger.Debug("retrying provider request", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("provider request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return parseCandidate(respBody)
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: %s", ErrRateLimited, string(respBody))
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("provider server error %d: %s", resp.StatusCode, string(respBody))
		default:
			// 4xx other than 429 will not improve on retry.
			return "", fmt.Errorf("provider error %d: %s", resp.StatusCode, string(respBody))
		}
	}

	return "", lastErr
}

// parseCandidate extracts the first candidate's text from a generateContent
// response body.
func parseCandidate(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("provider error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrBadResponse)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// backoffDelay returns the exponential backoff delay for a retry attempt.
func backoffDelay(attempt int) time.Duration {
	delay := baseRetryDelay << (attempt - 1)
	if delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}
