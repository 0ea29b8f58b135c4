package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codalyzer/codalyzer/pkg/config"
	"github.com/codalyzer/codalyzer/pkg/models"
)

func candidateBody(t *testing.T, text string) []byte {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}}},
		},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal candidate body: %v", err)
	}
	return data
}

const sampleResult = `{
	"fileName": "fib.js",
	"language": "JavaScript",
	"timeComplexity": {
		"best": {"notation": "O(1)", "description": "base case", "rating": "Excellent"},
		"average": {"notation": "O(2^n)", "description": "branching", "rating": "Critical"},
		"worst": {"notation": "O(2^n)", "description": "branching", "rating": "Critical"}
	},
	"spaceComplexity": {"notation": "O(n)", "description": "call stack", "rating": "Fair"},
	"issues": [],
	"summary": "Naive recursive fibonacci."
}`

func testGemini(t *testing.T, url string) *Gemini {
	t.Helper()
	cfg := config.DefaultConfig().Provider
	cfg.APIKey = "test-key"
	cfg.BaseURL = url
	cfg.MaxRetries = 2
	return NewGemini(cfg, nil)
}

func TestGeminiAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SystemInstruction == nil || len(req.SystemInstruction.Parts) == 0 {
			t.Error("request missing system instruction")
		}
		w.Write(candidateBody(t, sampleResult))
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	result, err := g.Analyze(context.Background(), Request{Code: "function fib(n) {}", Filename: "fib.js", Language: "auto"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.FileName != "fib.js" {
		t.Errorf("FileName = %q, want fib.js", result.FileName)
	}
	if result.ID == "" {
		t.Error("result ID should be assigned")
	}
	if result.Timestamp == "" {
		t.Error("result Timestamp should be set")
	}
	if result.SourceCode != "function fib(n) {}" {
		t.Errorf("SourceCode = %q, want request code", result.SourceCode)
	}
	if result.TimeComplexity.Worst.Rating != models.RatingCritical {
		t.Errorf("Worst.Rating = %q, want Critical", result.TimeComplexity.Worst.Rating)
	}
}

func TestGeminiAnalyzeFencedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody(t, "```json\n"+sampleResult+"\n```"))
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	result, err := g.Analyze(context.Background(), Request{Code: "x", Filename: "fib.js"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.Summary != "Naive recursive fibonacci." {
		t.Errorf("Summary = %q", result.Summary)
	}
}

func TestGeminiRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(candidateBody(t, sampleResult))
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	if _, err := g.Analyze(context.Background(), Request{Code: "x", Filename: "f.js"}); err != nil {
		t.Fatalf("Analyze() should succeed after retry: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestGeminiRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	_, err := g.Analyze(context.Background(), Request{Code: "x", Filename: "f.js"})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Analyze() error = %v, want ErrRateLimited", err)
	}
	// MaxRetries=2 means three attempts were allowed.
}

func TestGeminiClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	if _, err := g.Analyze(context.Background(), Request{Code: "x", Filename: "f.js"}); err == nil {
		t.Fatal("Analyze() expected error on 400")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, 400 must not be retried", got)
	}
}

func TestGeminiUnavailableWithoutKey(t *testing.T) {
	cfg := config.DefaultConfig().Provider
	g := NewGemini(cfg, nil)
	if g.Available() {
		t.Error("Available() = true without API key")
	}
	if _, err := g.Analyze(context.Background(), Request{Code: "x"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Analyze() error = %v, want ErrUnavailable", err)
	}
}

func TestGeminiContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := testGemini(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Analyze(ctx, Request{Code: "x", Filename: "f.js"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Analyze() error = %v, want context deadline", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(Request{Code: "def f(): pass", Filename: "f.py", Language: "auto"})
	for _, want := range []string{"Filename: f.py", "Language: Auto-detect", "def f(): pass"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	p = buildPrompt(Request{Code: "x", Filename: "f.py", Language: "Python"})
	if !strings.Contains(p, "Language: Python") {
		t.Error("explicit language should pass through")
	}
}
