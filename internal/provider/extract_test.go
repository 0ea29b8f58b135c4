package provider

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "direct JSON",
			input: `{"summary": "ok"}`,
			want:  "ok",
		},
		{
			name:  "direct JSON with whitespace",
			input: "\n  {\"summary\": \"ok\"}\n",
			want:  "ok",
		},
		{
			name:  "json fence",
			input: "Here is the analysis:\n```json\n{\"summary\": \"fenced\"}\n```\nDone.",
			want:  "fenced",
		},
		{
			name:  "bare fence",
			input: "```\n{\"summary\": \"bare\"}\n```",
			want:  "bare",
		},
		{
			name:  "embedded braces in prose",
			input: "The result is {\"summary\": \"inline\"} as requested.",
			want:  "inline",
		},
		{
			name:  "nested objects through outer braces",
			input: "prefix {\"summary\": \"outer\", \"timeComplexity\": {\"best\": {}}} suffix",
			want:  "outer",
		},
		{
			name:    "no JSON at all",
			input:   "I cannot analyze this code.",
			wantErr: true,
		},
		{
			name:    "malformed JSON everywhere",
			input:   "```json\n{\"summary\": \n```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := extractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("extractJSON() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("extractJSON() error: %v", err)
			}
			var got struct {
				Summary string `json:"summary"`
			}
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("unmarshal extracted JSON: %v", err)
			}
			if got.Summary != tt.want {
				t.Errorf("summary = %q, want %q", got.Summary, tt.want)
			}
		})
	}
}

func TestValidateResult(t *testing.T) {
	valid := json.RawMessage(`{
		"fileName": "fib.py",
		"language": "Python",
		"timeComplexity": {
			"best": {"notation": "O(1)", "description": "base case", "rating": "Excellent"}
		},
		"spaceComplexity": {"notation": "O(n)", "description": "stack", "rating": "Fair"},
		"issues": [{"id": "issue-1", "line": 1, "type": "Optimization", "title": "t", "description": "d"}],
		"summary": "ok"
	}`)
	if err := validateResult(valid); err != nil {
		t.Errorf("validateResult() on valid payload: %v", err)
	}

	// Partial payloads pass; normalization fills the gaps.
	if err := validateResult(json.RawMessage(`{"summary": "sparse"}`)); err != nil {
		t.Errorf("validateResult() on sparse payload: %v", err)
	}

	invalid := []json.RawMessage{
		json.RawMessage(`["not", "an", "object"]`),
		json.RawMessage(`{"timeComplexity": "fast"}`),
		json.RawMessage(`{"issues": {"id": "issue-1"}}`),
		json.RawMessage(`{"spaceComplexity": [1, 2]}`),
	}
	for _, raw := range invalid {
		if err := validateResult(raw); err == nil {
			t.Errorf("validateResult(%s) expected error, got nil", raw)
		}
	}
}
