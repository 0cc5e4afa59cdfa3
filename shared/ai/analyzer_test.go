package ai

import (
	"strings"
	"testing"
)

func TestParseAnalysisResponse(t *testing.T) {
	response := `Here is my analysis:
{
	"score": 8,
	"reasoning": "Actively asking for help with a specific problem",
	"pain_points": ["burnout", "long hours"]
}`

	analysis, err := parseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if analysis.Score != 8 {
		t.Errorf("Expected score 8, got %.1f", analysis.Score)
	}
	if analysis.Reasoning != "Actively asking for help with a specific problem" {
		t.Errorf("Unexpected reasoning: %q", analysis.Reasoning)
	}
	if len(analysis.PainPoints) != 2 || analysis.PainPoints[0] != "burnout" {
		t.Errorf("Unexpected pain points: %v", analysis.PainPoints)
	}
}

func TestParseAnalysisResponseClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expect   float64
	}{
		{"Score above range", `{"score": 15, "reasoning": "x"}`, 10},
		{"Score below range", `{"score": -3, "reasoning": "x"}`, 0},
		{"Decimal score", `{"score": 7.5, "reasoning": "x"}`, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := parseAnalysisResponse(tt.response)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if analysis.Score != tt.expect {
				t.Errorf("Expected score %.1f, got %.1f", tt.expect, analysis.Score)
			}
		})
	}
}

func TestParseAnalysisResponseDefaults(t *testing.T) {
	analysis, err := parseAnalysisResponse(`{"score": 6}`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if analysis.Reasoning != "No reasoning provided" {
		t.Errorf("Expected default reasoning, got %q", analysis.Reasoning)
	}
}

func TestParseAnalysisResponseNoJSON(t *testing.T) {
	if _, err := parseAnalysisResponse("I cannot analyze this content."); err == nil {
		t.Error("Expected error when response has no JSON")
	}
}

func TestExtractJSON(t *testing.T) {
	got, err := extractJSON("preamble {\"a\": 1} trailing")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}
	if got != `{"a": 1}` {
		t.Errorf("Unexpected extraction: %q", got)
	}

	if _, err := extractJSON("no braces here"); err == nil {
		t.Error("Expected error for missing JSON")
	}
}

func TestSanitizeJSON(t *testing.T) {
	malformed := `{
"reasoning": "They said "I quit" in the post",
"score": 7
}`

	sanitized := sanitizeJSON(malformed)
	if !strings.Contains(sanitized, `\"I quit\"`) {
		t.Errorf("Expected inner quotes escaped, got:\n%s", sanitized)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncateString("abcdefghij", 4); got != "abcd..." {
		t.Errorf("Expected truncation with ellipsis, got %q", got)
	}
}
