package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"leadgen-stack/internal/models"
)

const analysisPromptHeader = `You are an AI lead scoring assistant. Your task is to analyze the given
text and determine the likelihood that the person would respond positively to outreach from
a professional coach or mentor who could help them with their work-related challenges.

Consider these factors:
1. Urgency of pain points (high, medium, low)
2. Tone (desperate, negative, reflective, positive)
3. Whether they're actively seeking advice or help
4. Specificity of their problem
5. Openness to external input

Respond with:
1. A score from 0 to 10 (with 10 being extremely likely to respond)
2. A brief explanation of your reasoning
3. Key pain points you identified

Format your response as a JSON object with keys: score, reasoning, pain_points`

// AnalyzeLead asks the model how likely the lead is to respond to
// outreach. The returned score feeds the blended final score.
func (c *Client) AnalyzeLead(ctx context.Context, text string) (*models.AIAnalysis, error) {
	if text == "" {
		return nil, fmt.Errorf("no text provided for analysis")
	}

	prompt := fmt.Sprintf("%s\n\nPlease analyze this content for lead scoring:\n\n%s",
		analysisPromptHeader, truncateString(text, 2000))

	response, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("lead analysis failed: %w", err)
	}

	return parseAnalysisResponse(response)
}

func parseAnalysisResponse(response string) (*models.AIAnalysis, error) {
	jsonStr, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var result struct {
		Score      json.Number `json:"score"`
		Reasoning  string      `json:"reasoning"`
		PainPoints []string    `json:"pain_points"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		sanitized := sanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitized), &result); sanitizedErr != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON '%s': %w (sanitized version also failed: %v)", jsonStr, err, sanitizedErr)
		}
		log.Println("Warning: Had to sanitize malformed JSON in analysis response")
	}

	score, err := result.Score.Float64()
	if err != nil {
		score = 5 // Default middle score
	}
	if score < 0 {
		score = 0
	} else if score > 10 {
		score = 10
	}

	reasoning := result.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	return &models.AIAnalysis{
		Score:      score,
		Reasoning:  reasoning,
		PainPoints: result.PainPoints,
	}, nil
}
