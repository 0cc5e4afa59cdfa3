package ai

import (
	"context"
	"fmt"
	"strings"

	"leadgen-stack/shared/config"

	"google.golang.org/genai"
)

// Client wraps the Gemini API for lead analysis and message composition.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(cfg *config.AIConfig) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}

// sanitizeJSON escapes unescaped quotes inside string values, a common
// formatting issue in model responses.
func sanitizeJSON(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	var sanitizedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ":") && strings.Contains(line, "\"") {
			colonIdx := strings.Index(line, ":")
			if colonIdx != -1 {
				beforeColon := line[:colonIdx+1]
				afterColon := strings.TrimSpace(line[colonIdx+1:])

				if strings.HasPrefix(afterColon, "\"") {
					lastQuoteIdx := strings.LastIndex(afterColon, "\"")
					if lastQuoteIdx > 0 {
						stringContent := afterColon[1:lastQuoteIdx]
						stringContent = strings.ReplaceAll(stringContent, "\\\"", "\"")
						stringContent = strings.ReplaceAll(stringContent, "\"", "\\\"")

						remainder := afterColon[lastQuoteIdx+1:]
						line = beforeColon + " \"" + stringContent + "\"" + remainder
					}
				}
			}
		}

		sanitizedLines = append(sanitizedLines, line)
	}

	return strings.Join(sanitizedLines, "\n")
}

// extractJSON returns the first {...} block of a model response.
func extractJSON(response string) (string, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("no JSON found in response: %s", response)
	}

	return response[startIdx : endIdx+1], nil
}
