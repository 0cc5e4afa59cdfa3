package ai

import (
	"context"
	"fmt"
	"strings"

	"leadgen-stack/internal/models"
)

const linkedinComposePrompt = `You are a thoughtful professional reaching out to make a genuine connection.
Your goal is to write a short, natural-sounding first message that feels like a real human wrote it.

Key guidelines:
- Keep the message conversational, warm, and brief (3-5 sentences)
- Avoid sounding salesy, pushy, or overly formal
- Include a specific reference to their background, content, or industry to show you've done your homework
- Ask a thoughtful open-ended question related to their experience or interests
- Your goal is to start a conversation, not to sell anything
- Make it feel like a message from one professional to another, not an automated outreach
- Focus on providing value or insight, not asking for something
- Be authentic and human - avoid corporate jargon or buzzwords`

const redditComposePrompt = `You are a thoughtful professional reaching out to someone from Reddit who has posted about work challenges.
Your goal is to write a brief, empathetic, and natural-sounding DM that feels like a real human wrote it.

Key guidelines:
- Keep the message conversational, warm, and brief (3-5 sentences)
- Be empathetic and understanding about their situation
- Reference their specific post in a non-intrusive way
- Avoid sounding salesy, pushy, or too formal
- Include a specific insight related to their post to show you've read it
- Ask a thoughtful open-ended question related to their situation
- Make it feel like a message from one person to another, not automated outreach
- Focus on being helpful and supportive, not selling anything
- Avoid being presumptuous about their situation`

// ComposeLinkedInMessage generates a personalized first message plus the
// model's rationale for why it should land.
func (c *Client) ComposeLinkedInMessage(ctx context.Context, lead *models.LinkedInLead) (string, string, error) {
	name := lead.Name
	if name == "" {
		name = "professional"
	}

	postsText := ""
	if len(lead.RecentPosts) > 0 {
		posts := lead.RecentPosts
		if len(posts) > 3 {
			posts = posts[:3]
		}
		postsText = "\n- " + strings.Join(posts, "\n- ")
	}

	prompt := fmt.Sprintf(`%s

This is a professional on LinkedIn:

Name: %s
Current role: %s
Industry: %s
Bio snippet: %s

Recent LinkedIn content they've posted: %s

Write a personalized, conversational first message to send on LinkedIn. This should sound like a genuine human connection attempt, not automated outreach. Keep it brief, warm, and include a thoughtful question.

Also explain your reasoning for why this message will be effective (the reasoning part will not be sent to them).`,
		linkedinComposePrompt, name, lead.JobTitle, lead.Industry, lead.BioSnippet, postsText)

	response, err := c.generate(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("failed to compose LinkedIn message: %w", err)
	}

	message, reasoning := splitMessageReasoning(response)
	return message, reasoning, nil
}

// ComposeRedditMessage generates a personalized DM for a Reddit lead.
func (c *Client) ComposeRedditMessage(ctx context.Context, lead *models.RedditLead) (string, string, error) {
	username := lead.Username
	if username == "" {
		username = "Redditor"
	}

	prompt := fmt.Sprintf(`%s

This is a person who posted on Reddit:

Username: %s
Subreddit: r/%s
Post Title: %s
Post Content: %s
Keywords matched: %s

Write a personalized, conversational first Reddit DM that feels like a genuine human reaching out. Be empathetic but not presumptuous. Keep it brief, warm, and include a thoughtful question.

Also explain your reasoning for why this message will be effective (the reasoning part will not be sent to them).`,
		redditComposePrompt, username, lead.Subreddit, lead.PostTitle,
		truncateString(lead.PostContent, 1000), strings.Join(lead.MatchedKeywords, ", "))

	response, err := c.generate(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("failed to compose Reddit message: %w", err)
	}

	message, reasoning := splitMessageReasoning(response)
	return message, reasoning, nil
}

// splitMessageReasoning separates a model response into the outreach
// message and the rationale half. The model usually separates them with a
// blank line and a heading; fall back to scanning for known markers.
func splitMessageReasoning(full string) (string, string) {
	parts := strings.SplitN(full, "\n\n", 2)
	if len(parts) == 2 &&
		(strings.Contains(parts[1], "Reasoning") || strings.Contains(parts[1], "Why this works")) {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	splitPoints := []string{
		"\nReasoning:",
		"\nWhy this works:",
		"\nEffectiveness:",
		"\nStrategy:",
	}

	for _, splitPoint := range splitPoints {
		if idx := strings.Index(full, splitPoint); idx != -1 {
			message := strings.TrimSpace(full[:idx])
			reasoning := strings.TrimSpace(splitPoint) + " " + strings.TrimSpace(full[idx+len(splitPoint):])
			return message, reasoning
		}
	}

	return strings.TrimSpace(full), "No explicit reasoning provided."
}
