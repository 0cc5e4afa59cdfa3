package messagegenerator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"leadgen-stack/internal/models"
	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/ai"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
)

// Agent drafts personalized outreach messages for leads that don't have
// one yet. Messages land in the review worksheets as "Pending Review";
// sending is always a human decision.
type Agent struct {
	config *config.Config
	sheets *sheets.Client
	ai     *ai.Client
}

type Metrics struct {
	LinkedInGenerated int
	RedditGenerated   int
	Errors            int
}

func (m *Metrics) GetSummary() string {
	return fmt.Sprintf("generated %d LinkedIn and %d Reddit messages (%d errors)",
		m.LinkedInGenerated, m.RedditGenerated, m.Errors)
}

func (m *Metrics) GetCounters() activity.Counters {
	return activity.Counters{
		MessagesGenerated: m.LinkedInGenerated + m.RedditGenerated,
		Errors:            m.Errors,
	}
}

func New(cfg *config.Config, sheetsClient *sheets.Client, aiClient *ai.Client) *Agent {
	return &Agent{
		config: cfg,
		sheets: sheetsClient,
		ai:     aiClient,
	}
}

func (a *Agent) Name() string {
	return "message-generator"
}

func (a *Agent) Initialize() error {
	ctx := context.Background()
	if err := a.sheets.EnsureWorksheet(ctx, sheets.WorksheetLinkedInMsgs, sheets.LinkedInMessageHeaders); err != nil {
		return err
	}
	return a.sheets.EnsureWorksheet(ctx, sheets.WorksheetRedditMsgs, sheets.RedditMessageHeaders)
}

func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	metrics := &Metrics{}

	if err := a.generateLinkedIn(ctx, metrics); err != nil {
		return metrics, fmt.Errorf("LinkedIn message generation failed: %w", err)
	}
	if err := a.generateReddit(ctx, metrics); err != nil {
		return metrics, fmt.Errorf("Reddit message generation failed: %w", err)
	}

	return metrics, nil
}

func (a *Agent) generateLinkedIn(ctx context.Context, metrics *Metrics) error {
	leads, err := a.sheets.Values(ctx, sheets.WorksheetLinkedInLeads)
	if err != nil {
		return err
	}
	if leads.Empty() {
		log.Println("No LinkedIn leads for message generation")
		return nil
	}

	done, err := a.messagedURLs(ctx, sheets.WorksheetLinkedInMsgs)
	if err != nil {
		return err
	}

	count := 0
	for _, record := range leads.Records() {
		if count >= a.config.Messages.MaxLinkedInLeads {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		url := record["Profile URL"]
		if url == "" {
			continue
		}
		if _, exists := done[url]; exists {
			continue
		}

		lead := &models.LinkedInLead{
			Name:        record["Name"],
			JobTitle:    record["Job Title"],
			Industry:    record["Industry"],
			ProfileURL:  url,
			BioSnippet:  record["Bio Snippet"],
			RecentPosts: splitPosts(record["Recent Posts"]),
		}

		message, reasoning, err := a.ai.ComposeLinkedInMessage(ctx, lead)
		if err != nil {
			log.Printf("Warning: failed to compose message for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		row := []string{
			lead.Name,
			lead.JobTitle,
			lead.Industry,
			url,
			message,
			reasoning,
			string(models.StatusPendingReview),
			"", // Response
			time.Now().Format("2006-01-02 15:04:05"),
			"", // Date Sent
		}
		if err := a.sheets.AppendRow(ctx, sheets.WorksheetLinkedInMsgs, row); err != nil {
			log.Printf("Warning: failed to store message for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		metrics.LinkedInGenerated++
		count++

		time.Sleep(time.Second) // pace the model API
	}

	log.Printf("Generated %d LinkedIn messages", count)
	return nil
}

func (a *Agent) generateReddit(ctx context.Context, metrics *Metrics) error {
	leads, err := a.sheets.Values(ctx, sheets.WorksheetRedditLeads)
	if err != nil {
		return err
	}
	if leads.Empty() {
		log.Println("No Reddit leads for message generation")
		return nil
	}

	done, err := a.messagedURLs(ctx, sheets.WorksheetRedditMsgs)
	if err != nil {
		return err
	}

	count := 0
	for _, record := range leads.Records() {
		if count >= a.config.Messages.MaxRedditLeads {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		url := record["Post URL"]
		if url == "" {
			continue
		}
		if _, exists := done[url]; exists {
			continue
		}

		lead := &models.RedditLead{
			Username:        record["Username"],
			PostTitle:       record["Post Title"],
			PostContent:     record["Post Content"],
			Subreddit:       record["Subreddit"],
			PostURL:         url,
			MatchedKeywords: splitKeywords(record["Matched Keywords"]),
		}

		message, reasoning, err := a.ai.ComposeRedditMessage(ctx, lead)
		if err != nil {
			log.Printf("Warning: failed to compose message for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		row := []string{
			lead.Username,
			lead.Subreddit,
			lead.PostTitle,
			url,
			message,
			reasoning,
			string(models.StatusPendingReview),
			"",
			time.Now().Format("2006-01-02 15:04:05"),
			"",
		}
		if err := a.sheets.AppendRow(ctx, sheets.WorksheetRedditMsgs, row); err != nil {
			log.Printf("Warning: failed to store message for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		metrics.RedditGenerated++
		count++

		time.Sleep(time.Second)
	}

	log.Printf("Generated %d Reddit messages", count)
	return nil
}

func (a *Agent) messagedURLs(ctx context.Context, worksheet string) (map[string]struct{}, error) {
	table, err := a.sheets.Values(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	return table.URLSet(table.Col("url")), nil
}

func splitPosts(joined string) []string {
	return splitTrimmed(joined, " | ")
}

func splitKeywords(joined string) []string {
	return splitTrimmed(joined, ",")
}

func splitTrimmed(joined, sep string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(joined, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
