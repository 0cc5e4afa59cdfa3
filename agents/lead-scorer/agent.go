package leadscorer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"leadgen-stack/internal/models"
	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/ai"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
)

// Agent scores unscored leads from both platforms and writes the
// breakdown to the score worksheets.
type Agent struct {
	config *config.Config
	sheets *sheets.Client
	ai     *ai.Client
}

type Metrics struct {
	LinkedInScored int
	RedditScored   int
	HighPriority   int
	AIAnalyses     int
	Errors         int
}

func (m *Metrics) GetSummary() string {
	return fmt.Sprintf("scored %d LinkedIn and %d Reddit leads (%d high priority, %d AI analyses, %d errors)",
		m.LinkedInScored, m.RedditScored, m.HighPriority, m.AIAnalyses, m.Errors)
}

func (m *Metrics) GetCounters() activity.Counters {
	return activity.Counters{
		LeadsScored:       m.LinkedInScored + m.RedditScored,
		HighPriorityLeads: m.HighPriority,
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
	return "lead-scorer"
}

func (a *Agent) Initialize() error {
	ctx := context.Background()
	if err := a.sheets.EnsureWorksheet(ctx, sheets.WorksheetLinkedInScores, sheets.LinkedInScoreHeaders); err != nil {
		return err
	}
	return a.sheets.EnsureWorksheet(ctx, sheets.WorksheetRedditScores, sheets.RedditScoreHeaders)
}

func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	metrics := &Metrics{}

	if err := a.scoreLinkedIn(ctx, metrics); err != nil {
		return metrics, fmt.Errorf("LinkedIn scoring failed: %w", err)
	}
	if err := a.scoreReddit(ctx, metrics); err != nil {
		return metrics, fmt.Errorf("Reddit scoring failed: %w", err)
	}

	if err := a.applyManualAdjustments(ctx); err != nil {
		// Manual adjustments are a convenience pass; log and move on
		log.Printf("Warning: manual adjustment pass failed: %v", err)
		metrics.Errors++
	}

	return metrics, nil
}

func (a *Agent) scoreLinkedIn(ctx context.Context, metrics *Metrics) error {
	leads, err := a.sheets.Values(ctx, sheets.WorksheetLinkedInLeads)
	if err != nil {
		return err
	}
	if leads.Empty() {
		log.Println("No LinkedIn leads to score")
		return nil
	}

	scored, err := a.scoredURLs(ctx, sheets.WorksheetLinkedInScores)
	if err != nil {
		return err
	}

	now := time.Now()
	count := 0
	for _, record := range leads.Records() {
		if count >= a.config.Scorer.MaxLinkedInLeads {
			break
		}

		url := record["Profile URL"]
		if url == "" {
			continue
		}
		if _, done := scored[url]; done {
			continue
		}

		input := linkedinScoreInput(record)
		score := ScoreLead(input, now)

		a.maybeAnalyze(ctx, score, input.Text, metrics)

		row := []string{
			record["Name"],
			record["Job Title"],
			record["Industry"],
			url,
			formatScore(score.RuleBased),
			string(score.Priority),
			strings.Join(score.Keywords.HighUrgency, ", "),
			strings.Join(score.Keywords.MediumUrgency, ", "),
			strings.Join(score.Keywords.LowUrgency, ", "),
			strconv.Itoa(score.QuestionCount),
			aiReasoning(score),
			"", // Manual Adjustment, filled in by hand
			formatScore(score.FinalScore),
			"", // Notes
			now.Format("2006-01-02 15:04:05"),
		}
		if err := a.sheets.AppendRow(ctx, sheets.WorksheetLinkedInScores, row); err != nil {
			log.Printf("Warning: failed to write score for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		metrics.LinkedInScored++
		count++
		if score.Priority == models.PriorityHigh {
			metrics.HighPriority++
		}
	}

	log.Printf("Scored %d LinkedIn leads", count)
	return nil
}

func (a *Agent) scoreReddit(ctx context.Context, metrics *Metrics) error {
	leads, err := a.sheets.Values(ctx, sheets.WorksheetRedditLeads)
	if err != nil {
		return err
	}
	if leads.Empty() {
		log.Println("No Reddit leads to score")
		return nil
	}

	scored, err := a.scoredURLs(ctx, sheets.WorksheetRedditScores)
	if err != nil {
		return err
	}

	now := time.Now()
	count := 0
	for _, record := range leads.Records() {
		if count >= a.config.Scorer.MaxRedditLeads {
			break
		}

		url := record["Post URL"]
		if url == "" {
			continue
		}
		if _, done := scored[url]; done {
			continue
		}

		input := redditScoreInput(record)
		score := ScoreLead(input, now)

		a.maybeAnalyze(ctx, score, input.Text, metrics)

		row := []string{
			record["Username"],
			record["Subreddit"],
			record["Post Title"],
			url,
			formatScore(score.RuleBased),
			string(score.Priority),
			strings.Join(score.Keywords.HighUrgency, ", "),
			strings.Join(score.Keywords.MediumUrgency, ", "),
			strings.Join(score.Keywords.LowUrgency, ", "),
			strconv.Itoa(score.QuestionCount),
			aiReasoning(score),
			"",
			formatScore(score.FinalScore),
			"",
			now.Format("2006-01-02 15:04:05"),
		}
		if err := a.sheets.AppendRow(ctx, sheets.WorksheetRedditScores, row); err != nil {
			log.Printf("Warning: failed to write score for %s: %v", url, err)
			metrics.Errors++
			continue
		}

		metrics.RedditScored++
		count++
		if score.Priority == models.PriorityHigh {
			metrics.HighPriority++
		}
	}

	log.Printf("Scored %d Reddit leads", count)
	return nil
}

// maybeAnalyze blends in a model score when AI analysis is enabled.
// Analysis failures degrade to the rule-based score alone.
func (a *Agent) maybeAnalyze(ctx context.Context, score *models.LeadScore, text string, metrics *Metrics) {
	if !a.config.Scorer.UseAIAnalysis || a.ai == nil {
		return
	}

	analysis, err := a.ai.AnalyzeLead(ctx, text)
	if err != nil {
		log.Printf("Warning: AI analysis failed for %s: %v", score.URL, err)
		metrics.Errors++
		return
	}

	ApplyAIScore(score, analysis)
	metrics.AIAnalyses++
}

// applyManualAdjustments scans the score worksheets for rows where a
// reviewer entered a manual adjustment and rewrites the final score and
// priority to match it.
func (a *Agent) applyManualAdjustments(ctx context.Context) error {
	for _, worksheet := range []string{sheets.WorksheetLinkedInScores, sheets.WorksheetRedditScores} {
		table, err := a.sheets.Values(ctx, worksheet)
		if err != nil {
			return err
		}
		if table.Empty() {
			continue
		}

		adjustCol := table.Col("manual", "adjustment")
		finalCol := table.Col("final", "score")
		priorityCol := table.Col("priority")
		if adjustCol == -1 || finalCol == -1 || priorityCol == -1 {
			continue
		}

		for i, row := range table.Rows {
			adjustment := strings.TrimSpace(table.Cell(row, adjustCol))
			if adjustment == "" {
				continue
			}

			value, err := strconv.ParseFloat(adjustment, 64)
			if err != nil {
				continue
			}
			value = clampScore(value)

			current := strings.TrimSpace(table.Cell(row, finalCol))
			if current == formatScore(value) {
				continue
			}

			// Sheet rows are 1-based and row 1 is the header
			sheetRow := i + 2
			if err := a.sheets.UpdateCell(ctx, worksheet, sheetRow, finalCol+1, formatScore(value)); err != nil {
				return err
			}
			if err := a.sheets.UpdateCell(ctx, worksheet, sheetRow, priorityCol+1, string(priorityFor(value))); err != nil {
				return err
			}
			log.Printf("Applied manual adjustment %.1f to %s row %d", value, worksheet, sheetRow)
		}
	}
	return nil
}

func (a *Agent) scoredURLs(ctx context.Context, worksheet string) (map[string]struct{}, error) {
	table, err := a.sheets.Values(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	idx := table.Col("url")
	if idx == -1 {
		return map[string]struct{}{}, nil
	}
	return table.URLSet(idx), nil
}

// linkedinScoreInput maps a Leads worksheet record to a scoring input.
func linkedinScoreInput(record map[string]string) ScoreInput {
	lead := &models.LinkedInLead{
		BioSnippet:  record["Bio Snippet"],
		RecentPosts: splitPosts(record["Recent Posts"]),
	}
	return ScoreInput{
		URL:      record["Profile URL"],
		Text:     lead.CombinedText(),
		Platform: models.PlatformLinkedIn,
		Date:     record["Date Added"],
	}
}

// redditScoreInput maps a RedditLeads worksheet record to a scoring
// input. Recency keys off the post's age, not when it was scraped.
func redditScoreInput(record map[string]string) ScoreInput {
	lead := &models.RedditLead{
		PostTitle:   record["Post Title"],
		PostContent: record["Post Content"],
	}
	postScore, _ := strconv.Atoi(record["Score"])
	return ScoreInput{
		URL:       record["Post URL"],
		Text:      lead.CombinedText(),
		Platform:  models.PlatformReddit,
		Date:      record["Created UTC"],
		PostScore: postScore,
	}
}

func splitPosts(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, " | ")
	var posts []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			posts = append(posts, part)
		}
	}
	return posts
}

func aiReasoning(score *models.LeadScore) string {
	if score.AI == nil {
		return ""
	}
	return score.AI.Reasoning
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
