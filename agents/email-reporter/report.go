package emailreporter

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"strings"
	"time"

	"leadgen-stack/internal/models"
	"leadgen-stack/shared/sheets"
)

// buildReport assembles the digest by re-scanning the spreadsheet. Dates
// in the sheet are "YYYY-MM-DD HH:MM:SS" strings, so cutoff comparisons
// are plain lexical prefix compares.
func (a *Agent) buildReport(ctx context.Context, now time.Time) (*models.DigestReport, error) {
	report := &models.DigestReport{
		Date:         now,
		LookbackDays: a.config.Report.DaysBack,
		ResponseDays: a.config.Report.ResponseDays,
	}

	leadCutoff := now.AddDate(0, 0, -a.config.Report.DaysBack).Format("2006-01-02")
	responseCutoff := now.AddDate(0, 0, -a.config.Report.ResponseDays).Format("2006-01-02")
	metricsCutoff := now.AddDate(0, 0, -30).Format("2006-01-02")

	linkedinScores, err := a.scoreMap(ctx, sheets.WorksheetLinkedInScores)
	if err != nil {
		return nil, err
	}
	redditScores, err := a.scoreMap(ctx, sheets.WorksheetRedditScores)
	if err != nil {
		return nil, err
	}
	linkedinMsgs, err := a.sheets.Values(ctx, sheets.WorksheetLinkedInMsgs)
	if err != nil {
		return nil, err
	}
	redditMsgs, err := a.sheets.Values(ctx, sheets.WorksheetRedditMsgs)
	if err != nil {
		return nil, err
	}
	linkedinMessages := messageMap(linkedinMsgs)
	redditMessages := messageMap(redditMsgs)

	linkedinLeads, err := a.sheets.Values(ctx, sheets.WorksheetLinkedInLeads)
	if err != nil {
		return nil, err
	}
	for _, record := range linkedinLeads.Records() {
		if record["Date Added"] < leadCutoff {
			continue
		}
		url := record["Profile URL"]
		summary := models.LeadSummary{
			Platform: models.PlatformLinkedIn,
			Name:     record["Name"],
			Headline: record["Job Title"],
			URL:      url,
			Message:  linkedinMessages[url],
		}
		if score, ok := linkedinScores[url]; ok {
			summary.Score = score
			summary.HasScore = true
		}
		report.NewLinkedIn = append(report.NewLinkedIn, summary)
	}

	redditLeads, err := a.sheets.Values(ctx, sheets.WorksheetRedditLeads)
	if err != nil {
		return nil, err
	}
	for _, record := range redditLeads.Records() {
		if record["Date Added"] < leadCutoff {
			continue
		}
		url := record["Post URL"]
		summary := models.LeadSummary{
			Platform: models.PlatformReddit,
			Name:     record["Username"],
			Headline: record["Post Title"],
			URL:      url,
			Message:  redditMessages[url],
		}
		if score, ok := redditScores[url]; ok {
			summary.Score = score
			summary.HasScore = true
		}
		report.NewReddit = append(report.NewReddit, summary)
	}

	report.Responses = append(
		collectResponses(linkedinMsgs, "LinkedIn", responseCutoff),
		collectResponses(redditMsgs, "Reddit", responseCutoff)...)

	report.Metrics = buildMetrics(
		linkedinLeads, redditLeads, linkedinMsgs, redditMsgs,
		linkedinScores, redditScores, metricsCutoff)

	return report, nil
}

// scoreMap maps lead URLs to their blended final scores.
func (a *Agent) scoreMap(ctx context.Context, worksheet string) (map[string]float64, error) {
	table, err := a.sheets.Values(ctx, worksheet)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	urlCol := table.Col("url")
	finalCol := table.Col("final", "score")
	if urlCol == -1 || finalCol == -1 {
		return scores, nil
	}

	for _, row := range table.Rows {
		url := table.Cell(row, urlCol)
		if url == "" {
			continue
		}
		if score, err := strconv.ParseFloat(table.Cell(row, finalCol), 64); err == nil {
			scores[url] = score
		}
	}
	return scores, nil
}

// messageMap maps lead URLs to their generated outreach messages.
func messageMap(table *sheets.Table) map[string]string {
	messages := make(map[string]string)
	urlCol := table.Col("url")
	msgCol := table.Col("message")
	if urlCol == -1 || msgCol == -1 {
		return messages
	}
	for _, row := range table.Rows {
		if url := table.Cell(row, urlCol); url != "" {
			messages[url] = table.Cell(row, msgCol)
		}
	}
	return messages
}

// collectResponses finds replies to messages sent since the cutoff.
func collectResponses(table *sheets.Table, platform, cutoff string) []models.ResponseEntry {
	statusCol := table.Col("status")
	responseCol := table.Col("response")
	sentCol := table.Col("date", "sent")
	nameCol := table.Col("name")
	if nameCol == -1 {
		nameCol = table.Col("username")
	}
	if statusCol == -1 || responseCol == -1 {
		return nil
	}

	var responses []models.ResponseEntry
	for _, row := range table.Rows {
		// Statuses are typed by hand in the sheet, so compare loosely
		if !strings.EqualFold(table.Cell(row, statusCol), string(models.StatusResponded)) {
			continue
		}
		response := table.Cell(row, responseCol)
		if response == "" {
			continue
		}
		// A row never sent has no business in the response list
		sent := table.Cell(row, sentCol)
		if sent == "" || sent < cutoff {
			continue
		}
		responses = append(responses, models.ResponseEntry{
			Platform: platform,
			Name:     table.Cell(row, nameCol),
			Response: response,
			Date:     sent,
		})
	}
	return responses
}

// buildMetrics recomputes engagement numbers over the last 30 days.
func buildMetrics(linkedinLeads, redditLeads, linkedinMsgs, redditMsgs *sheets.Table,
	linkedinScores, redditScores map[string]float64, cutoff string) models.EngagementMetrics {

	metrics := models.EngagementMetrics{}

	countLeads := func(table *sheets.Table) int {
		dateCol := table.Col("date", "added")
		count := 0
		for _, row := range table.Rows {
			if table.Cell(row, dateCol) >= cutoff {
				count++
			}
		}
		return count
	}
	metrics.LinkedInLeads = countLeads(linkedinLeads)
	metrics.RedditLeads = countLeads(redditLeads)
	metrics.TotalLeads = metrics.LinkedInLeads + metrics.RedditLeads

	countMessages := func(table *sheets.Table) {
		statusCol := table.Col("status")
		sentCol := table.Col("date", "sent")
		for _, row := range table.Rows {
			status := table.Cell(row, statusCol)
			responded := strings.EqualFold(status, string(models.StatusResponded))
			if !responded && !strings.EqualFold(status, string(models.StatusSent)) {
				continue
			}
			sent := table.Cell(row, sentCol)
			if sent == "" || sent < cutoff {
				continue
			}
			metrics.MessagesSent++
			if responded {
				metrics.RepliesReceived++
			}
		}
	}
	countMessages(linkedinMsgs)
	countMessages(redditMsgs)

	if metrics.MessagesSent > 0 {
		metrics.ResponseRate = float64(metrics.RepliesReceived) / float64(metrics.MessagesSent) * 100
	}

	for _, score := range linkedinScores {
		if score >= 7 {
			metrics.HighPriorityLeads++
		}
	}
	for _, score := range redditScores {
		if score >= 7 {
			metrics.HighPriorityLeads++
		}
	}

	return metrics
}

// renderDigest fills the HTML template with the report.
func (a *Agent) renderDigest(report *models.DigestReport) (string, error) {
	tmplBytes, err := os.ReadFile(a.config.Report.TemplateFile)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	tmpl, err := template.New("digest").Parse(string(tmplBytes))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}
