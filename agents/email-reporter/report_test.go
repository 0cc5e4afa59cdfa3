package emailreporter

import (
	"strings"
	"testing"
	"time"

	"leadgen-stack/internal/models"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/sheets"
)

func messageTable() *sheets.Table {
	return &sheets.Table{
		Headers: []string{
			"Name", "Job Title", "Industry", "Profile URL",
			"Generated Message", "Reasoning", "Status", "Response",
			"Date Generated", "Date Sent",
		},
		Rows: [][]string{
			// Status casing varies because reviewers type it by hand
			{"Jane Doe", "Founder", "Tech", "https://linkedin.com/in/jane",
				"Hi Jane, loved your post.", "Personal hook", "responded",
				"Thanks for reaching out!", "2026-03-01 09:00:00", "2026-03-02 10:00:00"},
			{"Sam Lee", "CEO", "Finance", "https://linkedin.com/in/sam",
				"Hi Sam.", "Direct", "Sent", "", "2026-03-05 09:00:00", "2026-03-06 10:00:00"},
			{"Old Contact", "Partner", "Law", "https://linkedin.com/in/old",
				"Hello.", "Old", "Responded", "Sure.", "2025-01-01 09:00:00", "2025-01-02 10:00:00"},
			{"Pending Person", "COO", "Tech", "https://linkedin.com/in/pending",
				"Draft text.", "Draft", "Pending Review", "", "2026-03-07 09:00:00", ""},
			{"Marked Sent", "VP", "Retail", "https://linkedin.com/in/marked",
				"Hi there.", "Short", "Sent", "", "2026-03-08 09:00:00", ""},
		},
	}
}

func TestMessageMap(t *testing.T) {
	messages := messageMap(messageTable())

	if len(messages) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(messages))
	}
	if messages["https://linkedin.com/in/jane"] != "Hi Jane, loved your post." {
		t.Errorf("Unexpected message: %q", messages["https://linkedin.com/in/jane"])
	}
}

func TestCollectResponses(t *testing.T) {
	responses := collectResponses(messageTable(), "LinkedIn", "2026-02-01")

	if len(responses) != 1 {
		t.Fatalf("Expected 1 response within cutoff, got %d", len(responses))
	}
	// Jane's lowercase "responded" status still counts
	if responses[0].Name != "Jane Doe" {
		t.Errorf("Expected Jane Doe, got %s", responses[0].Name)
	}
	if responses[0].Response != "Thanks for reaching out!" {
		t.Errorf("Unexpected response text: %q", responses[0].Response)
	}
}

func TestBuildMetrics(t *testing.T) {
	leads := &sheets.Table{
		Headers: []string{"Name", "Profile URL", "Date Added"},
		Rows: [][]string{
			{"Jane", "https://linkedin.com/in/jane", "2026-03-01 09:00:00"},
			{"Old", "https://linkedin.com/in/old", "2025-06-01 09:00:00"},
		},
	}
	redditLeads := &sheets.Table{
		Headers: []string{"Username", "Post URL", "Date Added"},
		Rows: [][]string{
			{"tired_dev", "https://reddit.com/r/jobs/comments/abc", "2026-03-03 09:00:00"},
		},
	}

	msgs := messageTable()
	empty := &sheets.Table{Headers: msgs.Headers}

	scores := map[string]float64{
		"https://linkedin.com/in/jane": 8.2,
		"https://linkedin.com/in/sam":  5.1,
	}
	redditScores := map[string]float64{
		"https://reddit.com/r/jobs/comments/abc": 7.0,
	}

	metrics := buildMetrics(leads, redditLeads, msgs, empty, scores, redditScores, "2026-02-15")

	if metrics.TotalLeads != 2 {
		t.Errorf("Expected 2 leads within cutoff, got %d", metrics.TotalLeads)
	}
	if metrics.LinkedInLeads != 1 || metrics.RedditLeads != 1 {
		t.Errorf("Expected 1+1 platform split, got %d+%d", metrics.LinkedInLeads, metrics.RedditLeads)
	}
	// Jane (responded, sent 2026-03-02) and Sam (Sent, 2026-03-06) count;
	// the 2025 response is outside the window and the row with no Date
	// Sent was never actually sent
	if metrics.MessagesSent != 2 {
		t.Errorf("Expected 2 messages sent, got %d", metrics.MessagesSent)
	}
	if metrics.RepliesReceived != 1 {
		t.Errorf("Expected 1 reply, got %d", metrics.RepliesReceived)
	}
	if metrics.ResponseRate != 50.0 {
		t.Errorf("Expected 50%% response rate, got %.1f", metrics.ResponseRate)
	}
	if metrics.HighPriorityLeads != 2 {
		t.Errorf("Expected 2 high priority leads (8.2 and 7.0), got %d", metrics.HighPriorityLeads)
	}
}

func TestRenderDigest(t *testing.T) {
	agent := &Agent{
		config: &config.Config{
			Report: config.ReportConfig{TemplateFile: "email_template.html"},
		},
	}

	report := &models.DigestReport{
		Date:         time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		LookbackDays: 1,
		ResponseDays: 7,
		NewLinkedIn: []models.LeadSummary{
			{
				Platform: models.PlatformLinkedIn,
				Name:     "Jane Doe",
				Headline: "Founder at Acme",
				URL:      "https://linkedin.com/in/jane",
				Score:    8.2,
				HasScore: true,
				Message:  "Hi Jane, loved your post.",
			},
		},
		Responses: []models.ResponseEntry{
			{Platform: "LinkedIn", Name: "Jane Doe", Response: "Thanks!", Date: "2026-03-14 10:00:00"},
		},
		Metrics: models.EngagementMetrics{
			TotalLeads:        5,
			LinkedInLeads:     3,
			RedditLeads:       2,
			MessagesSent:      4,
			RepliesReceived:   1,
			ResponseRate:      25.0,
			HighPriorityLeads: 2,
		},
	}

	body, err := agent.renderDigest(report)
	if err != nil {
		t.Fatalf("Failed to render digest: %v", err)
	}

	for _, want := range []string{
		"March 15, 2026",
		"Jane Doe",
		"Founder at Acme",
		"8.2",
		"25.0%",
		"Thanks!",
		"No new Reddit leads",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Rendered digest missing %q", want)
		}
	}
}
