package emailreporter

import (
	"context"
	"fmt"
	"log"
	"time"

	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/email"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
)

// Agent sends the daily HTML digest: new leads, scores, drafted
// messages, replies, and 30-day engagement numbers.
type Agent struct {
	config *config.Config
	sheets *sheets.Client
	sender *email.Sender
}

type Metrics struct {
	NewLeads   int
	Responses  int
	EmailsSent int
}

func (m *Metrics) GetSummary() string {
	return fmt.Sprintf("digest covered %d new leads and %d responses (%d email sent)",
		m.NewLeads, m.Responses, m.EmailsSent)
}

func (m *Metrics) GetCounters() activity.Counters {
	return activity.Counters{
		EmailsSent: m.EmailsSent,
	}
}

func New(cfg *config.Config, sheetsClient *sheets.Client, sender *email.Sender) *Agent {
	return &Agent{
		config: cfg,
		sheets: sheetsClient,
		sender: sender,
	}
}

func (a *Agent) Name() string {
	return "email-reporter"
}

func (a *Agent) Initialize() error {
	return nil
}

func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	metrics := &Metrics{}
	now := time.Now()

	report, err := a.buildReport(ctx, now)
	if err != nil {
		return metrics, fmt.Errorf("failed to build digest: %w", err)
	}
	metrics.NewLeads = len(report.NewLinkedIn) + len(report.NewReddit)
	metrics.Responses = len(report.Responses)

	body, err := a.renderDigest(report)
	if err != nil {
		return metrics, fmt.Errorf("failed to render digest: %w", err)
	}

	subject := fmt.Sprintf("Lead Generation Daily Report - %s", now.Format("2006-01-02"))
	if err := a.sender.SendHTML(subject, body); err != nil {
		return metrics, fmt.Errorf("failed to send digest: %w", err)
	}
	metrics.EmailsSent++

	log.Printf("Sent daily digest: %s", metrics.GetSummary())
	return metrics, nil
}
