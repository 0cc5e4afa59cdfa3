package linkedinscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"leadgen-stack/internal/models"
	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
	"leadgen-stack/shared/storage"
)

const maxCellLength = 500

// Agent runs people searches for each industry and role combination,
// enriches a handful of profiles per search, and appends new leads.
type Agent struct {
	config  *config.Config
	sheets  *sheets.Client
	scraper *Scraper
	tracker *storage.LeadTracker
}

type Metrics struct {
	SearchesRun   int
	ProfilesFound int
	LeadsAdded    int
	Errors        int
}

func (m *Metrics) GetSummary() string {
	return fmt.Sprintf("%d searches, %d profiles found, %d new leads (%d errors)",
		m.SearchesRun, m.ProfilesFound, m.LeadsAdded, m.Errors)
}

func (m *Metrics) GetCounters() activity.Counters {
	return activity.Counters{
		LeadsScraped: m.LeadsAdded,
		Errors:       m.Errors,
	}
}

func New(cfg *config.Config, sheetsClient *sheets.Client, tracker *storage.LeadTracker) *Agent {
	return &Agent{
		config:  cfg,
		sheets:  sheetsClient,
		scraper: NewScraper(cfg.LinkedIn.SessionCookie),
		tracker: tracker,
	}
}

func (a *Agent) Name() string {
	return "linkedin-scraper"
}

func (a *Agent) Initialize() error {
	if a.config.LinkedIn.SessionCookie == "" {
		return fmt.Errorf("LinkedIn session cookie is required (set LINKEDIN_SESSION_COOKIE)")
	}
	return a.sheets.EnsureWorksheet(context.Background(),
		sheets.WorksheetLinkedInLeads, sheets.LinkedInLeadHeaders)
}

func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	metrics := &Metrics{}

	existing, err := a.existingURLs(ctx)
	if err != nil {
		return metrics, err
	}

	total := 0
	for _, industry := range a.config.LinkedIn.Industries {
		for _, role := range a.config.LinkedIn.Roles {
			if err := ctx.Err(); err != nil {
				return metrics, err
			}
			if total >= a.config.LinkedIn.MaxLeads {
				log.Printf("Reached lead cap of %d, stopping", a.config.LinkedIn.MaxLeads)
				return metrics, nil
			}

			added, err := a.runSearch(ctx, industry, role, existing, metrics)
			if err != nil {
				log.Printf("Warning: search %q %q failed: %v", role, industry, err)
				metrics.Errors++
				continue
			}
			total += added

			jitterSleep(2 * time.Second)
		}
	}

	log.Printf("LinkedIn scan complete: %s", metrics.GetSummary())
	return metrics, nil
}

func (a *Agent) runSearch(ctx context.Context, industry, role string, existing map[string]struct{}, metrics *Metrics) (int, error) {
	query := fmt.Sprintf("%s %s", role, industry)

	var candidates []SearchResult
	for page := 1; page <= a.config.LinkedIn.MaxPages; page++ {
		results, err := a.scraper.SearchPeople(ctx, query, page)
		if err != nil {
			return 0, err
		}
		metrics.SearchesRun++
		metrics.ProfilesFound += len(results)
		candidates = append(candidates, results...)

		if len(results) == 0 {
			break
		}
		jitterSleep(time.Second)
	}

	added := 0
	for i := range candidates {
		if added >= a.config.LinkedIn.EnrichPerSearch {
			break
		}

		result := &candidates[i]
		if result.ProfileURL == "" {
			continue
		}
		if _, dup := existing[result.ProfileURL]; dup {
			continue
		}
		if a.tracker.IsSeen(result.ProfileURL) {
			continue
		}

		lead := &models.LinkedInLead{
			Name:         result.Name,
			JobTitle:     result.Headline,
			Industry:     industry,
			SearchedRole: role,
			ProfileURL:   result.ProfileURL,
			DateAdded:    time.Now().Format("2006-01-02 15:04:05"),
		}

		profile, err := a.scraper.EnrichProfile(ctx, result.ProfileURL)
		if err != nil {
			log.Printf("Warning: failed to enrich %s: %v", result.ProfileURL, err)
			metrics.Errors++
		} else {
			lead.BioSnippet = profile.BioSnippet
			lead.RecentPosts = profile.RecentPosts
			lead.ContactInfo = profile.ContactInfo
		}

		if err := a.appendLead(ctx, lead); err != nil {
			log.Printf("Warning: failed to append lead %s: %v", result.ProfileURL, err)
			metrics.Errors++
			continue
		}

		existing[result.ProfileURL] = struct{}{}
		if err := a.tracker.MarkSeen(result.ProfileURL); err != nil {
			log.Printf("Warning: failed to track %s: %v", result.ProfileURL, err)
		}

		metrics.LeadsAdded++
		added++
		jitterSleep(time.Second)
	}

	return added, nil
}

func (a *Agent) appendLead(ctx context.Context, lead *models.LinkedInLead) error {
	contactJSON := ""
	if len(lead.ContactInfo) > 0 {
		if data, err := json.Marshal(lead.ContactInfo); err == nil {
			contactJSON = string(data)
		}
	}

	row := []string{
		truncateCell(lead.Name),
		truncateCell(lead.JobTitle),
		lead.Industry,
		lead.ProfileURL,
		truncateCell(lead.BioSnippet),
		truncateCell(strings.Join(lead.RecentPosts, " | ")),
		contactJSON,
		lead.DateAdded,
	}

	return a.sheets.AppendRow(ctx, sheets.WorksheetLinkedInLeads, row)
}

func (a *Agent) existingURLs(ctx context.Context) (map[string]struct{}, error) {
	table, err := a.sheets.Values(ctx, sheets.WorksheetLinkedInLeads)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing leads: %w", err)
	}
	return table.URLSet(table.Col("profile", "url")), nil
}

func truncateCell(s string) string {
	if len(s) <= maxCellLength {
		return s
	}
	return s[:maxCellLength] + "..."
}
