package redditscraper

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/scheduler"
	"leadgen-stack/shared/sheets"
	"leadgen-stack/shared/storage"
)

const maxContentLength = 5000

// Agent scans the configured subreddits for posts matching pain-point
// keywords and records them as leads.
type Agent struct {
	config  *config.Config
	sheets  *sheets.Client
	reddit  *RedditClient
	tracker *storage.LeadTracker
}

type Metrics struct {
	SubredditsScanned int
	PostsSeen         int
	LeadsAdded        int
	Errors            int
}

func (m *Metrics) GetSummary() string {
	return fmt.Sprintf("scanned %d subreddits, %d posts seen, %d new leads (%d errors)",
		m.SubredditsScanned, m.PostsSeen, m.LeadsAdded, m.Errors)
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
		reddit:  NewRedditClient(cfg.Reddit.UserAgent),
		tracker: tracker,
	}
}

func (a *Agent) Name() string {
	return "reddit-scraper"
}

func (a *Agent) Initialize() error {
	return a.sheets.EnsureWorksheet(context.Background(),
		sheets.WorksheetRedditLeads, sheets.RedditLeadHeaders)
}

func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	metrics := &Metrics{}

	existing, err := a.existingURLs(ctx)
	if err != nil {
		return metrics, err
	}

	seen := make(map[string]struct{})

	for _, subreddit := range a.config.Reddit.Subreddits {
		if err := ctx.Err(); err != nil {
			return metrics, err
		}

		posts, err := a.reddit.TopPosts(ctx, subreddit, a.config.Reddit.TimeFilter, a.config.Reddit.PostLimit)
		if err != nil {
			log.Printf("Warning: failed to fetch r/%s: %v", subreddit, err)
			metrics.Errors++
			continue
		}
		metrics.SubredditsScanned++
		metrics.PostsSeen += len(posts)

		a.collect(ctx, posts, "", existing, seen, metrics)

		// Keyword searches catch posts that never reach the top listing
		for _, keyword := range a.config.Reddit.Keywords {
			results, err := a.reddit.Search(ctx, subreddit, keyword, a.config.Reddit.TimeFilter, 25)
			if err != nil {
				log.Printf("Warning: search for %q in r/%s failed: %v", keyword, subreddit, err)
				metrics.Errors++
				continue
			}
			metrics.PostsSeen += len(results)
			a.collect(ctx, results, keyword, existing, seen, metrics)

			time.Sleep(time.Second) // stay under Reddit's unauthenticated rate limit
		}
	}

	log.Printf("Reddit scan complete: %s", metrics.GetSummary())
	return metrics, nil
}

// collect appends new posts as lead rows. Top-listing posts (query "")
// are filtered by keyword match; search results already matched the
// query server-side and are kept as-is, tagged with that keyword.
func (a *Agent) collect(ctx context.Context, posts []Post, query string, existing, seen map[string]struct{}, metrics *Metrics) {
	for i := range posts {
		post := &posts[i]
		postURL := post.URL()

		if _, dup := seen[postURL]; dup {
			continue
		}
		if _, dup := existing[postURL]; dup {
			continue
		}
		if a.tracker.IsSeen(postURL) {
			continue
		}

		matched := keywordTags(post, a.config.Reddit.Keywords, query)
		if len(matched) == 0 {
			continue
		}

		content := post.Content
		if len(content) > maxContentLength {
			content = content[:maxContentLength] + "..."
		}

		row := []string{
			post.Author,
			post.Title,
			content,
			post.Subreddit,
			postURL,
			strings.Join(matched, ", "),
			strconv.Itoa(post.Score),
			strconv.Itoa(post.CommentCount),
			post.CreatedUTC.Format("2006-01-02 15:04:05"),
			time.Now().Format("2006-01-02 15:04:05"),
		}

		if err := a.sheets.AppendRow(ctx, sheets.WorksheetRedditLeads, row); err != nil {
			log.Printf("Warning: failed to append Reddit lead %s: %v", postURL, err)
			metrics.Errors++
			continue
		}

		seen[postURL] = struct{}{}
		if err := a.tracker.MarkSeen(postURL); err != nil {
			log.Printf("Warning: failed to track %s: %v", postURL, err)
		}
		metrics.LeadsAdded++
	}
}

func (a *Agent) existingURLs(ctx context.Context) (map[string]struct{}, error) {
	table, err := a.sheets.Values(ctx, sheets.WorksheetRedditLeads)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing Reddit leads: %w", err)
	}
	return table.URLSet(table.Col("post", "url")), nil
}
