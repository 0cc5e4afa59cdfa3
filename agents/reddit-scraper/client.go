package redditscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const redditBaseURL = "https://www.reddit.com"

// Post is one Reddit submission from a listing.
type Post struct {
	ID           string
	Title        string
	Content      string
	Author       string
	Subreddit    string
	Permalink    string
	Score        int
	CommentCount int
	CreatedUTC   time.Time
}

// URL returns the full reddit.com link for the post.
func (p *Post) URL() string {
	return redditBaseURL + p.Permalink
}

// listing mirrors the wire shape of Reddit's public JSON API.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Author      string  `json:"author"`
				Subreddit   string  `json:"subreddit"`
				Permalink   string  `json:"permalink"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditClient reads public listings from Reddit's JSON API. No OAuth is
// required for read-only access, but a descriptive User-Agent is.
type RedditClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewRedditClient(userAgent string) *RedditClient {
	return &RedditClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  userAgent,
	}
}

// TopPosts fetches the top posts of a subreddit for the given time
// filter (hour, day, week, month, year, all).
func (c *RedditClient) TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/top.json", redditBaseURL, url.PathEscape(subreddit))
	params := url.Values{
		"t":     {timeFilter},
		"limit": {strconv.Itoa(limit)},
	}
	return c.fetchListing(ctx, endpoint+"?"+params.Encode())
}

// Search queries a subreddit for posts matching the keyword, newest
// first, restricted to that subreddit.
func (c *RedditClient) Search(ctx context.Context, subreddit, keyword, timeFilter string, limit int) ([]Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search.json", redditBaseURL, url.PathEscape(subreddit))
	params := url.Values{
		"q":           {keyword},
		"restrict_sr": {"1"},
		"sort":        {"new"},
		"t":           {timeFilter},
		"limit":       {strconv.Itoa(limit)},
	}
	return c.fetchListing(ctx, endpoint+"?"+params.Encode())
}

func (c *RedditClient) fetchListing(ctx context.Context, fullURL string) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited by Reddit (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, fullURL)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	return parseListing(&l), nil
}

func parseListing(l *listing) []Post {
	posts := make([]Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		d := child.Data
		author := d.Author
		if author == "" {
			author = "[deleted]"
		}
		posts = append(posts, Post{
			ID:           d.ID,
			Title:        d.Title,
			Content:      d.Selftext,
			Author:       author,
			Subreddit:    d.Subreddit,
			Permalink:    d.Permalink,
			Score:        d.Score,
			CommentCount: d.NumComments,
			CreatedUTC:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	return posts
}

// keywordTags returns the keywords to record for a post. Search hits
// are tagged with the query itself, trusting Reddit's relevance match
// even when the term never appears literally in title or body.
func keywordTags(post *Post, keywords []string, query string) []string {
	if query != "" {
		return []string{query}
	}
	return MatchKeywords(post, keywords)
}

// MatchKeywords returns the configured keywords found in the post's
// title or body, case-insensitively.
func MatchKeywords(post *Post, keywords []string) []string {
	text := strings.ToLower(post.Title + " " + post.Content)

	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
