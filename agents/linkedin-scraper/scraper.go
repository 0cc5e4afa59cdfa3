package linkedinscraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const linkedinBaseURL = "https://www.linkedin.com"

var emailExpr = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// SearchResult is one person card from a people search page.
type SearchResult struct {
	Name       string
	Headline   string
	ProfileURL string
}

// Profile holds the enrichment data pulled from a profile page.
type Profile struct {
	BioSnippet  string
	RecentPosts []string
	ContactInfo map[string]string
}

// Scraper reads LinkedIn pages over plain HTTP using an authenticated
// session cookie. LinkedIn renders enough server-side markup for search
// cards and profile summaries to be parsed without a browser.
type Scraper struct {
	client *http.Client
	cookie string
}

func NewScraper(sessionCookie string) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 30 * time.Second},
		cookie: sessionCookie,
	}
}

// SearchPeople fetches one page of people search results for the query.
// Pages are 1-based.
func (s *Scraper) SearchPeople(ctx context.Context, query string, page int) ([]SearchResult, error) {
	params := url.Values{
		"keywords": {query},
		"page":     {strconv.Itoa(page)},
	}
	searchURL := linkedinBaseURL + "/search/results/people/?" + params.Encode()

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("people search %q page %d: %w", query, page, err)
	}

	return parseSearchResults(doc), nil
}

// EnrichProfile fetches a profile page and extracts the bio snippet,
// recent post texts, and any visible contact email.
func (s *Scraper) EnrichProfile(ctx context.Context, profileURL string) (*Profile, error) {
	doc, err := s.fetchDocument(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profileURL, err)
	}

	profile := parseProfile(doc)

	// Recent activity lives on a separate page; failures there are not
	// worth losing the lead over.
	activityURL := strings.TrimSuffix(profileURL, "/") + "/recent-activity/all/"
	if activityDoc, err := s.fetchDocument(ctx, activityURL); err == nil {
		profile.RecentPosts = parseRecentPosts(activityDoc)
	}

	return profile, nil
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.AddCookie(&http.Cookie{Name: "li_at", Value: s.cookie})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("session cookie rejected (status %d), refresh LINKEDIN_SESSION_COOKIE", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func parseSearchResults(doc *goquery.Document) []SearchResult {
	var results []SearchResult

	doc.Find("li.reusable-search__result-container, div.entity-result").Each(func(i int, card *goquery.Selection) {
		link := card.Find("a.app-aware-link[href*=\"/in/\"]").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		name := strings.TrimSpace(link.Find("span[aria-hidden=\"true\"]").First().Text())
		if name == "" {
			name = strings.TrimSpace(link.Text())
		}

		headline := strings.TrimSpace(card.Find(".entity-result__primary-subtitle").First().Text())

		results = append(results, SearchResult{
			Name:       name,
			Headline:   headline,
			ProfileURL: normalizeProfileURL(href),
		})
	})

	return results
}

func parseProfile(doc *goquery.Document) *Profile {
	profile := &Profile{
		ContactInfo: make(map[string]string),
	}

	bio := strings.TrimSpace(doc.Find(".pv-about__summary-text, section.summary div.core-section-container__content p").First().Text())
	if bio == "" {
		if desc, ok := doc.Find("meta[name=\"description\"]").Attr("content"); ok {
			bio = strings.TrimSpace(desc)
		}
	}
	profile.BioSnippet = bio

	if email := emailExpr.FindString(doc.Text()); email != "" {
		profile.ContactInfo["email"] = email
	}

	return profile
}

func parseRecentPosts(doc *goquery.Document) []string {
	var posts []string
	doc.Find(".feed-shared-update-v2__description, .update-components-text").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			posts = append(posts, text)
		}
		return len(posts) < 3
	})
	return posts
}

// normalizeProfileURL strips query parameters so the same profile always
// dedupes to one URL.
func normalizeProfileURL(href string) string {
	if !strings.HasPrefix(href, "http") {
		href = linkedinBaseURL + href
	}
	if idx := strings.Index(href, "?"); idx != -1 {
		href = href[:idx]
	}
	return strings.TrimSuffix(href, "/")
}

// jitterSleep waits a randomized interval between requests so the
// scraping cadence does not look mechanical.
func jitterSleep(base time.Duration) {
	jitter := time.Duration(rand.Int63n(int64(base)))
	time.Sleep(base + jitter)
}
