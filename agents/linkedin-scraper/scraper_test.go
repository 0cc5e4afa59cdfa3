package linkedinscraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const searchPageFixture = `
<html><body>
<ul>
  <li class="reusable-search__result-container">
    <a class="app-aware-link" href="https://www.linkedin.com/in/jane-doe-12345?miniProfileUrn=abc">
      <span aria-hidden="true">Jane Doe</span>
    </a>
    <div class="entity-result__primary-subtitle">Founder at Acme Consulting</div>
  </li>
  <li class="reusable-search__result-container">
    <a class="app-aware-link" href="/in/sam-lee/">
      <span aria-hidden="true">Sam Lee</span>
    </a>
    <div class="entity-result__primary-subtitle">CEO, Lee Ventures</div>
  </li>
  <li class="reusable-search__result-container">
    <a class="app-aware-link" href="/feed/update/urn:li:activity:123">not a profile</a>
  </li>
</ul>
</body></html>`

const profilePageFixture = `
<html><head>
<meta name="description" content="Startup founder writing about burnout and building sustainable teams.">
</head><body>
<section>Reach me at jane@acmeconsulting.example</section>
</body></html>`

const activityPageFixture = `
<html><body>
<div class="feed-shared-update-v2__description">Burnout almost ended my company last year.</div>
<div class="feed-shared-update-v2__description">Hiring our first COO, any advice?</div>
<div class="feed-shared-update-v2__description">Third post here.</div>
<div class="feed-shared-update-v2__description">Fourth post should be dropped.</div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return doc
}

func TestParseSearchResults(t *testing.T) {
	results := parseSearchResults(mustDoc(t, searchPageFixture))

	if len(results) != 2 {
		t.Fatalf("Expected 2 results (non-profile link skipped), got %d", len(results))
	}

	if results[0].Name != "Jane Doe" {
		t.Errorf("Expected name Jane Doe, got %q", results[0].Name)
	}
	if results[0].Headline != "Founder at Acme Consulting" {
		t.Errorf("Unexpected headline: %q", results[0].Headline)
	}
	if results[0].ProfileURL != "https://www.linkedin.com/in/jane-doe-12345" {
		t.Errorf("Expected query params stripped, got %q", results[0].ProfileURL)
	}

	if results[1].ProfileURL != "https://www.linkedin.com/in/sam-lee" {
		t.Errorf("Expected relative URL normalized, got %q", results[1].ProfileURL)
	}
}

func TestParseProfile(t *testing.T) {
	profile := parseProfile(mustDoc(t, profilePageFixture))

	if !strings.Contains(profile.BioSnippet, "Startup founder") {
		t.Errorf("Expected bio from meta description, got %q", profile.BioSnippet)
	}
	if profile.ContactInfo["email"] != "jane@acmeconsulting.example" {
		t.Errorf("Expected email extracted, got %q", profile.ContactInfo["email"])
	}
}

func TestParseRecentPosts(t *testing.T) {
	posts := parseRecentPosts(mustDoc(t, activityPageFixture))

	if len(posts) != 3 {
		t.Fatalf("Expected posts capped at 3, got %d", len(posts))
	}
	if posts[0] != "Burnout almost ended my company last year." {
		t.Errorf("Unexpected first post: %q", posts[0])
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"/in/jane-doe/", "https://www.linkedin.com/in/jane-doe"},
		{"https://www.linkedin.com/in/sam?trk=search", "https://www.linkedin.com/in/sam"},
		{"https://www.linkedin.com/in/alex", "https://www.linkedin.com/in/alex"},
	}

	for _, tt := range tests {
		if got := normalizeProfileURL(tt.in); got != tt.expect {
			t.Errorf("normalizeProfileURL(%q) = %q, want %q", tt.in, got, tt.expect)
		}
	}
}
