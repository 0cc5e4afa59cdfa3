package leadscorer

import (
	"strings"
	"testing"

	"leadgen-stack/internal/models"
)

func TestLinkedInScoreInput(t *testing.T) {
	input := linkedinScoreInput(map[string]string{
		"Name":         "Jane Doe",
		"Profile URL":  "https://linkedin.com/in/jane",
		"Bio Snippet":  "Founder at Acme",
		"Recent Posts": "Hiring again | Burnout is real",
		"Date Added":   "2026-03-10 09:00:00",
	})

	if input.URL != "https://linkedin.com/in/jane" {
		t.Errorf("Unexpected URL: %s", input.URL)
	}
	if input.Platform != models.PlatformLinkedIn {
		t.Errorf("Expected LinkedIn platform, got %s", input.Platform)
	}
	if input.Date != "2026-03-10 09:00:00" {
		t.Errorf("Expected date from Date Added, got %q", input.Date)
	}
	for _, want := range []string{"Founder at Acme", "Hiring again", "Burnout is real"} {
		if !strings.Contains(input.Text, want) {
			t.Errorf("Combined text missing %q: %q", want, input.Text)
		}
	}
}

func TestRedditScoreInput(t *testing.T) {
	input := redditScoreInput(map[string]string{
		"Username":     "tired_dev",
		"Post URL":     "https://reddit.com/r/jobs/comments/abc",
		"Post Title":   "Completely burned out",
		"Post Content": "70 hour weeks, at my limit.",
		"Score":        "142",
		"Created UTC":  "2026-03-01 00:00:00",
		"Date Added":   "2026-03-14 09:00:00",
	})

	if input.Platform != models.PlatformReddit {
		t.Errorf("Expected Reddit platform, got %s", input.Platform)
	}
	if input.PostScore != 142 {
		t.Errorf("Expected post score 142, got %d", input.PostScore)
	}
	// The post's creation date drives recency, not the scrape date
	if input.Date != "2026-03-01 00:00:00" {
		t.Errorf("Expected date from Created UTC, got %q", input.Date)
	}
	if !strings.Contains(input.Text, "Completely burned out") || !strings.Contains(input.Text, "at my limit") {
		t.Errorf("Combined text missing post fields: %q", input.Text)
	}
}

func TestSplitPosts(t *testing.T) {
	posts := splitPosts("First post | Second post |  | Third")
	if len(posts) != 3 {
		t.Fatalf("Expected 3 posts, got %v", posts)
	}
	if posts[2] != "Third" {
		t.Errorf("Expected trimmed third post, got %q", posts[2])
	}
	if splitPosts("") != nil {
		t.Error("Expected nil for empty input")
	}
}
