package storage

import (
	"testing"
	"time"
)

func TestLeadTracker(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewLeadTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}

	url := "https://www.reddit.com/r/jobs/comments/abc123/"
	if tracker.IsSeen(url) {
		t.Error("Expected fresh tracker to report unseen")
	}

	if err := tracker.MarkSeen(url); err != nil {
		t.Fatalf("Failed to mark seen: %v", err)
	}
	if !tracker.IsSeen(url) {
		t.Error("Expected URL to be seen after marking")
	}
	if tracker.Count() != 1 {
		t.Errorf("Expected count 1, got %d", tracker.Count())
	}
}

func TestLeadTrackerCanonicalURLs(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewLeadTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}

	if err := tracker.MarkSeen("https://WWW.Reddit.com/r/jobs/comments/abc123/"); err != nil {
		t.Fatalf("Failed to mark seen: %v", err)
	}

	variants := []string{
		"https://www.reddit.com/r/jobs/comments/abc123",
		"https://www.reddit.com/r/jobs/comments/abc123/",
		"https://www.reddit.com/r/jobs/comments/abc123#comments",
		"  https://www.reddit.com/r/jobs/comments/abc123/  ",
	}
	for _, variant := range variants {
		if !tracker.IsSeen(variant) {
			t.Errorf("Expected %q to match the tracked URL", variant)
		}
	}

	if tracker.IsSeen("https://www.reddit.com/r/jobs/comments/xyz789") {
		t.Error("Expected a different post to report unseen")
	}
	if tracker.Count() != 1 {
		t.Errorf("Expected variants to collapse to one entry, got %d", tracker.Count())
	}
}

func TestLeadTrackerPersistence(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewLeadTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}

	urls := []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/in/sam-lee",
	}
	if err := tracker.MarkMultipleSeen(urls); err != nil {
		t.Fatalf("Failed to mark multiple: %v", err)
	}

	// A second tracker over the same directory sees the saved state
	reloaded, err := NewLeadTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to reload tracker: %v", err)
	}
	for _, url := range urls {
		if !reloaded.IsSeen(url) {
			t.Errorf("Expected %s to persist across instances", url)
		}
	}
	if reloaded.Count() != 2 {
		t.Errorf("Expected count 2 after reload, got %d", reloaded.Count())
	}
}

func TestLeadTrackerExpiry(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewLeadTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}

	url := "https://www.linkedin.com/in/old-lead"
	tracker.seenURLs[url] = time.Now().Add(-48 * time.Hour)

	if tracker.IsSeen(url) {
		t.Error("Expected expired entry to report unseen")
	}

	tracker.cleanup()
	if tracker.Count() != 0 {
		t.Errorf("Expected cleanup to drop expired entries, count is %d", tracker.Count())
	}
}
