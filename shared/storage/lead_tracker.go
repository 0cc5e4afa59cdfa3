package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LeadTracker is a persistent set of seen lead URLs so re-runs skip
// profiles and posts that were already collected. Entries expire after
// maxAge, letting stale leads resurface.
type LeadTracker struct {
	filePath string
	seenURLs map[string]time.Time
	mu       sync.RWMutex
	maxAge   time.Duration
}

// NewLeadTracker opens (or creates) the seen-lead store under dataDir.
func NewLeadTracker(dataDir string, maxAge time.Duration) (*LeadTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tracker := &LeadTracker{
		filePath: filepath.Join(dataDir, "seen_leads.json"),
		seenURLs: make(map[string]time.Time),
		maxAge:   maxAge,
	}

	if err := tracker.load(); err != nil {
		return nil, fmt.Errorf("failed to load lead tracker data: %w", err)
	}

	tracker.cleanup()

	return tracker, nil
}

// canonicalURL normalizes a lead URL so trivially different forms of
// the same link (trailing slash, host casing, fragments) dedupe to one
// key. Unparseable input is kept as-is after trimming.
func canonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}

// IsSeen reports whether a lead URL was collected within the max age.
func (lt *LeadTracker) IsSeen(rawURL string) bool {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	seenAt, exists := lt.seenURLs[canonicalURL(rawURL)]
	if !exists {
		return false
	}

	return time.Since(seenAt) < lt.maxAge
}

// MarkSeen records a lead URL as collected.
func (lt *LeadTracker) MarkSeen(rawURL string) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.seenURLs[canonicalURL(rawURL)] = time.Now()
	return lt.save()
}

// MarkMultipleSeen records a batch of lead URLs with one save.
func (lt *LeadTracker) MarkMultipleSeen(rawURLs []string) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := time.Now()
	for _, rawURL := range rawURLs {
		lt.seenURLs[canonicalURL(rawURL)] = now
	}
	return lt.save()
}

// Count returns the number of tracked leads.
func (lt *LeadTracker) Count() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()
	return len(lt.seenURLs)
}

// cleanup drops entries older than maxAge.
func (lt *LeadTracker) cleanup() {
	cutoff := time.Now().Add(-lt.maxAge)

	for trackedURL, seenAt := range lt.seenURLs {
		if seenAt.Before(cutoff) {
			delete(lt.seenURLs, trackedURL)
		}
	}
}

func (lt *LeadTracker) load() error {
	file, err := os.Open(lt.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open tracker file: %w", err)
	}
	defer file.Close()

	var stored map[string]time.Time
	if err := json.NewDecoder(file).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}

	// Re-canonicalize on load so entries written before a normalization
	// change collapse into one key, keeping the freshest timestamp
	for storedURL, seenAt := range stored {
		key := canonicalURL(storedURL)
		if existing, ok := lt.seenURLs[key]; !ok || seenAt.After(existing) {
			lt.seenURLs[key] = seenAt
		}
	}

	return nil
}

func (lt *LeadTracker) save() error {
	file, err := os.Create(lt.filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(lt.seenURLs)
}
