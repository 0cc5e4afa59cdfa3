package activity

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestOperationLifecycle(t *testing.T) {
	log, err := NewLog(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}

	op := log.Start("reddit-scraper", "run")
	op.Counters.LeadsScraped = 12
	op.Details["subreddits"] = "3"
	op.Finish(nil)

	failing := log.Start("lead-scorer", "run")
	failing.Finish(fmt.Errorf("worksheet unavailable"))

	entries, err := log.Entries()
	if err != nil {
		t.Fatalf("Failed to read entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Module != "reddit-scraper" || first.Status != "success" {
		t.Errorf("Unexpected first entry: %+v", first)
	}
	if first.Counters.LeadsScraped != 12 {
		t.Errorf("Expected 12 leads scraped, got %d", first.Counters.LeadsScraped)
	}
	if first.Details["subreddits"] != "3" {
		t.Errorf("Expected details preserved, got %v", first.Details)
	}

	second := entries[1]
	if second.Status != "failure" {
		t.Errorf("Expected failure status, got %s", second.Status)
	}
	if second.Counters.Errors != 1 {
		t.Errorf("Expected error counter incremented, got %d", second.Counters.Errors)
	}
	if second.Details["error"] != "worksheet unavailable" {
		t.Errorf("Expected error detail recorded, got %v", second.Details)
	}
}

func TestAggregate(t *testing.T) {
	day1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Module: "a", Status: "success", StartTime: day1, Counters: Counters{LeadsScraped: 5}},
		{Module: "b", Status: "failure", StartTime: day1, Counters: Counters{Errors: 1}},
		{Module: "a", Status: "success", StartTime: day2, Counters: Counters{LeadsScored: 3, HighPriorityLeads: 1}},
	}

	days := Aggregate(entries)
	if len(days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(days))
	}

	d1 := days["2026-03-14"]
	if d1 == nil || d1.Operations != 2 || d1.Successes != 1 || d1.Failures != 1 {
		t.Errorf("Unexpected day 1 aggregation: %+v", d1)
	}
	if d1.Counters.LeadsScraped != 5 || d1.Counters.Errors != 1 {
		t.Errorf("Unexpected day 1 counters: %+v", d1.Counters)
	}

	d2 := days["2026-03-15"]
	if d2 == nil || d2.Counters.LeadsScored != 3 || d2.Counters.HighPriorityLeads != 1 {
		t.Errorf("Unexpected day 2 aggregation: %+v", d2)
	}
}

func TestReport(t *testing.T) {
	log, err := NewLog(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}

	op := log.Start("linkedin-scraper", "run")
	op.Counters.LeadsScraped = 7
	op.Finish(nil)

	report, err := log.Report(7)
	if err != nil {
		t.Fatalf("Failed to build report: %v", err)
	}

	if !strings.Contains(report, "leads scraped: 7") {
		t.Errorf("Report missing counters:\n%s", report)
	}
	if !strings.Contains(report, "1 operations (1 succeeded, 0 failed)") {
		t.Errorf("Report missing operation summary:\n%s", report)
	}
}

func TestReportEmpty(t *testing.T) {
	log, err := NewLog(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}

	report, err := log.Report(7)
	if err != nil {
		t.Fatalf("Failed to build report: %v", err)
	}
	if !strings.Contains(report, "No activity recorded") {
		t.Errorf("Expected empty report message, got:\n%s", report)
	}
}
