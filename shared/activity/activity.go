package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Counters holds the per-run numeric metrics an operation can report.
type Counters struct {
	LeadsScraped      int `json:"leads_scraped"`
	MessagesGenerated int `json:"messages_generated"`
	EmailsSent        int `json:"emails_sent"`
	LeadsScored       int `json:"leads_scored"`
	HighPriorityLeads int `json:"high_priority_leads"`
	Errors            int `json:"errors"`
}

// Entry is one logged operation, serialized as a single JSONL line.
type Entry struct {
	Module    string            `json:"module"`
	Operation string            `json:"operation"`
	Status    string            `json:"status"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Duration  float64           `json:"duration_seconds"`
	Counters  Counters          `json:"counters"`
	Details   map[string]string `json:"details,omitempty"`
}

// Log appends operation entries to a JSONL file, one object per line.
type Log struct {
	mu       sync.Mutex
	filePath string
}

func NewLog(dataDir string) (*Log, error) {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Log{
		filePath: filepath.Join(logDir, "activity_metrics.jsonl"),
	}, nil
}

// Operation tracks a single in-flight operation until Finish is called.
type Operation struct {
	log       *Log
	module    string
	operation string
	startTime time.Time

	Counters Counters
	Details  map[string]string
}

// Start begins tracking an operation. Call Finish on the returned value
// once the operation completes.
func (l *Log) Start(module, operation string) *Operation {
	return &Operation{
		log:       l,
		module:    module,
		operation: operation,
		startTime: time.Now(),
		Details:   make(map[string]string),
	}
}

// Finish records the operation's outcome. A nil error logs status
// "success", anything else logs "failure" with the error text.
func (op *Operation) Finish(err error) {
	status := "success"
	if err != nil {
		status = "failure"
		op.Counters.Errors++
		op.Details["error"] = err.Error()
	}

	now := time.Now()
	entry := Entry{
		Module:    op.module,
		Operation: op.operation,
		Status:    status,
		StartTime: op.startTime,
		EndTime:   now,
		Duration:  now.Sub(op.startTime).Seconds(),
		Counters:  op.Counters,
		Details:   op.Details,
	}

	if writeErr := op.log.append(&entry); writeErr != nil {
		// Activity logging must never break the pipeline
		fmt.Fprintf(os.Stderr, "failed to write activity entry: %v\n", writeErr)
	}
}

func (l *Log) append(entry *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open activity log: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	_, err = file.Write(append(data, '\n'))
	return err
}

// Entries reads every logged entry, skipping lines that fail to parse.
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open activity log: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// DailyMetrics aggregates one day's entries.
type DailyMetrics struct {
	Date       string
	Operations int
	Successes  int
	Failures   int
	Counters   Counters
}

// Aggregate groups entries by start date and sums their counters.
func Aggregate(entries []Entry) map[string]*DailyMetrics {
	days := make(map[string]*DailyMetrics)
	for _, entry := range entries {
		date := entry.StartTime.Format("2006-01-02")
		dm, ok := days[date]
		if !ok {
			dm = &DailyMetrics{Date: date}
			days[date] = dm
		}
		dm.Operations++
		if entry.Status == "success" {
			dm.Successes++
		} else {
			dm.Failures++
		}
		dm.Counters.LeadsScraped += entry.Counters.LeadsScraped
		dm.Counters.MessagesGenerated += entry.Counters.MessagesGenerated
		dm.Counters.EmailsSent += entry.Counters.EmailsSent
		dm.Counters.LeadsScored += entry.Counters.LeadsScored
		dm.Counters.HighPriorityLeads += entry.Counters.HighPriorityLeads
		dm.Counters.Errors += entry.Counters.Errors
	}
	return days
}

// Report renders a plain-text summary of the last N days of activity.
func (l *Log) Report(days int) (string, error) {
	entries, err := l.Entries()
	if err != nil {
		return "", err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var recent []Entry
	for _, entry := range entries {
		if entry.StartTime.After(cutoff) {
			recent = append(recent, entry)
		}
	}

	aggregated := Aggregate(recent)
	dates := make([]string, 0, len(aggregated))
	for date := range aggregated {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var b strings.Builder
	fmt.Fprintf(&b, "Activity report for the last %d days\n", days)
	fmt.Fprintf(&b, "====================================\n\n")

	if len(dates) == 0 {
		b.WriteString("No activity recorded.\n")
		return b.String(), nil
	}

	for _, date := range dates {
		dm := aggregated[date]
		fmt.Fprintf(&b, "%s: %d operations (%d succeeded, %d failed)\n",
			dm.Date, dm.Operations, dm.Successes, dm.Failures)
		fmt.Fprintf(&b, "  leads scraped: %d, scored: %d (high priority: %d)\n",
			dm.Counters.LeadsScraped, dm.Counters.LeadsScored, dm.Counters.HighPriorityLeads)
		fmt.Fprintf(&b, "  messages generated: %d, emails sent: %d, errors: %d\n\n",
			dm.Counters.MessagesGenerated, dm.Counters.EmailsSent, dm.Counters.Errors)
	}

	return b.String(), nil
}
