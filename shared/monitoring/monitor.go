package monitoring

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

type taskState struct {
	lastRunSuccess bool
	lastRunTime    time.Time
}

// Monitor tracks the health of every registered task. A task is healthy
// if its most recent run succeeded.
type Monitor struct {
	mu    sync.RWMutex
	tasks map[string]*taskState
}

func NewMonitor() *Monitor {
	return &Monitor{
		tasks: make(map[string]*taskState),
	}
}

func (m *Monitor) RecordSuccess(task, summary string, duration time.Duration) {
	m.mu.Lock()
	m.tasks[task] = &taskState{lastRunSuccess: true, lastRunTime: time.Now()}
	m.mu.Unlock()

	log.Printf("✅ %s completed successfully - %s (took %v)", task, summary, duration)
}

func (m *Monitor) RecordPartialFailure(task string, err error, duration time.Duration) {
	// Don't change health status for partial failures
	log.Printf("⚠️  PARTIAL FAILURE in %s: %s (Duration: %v)", task, err.Error(), duration)
}

func (m *Monitor) RecordCriticalFailure(task string, err error, duration time.Duration) {
	m.mu.Lock()
	m.tasks[task] = &taskState{lastRunSuccess: false, lastRunTime: time.Now()}
	m.mu.Unlock()

	log.Printf("🚨 CRITICAL FAILURE in %s: %s (Duration: %v)", task, err.Error(), duration)
	log.Printf("Failure occurred at: %s", time.Now().Format("2006-01-02 15:04:05"))
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.tasks) == 0 {
		return true // No runs yet, assume healthy
	}

	for _, state := range m.tasks {
		if !state.lastRunSuccess {
			return false
		}
	}
	return true
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.tasks) == 0 {
		return "No runs yet"
	}

	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		state := m.tasks[name]
		if state.lastRunSuccess {
			lines = append(lines, fmt.Sprintf("✅ %s: %s", name, state.lastRunTime.Format("Jan 2 15:04")))
		} else {
			lines = append(lines, fmt.Sprintf("❌ %s failed: %s", name, state.lastRunTime.Format("Jan 2 15:04")))
		}
	}
	return strings.Join(lines, "\n")
}
