package scheduler

import (
	"context"
	"fmt"
	"testing"

	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/config"
)

type fakeMetrics struct {
	summary string
}

func (m *fakeMetrics) GetSummary() string {
	return m.summary
}

type fakeAgent struct {
	name        string
	runs        int
	initialized bool
	failWith    error
	onRun       func()
}

func (a *fakeAgent) Name() string { return a.name }

func (a *fakeAgent) Initialize() error {
	a.initialized = true
	return nil
}

func (a *fakeAgent) RunOnce(ctx context.Context) (Metrics, error) {
	a.runs++
	if a.onRun != nil {
		a.onRun()
	}
	if a.failWith != nil {
		return nil, a.failWith
	}
	return &fakeMetrics{summary: a.name + " ok"}, nil
}

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	activityLog, err := activity.NewLog(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create activity log: %v", err)
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return New(cfg, activityLog)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.Register(&fakeAgent{name: "scraper"}); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := s.Register(&fakeAgent{name: "scraper"}); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}

func TestRunTask(t *testing.T) {
	s := newTestScheduler(t)
	agent := &fakeAgent{name: "scorer"}
	if err := s.Register(agent); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	if err := s.RunTask(context.Background(), "scorer"); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !agent.initialized {
		t.Error("Expected agent to be initialized")
	}
	if agent.runs != 1 {
		t.Errorf("Expected 1 run, got %d", agent.runs)
	}

	if err := s.RunTask(context.Background(), "missing"); err == nil {
		t.Error("Expected unknown task to fail")
	}
}

func TestRunPipelineStopsAtFirstFailure(t *testing.T) {
	s := newTestScheduler(t)

	var order []string
	first := &fakeAgent{name: "first", onRun: func() { order = append(order, "first") }}
	second := &fakeAgent{
		name:     "second",
		failWith: fmt.Errorf("boom"),
		onRun:    func() { order = append(order, "second") },
	}
	third := &fakeAgent{name: "third", onRun: func() { order = append(order, "third") }}

	for _, agent := range []Agent{first, second, third} {
		if err := s.Register(agent); err != nil {
			t.Fatalf("Registration failed: %v", err)
		}
	}

	err := s.RunPipeline(context.Background())
	if err == nil {
		t.Fatal("Expected pipeline to fail")
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected pipeline to stop after the failure, ran: %v", order)
	}
	if third.runs != 0 {
		t.Error("Expected third task to be skipped")
	}
}

func TestRunPipelineWithExplicitNames(t *testing.T) {
	s := newTestScheduler(t)
	a := &fakeAgent{name: "a"}
	b := &fakeAgent{name: "b"}
	for _, agent := range []Agent{a, b} {
		if err := s.Register(agent); err != nil {
			t.Fatalf("Registration failed: %v", err)
		}
	}

	if err := s.RunPipeline(context.Background(), "b"); err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if a.runs != 0 || b.runs != 1 {
		t.Errorf("Expected only b to run, got a=%d b=%d", a.runs, b.runs)
	}
}

func TestTaskNamesPreservesOrder(t *testing.T) {
	s := newTestScheduler(t)
	for _, name := range []string{"z", "a", "m"} {
		if err := s.Register(&fakeAgent{name: name}); err != nil {
			t.Fatalf("Registration failed: %v", err)
		}
	}

	names := s.TaskNames()
	if len(names) != 3 || names[0] != "z" || names[1] != "a" || names[2] != "m" {
		t.Errorf("Expected registration order preserved, got %v", names)
	}
}
