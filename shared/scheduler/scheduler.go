package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"leadgen-stack/shared/activity"
	"leadgen-stack/shared/config"
	"leadgen-stack/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Metrics defines the common interface for task metrics
type Metrics interface {
	// GetSummary returns a human-readable summary of the run
	GetSummary() string
}

// CounterReporter is optionally implemented by metrics that carry
// numeric counters for the activity log.
type CounterReporter interface {
	GetCounters() activity.Counters
}

// Agent defines the interface that all pipeline tasks must implement
type Agent interface {
	Name() string
	Initialize() error
	RunOnce(ctx context.Context) (Metrics, error)
}

// Scheduler manages a registry of tasks and runs them on demand, as a
// sequential pipeline, or on per-task cron schedules.
type Scheduler struct {
	config   *config.Config
	monitor  *monitoring.Monitor
	activity *activity.Log
	agents   map[string]Agent
	order    []string
	cron     *cron.Cron
}

func New(cfg *config.Config, activityLog *activity.Log) *Scheduler {
	return &Scheduler{
		config:   cfg,
		monitor:  monitoring.NewMonitor(),
		activity: activityLog,
		agents:   make(map[string]Agent),
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Register adds a task to the registry. Registration order determines
// pipeline order.
func (s *Scheduler) Register(agent Agent) error {
	name := agent.Name()
	if _, exists := s.agents[name]; exists {
		return fmt.Errorf("task %s is already registered", name)
	}
	s.agents[name] = agent
	s.order = append(s.order, name)
	return nil
}

// TaskNames returns the registered task names in pipeline order.
func (s *Scheduler) TaskNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// RunTask initializes and runs a single registered task.
func (s *Scheduler) RunTask(ctx context.Context, name string) error {
	agent, ok := s.agents[name]
	if !ok {
		return fmt.Errorf("unknown task: %s", name)
	}

	if err := agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", name, err)
	}

	return s.runAgent(ctx, agent)
}

// RunPipeline runs the named tasks sequentially, stopping at the first
// failure. With no names it runs every registered task in order.
func (s *Scheduler) RunPipeline(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = s.order
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.RunTask(ctx, name); err != nil {
			return fmt.Errorf("pipeline stopped at %s: %w", name, err)
		}
	}
	return nil
}

// Start initializes all tasks, starts the health server, and schedules
// each task that has a cron expression configured. Blocks until the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, name := range s.order {
		if err := s.agents[name].Initialize(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", name, err)
		}
	}

	healthServer := monitoring.NewHealthServer(s.monitor, fmt.Sprintf("%d", s.config.Monitoring.HealthPort))
	healthServer.Start()

	scheduled := 0
	for _, name := range s.order {
		spec, ok := s.config.Schedules[name]
		if !ok || spec == "" {
			log.Printf("No schedule configured for %s, skipping", name)
			continue
		}

		agent := s.agents[name]
		_, err := s.cron.AddFunc(spec, func() {
			if err := s.runAgent(ctx, agent); err != nil {
				log.Printf("Error running scheduled job for %s: %v", agent.Name(), err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to add cron job for %s: %w", name, err)
		}

		log.Printf("Scheduled %s with: %s", name, spec)
		scheduled++
	}

	if scheduled == 0 {
		return fmt.Errorf("no tasks have schedules configured")
	}

	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped")
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) runAgent(ctx context.Context, agent Agent) error {
	startTime := time.Now()
	name := agent.Name()

	log.Printf("Starting %s run...", name)
	op := s.activity.Start(name, "run")

	metrics, err := agent.RunOnce(ctx)
	duration := time.Since(startTime)

	if err != nil {
		s.monitor.RecordCriticalFailure(name, fmt.Errorf("%s failed: %w", name, err), duration)
		op.Finish(err)
		return fmt.Errorf("%s run failed: %w", name, err)
	}

	if reporter, ok := metrics.(CounterReporter); ok {
		op.Counters = reporter.GetCounters()
	}
	op.Details["summary"] = metrics.GetSummary()
	op.Finish(nil)

	s.monitor.RecordSuccess(name, metrics.GetSummary(), duration)
	return nil
}
