package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/campushub/pulsefeed/app/cfg"
	"github.com/campushub/pulsefeed/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler fires one refresh task per feed at the feed's configured hours of
// day (minute :00), evaluated against wall-clock time on a fixed tick. Feeds
// are independent: a slow fetch occupies a worker, never the ticker, and a
// failed refresh is retried at the feed's next scheduled trigger.
type Scheduler struct {
	configCache *feed.ConfigCache
	refresher   RefresherInterface
	interval    time.Duration
	workerCount int
	nextRun     map[string]time.Time // touched only by the ticker goroutine
	now         func() time.Time
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *feed.ConfigCache, refresher RefresherInterface) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		refresher:   refresher,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		nextRun:     make(map[string]time.Time),
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueDueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// enqueueStartupTasks performs the initial fetch for every enabled feed so
// the service does not serve empty snapshots until the first trigger.
func (s *Scheduler) enqueueStartupTasks() {
	feedConfigs := s.configCache.GetEnabledConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No enabled feed configurations found")
		return
	}

	slog.Debug("Enqueueing startup refreshes", "count", len(feedConfigs))

	now := s.now()
	for _, feedConfig := range feedConfigs {
		s.nextRun[feedConfig.Name] = nextRunAfter(feedConfig.Schedule.Hours, now)

		task := NewRefreshFeedTask(feedConfig.Name, s.refresher)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue RefreshFeedTask", "feed", feedConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueDueTasks() {
	feedConfigs := s.configCache.GetEnabledConfigs()

	now := s.now()
	for _, feedConfig := range feedConfigs {
		due, ok := s.nextRun[feedConfig.Name]
		if !ok {
			// Feed appeared after startup; schedule it from now.
			s.nextRun[feedConfig.Name] = nextRunAfter(feedConfig.Schedule.Hours, now)
			continue
		}

		if now.Before(due) {
			continue
		}

		task := NewRefreshFeedTask(feedConfig.Name, s.refresher)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue RefreshFeedTask", "feed", feedConfig.Name, "error", err)
			continue
		}

		s.nextRun[feedConfig.Name] = nextRunAfter(feedConfig.Schedule.Hours, now)
	}
}

// nextRunAfter returns the earliest trigger time strictly after t for the
// given hours of day. Hours are interpreted in t's location at minute :00.
func nextRunAfter(hours []int, t time.Time) time.Time {
	sorted := slices.Clone(hours)
	slices.Sort(sorted)

	for dayOffset := 0; ; dayOffset++ {
		day := t.AddDate(0, 0, dayOffset)
		for _, hour := range sorted {
			candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, t.Location())
			if candidate.After(t) {
				return candidate
			}
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

// executeTask runs a task to completion. Failures are observability events
// only: the previous snapshot stays in place and the next scheduled trigger
// is the retry.
func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 2*time.Minute)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"feed", task.GetFeedName(),
			"error", err)
	}
}
