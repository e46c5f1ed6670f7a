package tasks

import (
	"context"

	"github.com/campushub/pulsefeed/app/feed"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background feed refreshes.
// Example usage:
//
//	scheduler := NewScheduler(configCache, refresher)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// RefresherInterface is the slice of the refresh pipeline the tasks need.
type RefresherInterface interface {
	Run(ctx context.Context, feedName string) (int, error)
}

var _ RefresherInterface = (*feed.Refresher)(nil)
