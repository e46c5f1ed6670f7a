package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type RefreshFeedTask struct {
	Task
	refresher RefresherInterface
}

func NewRefreshFeedTask(feedName string, refresher RefresherInterface) *RefreshFeedTask {
	return &RefreshFeedTask{
		Task:      NewTask(TaskTypeRefreshFeed, feedName),
		refresher: refresher,
	}
}

func (t *RefreshFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	count, err := t.refresher.Run(ctx, t.FeedName)
	if err != nil {
		return fmt.Errorf("failed to refresh feed: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"items", count)

	return nil
}
