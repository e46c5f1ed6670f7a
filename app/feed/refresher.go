package feed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

type FetcherInterface interface {
	Fetch(ctx context.Context, feedConfig *Config) ([]Item, error)
}

type StoreInterface interface {
	Replace(feedName string, items []Item, updatedAt time.Time) error
}

// Refresher runs the fetch-and-replace pipeline for one feed. It is shared by
// the scheduler and the refresh API; concurrent runs for the same feed are
// coalesced into a single in-flight fetch whose result fans out to all
// callers. The store keeps its last-write-wins contract regardless.
type Refresher struct {
	configCache *ConfigCache
	store       StoreInterface
	fetcher     FetcherInterface
	group       singleflight.Group
}

func NewRefresher(configCache *ConfigCache, store StoreInterface, fetcher FetcherInterface) *Refresher {
	return &Refresher{
		configCache: configCache,
		store:       store,
		fetcher:     fetcher,
	}
}

// Run fetches the feed and replaces its snapshot, returning the number of
// items applied. A failed fetch leaves the previous snapshot untouched.
// The upstream call is detached from the caller's cancellation: a refresh
// caller that disconnects does not abort the fetch, and the result is still
// applied to the store. The fetcher bounds the call with the feed's timeout.
func (r *Refresher) Run(ctx context.Context, feedName string) (int, error) {
	feedConfig, err := r.configCache.GetConfig(feedName)
	if err != nil {
		return 0, err
	}

	v, err, _ := r.group.Do(feedName, func() (interface{}, error) {
		items, err := r.fetcher.Fetch(context.WithoutCancel(ctx), feedConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch feed: %w", err)
		}

		if err := r.store.Replace(feedName, items, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to update snapshot: %w", err)
		}

		return len(items), nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}
