package api

import (
	"context"

	"github.com/campushub/pulsefeed/app/cache"
	"github.com/campushub/pulsefeed/app/feed"
)

type StoreInterface interface {
	Get(feedName string) (*feed.Snapshot, error)
	Keys() []string
}

var _ StoreInterface = (*cache.Store)(nil)

type RefresherInterface interface {
	Run(ctx context.Context, feedName string) (int, error)
}

var _ RefresherInterface = (*feed.Refresher)(nil)

type Handler struct {
	configCache *feed.ConfigCache
	store       StoreInterface
	refresher   RefresherInterface
}
