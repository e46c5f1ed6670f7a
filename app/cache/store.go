// Package cache holds the latest successful snapshot per feed in process
// memory. There is no persistence: every entry starts empty on boot and is
// replaced wholesale by successful fetches.
package cache

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/campushub/pulsefeed/app/feed"
)

// Store keeps one atomically swappable snapshot pointer per configured feed.
// The key set is fixed at construction, so the map itself is never written
// after New returns and reads need no lock. Readers always observe a complete
// snapshot; writers on different feeds never contend. Two concurrent writes
// on the same feed resolve by completion order (last writer wins).
type Store struct {
	entries map[string]*atomic.Pointer[feed.Snapshot]
}

func New(feedNames []string) *Store {
	entries := make(map[string]*atomic.Pointer[feed.Snapshot], len(feedNames))
	for _, name := range feedNames {
		p := &atomic.Pointer[feed.Snapshot]{}
		p.Store(&feed.Snapshot{Items: []feed.Item{}})
		entries[name] = p
	}
	return &Store{entries: entries}
}

// Get returns the current snapshot for the feed. Before the first successful
// fetch the snapshot holds an empty item list and a zero timestamp.
func (s *Store) Get(feedName string) (*feed.Snapshot, error) {
	entry, ok := s.entries[feedName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", feed.ErrUnknownFeed, feedName)
	}
	return entry.Load(), nil
}

// Replace atomically swaps in a new snapshot for the feed. Safe to call
// concurrently with any number of Get calls and with Replace calls on other
// feeds. No ordering is enforced by the updatedAt argument.
func (s *Store) Replace(feedName string, items []feed.Item, updatedAt time.Time) error {
	entry, ok := s.entries[feedName]
	if !ok {
		return fmt.Errorf("%w: %q", feed.ErrUnknownFeed, feedName)
	}

	if items == nil {
		items = []feed.Item{}
	}

	entry.Store(&feed.Snapshot{
		Items:     items,
		UpdatedAt: updatedAt,
	})
	return nil
}

// Keys returns the configured feed names in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *Store) Len() int {
	return len(s.entries)
}
