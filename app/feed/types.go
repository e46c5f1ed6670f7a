package feed

import (
	"errors"
	"time"
)

// ErrUnknownFeed is returned when a caller references a feed name that is not
// part of the configured set.
var ErrUnknownFeed = errors.New("unknown feed")

// Content types

type Item struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Source      string    `json:"source,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Snapshot is the immutable result of one successful fetch. A snapshot is
// replaced wholesale, never mutated in place.
type Snapshot struct {
	Items     []Item
	UpdatedAt time.Time
}

// Provider kinds

const (
	ProviderNewsAPI = "newsapi"
	ProviderYouTube = "youtube"
	ProviderRSS     = "rss"
)

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Route    string         `yaml:"route"` // URL path alias, defaults to Name
	Provider string         `yaml:"provider"`
	Query    string         `yaml:"query"` // newsapi/youtube search query
	URL      string         `yaml:"url"`   // rss feed URL
	Settings ConfigSettings `yaml:"settings"`
	Schedule ConfigSchedule `yaml:"schedule"`
}

type ConfigSettings struct {
	Enabled    bool   `yaml:"enabled"`
	SortBy     string `yaml:"sort_by"`     // newsapi ordering (publishedAt, popularity)
	PageSize   int    `yaml:"page_size"`   // items per fetch
	WindowDays int    `yaml:"window_days"` // restrict results to the past N days (0 = no window)
	Timeout    int    `yaml:"timeout"`     // seconds
}

type ConfigSchedule struct {
	Hours []int `yaml:"hours"` // hours of day (0-23) at which the feed refreshes, minute :00
}
