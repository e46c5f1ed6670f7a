package fetch

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/campushub/pulsefeed/app/feed"
)

func (c *Client) fetchRSS(ctx context.Context, feedConfig *feed.Config) ([]feed.Item, error) {
	data, err := c.get(ctx, feedConfig.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("failed to parse feed: %v", err)}
	}

	limit := feedConfig.Settings.PageSize
	items := make([]feed.Item, 0, min(limit, len(parsed.Items)))
	for _, entry := range parsed.Items {
		if len(items) >= limit {
			break
		}
		items = append(items, normalizeRSSItem(entry, parsed.Title))
	}

	return items, nil
}

func normalizeRSSItem(entry *gofeed.Item, sourceTitle string) feed.Item {
	item := feed.Item{
		Title:       entry.Title,
		Description: entry.Description,
		URL:         cmp.Or(entry.Link, entry.GUID),
		Source:      sourceTitle,
	}

	if entry.Image != nil {
		item.Thumbnail = entry.Image.URL
	}

	if entry.PublishedParsed != nil {
		item.PublishedAt = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		item.PublishedAt = *entry.UpdatedParsed
	}

	item.Author = formatRSSAuthors(entry)

	return item
}

func formatRSSAuthors(entry *gofeed.Item) string {
	var names []string
	for _, author := range entry.Authors {
		if author == nil {
			continue
		}
		name := strings.TrimSpace(cmp.Or(author.Name, author.Email))
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
