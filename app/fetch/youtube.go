package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/campushub/pulsefeed/app/feed"
)

type youtubeSearchResponse struct {
	Items []youtubeSearchItem `json:"items"`
}

type youtubeSearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ChannelTitle string    `json:"channelTitle"`
		PublishedAt  time.Time `json:"publishedAt"`
		Thumbnails   struct {
			Medium struct {
				URL string `json:"url"`
			} `json:"medium"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

func (c *Client) fetchYouTube(ctx context.Context, feedConfig *feed.Config) ([]feed.Item, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", feedConfig.Query)
	params.Set("type", "video")
	params.Set("videoDuration", "short")
	params.Set("order", "viewCount")
	params.Set("maxResults", fmt.Sprintf("%d", feedConfig.Settings.PageSize))
	params.Set("key", c.youtubeKey)

	if windowStart := feedConfig.Settings.GetWindowStart(time.Now().UTC()); !windowStart.IsZero() {
		params.Set("publishedAfter", windowStart.Format(time.RFC3339))
	}

	data, err := c.get(ctx, c.YouTubeURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response youtubeSearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("malformed response body: %v", err)}
	}

	items := make([]feed.Item, 0, len(response.Items))
	for _, result := range response.Items {
		if result.ID.VideoID == "" {
			continue
		}
		items = append(items, feed.Item{
			Title:       result.Snippet.Title,
			Description: result.Snippet.Description,
			URL:         "https://www.youtube.com/watch?v=" + result.ID.VideoID,
			Thumbnail:   result.Snippet.Thumbnails.Medium.URL,
			Source:      result.Snippet.ChannelTitle,
			PublishedAt: result.Snippet.PublishedAt,
		})
	}

	return items, nil
}
