package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/campushub/pulsefeed/app/feed"
)

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (c *Client) fetchNewsAPI(ctx context.Context, feedConfig *feed.Config) ([]feed.Item, error) {
	params := url.Values{}
	params.Set("q", feedConfig.Query)
	params.Set("language", "en")
	params.Set("sortBy", feedConfig.Settings.SortBy)
	params.Set("pageSize", fmt.Sprintf("%d", feedConfig.Settings.PageSize))
	params.Set("apiKey", c.newsAPIKey)

	if windowStart := feedConfig.Settings.GetWindowStart(time.Now().UTC()); !windowStart.IsZero() {
		params.Set("from", windowStart.Format("2006-01-02"))
	}

	data, err := c.get(ctx, c.NewsAPIURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response newsAPIResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("malformed response body: %v", err)}
	}

	if response.Status != "ok" {
		return nil, &ProtocolError{Reason: fmt.Sprintf("newsapi status %q: %s", response.Status, response.Message)}
	}

	items := make([]feed.Item, 0, len(response.Articles))
	for _, article := range response.Articles {
		items = append(items, feed.Item{
			Title:       article.Title,
			Description: article.Description,
			URL:         article.URL,
			Thumbnail:   article.URLToImage,
			Source:      article.Source.Name,
			Author:      article.Author,
			PublishedAt: article.PublishedAt,
		})
	}

	return items, nil
}
