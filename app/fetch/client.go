// Package fetch implements the upstream provider clients. Each fetch issues
// one outbound request bounded by the feed's configured timeout, normalizes
// the payload into feed items, and reports failures as TransportError or
// ProtocolError so callers never see a partially built result.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/campushub/pulsefeed/app/feed"
)

const (
	DefaultNewsAPIURL = "https://newsapi.org/v2/everything"
	DefaultYouTubeURL = "https://www.googleapis.com/youtube/v3/search"
)

var _ feed.FetcherInterface = (*Client)(nil)

// Client fetches content for any configured provider kind. Endpoint URLs are
// exported so tests can point them at local servers.
type Client struct {
	httpClient *http.Client
	userAgent  string

	newsAPIKey string
	youtubeKey string

	NewsAPIURL string
	YouTubeURL string
}

func NewClient(httpClient *http.Client, userAgent, newsAPIKey, youtubeKey string) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		newsAPIKey: newsAPIKey,
		youtubeKey: youtubeKey,
		NewsAPIURL: DefaultNewsAPIURL,
		YouTubeURL: DefaultYouTubeURL,
	}
}

// Fetch dispatches to the provider named by the feed configuration. The call
// is bounded by the feed's timeout regardless of the caller's context.
func (c *Client) Fetch(ctx context.Context, feedConfig *feed.Config) ([]feed.Item, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, feedConfig.Settings.GetTimeout())
	defer cancel()

	switch feedConfig.Provider {
	case feed.ProviderNewsAPI:
		return c.fetchNewsAPI(timeoutCtx, feedConfig)
	case feed.ProviderYouTube:
		return c.fetchYouTube(timeoutCtx, feedConfig)
	case feed.ProviderRSS:
		return c.fetchRSS(timeoutCtx, feedConfig)
	default:
		return nil, &ProtocolError{Reason: fmt.Sprintf("unsupported provider: %q", feedConfig.Provider)}
	}
}

// get performs one upstream request and returns the response body. Non-200
// statuses and connection failures are classified into the error taxonomy.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{Status: resp.StatusCode, Reason: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return data, nil
}
