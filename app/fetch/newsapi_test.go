package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const newsAPIFixture = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": null, "name": "TechCrunch"},
      "author": "Jane Doe",
      "title": "AI takes over the newsroom",
      "description": "A look at automated journalism.",
      "url": "https://example.com/ai-newsroom",
      "urlToImage": "https://example.com/ai-newsroom.jpg",
      "publishedAt": "2025-05-01T09:30:00Z"
    },
    {
      "source": {"id": null, "name": "The Verge"},
      "author": null,
      "title": "Cloud computing trends",
      "description": "What to expect this year.",
      "url": "https://example.com/cloud-trends",
      "urlToImage": null,
      "publishedAt": "2025-05-02T11:00:00Z"
    }
  ]
}`

func TestFetchNewsAPISuccess(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":        r.URL.Query().Get("q"),
			"language": r.URL.Query().Get("language"),
			"sortBy":   r.URL.Query().Get("sortBy"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"apiKey":   r.URL.Query().Get("apiKey"),
		}
		w.Write([]byte(newsAPIFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	items, err := client.Fetch(context.Background(), newsConfig(5))
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "AI takes over the newsroom" {
		t.Errorf("Unexpected title: '%s'", first.Title)
	}
	if first.URL != "https://example.com/ai-newsroom" {
		t.Errorf("Unexpected URL: '%s'", first.URL)
	}
	if first.Thumbnail != "https://example.com/ai-newsroom.jpg" {
		t.Errorf("Unexpected thumbnail: '%s'", first.Thumbnail)
	}
	if first.Source != "TechCrunch" {
		t.Errorf("Unexpected source: '%s'", first.Source)
	}
	if first.Author != "Jane Doe" {
		t.Errorf("Unexpected author: '%s'", first.Author)
	}
	if first.PublishedAt.IsZero() {
		t.Error("Expected parsed publish time")
	}

	if gotQuery["q"] != "AI OR technology" {
		t.Errorf("Unexpected q parameter: '%s'", gotQuery["q"])
	}
	if gotQuery["language"] != "en" {
		t.Errorf("Unexpected language parameter: '%s'", gotQuery["language"])
	}
	if gotQuery["sortBy"] != "publishedAt" {
		t.Errorf("Unexpected sortBy parameter: '%s'", gotQuery["sortBy"])
	}
	if gotQuery["pageSize"] != "20" {
		t.Errorf("Unexpected pageSize parameter: '%s'", gotQuery["pageSize"])
	}
	if gotQuery["apiKey"] != "test-news-key" {
		t.Errorf("Unexpected apiKey parameter: '%s'", gotQuery["apiKey"])
	}
}

func TestFetchNewsAPIWindow(t *testing.T) {
	var gotFrom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	config := newsConfig(5)
	config.Settings.WindowDays = 3

	if _, err := client.Fetch(context.Background(), config); err != nil {
		t.Fatal(err)
	}
	if gotFrom == "" {
		t.Error("Expected from parameter for windowed feed")
	}
}

func TestFetchNewsAPIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Fetch(context.Background(), newsConfig(5))
	if err == nil {
		t.Fatal("Expected error for newsapi error status")
	}

	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("Expected ProtocolError, got %T: %v", err, err)
	}
}
