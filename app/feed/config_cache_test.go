package feed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigCacheLoadValidConfig(t *testing.T) {
	// Create temp directory
	tempDir := t.TempDir()

	// Create test YAML file
	content := `
route: tech-news
provider: newsapi
query: "AI OR technology"

settings:
  enabled: true
  sort_by: popularity
  page_size: 15
  window_days: 3
  timeout: 5

schedule:
  hours: [0, 12]
`

	err := os.WriteFile(filepath.Join(tempDir, "news.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 feedConfig, got %d", configCache.GetConfigCount())
	}

	// Get the feedConfig by name
	feedConfig, err := configCache.GetConfig("news")
	if err != nil {
		t.Fatal(err)
	}

	// Validate loaded values
	if feedConfig.Name != "news" {
		t.Errorf("Expected name 'news', got '%s'", feedConfig.Name)
	}
	if feedConfig.Route != "tech-news" {
		t.Errorf("Expected route 'tech-news', got '%s'", feedConfig.Route)
	}
	if feedConfig.Provider != ProviderNewsAPI {
		t.Errorf("Expected provider 'newsapi', got '%s'", feedConfig.Provider)
	}
	if feedConfig.Settings.SortBy != "popularity" {
		t.Errorf("Expected sort_by 'popularity', got '%s'", feedConfig.Settings.SortBy)
	}
	if feedConfig.Settings.PageSize != 15 {
		t.Errorf("Expected page size 15, got %d", feedConfig.Settings.PageSize)
	}
	if feedConfig.Settings.GetTimeout() != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", feedConfig.Settings.GetTimeout())
	}
	if len(feedConfig.Schedule.Hours) != 2 || feedConfig.Schedule.Hours[0] != 0 || feedConfig.Schedule.Hours[1] != 12 {
		t.Errorf("Expected hours [0 12], got %v", feedConfig.Schedule.Hours)
	}
}

func TestConfigCacheLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	// Create minimal test YAML file
	content := `
provider: newsapi
query: "AI"

settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "news.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	feedConfig, err := configCache.GetConfig("news")
	if err != nil {
		t.Fatal(err)
	}

	// Validate default values
	if feedConfig.Route != "news" {
		t.Errorf("Expected route to default to feed name, got '%s'", feedConfig.Route)
	}
	if feedConfig.Settings.SortBy != "publishedAt" {
		t.Errorf("Expected default sort_by 'publishedAt', got '%s'", feedConfig.Settings.SortBy)
	}
	if feedConfig.Settings.PageSize != 20 {
		t.Errorf("Expected default page size 20, got %d", feedConfig.Settings.PageSize)
	}
	if feedConfig.Settings.GetTimeout() != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", feedConfig.Settings.GetTimeout())
	}
	if len(feedConfig.Schedule.Hours) != 4 {
		t.Errorf("Expected default hours [0 6 12 18], got %v", feedConfig.Schedule.Hours)
	}
}

func TestConfigCacheUnsupportedProvider(t *testing.T) {
	tempDir := t.TempDir()

	content := `
provider: carrier-pigeon
query: "AI"
`

	err := os.WriteFile(filepath.Join(tempDir, "news.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err == nil {
		t.Fatal("Expected error for unsupported provider")
	}
	if !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("Expected unsupported provider error, got: %v", err)
	}
}

func TestConfigCacheMissingQuery(t *testing.T) {
	tempDir := t.TempDir()

	content := `
provider: youtube
`

	err := os.WriteFile(filepath.Join(tempDir, "shorts.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err == nil {
		t.Fatal("Expected error for missing query")
	}
	if !strings.Contains(err.Error(), "query is required") {
		t.Errorf("Expected missing query error, got: %v", err)
	}
}

func TestConfigCacheRSSRequiresURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
provider: rss
`

	err := os.WriteFile(filepath.Join(tempDir, "campus.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err == nil {
		t.Fatal("Expected error for rss provider without url")
	}
	if !strings.Contains(err.Error(), "url is required") {
		t.Errorf("Expected missing url error, got: %v", err)
	}
}

func TestConfigCacheHourOutOfRange(t *testing.T) {
	tempDir := t.TempDir()

	content := `
provider: newsapi
query: "AI"

schedule:
  hours: [0, 24]
`

	err := os.WriteFile(filepath.Join(tempDir, "news.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err == nil {
		t.Fatal("Expected error for hour out of range")
	}
	if !strings.Contains(err.Error(), "hour out of range") {
		t.Errorf("Expected hour out of range error, got: %v", err)
	}
}

func TestConfigCacheGetUnknownFeed(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())

	_, err := configCache.GetConfig("missing")
	if err == nil {
		t.Fatal("Expected error for unknown feed")
	}
	if !errors.Is(err, ErrUnknownFeed) {
		t.Errorf("Expected ErrUnknownFeed, got %v", err)
	}
}

func TestConfigCacheNames(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"shorts", "news", "blogs"} {
		content := "provider: newsapi\nquery: \"AI\"\n"
		if err := os.WriteFile(filepath.Join(tempDir, name+".yml"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	names := configCache.Names()
	expected := []string{"blogs", "news", "shorts"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected name %d to be '%s', got '%s'", i, name, names[i])
		}
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 0 {
		t.Errorf("Expected 0 enabled configs (enabled defaults to false), got %d", len(enabled))
	}
}
