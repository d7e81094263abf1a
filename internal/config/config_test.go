package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("Expected JWTSecret to be 'test-secret', got '%s'", cfg.JWTSecret)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.DatabasePath != "cryptolens.db" {
		t.Errorf("Expected DatabasePath to be 'cryptolens.db', got '%s'", cfg.DatabasePath)
	}
	if cfg.FeedLimit != 100 {
		t.Errorf("Expected FeedLimit to be 100, got %d", cfg.FeedLimit)
	}
	if cfg.MaxKeywords != 10 {
		t.Errorf("Expected MaxKeywords to be 10, got %d", cfg.MaxKeywords)
	}
	if cfg.KeywordMinLength != 4 {
		t.Errorf("Expected KeywordMinLength to be 4, got %d", cfg.KeywordMinLength)
	}
	if cfg.TitleWeight != 3 || cfg.SummaryWeight != 2 || cfg.TagWeight != 5 {
		t.Errorf("Expected default weights 3/2/5, got %d/%d/%d",
			cfg.TitleWeight, cfg.SummaryWeight, cfg.TagWeight)
	}
}

func TestLoadConfigMissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when JWT_SECRET is missing")
	}
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("Expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "JWT_SECRET" {
		t.Errorf("Expected field JWT_SECRET, got %s", cfgErr.Field)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("SCORE_TITLE_WEIGHT", "7")
	os.Setenv("MAX_KEYWORDS", "5")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("SCORE_TITLE_WEIGHT")
		os.Unsetenv("MAX_KEYWORDS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TitleWeight != 7 {
		t.Errorf("Expected TitleWeight 7, got %d", cfg.TitleWeight)
	}
	if cfg.MaxKeywords != 5 {
		t.Errorf("Expected MaxKeywords 5, got %d", cfg.MaxKeywords)
	}
}

func TestLoadSourcesMissingFileUsesDefaults(t *testing.T) {
	sources, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Failed to load default sources: %v", err)
	}
	if len(sources) == 0 {
		t.Fatal("Expected default sources")
	}

	names := make(map[string]SourceConfig)
	for _, s := range sources {
		names[s.Name] = s
	}
	if _, ok := names["coindesk"]; !ok {
		t.Error("Expected coindesk in default sources")
	}
	if names["cryptopanic"].Enabled {
		t.Error("Expected keyed cryptopanic source to start disabled")
	}
}

func TestLoadSourcesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: test-feed
    type: rss
    url: https://example.com/rss
    schedule: "*/10 * * * *"
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Failed to load sources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(sources))
	}
	if sources[0].Name != "test-feed" || sources[0].Type != "rss" {
		t.Errorf("Unexpected source: %+v", sources[0])
	}
}

func TestLoadSourcesRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - type: rss
    url: https://example.com/rss
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSources(path); err == nil {
		t.Error("Expected error for unnamed source")
	}
}
