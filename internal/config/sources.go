package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes one news source: what kind of client fetches it, and
// when the scheduler runs it.
type SourceConfig struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"` // cryptopanic, newsapi, coindesk, rss
	URL      string `yaml:"url" json:"url"`
	Schedule string `yaml:"schedule" json:"schedule"` // cron expression
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// DefaultSources are used when no sources file exists. Keyed sources start
// disabled; enabling them requires the matching API key anyway.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:     "coindesk",
			Type:     "coindesk",
			URL:      "https://data-api.coindesk.com/news/v1/article/list?lang=EN&limit=20",
			Schedule: "*/30 * * * *",
			Enabled:  true,
		},
		{
			Name:     "cointelegraph",
			Type:     "rss",
			URL:      "https://cointelegraph.com/rss",
			Schedule: "*/30 * * * *",
			Enabled:  true,
		},
		{
			Name:     "cryptopanic",
			Type:     "cryptopanic",
			URL:      "https://cryptopanic.com/api/v1/posts/",
			Schedule: "*/15 * * * *",
			Enabled:  false,
		},
		{
			Name:     "newsapi",
			Type:     "newsapi",
			URL:      "https://newsapi.org/v2/everything?q=crypto",
			Schedule: "0 * * * *",
			Enabled:  false,
		},
	}
}

// LoadSources reads source definitions from a YAML file, falling back to the
// defaults when the file does not exist.
func LoadSources(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, fmt.Errorf("reading sources file %s: %w", path, err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return nil, &ConfigError{Field: "sources", Message: "sources file defines no sources"}
	}

	for i, src := range f.Sources {
		if src.Name == "" {
			return nil, &ConfigError{Field: "sources", Message: fmt.Sprintf("source %d has no name", i)}
		}
		if src.URL == "" {
			return nil, &ConfigError{Field: "sources", Message: fmt.Sprintf("source %s has no url", src.Name)}
		}
	}
	return f.Sources, nil
}
