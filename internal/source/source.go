// Package source fetches articles from external news providers and
// normalizes them into the internal article model.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cryptolens/cryptolens/internal/config"
	"github.com/cryptolens/cryptolens/internal/model"
)

// Source fetches a batch of articles from one provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Article, error)
}

// Registry holds the configured sources by name.
type Registry struct {
	sources []Source
	byName  map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Source),
	}
}

// Register adds a source. Registering a name twice replaces the earlier entry.
func (r *Registry) Register(s Source) {
	if _, exists := r.byName[s.Name()]; !exists {
		r.sources = append(r.sources, s)
	} else {
		for i, existing := range r.sources {
			if existing.Name() == s.Name() {
				r.sources[i] = s
				break
			}
		}
	}
	r.byName[s.Name()] = s
}

// Get returns the source with the given name.
func (r *Registry) Get(name string) (Source, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns the registered sources in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Names returns the registered source names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// BuildRegistry constructs sources from configuration. Disabled entries are
// skipped; unknown types are an error so typos surface at startup.
func BuildRegistry(cfg *config.Config, sources []config.SourceConfig) (*Registry, error) {
	registry := NewRegistry()

	for _, sc := range sources {
		if !sc.Enabled {
			continue
		}

		var s Source
		switch sc.Type {
		case "cryptopanic":
			s = NewCryptoPanicSource(sc.Name, sc.URL, cfg.CryptoPanicAPIKey)
		case "newsapi":
			s = NewNewsAPISource(sc.Name, sc.URL, cfg.NewsAPIKey)
		case "coindesk":
			s = NewCoinDeskSource(sc.Name, sc.URL)
		case "rss":
			s = NewRSSSource(sc.Name, sc.URL)
		default:
			return nil, fmt.Errorf("unknown source type %q for source %q", sc.Type, sc.Name)
		}
		registry.Register(s)
	}

	return registry, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// parseDate tries the date formats the providers are known to emit.
// Articles with unparseable dates keep their position in the feed by
// falling back to the fetch time.
func parseDate(value string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
