package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL (got %q)", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0 (got %v)", c.API.Timeout)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must be >= 0 (got %d)", c.API.MaxRetries)
	}

	if err := c.Listing.validate(); err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	if err := c.Typeahead.validate(); err != nil {
		return fmt.Errorf("typeahead: %w", err)
	}

	return nil
}

func (l *ListingConfig) validate() error {
	if l.PageSize < 1 || l.PageSize > 200 {
		return fmt.Errorf("page_size must be in [1, 200] (got %d)", l.PageSize)
	}
	if !domain.Collection(l.DefaultCollection).IsValid() {
		return fmt.Errorf("default_collection %q is not a known collection", l.DefaultCollection)
	}
	return nil
}

func (t *TypeaheadConfig) validate() error {
	if t.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %v)", t.Debounce)
	}
	if t.MinChars < 1 {
		return fmt.Errorf("min_chars must be >= 1 (got %d)", t.MinChars)
	}
	if t.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be >= 1 (got %d)", t.RecentLimit)
	}
	if t.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", t.CacheSize)
	}

	t.Popular = ParseList(t.PopularRaw)
	t.Recent = ParseList(t.RecentRaw)
	return nil
}

// ParseList splits a comma-separated string into trimmed, non-empty items.
// An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
	}
	return items
}
