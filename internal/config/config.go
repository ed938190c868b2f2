package config

import "time"

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Listing   ListingConfig   `yaml:"listing"`
	Typeahead TypeaheadConfig `yaml:"typeahead"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds settings for the marketplace admin API client.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"API_BASE_URL"    env-required:"true"`
	Token      string        `yaml:"token"       env:"API_TOKEN"`
	Timeout    time.Duration `yaml:"timeout"     env:"API_TIMEOUT"     env-default:"10s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"API_RETRY_DELAY" env-default:"500ms"`
	MaxRetries int           `yaml:"max_retries" env:"API_MAX_RETRIES" env-default:"1"`
}

// ListingConfig holds listing and bulk-action settings.
type ListingConfig struct {
	PageSize          int    `yaml:"page_size"          env:"LISTING_PAGE_SIZE"          env-default:"20"`
	DefaultCollection string `yaml:"default_collection" env:"LISTING_DEFAULT_COLLECTION" env-default:"templates"`
}

// TypeaheadConfig holds search-as-you-type parameters.
type TypeaheadConfig struct {
	Debounce    time.Duration `yaml:"debounce"     env:"TYPEAHEAD_DEBOUNCE"     env-default:"200ms"`
	MinChars    int           `yaml:"min_chars"    env:"TYPEAHEAD_MIN_CHARS"    env-default:"2"`
	RecentLimit int           `yaml:"recent_limit" env:"TYPEAHEAD_RECENT_LIMIT" env-default:"5"`
	SearchLimit int           `yaml:"search_limit" env:"TYPEAHEAD_SEARCH_LIMIT" env-default:"6"`
	CacheSize   int           `yaml:"cache_size"   env:"TYPEAHEAD_CACHE_SIZE"   env-default:"64"`
	CacheTTL    time.Duration `yaml:"cache_ttl"    env:"TYPEAHEAD_CACHE_TTL"    env-default:"30s"`
	PopularRaw  string        `yaml:"popular"      env:"TYPEAHEAD_POPULAR"      env-default:"dashboard,landing page,portfolio,e-commerce"`
	RecentRaw   string        `yaml:"recent"       env:"TYPEAHEAD_RECENT"`

	// Popular and Recent are parsed from the raw lists during validation.
	// Recent seeds the recent searches, most recent first.
	Popular []string `yaml:"-" env:"-"`
	Recent  []string `yaml:"-" env:"-"`
}

// LogConfig holds logging settings. File is optional; without it the
// console discards logs and the CLI writes them to stderr.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}
