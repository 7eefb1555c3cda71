package model

import "time"

// Config is the complete runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, PROSECHECK_* env vars,
// config file (~/.prosecheck/config.yaml), defaults.
type Config struct {
	Extract     ExtractConfig     `yaml:"extract" json:"extract"`
	Grammar     GrammarConfig     `yaml:"grammar" json:"grammar"`
	Tone        ToneConfig        `yaml:"tone" json:"tone"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	History     HistoryConfig     `yaml:"history" json:"history"`
	Server      ServerConfig      `yaml:"server" json:"server"`
}

// ExtractConfig controls document text extraction.
type ExtractConfig struct {
	// MaxFileSize caps the accepted upload size in bytes.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`
}

// GrammarConfig points at a LanguageTool-compatible check server.
type GrammarConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"` // base URL, e.g. http://localhost:8010
	Language  string        `yaml:"language" json:"language"` // BCP 47 tag, e.g. en-US
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	RateLimit float64       `yaml:"rate_limit" json:"rate_limit"` // requests/sec per engine host
	Burst     int           `yaml:"burst" json:"burst"`

	// Proxy settings for deployments behind corporate proxies.
	HTTPProxy  string `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" json:"https_proxy"`
}

// ToneConfig controls the optional sentiment/formality classifier.
type ToneConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Model     string        `yaml:"model" json:"model"`
	APIKey    string        `yaml:"api_key" json:"-"`
	BaseURL   string        `yaml:"base_url" json:"base_url"` // OpenAI-compatible endpoint override
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	MaxLength int           `yaml:"max_length" json:"max_length"` // runes sent to the classifier
}

// CacheConfig controls grammar-response caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"` // disk layer location; empty = memory only
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
	MaxIssues     int  `yaml:"max_issues" json:"max_issues"` // cap on issues printed to the terminal
}

// HistoryConfig controls the optional sqlite analysis log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxFileSize: 100 * 1024 * 1024,
		},
		Grammar: GrammarConfig{
			Endpoint:  "http://localhost:8010",
			Language:  "en-US",
			Timeout:   30 * time.Second,
			RateLimit: 2,
			Burst:     3,
		},
		Tone: ToneConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			Timeout:   30 * time.Second,
			MaxLength: 500,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			MaxIssues:     20,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "", // resolved to ~/.prosecheck/history.db when enabled
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
