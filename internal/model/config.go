package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete bluecite configuration
type Config struct {
	Extract      ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Format       FormatConfig      `yaml:"format" mapstructure:"format"`
	Lookup       LookupConfig      `yaml:"lookup" mapstructure:"lookup"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Log          LogConfig         `yaml:"log" mapstructure:"log"`
}

// ExtractConfig controls what the extractor reports besides citations
type ExtractConfig struct {
	DetectClaims bool `yaml:"detect_claims" mapstructure:"detect_claims"` // Run unsourced claim detection
}

// FormatConfig controls citation rendering
type FormatConfig struct {
	LawReviewStyle bool `yaml:"law_review_style" mapstructure:"law_review_style"` // Italicize case names and end with a period
}

// LookupConfig configures the external databases used to complete citations
type LookupConfig struct {
	Enabled            bool          `yaml:"enabled" mapstructure:"enabled"`
	Timeout            time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent          string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots      bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	CourtListenerURL   string        `yaml:"courtlistener_url" mapstructure:"courtlistener_url"`
	CourtListenerToken string        `yaml:"courtlistener_token,omitempty" mapstructure:"courtlistener_token"`
	CrossRefURL        string        `yaml:"crossref_url" mapstructure:"crossref_url"`
	OpenLibraryURL     string        `yaml:"openlibrary_url" mapstructure:"openlibrary_url"`
	ECFRURL            string        `yaml:"ecfr_url" mapstructure:"ecfr_url"`
	HTTPProxy          string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy         string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy            string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// LLMConfig configures the optional model used to propose missing citation fields
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" disables, "openai"
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig configures the lookup result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers"`               // Documents processed in parallel by batch
	LookupWorkers int `yaml:"lookup_workers" mapstructure:"lookup_workers"` // Concurrent lookups per document
}

// RateLimitConfig limits requests per lookup host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format        string `yaml:"format" mapstructure:"format"` // json, yaml, markdown
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error; --verbose raises warn to info
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cacheDir := filepath.Join(os.TempDir(), "bluecite-cache")
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".bluecite", "cache")
	}

	return &Config{
		Extract: ExtractConfig{
			DetectClaims: true,
		},
		Format: FormatConfig{
			LawReviewStyle: true,
		},
		Lookup: LookupConfig{
			Enabled:          false,
			Timeout:          30 * time.Second,
			UserAgent:        "Bluecite/0.1 (Legal Research Tool)",
			MaxBodyBytes:     2_000_000,
			RespectRobots:    true,
			CourtListenerURL: "https://www.courtlistener.com/api/rest/v3",
			CrossRefURL:      "https://api.crossref.org/works",
			OpenLibraryURL:   "https://openlibrary.org",
			ECFRURL:          "https://www.ecfr.gov/api/versioner/v1",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskDir:   cacheDir,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			LookupWorkers: 8,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Output: OutputConfig{
			Format:        "json",
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
