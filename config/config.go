// Package config loads service settings. Values are layered: built-in
// defaults, then an optional TOML file, then .env files, then the process
// environment, each overriding the one before.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
	"github.com/seo-optimizer/content-optimizer/enrichment"
	"github.com/seo-optimizer/content-optimizer/logging"
)

// Storage drivers
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logging     logging.Config    `toml:"logging"`
	Storage     StorageConfig     `toml:"storage"`
	Cache       CacheConfig       `toml:"cache"`
	Enrichment  EnrichmentConfig  `toml:"enrichment"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type ServerConfig struct {
	Port            string  `toml:"port"`
	GinMode         string  `toml:"gin_mode"`
	DevMode         bool    `toml:"dev_mode"`   // exposes detailed request statistics
	RateLimit       float64 `toml:"rate_limit"` // requests per second per client
	RateBurst       int     `toml:"rate_burst"`
	ShutdownTimeout string  `toml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver         string `toml:"driver"` // "memory" or "badger"
	DataDir        string `toml:"data_dir"`
	RetainStatsFor int    `toml:"retain_stats_months"`
}

type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
	RedisURL   string `toml:"redis_url"` // empty keeps the cache in memory
}

type EnrichmentConfig struct {
	Provider string `toml:"provider"`
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	Timeout  string `toml:"timeout"`
}

// MaintenanceConfig holds standard five-field cron schedules
type MaintenanceConfig struct {
	StatsCleanup   string `toml:"stats_cleanup"`
	StatisticsSave string `toml:"statistics_save"`
}

// NewDefaultConfig returns the configuration used when nothing overrides it
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8082",
			GinMode:         gin.ReleaseMode,
			RateLimit:       2,
			RateBurst:       5,
			ShutdownTimeout: "10s",
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Driver:         DriverMemory,
			DataDir:        "data",
			RetainStatsFor: 12,
		},
		Cache: CacheConfig{
			TTL:        "30m",
			MaxEntries: 1000,
		},
		Enrichment: EnrichmentConfig{
			Provider: enrichment.ProviderNone,
			Timeout:  "5s",
		},
		Maintenance: MaintenanceConfig{
			StatsCleanup:   "0 3 1 * *",
			StatisticsSave: "*/15 * * * *",
		},
	}
}

// Load reads configuration from path (skipped when empty), the .env files in
// the working directory and the environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	loadEnvFiles()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles prefers .env.development for local work and falls back to .env
func loadEnvFiles() {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using environment variables")
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}

	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.GinMode, "GIN_MODE")
	if v := os.Getenv("DEV_MODE"); v != "" {
		cfg.Server.DevMode = v == "true" || v == "1"
	}
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT"), 64); err == nil {
		cfg.Server.RateLimit = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_BURST")); err == nil {
		cfg.Server.RateBurst = v
	}

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.DataDir, "DATA_DIR")

	setString(&cfg.Cache.TTL, "CACHE_TTL")
	if v, err := strconv.Atoi(os.Getenv("CACHE_MAX_ENTRIES")); err == nil {
		cfg.Cache.MaxEntries = v
	}
	setString(&cfg.Cache.RedisURL, "REDIS_URL")

	setString(&cfg.Enrichment.Provider, "ENRICHMENT_PROVIDER")
	setString(&cfg.Enrichment.URL, "ENRICHMENT_URL")
	setString(&cfg.Enrichment.Model, "ENRICHMENT_MODEL")
	setString(&cfg.Enrichment.Timeout, "ENRICHMENT_TIMEOUT")
	setString(&cfg.Enrichment.APIKey, "ENRICHMENT_API_KEY")
	if cfg.Enrichment.APIKey == "" {
		switch cfg.Enrichment.Provider {
		case enrichment.ProviderAnthropic:
			setString(&cfg.Enrichment.APIKey, "ANTHROPIC_API_KEY")
		case enrichment.ProviderGemini:
			setString(&cfg.Enrichment.APIKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
		case enrichment.ProviderOpenAI:
			setString(&cfg.Enrichment.APIKey, "OPENAI_API_KEY")
		}
	}

	setString(&cfg.Maintenance.StatsCleanup, "STATS_CLEANUP_SCHEDULE")
	setString(&cfg.Maintenance.StatisticsSave, "STATISTICS_SAVE_SCHEDULE")
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if p, err := strconv.Atoi(c.Server.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	switch c.Server.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("server.gin_mode %q is not one of debug, release, test", c.Server.GinMode))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		errs = append(errs, errors.New("server.rate_limit and server.rate_burst must be positive"))
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverBadger:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of memory, badger", c.Storage.Driver))
	}
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir is required"))
	}

	if c.Cache.MaxEntries < 1 {
		errs = append(errs, errors.New("cache.max_entries must be positive"))
	}

	switch strings.ToLower(c.Enrichment.Provider) {
	case "", enrichment.ProviderNone, enrichment.ProviderAnthropic, enrichment.ProviderGemini, enrichment.ProviderOpenAI:
	case enrichment.ProviderHTTP:
		if c.Enrichment.URL == "" {
			errs = append(errs, errors.New("enrichment.url is required for the http provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("enrichment.provider %q is not supported", c.Enrichment.Provider))
	}

	for name, value := range map[string]string{
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"cache.ttl":               c.Cache.TTL,
		"enrichment.timeout":      c.Enrichment.Timeout,
	} {
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s %q is not a positive duration", name, value))
		}
	}

	for name, spec := range map[string]string{
		"maintenance.stats_cleanup":   c.Maintenance.StatsCleanup,
		"maintenance.statistics_save": c.Maintenance.StatisticsSave,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", name, spec, err))
		}
	}

	return errors.Join(errs...)
}

// ShutdownTimeout returns the parsed graceful shutdown timeout
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// CacheTTL returns the parsed analysis cache TTL
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// EnrichmentProvider converts the enrichment section for enrichment.New
func (c *Config) EnrichmentProvider() enrichment.Config {
	timeout, _ := time.ParseDuration(c.Enrichment.Timeout)
	return enrichment.Config{
		Provider: strings.ToLower(c.Enrichment.Provider),
		URL:      c.Enrichment.URL,
		APIKey:   c.Enrichment.APIKey,
		Model:    c.Enrichment.Model,
		Timeout:  timeout,
	}
}
