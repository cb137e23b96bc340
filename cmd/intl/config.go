package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/intl/pkg/db"
	"github.com/dmitrymomot/intl/pkg/i18n"
	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/messages"
	"github.com/dmitrymomot/intl/pkg/redis"
	"github.com/dmitrymomot/intl/pkg/sanitizer"
)

// Config is read from the environment. PostgreSQL settings (db.Config)
// are parsed separately, only by commands that need a database.
type Config struct {
	Log logger.Config

	MessagesDir string   `env:"INTL_MESSAGES_DIR" envDefault:"./locales"`
	Sources     []string `env:"INTL_SOURCES" envSeparator:"," envDefault:"fs"`

	DefaultLocale  string `env:"INTL_DEFAULT_LOCALE" envDefault:"en"`
	FallbackLocale string `env:"INTL_FALLBACK_LOCALE" envDefault:"en"`
	// "error" or "raw".
	MissingValues string `env:"INTL_MISSING_VALUES" envDefault:"error"`
	// One of the sanitizer policy names.
	MarkupPolicy        string `env:"INTL_MARKUP_POLICY" envDefault:"inline"`
	TimeZone            string `env:"INTL_TIME_ZONE"`
	FormatsFile         string `env:"INTL_FORMATS_FILE"`
	DescriptorCacheSize int    `env:"INTL_DESCRIPTOR_CACHE_SIZE" envDefault:"1024"`

	RedisCatalogPrefix string `env:"INTL_REDIS_PREFIX" envDefault:"intl:catalog:"`
	PostgresTable      string `env:"INTL_POSTGRES_TABLE" envDefault:"translations"`

	Server ServerConfig
	Redis  redis.Config
	S3     messages.S3Config
}

// ServerConfig holds the settings of "intl serve".
type ServerConfig struct {
	Addr            string        `env:"INTL_HTTP_ADDR" envDefault:":8080"`
	RenderCacheTTL  time.Duration `env:"INTL_RENDER_CACHE_TTL" envDefault:"5m"`
	RenderCacheSize int           `env:"INTL_RENDER_CACHE_SIZE" envDefault:"4096"`
	// Cron expression or descriptor ("@every 5m"); empty disables reloads.
	ReloadSchedule  string        `env:"INTL_RELOAD_SCHEDULE"`
	ShutdownTimeout time.Duration `env:"INTL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(errLoadConfig, err)
	}
	return cfg, nil
}

func loadDBConfig() (db.Config, error) {
	var cfg db.Config
	if err := env.Parse(&cfg); err != nil {
		return db.Config{}, errors.Join(errLoadConfig, err)
	}
	return cfg, nil
}

// translatorConfig builds the locale-independent part of every translator
// config: callers fill in Locale and, per call, Namespace.
func (c Config) translatorConfig(catalog *messages.Catalog, log *slog.Logger) (i18n.Config, error) {
	cfg := i18n.Config{
		Messages:       catalog,
		FallbackLocale: c.FallbackLocale,
		Logger:         log,
	}

	missing, err := parseMissingValues(c.MissingValues)
	if err != nil {
		return i18n.Config{}, err
	}
	cfg.MissingValues = missing

	if cfg.MarkupPolicy, err = sanitizer.Policy(c.MarkupPolicy); err != nil {
		return i18n.Config{}, err
	}

	if c.TimeZone != "" {
		if cfg.TimeZone, err = time.LoadLocation(c.TimeZone); err != nil {
			return i18n.Config{}, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
		}
	}

	if c.FormatsFile != "" {
		if cfg.Formats, err = readFormats(c.FormatsFile); err != nil {
			return i18n.Config{}, err
		}
	}

	if c.DescriptorCacheSize > 0 {
		cfg.DescriptorCache = i18n.NewDescriptorCache(c.DescriptorCacheSize)
	}
	return cfg, nil
}

func parseMissingValues(s string) (icu.MissingValuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return icu.MissingValueError, nil
	case "raw":
		return icu.MissingValueRaw, nil
	default:
		return 0, fmt.Errorf("%w: %q", errMissingValues, s)
	}
}

// readFormats decodes named formats from a YAML or JSON file.
func readFormats(path string) (icu.Formats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return icu.Formats{}, fmt.Errorf("read formats: %w", err)
	}
	var formats icu.Formats
	if err := yaml.Unmarshal(data, &formats); err != nil {
		return icu.Formats{}, fmt.Errorf("parse formats %q: %w", path, err)
	}
	return formats, nil
}
