package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itsyanis/1Day1Quote/internal/infra/sources"
	"github.com/itsyanis/1Day1Quote/internal/infra/store"
	"github.com/itsyanis/1Day1Quote/internal/usecase"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`

	QuoteSource  sources.QuoteConfig `yaml:"quote_source"`
	Fields       validate.Fields     `yaml:"fields"`
	WikipediaURL string              `yaml:"wikipedia_url"`

	SourceTimeout time.Duration `yaml:"source_timeout"`
	LowWaterMark  int           `yaml:"low_water_mark"`
	TargetSize    int           `yaml:"target_size"`
	BatchSize     int           `yaml:"batch_size"`
	StoreFetched  bool          `yaml:"store_fetched"`
	PortraitWidth int           `yaml:"portrait_width"`
	// PreloadEvery schedules background preloads; zero disables the timer.
	PreloadEvery time.Duration `yaml:"preload_every"`

	Store StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	// Backend is one of "file", "redis" or "memory".
	Backend string            `yaml:"backend"`
	Dir     string            `yaml:"dir"`
	Redis   store.RedisConfig `yaml:"redis"`
}

func Default() Config {
	s := usecase.DefaultSettings()
	return Config{
		Addr:          ":8080",
		LogLevel:      "info",
		QuoteSource:   sources.QuoteConfig{URL: sources.DefaultQuoteURL, APIKeyHeader: "X-Api-Key"},
		Fields:        s.Fields,
		WikipediaURL:  sources.DefaultWikipediaURL,
		SourceTimeout: s.SourceTimeout,
		LowWaterMark:  s.LowWaterMark,
		TargetSize:    s.TargetSize,
		BatchSize:     s.BatchSize,
		PortraitWidth: s.PortraitWidth,
		Store: StoreConfig{
			Backend: "file",
			Dir:     ".quote-cache",
			Redis:   store.RedisConfig{Addr: "localhost:6379"},
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("QUOTE_ADDR", &c.Addr)
	str("QUOTE_LOG_LEVEL", &c.LogLevel)
	str("QUOTE_API_URL", &c.QuoteSource.URL)
	str("QUOTE_API_KEY", &c.QuoteSource.APIKey)
	str("QUOTE_API_KEY_HEADER", &c.QuoteSource.APIKeyHeader)
	str("QUOTE_TEXT_FIELD", &c.Fields.Text)
	str("QUOTE_AUTHOR_FIELD", &c.Fields.Author)
	str("QUOTE_WIKIPEDIA_URL", &c.WikipediaURL)
	str("QUOTE_STORE", &c.Store.Backend)
	str("QUOTE_STORE_DIR", &c.Store.Dir)
	str("QUOTE_REDIS_ADDR", &c.Store.Redis.Addr)
	str("QUOTE_REDIS_PASSWORD", &c.Store.Redis.Password)

	for key, dst := range map[string]*int{
		"QUOTE_LOW_WATER_MARK": &c.LowWaterMark,
		"QUOTE_TARGET_SIZE":    &c.TargetSize,
		"QUOTE_BATCH_SIZE":     &c.BatchSize,
		"QUOTE_PORTRAIT_WIDTH": &c.PortraitWidth,
		"QUOTE_REDIS_DB":       &c.Store.Redis.DB,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	for key, dst := range map[string]*time.Duration{
		"QUOTE_SOURCE_TIMEOUT": &c.SourceTimeout,
		"QUOTE_PRELOAD_EVERY":  &c.PreloadEvery,
	} {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	for key, dst := range map[string]*bool{
		"QUOTE_STORE_FETCHED": &c.StoreFetched,
		"QUOTE_REDIS_TLS":     &c.Store.Redis.UseTLS,
	} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Fields.Text == "" || c.Fields.Author == "" {
		errs = append(errs, errors.New("fields.text and fields.author are required"))
	}
	if c.SourceTimeout <= 0 {
		errs = append(errs, errors.New("source_timeout must be positive"))
	}
	if c.PreloadEvery < 0 {
		errs = append(errs, errors.New("preload_every must not be negative"))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, errors.New("batch_size must be positive"))
	}
	if c.LowWaterMark < 0 || c.TargetSize < 0 {
		errs = append(errs, errors.New("low_water_mark and target_size must not be negative"))
	}
	switch c.Store.Backend {
	case "file":
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required for the file backend"))
		}
	case "redis":
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) Settings() usecase.Settings {
	return usecase.Settings{
		Fields:        c.Fields,
		SourceTimeout: c.SourceTimeout,
		LowWaterMark:  c.LowWaterMark,
		TargetSize:    c.TargetSize,
		BatchSize:     c.BatchSize,
		StoreFetched:  c.StoreFetched,
		PortraitWidth: c.PortraitWidth,
	}
}
