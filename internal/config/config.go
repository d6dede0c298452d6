package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	Data     DataConfig
	Resolver ResolverConfig
	Graph    GraphConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// DataConfig locates the reference datasets.
type DataConfig struct {
	Dir         string
	Borders     string
	Distances   string
	StateNames  string
	CurrentDate string
}

// ResolverConfig tunes country name resolution.
type ResolverConfig struct {
	OverridesPath       string
	Suggestions         int
	SuggestionCacheSize int
}

// GraphConfig describes connectivity to the graph database used by export.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ExportConfig governs the graph export worker pool.
type ExportConfig struct {
	Workers int
	Timeout time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultDataDir             = "."
	defaultCurrentDate         = "2020-12-31"
	defaultSuggestions         = 3
	defaultSuggestionCacheSize = 256
	defaultLoggingLevel        = "warn"
	defaultLoggingFormat       = "text"
	defaultGraphMaxSessions    = 10
	defaultExportWorkers       = 4
	defaultExportTimeout       = 2 * time.Minute
	dateLayout                 = "2006-01-02"
)

// Load reads configuration from environment variables, applying defaults.
// Variables from the given .env files (".env" when none is given) are
// loaded first without overriding the environment; missing files are fine.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load env file %s", f)
		}
	}

	cfg := Config{
		Data: DataConfig{
			Dir:         valueOrDefault("ROADTRIP_DATA_DIR", defaultDataDir),
			Borders:     os.Getenv("ROADTRIP_BORDERS"),
			Distances:   os.Getenv("ROADTRIP_CAPDIST"),
			StateNames:  os.Getenv("ROADTRIP_STATE_NAMES"),
			CurrentDate: valueOrDefault("ROADTRIP_CURRENT_DATE", defaultCurrentDate),
		},
		Resolver: ResolverConfig{
			OverridesPath:       os.Getenv("ROADTRIP_OVERRIDES"),
			Suggestions:         parseIntWithDefault("ROADTRIP_SUGGESTIONS", defaultSuggestions),
			SuggestionCacheSize: parseIntWithDefault("ROADTRIP_SUGGESTION_CACHE", defaultSuggestionCacheSize),
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
		},
		Export: ExportConfig{
			Workers: parseIntWithDefault("EXPORT_WORKERS", defaultExportWorkers),
			Timeout: defaultExportTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if _, err := time.Parse(dateLayout, cfg.Data.CurrentDate); err != nil {
		return Config{}, errors.Wrapf(err, "invalid ROADTRIP_CURRENT_DATE %q", cfg.Data.CurrentDate)
	}

	if v := os.Getenv("EXPORT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "invalid EXPORT_TIMEOUT")
		}
		cfg.Export.Timeout = d
	}

	if cfg.Resolver.Suggestions < 0 {
		return Config{}, errors.Newf("ROADTRIP_SUGGESTIONS must not be negative, got %d", cfg.Resolver.Suggestions)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
