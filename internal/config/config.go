package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Service    ServiceConfig
	EventRules EventRulesConfig
	AI         AIConfig
	Errors     ErrorsConfig
	Metrics    MetricsConfig
	Logging    LoggingConfig
}

// ServiceConfig holds the cycle loop and collaborator parameters.
type ServiceConfig struct {
	Interval  time.Duration
	FeedPath  string
	OutputDir string
}

// EventRulesConfig tunes the next-event resolution rules.
type EventRulesConfig struct {
	EndOfDayCutoff      string
	NextEventDelayHours float64
}

// AIConfig controls the fixture-name enrichment gateway.
type AIConfig struct {
	Enabled             bool
	Model               string
	APIKey              string
	MaxLength           int
	CacheEnabled        bool
	RetryMinutesOnQuota int
	FlagsEnabled        bool
	PromptTemplate      string
}

// ErrorsConfig bounds the cross-cycle error aggregator.
type ErrorsConfig struct {
	MaxErrors int
}

// MetricsConfig holds the Prometheus listener parameters.
type MetricsConfig struct {
	Port string
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

const (
	defaultInterval       = 5 * time.Minute
	defaultOutputDir      = "output"
	defaultCutoff         = "23:00"
	defaultDelayHours     = 1.0
	defaultModel          = "gpt-4o-mini"
	defaultMaxLength      = 16
	defaultRetryMinutes   = 10
	defaultMaxErrors      = 25
	defaultMetricsPort    = "9090"
	defaultLogFormat      = "json"
	defaultCutoffTimeForm = "15:04"
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided.
func Load() (Config, error) {
	cfg := Config{
		Service: ServiceConfig{
			Interval:  defaultInterval,
			FeedPath:  os.Getenv("EVENTS_FEED_PATH"),
			OutputDir: getEnv("EVENTS_OUTPUT_DIR", defaultOutputDir),
		},
		EventRules: EventRulesConfig{
			EndOfDayCutoff:      defaultCutoff,
			NextEventDelayHours: defaultDelayHours,
		},
		AI: AIConfig{
			Model:               getEnv("AI_MODEL", defaultModel),
			APIKey:              os.Getenv("AI_API_KEY"),
			MaxLength:           defaultMaxLength,
			CacheEnabled:        true,
			RetryMinutesOnQuota: defaultRetryMinutes,
			PromptTemplate:      os.Getenv("AI_PROMPT_TEMPLATE"),
		},
		Errors: ErrorsConfig{
			MaxErrors: defaultMaxErrors,
		},
		Metrics: MetricsConfig{
			Port: getEnv("METRICS_PORT", defaultMetricsPort),
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
	}

	if v := os.Getenv("SERVICE_INTERVAL_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVICE_INTERVAL_SECONDS: %w", err)
		}
		cfg.Service.Interval = d
	}

	if v := os.Getenv("EVENT_RULES_END_OF_DAY_CUTOFF"); v != "" {
		if _, err := time.Parse(defaultCutoffTimeForm, v); err != nil {
			return Config{}, fmt.Errorf("invalid EVENT_RULES_END_OF_DAY_CUTOFF: must be HH:MM")
		}
		cfg.EventRules.EndOfDayCutoff = v
	}

	if v := os.Getenv("EVENT_RULES_NEXT_EVENT_DELAY_HOURS"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours < 0 {
			return Config{}, fmt.Errorf("invalid EVENT_RULES_NEXT_EVENT_DELAY_HOURS: must be a non-negative number")
		}
		cfg.EventRules.NextEventDelayHours = hours
	}

	if v := os.Getenv("AI_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_ENABLED: %w", err)
		}
		cfg.AI.Enabled = enabled
	}

	if v := os.Getenv("AI_MAX_LENGTH"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_MAX_LENGTH: %w", err)
		}
		cfg.AI.MaxLength = n
	}

	if v := os.Getenv("AI_CACHE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_CACHE_ENABLED: %w", err)
		}
		cfg.AI.CacheEnabled = enabled
	}

	if v := os.Getenv("AI_RETRY_MINUTES_ON_QUOTA"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_RETRY_MINUTES_ON_QUOTA: %w", err)
		}
		cfg.AI.RetryMinutesOnQuota = n
	}

	if v := os.Getenv("AI_FLAGS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AI_FLAGS_ENABLED: %w", err)
		}
		cfg.AI.FlagsEnabled = enabled
	}

	if v := os.Getenv("ERROR_AGGREGATION_MAX_ERRORS"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ERROR_AGGREGATION_MAX_ERRORS: %w", err)
		}
		cfg.Errors.MaxErrors = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
