package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultSessionLifetime = 12 * time.Hour
	defaultPageSize        = 25
	maxPageSize            = 200
	defaultLocale          = "en-US"
	defaultMigrationsPath  = "file://db/migrations"

	defaultConsoleMaxRows = 200
	defaultConsoleTimeout = 5 * time.Second
)

type Config struct {
	DatabaseURL      string
	HTTPAddr         string
	MetricsAddr      string
	AuthCookieSecure bool
	SessionLifetime  time.Duration
	PageSize         int
	DefaultLocale    string
	AppTypesFile     string
	MigrationsPath   string
	ConsoleEnabled   bool
	ConsoleMaxRows   int
	ConsoleTimeout   time.Duration
}

type LoadOptions struct {
	RequireDatabaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadOptionalDB() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: false})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		HTTPAddr:         getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:      strings.TrimSpace(os.Getenv("METRICS_ADDR")),
		AuthCookieSecure: getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		SessionLifetime:  getenvDurationDefault("SESSION_LIFETIME", defaultSessionLifetime),
		PageSize:         getenvIntDefault("PAGE_SIZE", defaultPageSize),
		DefaultLocale:    strings.TrimSpace(getenvDefault("DEFAULT_LOCALE", defaultLocale)),
		AppTypesFile:     strings.TrimSpace(os.Getenv("APP_TYPES_FILE")),
		MigrationsPath:   getenvDefault("MIGRATIONS_PATH", defaultMigrationsPath),
		ConsoleEnabled:   getenvBoolDefault("CONSOLE_ENABLED", true),
		ConsoleMaxRows:   getenvIntDefault("CONSOLE_MAX_ROWS", defaultConsoleMaxRows),
		ConsoleTimeout:   getenvDurationDefault("CONSOLE_TIMEOUT", defaultConsoleTimeout),
	}

	if cfg.PageSize > maxPageSize {
		cfg.PageSize = maxPageSize
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
