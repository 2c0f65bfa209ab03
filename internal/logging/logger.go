package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

const (
	// EnvFormat selects the handler: json or text.
	EnvFormat = "LOG_FORMAT"
	// EnvLevel is the minimum level: debug, info, warn or error.
	EnvLevel = "LOG_LEVEL"
	// EnvSource adds the caller's file and line to each record when set to 1.
	EnvSource = "LOG_SOURCE"

	appName  = "ccm-admin"
	redacted = "[redacted]"
)

var (
	formats = []string{"json", "text"}

	levels = map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}

	// Attribute keys whose values never reach the log output. Login and user
	// editor forms carry these.
	sensitiveKeys = []string{"password", "password_confirm", "confirm_password", "password_hash", "csrf", "token", "session", "cookie"}
)

type Config struct {
	Format    string
	Level     slog.Level
	AddSource bool
}

type BootstrapOptions struct {
	Command string
	Writer  io.Writer
}

func DefaultConfig() Config {
	return Config{Format: "json", Level: slog.LevelInfo}
}

// LoadConfigFromEnv reads LOG_FORMAT, LOG_LEVEL and LOG_SOURCE. Unset values
// fall back to DefaultConfig; unknown values are errors.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if raw := normalize(os.Getenv(EnvFormat)); raw != "" {
		if !slices.Contains(formats, raw) {
			return Config{}, fmt.Errorf("%s must be one of: %s", EnvFormat, strings.Join(formats, ", "))
		}
		cfg.Format = raw
	}
	if raw := normalize(os.Getenv(EnvLevel)); raw != "" {
		level, ok := levels[raw]
		if !ok {
			return Config{}, fmt.Errorf("%s must be one of: debug, info, warn, error", EnvLevel)
		}
		cfg.Level = level
	}
	cfg.AddSource = normalize(os.Getenv(EnvSource)) == "1"
	return cfg, nil
}

// NewLogger builds a logger tagged with the app name and the cobra command
// path. Writer defaults to stdout.
func NewLogger(cfg Config, writer io.Writer, command string) *slog.Logger {
	if writer == nil {
		writer = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:       cfg.Level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactSensitive,
	}

	var handler slog.Handler = slog.NewJSONHandler(writer, opts)
	if normalize(cfg.Format) == "text" {
		handler = slog.NewTextHandler(writer, opts)
	}

	if command = strings.TrimSpace(command); command == "" {
		command = appName
	}
	return slog.New(handler).With("app", appName, "command", command)
}

// BootstrapFromEnv installs a logger built from the environment as the slog default.
func BootstrapFromEnv(opts BootstrapOptions) (*slog.Logger, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, opts.Writer, opts.Command)
	slog.SetDefault(logger)
	return logger, nil
}

func redactSensitive(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if slices.Contains(sensitiveKeys, strings.ToLower(a.Key)) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
