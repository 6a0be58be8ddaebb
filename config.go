package splitkit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the environment-driven SDK bootstrap. It covers only ambient
// concerns; experiment configuration always comes from the datafile.
type Config struct {
	// DatafilePath points at a JSON or YAML datafile on disk. The format is
	// inferred from the extension.
	DatafilePath string `env:"SPLITKIT_DATAFILE"`
	LogLevel     string `env:"SPLITKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"SPLITKIT_LOG_FORMAT" envDefault:"json"`
	LogOutput    io.Writer
}

// LoadConfig parses Config from the process environment. Explicit .env paths
// are loaded first and must exist; with no arguments a ./.env file is loaded
// when present and silently skipped otherwise.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, err
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromEnv builds a client from LoadConfig: it reads the datafile named by
// SPLITKIT_DATAFILE and wires a logger honoring SPLITKIT_LOG_LEVEL and
// SPLITKIT_LOG_FORMAT. Options are applied after the defaults, so an
// explicit WithLogger still wins.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatafilePath == "" {
		return nil, ErrDatafileNotConfigured
	}

	raw, err := os.ReadFile(cfg.DatafilePath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithLogger(log)}, opts...)

	switch filepath.Ext(cfg.DatafilePath) {
	case ".yaml", ".yml":
		return NewYAML(raw, opts...)
	default:
		return New(raw, opts...)
	}
}

func newLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, errors.Join(ErrInvalidLogLevel, fmt.Errorf("level %q", cfg.LogLevel))
	}

	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case "json", "":
		return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	default:
		return nil, errors.Join(ErrInvalidLogFormat, fmt.Errorf("format %q", cfg.LogFormat))
	}
}
