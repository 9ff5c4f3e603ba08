// Package config loads stepkit.yaml.
//
// Loading follows three steps: defaults from struct tags, values from the
// file (with ${VAR} / ${VAR:default} environment expansion), then
// validation of the merged result.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "stepkit.yaml"

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Log       LogConfig      `yaml:"log"`
	Variables map[string]any `yaml:"variables"` // Default variables for resolving references
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" default:":8080" validate:"required,listen_addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout" default:"10s" validate:"gte=1s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"text" validate:"oneof=text json"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// listen_addr validates "host:port" where host may be empty
	validate.RegisterValidation("listen_addr", func(fl validator.FieldLevel) bool {
		_, port, err := net.SplitHostPort(fl.Field().String())
		if err != nil || port == "" {
			return false
		}
		_, err = net.LookupPort("tcp", port)
		return err == nil
	})
}

// Default returns a config holding only default values.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply default values: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path. When optional is true a missing file
// yields the defaults instead of an error.
func Load(path string, optional bool) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config from %q: %w", path, err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return cfg, nil
}

// Parse merges the YAML document data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if len(raw) > 0 {
		expanded, err := expandEnv(raw)
		if err != nil {
			return fmt.Errorf("failed to expand environment variables: %w", err)
		}

		merged, err := yaml.Marshal(expanded)
		if err != nil {
			return fmt.Errorf("failed to apply config values: %w", err)
		}
		if err := yaml.Unmarshal(merged, cfg); err != nil {
			return fmt.Errorf("failed to apply config values: %w", err)
		}
	}

	return cfg.Validate()
}

// Validate checks the config against its validate tags.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMessages []string
			for _, fieldErr := range validationErrors {
				errMessages = append(errMessages, fmt.Sprintf(
					"field '%s' failed validation: %s (rule: %s)",
					fieldErr.Namespace(),
					fieldErr.Error(),
					fieldErr.Tag(),
				))
			}
			return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errMessages, "\n  - "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// SlogLevel returns the slog level named by Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
