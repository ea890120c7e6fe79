// Package config loads stlmeasure settings from defaults, an optional YAML
// file and STLMEASURE_* environment variables, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/watcher"
)

const envPrefix = "STLMEASURE_"

// Output formats understood by the CLI
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds all application configuration
type Config struct {
	// Density multiplies volume to produce weight, in g/cm³
	Density float64 `yaml:"density" validate:"gt=0"`
	// Strict rejects malformed ASCII facets instead of skipping them
	Strict bool `yaml:"strict"`
	// Output selects the report format
	Output string `yaml:"output" validate:"oneof=text json yaml"`
	// Jobs bounds how many files are measured concurrently
	Jobs int `yaml:"jobs" validate:"gte=1,lte=256"`

	Log    Log    `yaml:"log"`
	Fetch  Fetch  `yaml:"fetch"`
	Server Server `yaml:"server"`
	Watch  Watch  `yaml:"watch"`
}

// Log configures the zap logger
type Log struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Fetch configures loading inputs over HTTP
type Fetch struct {
	Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRetries     uint          `yaml:"maxRetries" validate:"lte=20"`
	MaxElapsedTime time.Duration `yaml:"maxElapsedTime" validate:"gt=0"`
	// MaxBytes caps the size of any single input
	MaxBytes int64 `yaml:"maxBytes" validate:"gt=84"`
}

// Server configures the HTTP measurement service
type Server struct {
	Listen          string        `yaml:"listen" validate:"required"`
	ReadTimeout     time.Duration `yaml:"readTimeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"gt=0"`
}

// Watch configures the file watcher
type Watch struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Density: analysis.DefaultDensity,
		Output:  OutputText,
		Jobs:    4,
		Log: Log{
			Level: "info",
		},
		Fetch: Fetch{
			Timeout:        30 * time.Second,
			MaxRetries:     3,
			MaxElapsedTime: 2 * time.Minute,
			MaxBytes:       512 << 20,
		},
		Server: Server{
			Listen:          ":8080",
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Watch: Watch{
			Debounce: watcher.DefaultDebounce,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envFloat("DENSITY", &c.Density))
	collect(envBool("STRICT", &c.Strict))
	envString("OUTPUT", &c.Output)
	collect(envInt("JOBS", &c.Jobs))
	envString("LOG_LEVEL", &c.Log.Level)
	collect(envBool("LOG_DEVELOPMENT", &c.Log.Development))
	collect(envDuration("FETCH_TIMEOUT", &c.Fetch.Timeout))
	collect(envUint("FETCH_MAX_RETRIES", &c.Fetch.MaxRetries))
	collect(envDuration("FETCH_MAX_ELAPSED", &c.Fetch.MaxElapsedTime))
	collect(envInt64("FETCH_MAX_BYTES", &c.Fetch.MaxBytes))
	envString("LISTEN", &c.Server.Listen)
	collect(envDuration("WATCH_DEBOUNCE", &c.Watch.Debounce))

	return errors.Join(errs...)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envString(key string, target *string) {
	if value, ok := os.LookupEnv(envPrefix + key); ok && value != "" {
		*target = value
	}
}

func envFloat(key string, target *float64) error {
	return envParse(key, target, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func envInt(key string, target *int) error {
	return envParse(key, target, strconv.Atoi)
}

func envInt64(key string, target *int64) error {
	return envParse(key, target, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func envUint(key string, target *uint) error {
	return envParse(key, target, func(s string) (uint, error) {
		v, err := strconv.ParseUint(s, 10, 0)
		return uint(v), err
	})
}

func envBool(key string, target *bool) error {
	return envParse(key, target, strconv.ParseBool)
}

func envDuration(key string, target *time.Duration) error {
	return envParse(key, target, time.ParseDuration)
}

func envParse[T any](key string, target *T, parse func(string) (T, error)) error {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return nil
	}
	parsed, err := parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s%s=%q: %w", envPrefix, key, value, err)
	}
	*target = parsed
	return nil
}
