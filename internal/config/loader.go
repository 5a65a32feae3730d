package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "DUO_"
	// ConfigFileEnv names an optional YAML file applied before the environment.
	ConfigFileEnv = "DUO_CONFIG_FILE"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	environ map[string]string
}

// NewLoader creates a new configuration loader reading the process environment
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		environ: env.ToMap(os.Environ()),
	}
}

// NewLoaderWithEnv creates a loader that reads variables from environ instead
// of the process environment.
func NewLoaderWithEnv(environ map[string]string) *Loader {
	return &Loader{
		config:  NewConfig(),
		environ: environ,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file named by DUO_CONFIG_FILE
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if path := l.environ[ConfigFileEnv]; path != "" {
		if err := l.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(l.config, env.Options{
		Prefix:      EnvPrefix,
		Environment: l.environ,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// Server overrides
	Addr         *string
	Compression  *bool
	PollInterval *time.Duration

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Application overrides
	Timeout *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}
	if overrides.Compression != nil {
		config.Server.Compression = *overrides.Compression
	}
	if overrides.PollInterval != nil {
		config.UI.PollInterval = *overrides.PollInterval
	}

	if overrides.LogLevel != nil {
		config.Log.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Log.Format = *overrides.LogFormat
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
}
