package config

import (
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config      *Config
	dotEnvFiles []string
}

// NewLoader creates a new configuration loader. The given .env files are
// read before the environment; with none, ".env" in the working directory
// is tried.
func NewLoader(dotEnvFiles ...string) *Loader {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{".env"}
	}
	return &Loader{
		config:      NewConfig(),
		dotEnvFiles: dotEnvFiles,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from .env files
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := loadDotEnv(l.dotEnvFiles); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadDotEnv reads each existing file; variables already in the
// environment win over file values.
func loadDotEnv(files []string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{Field: "dotenv", Message: err.Error()}
		}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string

	Timezone     *string
	TickInterval *time.Duration

	Color *string

	Timeout *time.Duration

	LogLevel  *string
	LogFormat *string
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.Timezone != nil {
		config.Calendar.Timezone = *o.Timezone
	}
	if o.TickInterval != nil {
		config.Timer.TickInterval = *o.TickInterval
	}
	if o.Color != nil {
		config.Display.Color = *o.Color
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.LogLevel != nil {
		config.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		config.Logging.Format = *o.LogFormat
	}
}
