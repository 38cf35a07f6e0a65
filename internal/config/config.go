package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the time ledger
type Config struct {
	Database    DatabaseConfig
	Calendar    CalendarConfig
	Timer       TimerConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Logging     LoggingConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TL_DB_DIR"`
	Filename       string        `env:"TL_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TL_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"TL_DB_DIR_PERMISSIONS"`
}

// CalendarConfig selects the location used to cut days, weeks and months
type CalendarConfig struct {
	Timezone string `env:"TL_TIMEZONE"`
}

// TimerConfig holds active timer configuration
type TimerConfig struct {
	TickInterval time.Duration `env:"TL_TIMER_TICK"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMaxLength int           `env:"TL_VALIDATION_PROJECT_NAME_MAX"`
	MaxEntryDuration     time.Duration `env:"TL_VALIDATION_MAX_ENTRY_DURATION"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"TL_DISPLAY_DATE_FORMAT"`
	TimeFormat string `env:"TL_DISPLAY_TIME_FORMAT"`
	Color      string `env:"TL_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TL_APP_TIMEOUT"`
}

// LoggingConfig holds structured logging configuration
type LoggingConfig struct {
	Level  string `env:"TL_LOG_LEVEL"`
	Format string `env:"TL_LOG_FORMAT"`
}

// Color modes accepted by DisplayConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".timeledger"),
			Filename:       "ledger.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0o755,
		},
		Calendar: CalendarConfig{
			Timezone: "Local",
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
		},
		Validation: ValidationConfig{
			ProjectNameMaxLength: 120,
			MaxEntryDuration:     7 * 24 * time.Hour,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
			TimeFormat: "15:04",
			Color:      ColorAuto,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// Location resolves the configured calendar timezone
func (c *Config) Location() (*time.Location, error) {
	switch c.Calendar.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Timezone)
}

// LoadFromEnvironment loads configuration from TL_* environment variables.
// A variable that is set but malformed is reported as a ConfigError.
func (c *Config) LoadFromEnvironment() error {
	env := envReader{}

	env.str("TL_DB_DIR", &c.Database.Dir)
	env.str("TL_DB_FILENAME", &c.Database.Filename)
	env.duration("TL_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout)
	env.octal("TL_DB_DIR_PERMISSIONS", &c.Database.DirPermissions)

	env.str("TL_TIMEZONE", &c.Calendar.Timezone)
	env.duration("TL_TIMER_TICK", &c.Timer.TickInterval)

	env.integer("TL_VALIDATION_PROJECT_NAME_MAX", &c.Validation.ProjectNameMaxLength)
	env.duration("TL_VALIDATION_MAX_ENTRY_DURATION", &c.Validation.MaxEntryDuration)

	env.str("TL_DISPLAY_DATE_FORMAT", &c.Display.DateFormat)
	env.str("TL_DISPLAY_TIME_FORMAT", &c.Display.TimeFormat)
	env.str("TL_DISPLAY_COLOR", &c.Display.Color)

	env.duration("TL_APP_TIMEOUT", &c.Application.Timeout)

	env.str("TL_LOG_LEVEL", &c.Logging.Level)
	env.str("TL_LOG_FORMAT", &c.Logging.Format)

	return env.err
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "calendar.timezone", Message: "unknown timezone " + strconv.Quote(c.Calendar.Timezone)}
	}

	if c.Timer.TickInterval < 10*time.Millisecond {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be at least 10ms"}
	}

	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.MaxEntryDuration <= 0 {
		return &ConfigError{Field: "validation.max_entry_duration", Message: "max entry duration must be positive"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &ConfigError{Field: "display.color", Message: "color must be one of auto, always, never"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// envReader copies set environment variables into config fields and keeps
// the first parse failure.
type envReader struct {
	err error
}

func (r *envReader) lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (r *envReader) fail(key, value, want string) {
	if r.err == nil {
		r.err = &ConfigError{Field: key, Message: "invalid " + want + " " + strconv.Quote(value)}
	}
}

func (r *envReader) str(key string, dst *string) {
	if value, ok := r.lookup(key); ok {
		*dst = value
	}
}

func (r *envReader) duration(key string, dst *time.Duration) {
	if value, ok := r.lookup(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			r.fail(key, value, "duration")
			return
		}
		*dst = d
	}
}

func (r *envReader) integer(key string, dst *int) {
	if value, ok := r.lookup(key); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			r.fail(key, value, "integer")
			return
		}
		*dst = n
	}
}

func (r *envReader) octal(key string, dst *uint32) {
	if value, ok := r.lookup(key); ok {
		p, err := strconv.ParseUint(value, 8, 32)
		if err != nil {
			r.fail(key, value, "permission mode")
			return
		}
		*dst = uint32(p)
	}
}
