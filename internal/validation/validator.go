package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"timeledger/internal/config"
)

const (
	defaultProjectNameMaxLength = 120
	defaultMaxEntryDuration     = 7 * 24 * time.Hour
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks that the trimmed string has between min and max runes
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidProjectNameLength checks a project name against the configured maximum
func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.ProjectNameMaxLength())
}

// IsValidTimeRange checks that an end time, when present, is not before the start.
// Zero-length entries are allowed.
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true
	}
	return !endTime.Before(startTime)
}

// IsValidDuration checks that a completed entry is not longer than the configured maximum
func (v *Validator) IsValidDuration(duration time.Duration) bool {
	return duration >= 0 && duration <= v.MaxEntryDuration()
}

// IsValidID checks that an identifier is a UUID
func (v *Validator) IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsValidDateRange checks that an open or closed range is not inverted
func (v *Validator) IsValidDateRange(startTime, endTime *time.Time) bool {
	if startTime == nil || endTime == nil {
		return true
	}
	return !endTime.Before(*startTime)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ProjectNameMaxLength returns the configured maximum project name length or the default
func (v *Validator) ProjectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return defaultProjectNameMaxLength
}

// MaxEntryDuration returns the configured maximum entry duration or the default
func (v *Validator) MaxEntryDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxEntryDuration
	}
	return defaultMaxEntryDuration
}
