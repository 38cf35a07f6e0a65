package validation

import (
	"time"

	"timeledger/internal/config"
	"timeledger/internal/domain"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator with default limits
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator with configured limits
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTimeRange validates the start and optional end of an entry.
// An end before the start is rejected rather than stored.
func (tev *TimeEntryValidator) ValidateTimeRange(startedAt time.Time, endedAt *time.Time) error {
	validationError := NewValidationError()

	if startedAt.IsZero() {
		validationError.AddRequiredError("started_at")
		return validationError
	}

	if endedAt != nil {
		if !tev.validator.IsValidTimeRange(startedAt, endedAt) {
			validationError.AddInvalidRangeError("ended_at", map[string]time.Time{
				"start": startedAt,
				"end":   *endedAt,
			}, "end time must not be before start time")
		} else if duration := endedAt.Sub(startedAt); !tev.validator.IsValidDuration(duration) {
			validationError.AddInvalidValueError("duration", duration,
				"must not exceed "+tev.validator.MaxEntryDuration().String())
		}
	}

	return validationError.OrNil()
}

// ValidateTimeEntry validates a complete domain time entry
func (tev *TimeEntryValidator) ValidateTimeEntry(entry domain.TimeEntry) error {
	validationError := NewValidationError()

	if entry.ID != "" {
		validationError.Merge(tev.ValidateTimeEntryID(entry.ID))
	}
	if entry.ProjectID != nil && !tev.validator.IsValidID(*entry.ProjectID) {
		validationError.AddInvalidFormatError("project_id", *entry.ProjectID, "UUID")
	}
	validationError.Merge(tev.ValidateTimeRange(entry.StartedAt, entry.EndedAt))

	return validationError.OrNil()
}

// ValidateEntryFilter rejects inverted start ranges
func (tev *TimeEntryValidator) ValidateEntryFilter(filter domain.EntryFilter) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidDateRange(filter.StartedFrom, filter.StartedBefore) {
		validationError.AddInvalidRangeError("date_range", map[string]interface{}{
			"from":   filter.StartedFrom,
			"before": filter.StartedBefore,
		}, "range end must not be before its start")
	}
	if filter.ProjectID != nil && !tev.validator.IsValidID(*filter.ProjectID) {
		validationError.AddInvalidFormatError("project_id", *filter.ProjectID, "UUID")
	}

	return validationError.OrNil()
}

// ValidateTimeEntryID validates a time entry identifier
func (tev *TimeEntryValidator) ValidateTimeEntryID(id string) error {
	if !tev.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("time_entry_id", id, "UUID")
		return validationError
	}
	return nil
}
