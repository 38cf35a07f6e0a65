package domain

import (
	"time"

	"timeledger/internal/timecalc"
)

// TimeEntry represents a time tracking entry in the domain model.
// This is a pure domain model without database-specific concerns.
type TimeEntry struct {
	ID        string
	ProjectID *string
	StartedAt time.Time
	EndedAt   *time.Time
	Note      string
}

// NewTimeEntry creates a new running TimeEntry for the given project.
func NewTimeEntry(id string, projectID string, note string, startedAt time.Time) TimeEntry {
	return TimeEntry{
		ID:        id,
		ProjectID: &projectID,
		StartedAt: startedAt,
		Note:      note,
	}
}

// IsRunning returns true if the time entry has no end time.
func (te TimeEntry) IsRunning() bool {
	return te.EndedAt == nil
}

// Stop records now as the end time if the entry is still running.
// Stopping an entry that already ended leaves it unchanged and reports false.
func (te *TimeEntry) Stop(now time.Time) bool {
	if te.EndedAt != nil {
		return false
	}
	te.EndedAt = &now
	return true
}

// Duration returns the span from start to end, or to now while running.
// Malformed entries ending before they start yield a negative duration.
func (te TimeEntry) Duration(now time.Time) time.Duration {
	if te.EndedAt == nil {
		return now.Sub(te.StartedAt)
	}
	return te.EndedAt.Sub(te.StartedAt)
}

// DurationSeconds returns Duration truncated to whole seconds.
func (te TimeEntry) DurationSeconds(now time.Time) int64 {
	return int64(te.Duration(now) / time.Second)
}

// FormattedDuration renders the duration as HH:MM:SS.
func (te TimeEntry) FormattedDuration(now time.Time) string {
	return timecalc.FormatHHMMSS(te.DurationSeconds(now))
}

// BelongsTo reports whether the entry is owned by the given project.
func (te TimeEntry) BelongsTo(projectID string) bool {
	return te.ProjectID != nil && *te.ProjectID == projectID
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.StartedAt.IsZero() {
		return false
	}
	if te.EndedAt != nil && te.EndedAt.Before(te.StartedAt) {
		return false
	}
	return true
}
