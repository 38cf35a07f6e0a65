package domain

import "time"

// EntryFilter selects time entries by start time, owning project and
// running state. The start range is half-open: [StartedFrom, StartedBefore).
type EntryFilter struct {
	StartedFrom   *time.Time
	StartedBefore *time.Time
	ProjectID     *string
	OnlyRunning   bool
}

// Matches reports whether the entry satisfies the filter.
func (f EntryFilter) Matches(te TimeEntry) bool {
	if f.StartedFrom != nil && te.StartedAt.Before(*f.StartedFrom) {
		return false
	}
	if f.StartedBefore != nil && !te.StartedAt.Before(*f.StartedBefore) {
		return false
	}
	if f.ProjectID != nil && !te.BelongsTo(*f.ProjectID) {
		return false
	}
	if f.OnlyRunning && !te.IsRunning() {
		return false
	}
	return true
}
