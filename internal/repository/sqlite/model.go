package sqlite

import "time"

// Project is a row of the projects table.
type Project struct {
	ID                 string
	Name               string
	CreatedAt          time.Time
	Archived           bool
	MonthlyTargetHours *float64 // NULL when the project has no target
}

// TimeEntry is a row of the time_entries table.
// A NULL ended_at marks the entry as running.
type TimeEntry struct {
	ID        string
	ProjectID *string
	StartedAt time.Time
	EndedAt   *time.Time
	Note      string
}

// SearchOptions narrows SearchTimeEntries. Unset fields do not constrain the
// result; the start range is half-open.
type SearchOptions struct {
	StartedFrom   *time.Time
	StartedBefore *time.Time
	ProjectID     *string
	OnlyRunning   bool
}
