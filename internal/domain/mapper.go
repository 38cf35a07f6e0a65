package domain

import (
	"timeledger/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) sqlite.Project {
	return sqlite.Project{
		ID:                 p.ID,
		Name:               p.Name,
		CreatedAt:          p.CreatedAt,
		Archived:           p.Archived,
		MonthlyTargetHours: p.MonthlyTargetHours,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p sqlite.Project) Project {
	return Project{
		ID:                 p.ID,
		Name:               p.Name,
		CreatedAt:          p.CreatedAt,
		Archived:           p.Archived,
		MonthlyTargetHours: p.MonthlyTargetHours,
	}
}

// FromDatabaseSlice converts database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project) []*Project {
	projects := make([]*Project, len(rows))
	for i, row := range rows {
		p := m.FromDatabase(*row)
		projects[i] = &p
	}
	return projects
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(te TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:        te.ID,
		ProjectID: te.ProjectID,
		StartedAt: te.StartedAt,
		EndedAt:   te.EndedAt,
		Note:      te.Note,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(te sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:        te.ID,
		ProjectID: te.ProjectID,
		StartedAt: te.StartedAt,
		EndedAt:   te.EndedAt,
		Note:      te.Note,
	}
}

// FromDatabaseSlice converts database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(rows []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(rows))
	for i, row := range rows {
		entries[i] = m.FromDatabase(*row)
	}
	return entries
}

// EntryFilterMapper converts domain filters into repository search options.
type EntryFilterMapper struct{}

// NewEntryFilterMapper creates a new EntryFilterMapper instance.
func NewEntryFilterMapper() *EntryFilterMapper {
	return &EntryFilterMapper{}
}

// ToDatabase converts a domain EntryFilter to database SearchOptions.
func (m *EntryFilterMapper) ToDatabase(f EntryFilter) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		StartedFrom:   f.StartedFrom,
		StartedBefore: f.StartedBefore,
		ProjectID:     f.ProjectID,
		OnlyRunning:   f.OnlyRunning,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Project     *ProjectMapper
	TimeEntry   *TimeEntryMapper
	EntryFilter *EntryFilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Project:     NewProjectMapper(),
		TimeEntry:   NewTimeEntryMapper(),
		EntryFilter: NewEntryFilterMapper(),
	}
}
