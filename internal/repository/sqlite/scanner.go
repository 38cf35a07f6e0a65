package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows defines the iteration behaviour of *sql.Rows used by the scanners.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const timeEntryColumns = "id, project_id, started_at, ended_at, note"

const projectColumns = "id, name, created_at, archived, monthly_target_hours"

// ScanTimeEntry scans a single time entry selected with timeEntryColumns.
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var (
		projectID sql.NullString
		startedAt string
		endedAt   sql.NullString
	)

	if err := scanner.Scan(&entry.ID, &projectID, &startedAt, &endedAt, &entry.Note); err != nil {
		return nil, err
	}

	start, err := ParseTimeFromDB(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at of entry %s: %w", entry.ID, err)
	}
	entry.StartedAt = start

	if endedAt.Valid {
		end, err := ParseTimeFromDB(endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse ended_at of entry %s: %w", entry.ID, err)
		}
		entry.EndedAt = &end
	}
	if projectID.Valid {
		entry.ProjectID = &projectID.String
	}

	return entry, nil
}

// ScanTimeEntries scans every remaining row into time entries.
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	entries := []*TimeEntry{}
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanProject scans a single project selected with projectColumns.
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var (
		createdAt string
		target    sql.NullFloat64
	)

	if err := scanner.Scan(&project.ID, &project.Name, &createdAt, &project.Archived, &target); err != nil {
		return nil, err
	}

	created, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of project %s: %w", project.ID, err)
	}
	project.CreatedAt = created

	if target.Valid {
		project.MonthlyTargetHours = &target.Float64
	}

	return project, nil
}

// ScanProjects scans every remaining row into projects.
func ScanProjects(rows Rows) ([]*Project, error) {
	projects := []*Project{}
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
