package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"timeledger/internal/errors"
	"timeledger/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id string) error
	CountProjectEntries(ctx context.Context, projectID string) (int, error)

	// Time entries
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id string) error
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)

	// WithinTx runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	conn DBTX
	inTx bool
}

// New opens (creating if needed) the database at dbPath and migrates it to
// the latest schema.
func New(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	if err := migrations.RunMigrations(dbPath); err != nil {
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps transactions and plain reads from
	// contending for the write lock.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("open database", err)
	}

	return &SQLiteRepository{db: db, conn: db}, nil
}

// Close closes the database connection. Closing a transaction-bound
// repository is a no-op.
func (r *SQLiteRepository) Close() error {
	if r.inTx {
		return nil
	}
	return r.db.Close()
}

// WithinTx implements Repository.
func (r *SQLiteRepository) WithinTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&SQLiteRepository{db: r.db, conn: tx, inTx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// CreateProject inserts a project, assigning a new ID when none is set.
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	query := `
	INSERT INTO projects (id, name, created_at, archived, monthly_target_hours)
	VALUES (?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create project", query,
		project.ID, project.Name, FormatTimeForDB(project.CreatedAt), project.Archived, project.MonthlyTargetHours)
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.conn, query, ScanProject, "project", id, id)
}

// ListProjects returns projects newest first.
func (r *SQLiteRepository) ListProjects(ctx context.Context, includeArchived bool) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return QueryMultiple(ctx, r.conn, query, ScanProjects, "projects")
}

// UpdateProject updates an existing project
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *Project) error {
	query := `
	UPDATE projects
	SET name = ?, archived = ?, monthly_target_hours = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.conn, query, "project", project.ID,
		project.Name, project.Archived, project.MonthlyTargetHours, project.ID)
}

// DeleteProject removes a project together with its time entries.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.conn, query, "project", id, id)
}

// CountProjectEntries returns how many time entries belong to the project.
func (r *SQLiteRepository) CountProjectEntries(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_entries WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, HandleDatabaseError("count project entries", err)
	}
	return count, nil
}

// CreateTimeEntry inserts a time entry, assigning a new ID when none is set.
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
	INSERT INTO time_entries (id, project_id, started_at, ended_at, note)
	VALUES (?, ?, ?, ?, ?)`

	return Execute(ctx, r.conn, "create time entry", query,
		entry.ID, entry.ProjectID, FormatTimeForDB(entry.StartedAt), FormatTimePtrForDB(entry.EndedAt), entry.Note)
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.conn, query, ScanTimeEntry, "time entry", id, id)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET project_id = ?, started_at = ?, ended_at = ?, note = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.conn, query, "time entry", entry.ID,
		entry.ProjectID, FormatTimeForDB(entry.StartedAt), FormatTimePtrForDB(entry.EndedAt), entry.Note, entry.ID)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.conn, query, "time entry", id, id)
}

// SearchTimeEntries returns the entries matching opts, newest first.
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	var conditions []string
	var args []interface{}

	if opts.StartedFrom != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, FormatTimeForDB(*opts.StartedFrom))
	}
	if opts.StartedBefore != nil {
		conditions = append(conditions, "started_at < ?")
		args = append(args, FormatTimeForDB(*opts.StartedBefore))
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.OnlyRunning {
		conditions = append(conditions, "ended_at IS NULL")
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY started_at DESC, id DESC"

	return QueryMultiple(ctx, r.conn, query, ScanTimeEntries, "time entries", args...)
}
