package services

import (
	"context"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/report"
	"timeledger/internal/target"
	"timeledger/internal/timecalc"
)

// Clock returns the current instant. Services read time only through it.
type Clock func() time.Time

// TickListener receives the elapsed whole seconds of the running entry.
// It is called from the tick goroutine and must not call Start, Stop or
// Close on the controller that invokes it.
type TickListener func(entryID string, elapsedSeconds int64)

// EntryChanges lists the fields of an entry edit; nil fields are kept.
type EntryChanges struct {
	Note      *string
	StartedAt *time.Time
	EndedAt   *time.Time
}

// ProjectTarget pairs a project with its carry-over calculation.
type ProjectTarget struct {
	Project     domain.Project     `json:"project"`
	Calculation target.Calculation `json:"calculation"`
}

// TimerController owns the single running entry.
type TimerController interface {
	// Initialize adopts the running entry found in the store.
	Initialize(ctx context.Context) error

	// Start stops the running entry, if any, and starts a new one in one transaction.
	Start(ctx context.Context, projectID string, note string) (*domain.TimeEntry, error)
	// Stop ends the running entry. It returns nil when nothing was running.
	Stop(ctx context.Context) (*domain.TimeEntry, error)

	Running() *domain.TimeEntry
	IsRunning() bool
	CurrentElapsed() int64

	SetTickListener(listener TickListener)
	Close()
}

// ProjectService handles project lifecycle operations
type ProjectService interface {
	CreateProject(ctx context.Context, name string, monthlyTarget *float64) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	FindProject(ctx context.Context, ref string) (*domain.Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id string, name string, monthlyTarget *float64) (*domain.Project, error)
	// DeleteProject archives a project that owns entries and removes it otherwise.
	DeleteProject(ctx context.Context, id string) (archived bool, err error)
}

// EntryService handles browsing and editing recorded entries
type EntryService interface {
	GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, id string, changes EntryChanges) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// ReportingService builds period and weekly reports
type ReportingService interface {
	Aggregate(ctx context.Context, query report.Query) (report.PeriodReport, error)
	WeeklySummary(ctx context.Context) (report.WeeklySummary, error)
	PeriodLabel(kind timecalc.PeriodKind, anchor time.Time) string
}

// TargetService computes monthly target carry-over
type TargetService interface {
	// ComputeTarget reports false when the project has no target.
	ComputeTarget(ctx context.Context, projectID string) (target.Calculation, bool, error)
	// ComputeAll returns the calculation of every active project with a target.
	ComputeAll(ctx context.Context) ([]ProjectTarget, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Timer     TimerController
	Projects  ProjectService
	Entries   EntryService
	Reporting ReportingService
	Targets   TargetService
}
