// Package api is the engine facade used by the command line.
package api

import (
	"context"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/report"
	"timeledger/internal/services"
	"timeledger/internal/timecalc"
)

// API defines every operation of the time accounting engine.
// Project arguments named ref accept an ID or a case-insensitive name.
type API interface {
	// ========== Timer ==========

	// StartTimer stops the running entry, if any, and starts tracking the project.
	StartTimer(ctx context.Context, projectRef string, note string) (*Session, error)
	// StopTimer ends the running entry. It returns nil when nothing was running.
	StopTimer(ctx context.Context) (*Session, error)
	// CurrentSession returns the running session or nil.
	CurrentSession(ctx context.Context) (*Session, error)
	CurrentElapsed() int64
	IsRunning() bool
	// WatchElapsed registers a listener for tick updates; nil removes it.
	WatchElapsed(listener services.TickListener)

	// ========== Reports ==========

	Aggregate(ctx context.Context, period timecalc.PeriodKind, anchor time.Time, projectRef string) (*PeriodView, error)
	WeeklySummary(ctx context.Context) (report.WeeklySummary, error)
	ComputeTarget(ctx context.Context, projectRef string) (*TargetStatus, error)
	ComputeAllTargets(ctx context.Context) ([]services.ProjectTarget, error)

	// ========== Projects ==========

	CreateProject(ctx context.Context, name string, monthlyTarget *float64) (*domain.Project, error)
	FindProject(ctx context.Context, ref string) (*domain.Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, ref string, update ProjectUpdate) (*domain.Project, error)
	// DeleteProject archives a project that owns entries and removes it otherwise.
	DeleteProject(ctx context.Context, ref string) (archived bool, err error)

	// ========== Entries ==========

	GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, id string, changes services.EntryChanges) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	// Initialize adopts the running entry left by an earlier process.
	Initialize(ctx context.Context) error
	// Close stops background ticking. The running entry stays in the store.
	Close()
}

type apiImpl struct {
	services *services.ServiceContainer
}

// New creates an API over the given services.
func New(container *services.ServiceContainer) API {
	return &apiImpl{services: container}
}

// ========== Timer ==========

func (a *apiImpl) StartTimer(ctx context.Context, projectRef string, note string) (*Session, error) {
	project, err := a.services.Projects.FindProject(ctx, projectRef)
	if err != nil {
		return nil, err
	}

	entry, err := a.services.Timer.Start(ctx, project.ID, note)
	if err != nil {
		return nil, err
	}
	return &Session{Project: project, Entry: entry}, nil
}

func (a *apiImpl) StopTimer(ctx context.Context) (*Session, error) {
	entry, err := a.services.Timer.Stop(ctx)
	if err != nil || entry == nil {
		return nil, err
	}
	return a.session(ctx, entry, *entry.EndedAt)
}

func (a *apiImpl) CurrentSession(ctx context.Context) (*Session, error) {
	if err := a.services.Timer.Initialize(ctx); err != nil {
		return nil, err
	}
	entry := a.services.Timer.Running()
	if entry == nil {
		return nil, nil
	}
	session, err := a.session(ctx, entry, time.Time{})
	if err != nil {
		return nil, err
	}
	session.ElapsedSeconds = a.services.Timer.CurrentElapsed()
	return session, nil
}

func (a *apiImpl) CurrentElapsed() int64 {
	return a.services.Timer.CurrentElapsed()
}

func (a *apiImpl) IsRunning() bool {
	return a.services.Timer.IsRunning()
}

func (a *apiImpl) WatchElapsed(listener services.TickListener) {
	a.services.Timer.SetTickListener(listener)
}

// session attaches the owning project. A zero end leaves ElapsedSeconds unset.
func (a *apiImpl) session(ctx context.Context, entry *domain.TimeEntry, end time.Time) (*Session, error) {
	session := &Session{Entry: entry}
	if !end.IsZero() {
		session.ElapsedSeconds = entry.DurationSeconds(end)
	}
	if entry.ProjectID == nil {
		return session, nil
	}

	project, err := a.services.Projects.GetProject(ctx, *entry.ProjectID)
	if err != nil {
		return nil, err
	}
	session.Project = project
	return session, nil
}

// ========== Reports ==========

func (a *apiImpl) Aggregate(ctx context.Context, period timecalc.PeriodKind, anchor time.Time, projectRef string) (*PeriodView, error) {
	query := report.Query{Kind: period, Anchor: anchor}
	if projectRef != "" {
		project, err := a.services.Projects.FindProject(ctx, projectRef)
		if err != nil {
			return nil, err
		}
		query.ProjectID = &project.ID
	}

	result, err := a.services.Reporting.Aggregate(ctx, query)
	if err != nil {
		return nil, err
	}

	names, err := a.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	return &PeriodView{
		Label:        a.services.Reporting.PeriodLabel(period, anchor),
		Report:       result,
		ProjectNames: names,
	}, nil
}

func (a *apiImpl) WeeklySummary(ctx context.Context) (report.WeeklySummary, error) {
	return a.services.Reporting.WeeklySummary(ctx)
}

func (a *apiImpl) ComputeTarget(ctx context.Context, projectRef string) (*TargetStatus, error) {
	project, err := a.services.Projects.FindProject(ctx, projectRef)
	if err != nil {
		return nil, err
	}

	calculation, ok, err := a.services.Targets.ComputeTarget(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return &TargetStatus{Project: project, HasTarget: ok, Calculation: calculation}, nil
}

func (a *apiImpl) ComputeAllTargets(ctx context.Context) ([]services.ProjectTarget, error) {
	return a.services.Targets.ComputeAll(ctx)
}

// projectNames includes archived projects so old entries keep their names.
func (a *apiImpl) projectNames(ctx context.Context) (map[string]string, error) {
	projects, err := a.services.Projects.ListProjects(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, project := range projects {
		names[project.ID] = project.Name
	}
	return names, nil
}

// ========== Projects ==========

func (a *apiImpl) CreateProject(ctx context.Context, name string, monthlyTarget *float64) (*domain.Project, error) {
	return a.services.Projects.CreateProject(ctx, name, monthlyTarget)
}

func (a *apiImpl) FindProject(ctx context.Context, ref string) (*domain.Project, error) {
	return a.services.Projects.FindProject(ctx, ref)
}

func (a *apiImpl) ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return a.services.Projects.ListProjects(ctx, includeArchived)
}

func (a *apiImpl) UpdateProject(ctx context.Context, ref string, update ProjectUpdate) (*domain.Project, error) {
	project, err := a.services.Projects.FindProject(ctx, ref)
	if err != nil {
		return nil, err
	}

	name := project.Name
	if update.Name != nil {
		name = *update.Name
	}
	monthlyTarget := project.MonthlyTargetHours
	switch {
	case update.ClearTarget:
		monthlyTarget = nil
	case update.Target != nil:
		monthlyTarget = update.Target
	}

	return a.services.Projects.UpdateProject(ctx, project.ID, name, monthlyTarget)
}

func (a *apiImpl) DeleteProject(ctx context.Context, ref string) (bool, error) {
	project, err := a.services.Projects.FindProject(ctx, ref)
	if err != nil {
		return false, err
	}
	return a.services.Projects.DeleteProject(ctx, project.ID)
}

// ========== Entries ==========

func (a *apiImpl) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return a.services.Entries.GetEntry(ctx, id)
}

func (a *apiImpl) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	return a.services.Entries.ListEntries(ctx, filter)
}

func (a *apiImpl) UpdateEntry(ctx context.Context, id string, changes services.EntryChanges) (*domain.TimeEntry, error) {
	return a.services.Entries.UpdateEntry(ctx, id, changes)
}

func (a *apiImpl) DeleteEntry(ctx context.Context, id string) error {
	return a.services.Entries.DeleteEntry(ctx, id)
}

func (a *apiImpl) Initialize(ctx context.Context) error {
	return a.services.Timer.Initialize(ctx)
}

func (a *apiImpl) Close() {
	a.services.Timer.Close()
}
