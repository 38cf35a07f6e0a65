package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"timeledger/internal/api"
	"timeledger/internal/domain"
	apperrors "timeledger/internal/errors"
	"timeledger/internal/report"
	"timeledger/internal/services"
	"timeledger/internal/target"
	"timeledger/internal/timecalc"
)

// mockAPI is an in-memory API for command tests. It reuses the pure
// aggregation and target packages so output matches the real engine.
type mockAPI struct {
	mu sync.Mutex

	now      time.Time
	calendar timecalc.Calendar

	projects []*domain.Project
	entries  []*domain.TimeEntry
	running  *domain.TimeEntry
	listener services.TickListener
	nextID   int

	// failWith, when set, is returned by every operation
	failWith error
}

func newMockAPI(now time.Time) *mockAPI {
	return &mockAPI{now: now, calendar: timecalc.NewCalendar(time.UTC)}
}

func (m *mockAPI) advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func (m *mockAPI) newID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// addEntry records a completed entry directly.
func (m *mockAPI) addEntry(projectID string, start time.Time, d time.Duration, note string) *domain.TimeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := domain.NewTimeEntry(m.newID("e"), projectID, note, start)
	entry.Stop(start.Add(d))
	m.entries = append(m.entries, &entry)
	return &entry
}

// ========== Timer ==========

func (m *mockAPI) StartTimer(ctx context.Context, projectRef string, note string) (*api.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, err := m.findProject(projectRef)
	if err != nil {
		return nil, err
	}
	if project.Archived {
		return nil, apperrors.NewValidationError("project "+project.Name+" is archived", nil)
	}
	if m.running != nil {
		m.running.Stop(m.now)
	}
	entry := domain.NewTimeEntry(m.newID("e"), project.ID, note, m.now)
	m.entries = append(m.entries, &entry)
	m.running = &entry
	copied := entry
	return &api.Session{Project: project, Entry: &copied}, nil
}

func (m *mockAPI) StopTimer(ctx context.Context) (*api.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.running == nil {
		return nil, nil
	}
	m.running.Stop(m.now)
	stopped := *m.running
	m.running = nil
	project, _ := m.findProject(*stopped.ProjectID)
	return &api.Session{Project: project, Entry: &stopped, ElapsedSeconds: stopped.DurationSeconds(m.now)}, nil
}

func (m *mockAPI) CurrentSession(ctx context.Context) (*api.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.running == nil {
		return nil, nil
	}
	entry := *m.running
	project, _ := m.findProject(*entry.ProjectID)
	return &api.Session{Project: project, Entry: &entry, ElapsedSeconds: entry.DurationSeconds(m.now)}, nil
}

func (m *mockAPI) CurrentElapsed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running == nil {
		return 0
	}
	return m.running.DurationSeconds(m.now)
}

func (m *mockAPI) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running != nil
}

func (m *mockAPI) WatchElapsed(listener services.TickListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = listener
}

// tick delivers one tick to the registered listener, if any.
func (m *mockAPI) tick() bool {
	m.mu.Lock()
	listener, running := m.listener, m.running
	var elapsed int64
	if running != nil {
		elapsed = running.DurationSeconds(m.now)
	}
	m.mu.Unlock()

	if listener == nil || running == nil {
		return false
	}
	listener(running.ID, elapsed)
	return true
}

// ========== Reports ==========

func (m *mockAPI) Aggregate(ctx context.Context, period timecalc.PeriodKind, anchor time.Time, projectRef string) (*api.PeriodView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	query := report.Query{Kind: period, Anchor: anchor}
	if projectRef != "" {
		project, err := m.findProject(projectRef)
		if err != nil {
			return nil, err
		}
		query.ProjectID = &project.ID
	}
	result, err := report.Aggregate(m.entryValues(), query, m.calendar)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("period", period, err.Error())
	}
	return &api.PeriodView{
		Label:        m.calendar.PeriodLabel(period, anchor, m.now),
		Report:       result,
		ProjectNames: m.projectNames(),
	}, nil
}

func (m *mockAPI) WeeklySummary(ctx context.Context) (report.WeeklySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return report.WeeklySummary{}, m.failWith
	}
	return report.SummarizeWeek(m.entryValues(), m.projectNames(), m.now, m.calendar), nil
}

func (m *mockAPI) ComputeTarget(ctx context.Context, projectRef string) (*api.TargetStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, err := m.findProject(projectRef)
	if err != nil {
		return nil, err
	}
	calc, ok := target.Calculate(*project, m.projectEntries(project.ID), m.now, m.calendar)
	return &api.TargetStatus{Project: project, HasTarget: ok, Calculation: calc}, nil
}

func (m *mockAPI) ComputeAllTargets(ctx context.Context) ([]services.ProjectTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var results []services.ProjectTarget
	for _, project := range m.sortedProjects(false) {
		if calc, ok := target.Calculate(*project, m.projectEntries(project.ID), m.now, m.calendar); ok {
			results = append(results, services.ProjectTarget{Project: *project, Calculation: calc})
		}
	}
	return results, nil
}

// ========== Projects ==========

func (m *mockAPI) CreateProject(ctx context.Context, name string, monthlyTarget *float64) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("invalid project name: name is required", nil)
	}
	project := domain.NewProject(m.newID("p"), name, monthlyTarget, m.now.Add(time.Duration(m.nextID)*time.Second))
	m.projects = append(m.projects, &project)
	copied := project
	return &copied, nil
}

func (m *mockAPI) FindProject(ctx context.Context, ref string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.findProject(ref)
}

func (m *mockAPI) ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sortedProjects(includeArchived), nil
}

func (m *mockAPI) UpdateProject(ctx context.Context, ref string, update api.ProjectUpdate) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, err := m.findProject(ref)
	if err != nil {
		return nil, err
	}
	stored := m.projectByID(project.ID)
	if update.Name != nil {
		stored.Name = strings.TrimSpace(*update.Name)
	}
	if update.ClearTarget {
		stored.MonthlyTargetHours = nil
	} else if update.Target != nil {
		stored.MonthlyTargetHours = update.Target
	}
	copied := *stored
	return &copied, nil
}

func (m *mockAPI) DeleteProject(ctx context.Context, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	project, err := m.findProject(ref)
	if err != nil {
		return false, err
	}
	if len(m.projectEntries(project.ID)) > 0 {
		m.projectByID(project.ID).Archived = true
		return true, nil
	}
	for i, p := range m.projects {
		if p.ID == project.ID {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			break
		}
	}
	return false, nil
}

// ========== Entries ==========

func (m *mockAPI) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("time entry", id)
}

func (m *mockAPI) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []domain.TimeEntry{}
	for _, entry := range m.entryValues() {
		if filter.Matches(entry) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.After(result[j].StartedAt) })
	return result, nil
}

func (m *mockAPI) UpdateEntry(ctx context.Context, id string, changes services.EntryChanges) (*domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.ID != id {
			continue
		}
		if entry.IsRunning() {
			return nil, apperrors.NewConflictError("stop the timer before editing the running entry")
		}
		updated := *entry
		if changes.Note != nil {
			updated.Note = *changes.Note
		}
		if changes.StartedAt != nil {
			updated.StartedAt = *changes.StartedAt
		}
		if changes.EndedAt != nil {
			updated.EndedAt = changes.EndedAt
		}
		if updated.EndedAt.Before(updated.StartedAt) {
			return nil, apperrors.NewValidationError("invalid time entry: end time must not be before start time", nil)
		}
		*entry = updated
		return &updated, nil
	}
	return nil, apperrors.NewNotFoundError("time entry", id)
}

func (m *mockAPI) DeleteEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, entry := range m.entries {
		if entry.ID != id {
			continue
		}
		if entry.IsRunning() {
			return apperrors.NewConflictError("stop the timer before deleting the running entry")
		}
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
		return nil
	}
	return apperrors.NewNotFoundError("time entry", id)
}

func (m *mockAPI) Initialize(ctx context.Context) error { return m.failWith }

func (m *mockAPI) Close() {}

// ========== helpers (callers hold mu) ==========

func (m *mockAPI) findProject(ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	for _, project := range m.projects {
		if project.ID == ref || (!project.Archived && strings.EqualFold(project.Name, ref)) {
			copied := *project
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("project", ref)
}

func (m *mockAPI) projectByID(id string) *domain.Project {
	for _, project := range m.projects {
		if project.ID == id {
			return project
		}
	}
	return nil
}

func (m *mockAPI) sortedProjects(includeArchived bool) []*domain.Project {
	result := []*domain.Project{}
	for _, project := range m.projects {
		if includeArchived || !project.Archived {
			copied := *project
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockAPI) entryValues() []domain.TimeEntry {
	values := make([]domain.TimeEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		values = append(values, *entry)
	}
	return values
}

func (m *mockAPI) projectEntries(projectID string) []domain.TimeEntry {
	var values []domain.TimeEntry
	for _, entry := range m.entries {
		if entry.BelongsTo(projectID) {
			values = append(values, *entry)
		}
	}
	return values
}

func (m *mockAPI) projectNames() map[string]string {
	names := make(map[string]string, len(m.projects))
	for _, project := range m.projects {
		names[project.ID] = project.Name
	}
	return names
}
