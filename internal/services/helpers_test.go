package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timeledger/internal/domain"
	"timeledger/internal/logging"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/timecalc"
)

// testClock is a settable clock safe for use from the tick goroutine.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var utcCalendar = timecalc.NewCalendar(time.UTC)

func setupRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedProject(t *testing.T, repo sqlite.Repository, name string, target *float64) *domain.Project {
	t.Helper()
	service := NewProjectService(repo, nil, nil, logging.Discard())
	project, err := service.CreateProject(context.Background(), name, target)
	require.NoError(t, err)
	return project
}

func seedEntry(t *testing.T, repo sqlite.Repository, projectID string, start time.Time, duration time.Duration) *sqlite.TimeEntry {
	t.Helper()
	end := start.Add(duration)
	row := &sqlite.TimeEntry{ProjectID: &projectID, StartedAt: start, EndedAt: &end}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), row))
	return row
}

func seedRunning(t *testing.T, repo sqlite.Repository, projectID string, start time.Time) *sqlite.TimeEntry {
	t.Helper()
	row := &sqlite.TimeEntry{ProjectID: &projectID, StartedAt: start}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), row))
	return row
}

func runningRows(t *testing.T, repo sqlite.Repository) []*sqlite.TimeEntry {
	t.Helper()
	rows, err := repo.SearchTimeEntries(context.Background(), sqlite.SearchOptions{OnlyRunning: true})
	require.NoError(t, err)
	return rows
}

func floatPtr(f float64) *float64 {
	return &f
}
