package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timeledger/internal/repository/sqlite"
)

// mockRepository is a testify mock of sqlite.Repository. WithinTx runs the
// callback against the mock itself so calls made inside a transaction are
// recorded alongside the others.
type mockRepository struct {
	mock.Mock
}

var _ sqlite.Repository = (*mockRepository)(nil)

func (m *mockRepository) CreateProject(ctx context.Context, project *sqlite.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *mockRepository) GetProject(ctx context.Context, id string) (*sqlite.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*sqlite.Project)
	return project, args.Error(1)
}

func (m *mockRepository) ListProjects(ctx context.Context, includeArchived bool) ([]*sqlite.Project, error) {
	args := m.Called(ctx, includeArchived)
	projects, _ := args.Get(0).([]*sqlite.Project)
	return projects, args.Error(1)
}

func (m *mockRepository) UpdateProject(ctx context.Context, project *sqlite.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *mockRepository) DeleteProject(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) CountProjectEntries(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) CreateTimeEntry(ctx context.Context, entry *sqlite.TimeEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepository) GetTimeEntry(ctx context.Context, id string) (*sqlite.TimeEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*sqlite.TimeEntry)
	return entry, args.Error(1)
}

func (m *mockRepository) UpdateTimeEntry(ctx context.Context, entry *sqlite.TimeEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) SearchTimeEntries(ctx context.Context, opts sqlite.SearchOptions) ([]*sqlite.TimeEntry, error) {
	args := m.Called(ctx, opts)
	entries, _ := args.Get(0).([]*sqlite.TimeEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) WithinTx(ctx context.Context, fn func(tx sqlite.Repository) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *mockRepository) Close() error {
	return m.Called().Error(0)
}
