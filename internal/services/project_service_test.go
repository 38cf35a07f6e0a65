package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timeledger/internal/errors"
	"timeledger/internal/logging"
)

func setupProjectService(t *testing.T) (ProjectService, *testClock) {
	t.Helper()
	clock := newTestClock(t0)
	return NewProjectService(setupRepo(t), nil, clock.Now, logging.Discard()), clock
}

func TestProjectService_CreateProject(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		target         *float64
		expectedName   string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:         "should create project with trimmed name",
			input:        "  Client A  ",
			expectedName: "Client A",
		},
		{
			name:         "should create project with a target",
			input:        "Retainer",
			target:       floatPtr(40),
			expectedName: "Retainer",
		},
		{
			name:  "should reject whitespace-only name",
			input: "   ",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
			},
		},
		{
			name:  "should reject overly long name",
			input: strings.Repeat("x", 500),
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
			},
		},
		{
			name:   "should reject non-positive target",
			input:  "Client",
			target: floatPtr(0),
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
				assert.Contains(t, apperrors.GetUserMessage(err), "target")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, _ := setupProjectService(t)

			// Act
			project, err := service.CreateProject(context.Background(), tt.input, tt.target)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, project)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, project.ID)
			assert.Equal(t, tt.expectedName, project.Name)
			assert.Equal(t, tt.target, project.MonthlyTargetHours)
			assert.True(t, project.CreatedAt.Equal(t0))
		})
	}
}

func TestProjectService_ListProjects_NewestFirst(t *testing.T) {
	service, clock := setupProjectService(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := service.CreateProject(ctx, name, nil)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	projects, err := service.ListProjects(ctx, false)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "Third", projects[0].Name)
	assert.Equal(t, "First", projects[2].Name)
}

func TestProjectService_UpdateProject(t *testing.T) {
	service, _ := setupProjectService(t)
	ctx := context.Background()
	project, err := service.CreateProject(ctx, "Client", floatPtr(10))
	require.NoError(t, err)

	updated, err := service.UpdateProject(ctx, project.ID, " Client Renamed ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Client Renamed", updated.Name)
	assert.Nil(t, updated.MonthlyTargetHours)

	reloaded, err := service.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client Renamed", reloaded.Name)
	assert.Nil(t, reloaded.MonthlyTargetHours)

	_, err = service.UpdateProject(ctx, project.ID, "", nil)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, err = service.UpdateProject(ctx, projectB, "Ghost", nil)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestProjectService_DeleteProject(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	service := NewProjectService(repo, nil, nil, logging.Discard())

	empty := seedProject(t, repo, "Empty", nil)
	used := seedProject(t, repo, "Used", nil)
	seedEntry(t, repo, used.ID, t0, time.Hour)

	archived, err := service.DeleteProject(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, archived)
	_, err = service.GetProject(ctx, empty.ID)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	archived, err = service.DeleteProject(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, archived)

	kept, err := service.GetProject(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, kept.Archived)

	active, err := service.ListProjects(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	count, err := repo.CountProjectEntries(ctx, used.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = service.DeleteProject(ctx, "nope")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestProjectService_FindProject(t *testing.T) {
	service, _ := setupProjectService(t)
	ctx := context.Background()

	client, err := service.CreateProject(ctx, "Client", nil)
	require.NoError(t, err)
	_, err = service.CreateProject(ctx, "Twin", nil)
	require.NoError(t, err)
	_, err = service.CreateProject(ctx, "twin", nil)
	require.NoError(t, err)

	byID, err := service.FindProject(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client", byID.Name)

	byName, err := service.FindProject(ctx, " CLIENT ")
	require.NoError(t, err)
	assert.Equal(t, client.ID, byName.ID)

	_, err = service.FindProject(ctx, "twin")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

	_, err = service.FindProject(ctx, "missing")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}
