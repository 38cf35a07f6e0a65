package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timeledger/internal/errors"
)

func TestStartCommand_Execute(t *testing.T) {
	app, mock, out := setupTestApp(t)
	mustProject(t, mock, "Client A", nil)
	mustProject(t, mock, "Internal", nil)
	ctx := context.Background()

	t.Run("starts a named project with a note", func(t *testing.T) {
		out.Reset()
		cmd := NewStartCommand(app)
		cmd.Note = "planning"

		err := cmd.Execute(ctx, []string{"client", "a"})

		require.NoError(t, err)
		assert.Equal(t, "Started Client A (planning) at 09:00\n", out.String())
		assert.True(t, mock.IsRunning())
	})

	t.Run("switching projects reports the stopped one", func(t *testing.T) {
		out.Reset()
		mock.advance(30 * time.Minute)

		err := NewStartCommand(app).Execute(ctx, []string{"Internal"})

		require.NoError(t, err)
		assert.Equal(t, "Stopped Client A (planning)\nStarted Internal at 09:30\n", out.String())
		session, err := mock.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Internal", session.Project.Name)
	})

	t.Run("unknown project", func(t *testing.T) {
		err := NewStartCommand(app).Execute(ctx, []string{"Nope"})
		require.Error(t, err)
		assert.Equal(t, "failed to start timer: project not found: Nope", err.Error())
	})

	t.Run("missing project", func(t *testing.T) {
		err := NewStartCommand(app).Execute(ctx, []string{"  "})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}

func TestStopCommand_Execute(t *testing.T) {
	app, mock, out := setupTestApp(t)
	mustProject(t, mock, "Client A", nil)
	ctx := context.Background()

	t.Run("nothing running", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewStopCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No timer is running\n", out.String())
	})

	t.Run("stops the running entry", func(t *testing.T) {
		_, err := mock.StartTimer(ctx, "Client A", "")
		require.NoError(t, err)
		mock.advance(90*time.Minute + 5*time.Second)
		out.Reset()

		require.NoError(t, NewStopCommand(app).Execute(ctx, nil))

		assert.Equal(t, "Stopped Client A after 01:30:05\n", out.String())
		assert.False(t, mock.IsRunning())
	})

	t.Run("rejects arguments", func(t *testing.T) {
		err := NewStopCommand(app).Execute(ctx, []string{"now"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}

func TestResumeCommand_Execute(t *testing.T) {
	app, mock, out := setupTestApp(t)
	alpha := mustProject(t, mock, "Alpha", nil)
	ctx := context.Background()

	t.Run("nothing to resume", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewResumeCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "Nothing to resume")
	})

	t.Run("restarts the latest project with its note", func(t *testing.T) {
		mock.addEntry(alpha, t0.Add(-3*time.Hour), time.Hour, "old")
		mock.addEntry(alpha, t0.Add(-time.Hour), 30*time.Minute, "review")
		out.Reset()

		require.NoError(t, NewResumeCommand(app).Execute(ctx, nil))

		assert.Equal(t, "Resumed Alpha (review)\n", out.String())
		session, err := mock.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "review", session.Entry.Note)
	})

	t.Run("already running", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewResumeCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Already tracking Alpha (review)\n", out.String())
	})
}
