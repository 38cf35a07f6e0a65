package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timeledger/internal/config"
)

// t0 is Monday 9 March 2026, 09:00 UTC.
var t0 = time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Calendar.Timezone = "UTC"
	cfg.Display.Color = config.ColorNever
	return cfg
}

func setupTestApp(t *testing.T) (*App, *mockAPI, *bytes.Buffer) {
	t.Helper()
	mock := newMockAPI(t0)
	out := &bytes.Buffer{}
	app := NewApp(mock, testConfig(), out)
	app.now = func() time.Time {
		mock.mu.Lock()
		defer mock.mu.Unlock()
		return mock.now
	}
	app.in = strings.NewReader("")
	return app, mock, out
}

func mustProject(t *testing.T, mock *mockAPI, name string, target *float64) string {
	t.Helper()
	project, err := mock.CreateProject(t.Context(), name, target)
	require.NoError(t, err)
	return project.ID
}

func floatPtr(f float64) *float64 {
	return &f
}
