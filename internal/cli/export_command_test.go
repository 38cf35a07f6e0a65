package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_CSV(t *testing.T) {
	// Arrange
	app, mock, out := setupTestApp(t)
	client := mustProject(t, mock, "Client", nil)
	other := mustProject(t, mock, "Other", nil)
	first := mock.addEntry(client, t0.Add(-48*time.Hour), time.Hour, "kickoff")
	mock.addEntry(other, t0.Add(-24*time.Hour), time.Hour, "")
	mock.addEntry(client, time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC), time.Hour, "")
	cmd := NewExportCommand(app)
	cmd.Project = "client"

	// Act
	err := cmd.Execute(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one March entry of Client")
	assert.Equal(t, []string{"ID", "Date", "Project", "Start", "End", "Duration (s)", "Duration", "Running", "Note"}, rows[0])
	assert.Equal(t, first.ID, rows[1][0])
	assert.Equal(t, "2026-03-07", rows[1][1])
	assert.Equal(t, "Client", rows[1][2])
	assert.Equal(t, "3600", rows[1][5])
	assert.Equal(t, "kickoff", rows[1][8])
}

func TestExportCommand_JSONToFile(t *testing.T) {
	// Arrange
	app, mock, out := setupTestApp(t)
	client := mustProject(t, mock, "Client", nil)
	mock.addEntry(client, t0.Add(-2*time.Hour), 90*time.Minute, "")
	path := filepath.Join(t.TempDir(), "day.json")
	cmd := NewExportCommand(app)
	cmd.Format = "JSON"
	cmd.Period = "day"
	cmd.Output = path

	// Act
	err := cmd.Execute(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Period       string `json:"period"`
		TotalSeconds int64  `json:"total_seconds"`
		Total        string `json:"total"`
		Count        int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "day", doc.Period)
	assert.Equal(t, int64(5400), doc.TotalSeconds)
	assert.Equal(t, "1h 30m", doc.Total)
	assert.Equal(t, 1, doc.Count)
}

func TestExportCommand_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		configure func(cmd *ExportCommand)
		args      []string
		wantErr   string
	}{
		{
			name:      "unknown format",
			configure: func(cmd *ExportCommand) { cmd.Format = "pdf" },
			wantErr:   "invalid input for format",
		},
		{
			name:      "unknown period",
			configure: func(cmd *ExportCommand) { cmd.Period = "fortnight" },
			wantErr:   "invalid input for period",
		},
		{
			name:      "malformed date",
			configure: func(cmd *ExportCommand) { cmd.Date = "March" },
			wantErr:   "invalid input for date",
		},
		{
			name:      "unknown project",
			configure: func(cmd *ExportCommand) { cmd.Project = "Ghost" },
			wantErr:   "failed to export entries: project not found: Ghost",
		},
		{
			name:      "positional arguments",
			configure: func(cmd *ExportCommand) {},
			args:      []string{"extra"},
			wantErr:   "usage: tl export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, out := setupTestApp(t)
			cmd := NewExportCommand(app)
			tt.configure(cmd)

			err := cmd.Execute(context.Background(), tt.args)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out.String())
		})
	}
}
