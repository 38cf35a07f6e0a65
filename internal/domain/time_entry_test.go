package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNewTimeEntry(t *testing.T) {
	result := NewTimeEntry("e1", "p1", "writing", base)

	assert.Equal(t, "e1", result.ID)
	require.NotNil(t, result.ProjectID)
	assert.Equal(t, "p1", *result.ProjectID)
	assert.Equal(t, "writing", result.Note)
	assert.Equal(t, base, result.StartedAt)
	assert.Nil(t, result.EndedAt)
	assert.True(t, result.IsRunning())
}

func TestTimeEntry_DurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		entry    TimeEntry
		now      time.Time
		expected int64
	}{
		{
			name:     "running entry measures up to now",
			entry:    TimeEntry{StartedAt: base},
			now:      base.Add(90 * time.Second),
			expected: 90,
		},
		{
			name:     "stopped entry ignores now",
			entry:    TimeEntry{StartedAt: base, EndedAt: timePtr(base.Add(time.Hour))},
			now:      base.Add(48 * time.Hour),
			expected: 3600,
		},
		{
			name:     "sub-second remainder is truncated",
			entry:    TimeEntry{StartedAt: base, EndedAt: timePtr(base.Add(1999 * time.Millisecond))},
			now:      base,
			expected: 1,
		},
		{
			name:     "end before start passes through negative",
			entry:    TimeEntry{StartedAt: base, EndedAt: timePtr(base.Add(-30 * time.Second))},
			now:      base,
			expected: -30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.DurationSeconds(tt.now))
		})
	}
}

func TestTimeEntry_Stop(t *testing.T) {
	entry := TimeEntry{ID: "e1", StartedAt: base}

	first := base.Add(time.Hour)
	changed := entry.Stop(first)
	assert.True(t, changed)
	require.NotNil(t, entry.EndedAt)
	assert.Equal(t, first, *entry.EndedAt)

	changed = entry.Stop(base.Add(5 * time.Hour))
	assert.False(t, changed)
	assert.Equal(t, first, *entry.EndedAt, "second stop must not move the end time")
	assert.False(t, entry.IsRunning())
}

func TestTimeEntry_FormattedDuration(t *testing.T) {
	entry := TimeEntry{StartedAt: base, EndedAt: timePtr(base.Add(101*time.Hour + 2*time.Minute + 3*time.Second))}

	assert.Equal(t, "101:02:03", entry.FormattedDuration(base))
}

func TestTimeEntry_BelongsTo(t *testing.T) {
	owned := NewTimeEntry("e1", "p1", "", base)
	orphan := TimeEntry{ID: "e2", StartedAt: base}

	assert.True(t, owned.BelongsTo("p1"))
	assert.False(t, owned.BelongsTo("p2"))
	assert.False(t, orphan.BelongsTo("p1"))
}

func TestTimeEntry_IsValid(t *testing.T) {
	assert.True(t, TimeEntry{StartedAt: base}.IsValid())
	assert.True(t, TimeEntry{StartedAt: base, EndedAt: timePtr(base)}.IsValid())
	assert.False(t, TimeEntry{}.IsValid())
	assert.False(t, TimeEntry{StartedAt: base, EndedAt: timePtr(base.Add(-time.Second))}.IsValid())
}

func TestEntryFilter_Matches(t *testing.T) {
	from := base
	before := base.Add(24 * time.Hour)
	project := "p1"

	running := NewTimeEntry("e1", "p1", "", base.Add(time.Hour))
	stopped := NewTimeEntry("e2", "p2", "", base.Add(2*time.Hour))
	stopped.Stop(base.Add(3 * time.Hour))
	atEnd := NewTimeEntry("e3", "p1", "", before)

	window := EntryFilter{StartedFrom: &from, StartedBefore: &before}
	assert.True(t, window.Matches(running))
	assert.True(t, window.Matches(stopped))
	assert.False(t, window.Matches(atEnd), "range end is exclusive")

	byProject := EntryFilter{ProjectID: &project}
	assert.True(t, byProject.Matches(running))
	assert.False(t, byProject.Matches(stopped))

	onlyRunning := EntryFilter{OnlyRunning: true}
	assert.True(t, onlyRunning.Matches(running))
	assert.False(t, onlyRunning.Matches(stopped))
}
