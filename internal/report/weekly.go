package report

import (
	"sort"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/timecalc"
)

// ProjectTotal is the completed time recorded for one project.
type ProjectTotal struct {
	ProjectID    string
	Name         string
	TotalSeconds int64
}

// WeeklySummary holds per-project totals for one Monday-based week.
type WeeklySummary struct {
	Interval     timecalc.Interval
	Projects     []ProjectTotal
	TotalSeconds int64
}

// SummarizeWeek totals completed entries started in the week containing now.
// The week total includes unowned entries; the per-project list does not.
// Projects are ordered by total descending, then by name.
func SummarizeWeek(entries []domain.TimeEntry, names map[string]string, now time.Time, cal timecalc.Calendar) WeeklySummary {
	week := cal.Week(now)
	totals := make(map[string]int64)

	summary := WeeklySummary{Interval: week, Projects: []ProjectTotal{}}
	for _, entry := range entries {
		if entry.IsRunning() || !week.Contains(entry.StartedAt) {
			continue
		}
		seconds := entry.DurationSeconds(*entry.EndedAt)
		summary.TotalSeconds += seconds
		if entry.ProjectID != nil {
			totals[*entry.ProjectID] += seconds
		}
	}

	for id, seconds := range totals {
		summary.Projects = append(summary.Projects, ProjectTotal{
			ProjectID:    id,
			Name:         names[id],
			TotalSeconds: seconds,
		})
	}
	sort.Slice(summary.Projects, func(i, j int) bool {
		a, b := summary.Projects[i], summary.Projects[j]
		if a.TotalSeconds != b.TotalSeconds {
			return a.TotalSeconds > b.TotalSeconds
		}
		return a.Name < b.Name
	})

	return summary
}
