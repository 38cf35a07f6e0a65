// Package report buckets time entries into calendar periods.
package report

import (
	"sort"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/timecalc"
)

// DayGroup holds the entries that started on one local day.
type DayGroup struct {
	Date         time.Time
	Entries      []domain.TimeEntry
	TotalSeconds int64
}

// PeriodReport is the day-grouped view of a period.
type PeriodReport struct {
	Kind         timecalc.PeriodKind
	Interval     timecalc.Interval
	Groups       []DayGroup
	TotalSeconds int64
}

// Query describes which period to aggregate. A nil ProjectID selects all projects.
type Query struct {
	Kind      timecalc.PeriodKind
	Anchor    time.Time
	ProjectID *string
}

// Filter returns the store filter selecting the query's window.
func (q Query) Filter(cal timecalc.Calendar) (domain.EntryFilter, error) {
	interval, err := cal.Period(q.Kind, q.Anchor)
	if err != nil {
		return domain.EntryFilter{}, err
	}
	return domain.EntryFilter{
		StartedFrom:   &interval.Start,
		StartedBefore: &interval.End,
		ProjectID:     q.ProjectID,
	}, nil
}

// Aggregate groups entries of the query's period by the local day they
// started on. Entries outside [start, end) or owned by another project are
// ignored. Running entries are listed but never counted in totals.
func Aggregate(entries []domain.TimeEntry, q Query, cal timecalc.Calendar) (PeriodReport, error) {
	filter, err := q.Filter(cal)
	if err != nil {
		return PeriodReport{}, err
	}

	byDay := make(map[int64]*DayGroup)
	for _, entry := range entries {
		if !filter.Matches(entry) {
			continue
		}
		day := cal.StartOfDay(entry.StartedAt)
		group, ok := byDay[day.Unix()]
		if !ok {
			group = &DayGroup{Date: day, Entries: []domain.TimeEntry{}}
			byDay[day.Unix()] = group
		}
		group.Entries = append(group.Entries, entry)
		if !entry.IsRunning() {
			group.TotalSeconds += entry.DurationSeconds(*entry.EndedAt)
		}
	}

	result := PeriodReport{
		Kind:     q.Kind,
		Interval: timecalc.Interval{Start: *filter.StartedFrom, End: *filter.StartedBefore},
		Groups:   make([]DayGroup, 0, len(byDay)),
	}
	for _, group := range byDay {
		result.Groups = append(result.Groups, *group)
		result.TotalSeconds += group.TotalSeconds
	}
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Date.After(result.Groups[j].Date)
	})

	return result, nil
}

// EntryCount returns the number of listed entries across all groups.
func (r PeriodReport) EntryCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Entries)
	}
	return n
}
