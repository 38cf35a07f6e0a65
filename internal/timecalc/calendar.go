package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// PeriodKind selects the calendar window used by reports.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

// ParsePeriodKind accepts "day", "month" or "year" in any case.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	default:
		return "", fmt.Errorf("unknown period %q: expected day, month or year", s)
	}
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Calendar computes local calendar boundaries in a single location.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a Calendar for loc; nil means time.Local.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

// LoadCalendar resolves an IANA zone name ("Local" and "" mean the system zone).
func LoadCalendar(name string) (Calendar, error) {
	if name == "" || name == "Local" {
		return NewCalendar(time.Local), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Calendar{}, fmt.Errorf("loading location %q: %w", name, err)
	}
	return NewCalendar(loc), nil
}

// Location returns the calendar's location.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// StartOfDay returns 00:00:00 of t's local day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location())
}

// Day returns the local day containing t.
func (c Calendar) Day(t time.Time) Interval {
	start := c.StartOfDay(t)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// Week returns the Monday-based week containing t.
func (c Calendar) Week(t time.Time) Interval {
	start := c.StartOfDay(t)
	wd := int(start.Weekday())
	if wd == 0 {
		wd = 7
	}
	start = start.AddDate(0, 0, -(wd - 1))
	return Interval{Start: start, End: start.AddDate(0, 0, 7)}
}

// Month returns the calendar month containing t.
func (c Calendar) Month(t time.Time) Interval {
	t = t.In(c.Location())
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.Location())
	return Interval{Start: start, End: start.AddDate(0, 1, 0)}
}

// Year returns the calendar year containing t.
func (c Calendar) Year(t time.Time) Interval {
	t = t.In(c.Location())
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, c.Location())
	return Interval{Start: start, End: start.AddDate(1, 0, 0)}
}

// Period returns the interval of the given kind containing anchor.
func (c Calendar) Period(kind PeriodKind, anchor time.Time) (Interval, error) {
	switch kind {
	case PeriodDay:
		return c.Day(anchor), nil
	case PeriodMonth:
		return c.Month(anchor), nil
	case PeriodYear:
		return c.Year(anchor), nil
	default:
		return Interval{}, fmt.Errorf("unknown period %q", kind)
	}
}

// SameDay reports whether two instants fall on the same local day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// PeriodLabel renders "Today", "March 2026" or "2026" for a period anchor.
func (c Calendar) PeriodLabel(kind PeriodKind, anchor, now time.Time) string {
	anchor = anchor.In(c.Location())
	switch kind {
	case PeriodDay:
		if c.SameDay(anchor, now) {
			return "Today"
		}
		return anchor.Format("2 Jan 2006")
	case PeriodMonth:
		return anchor.Format("January 2006")
	case PeriodYear:
		return anchor.Format("2006")
	default:
		return string(kind)
	}
}
