// Package target tracks monthly hour targets with carry-over between months.
package target

import (
	"math"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/timecalc"
)

// Calculation is the standing of a project against its monthly target.
// Hours are fractional; carry and status are signed (positive means ahead).
type Calculation struct {
	MonthlyTarget        float64
	RealizedCurrentMonth float64
	TargetCurrentMonth   float64
	CarryPreviousMonths  float64
	RemainingThisMonth   float64
	StatusThisMonth      float64
	NumberOfClosedMonths int
}

// Credit is the surplus carried in from closed months.
func (c Calculation) Credit() float64 {
	return math.Max(0, c.CarryPreviousMonths)
}

// Debt is the deficit carried in from closed months.
func (c Calculation) Debt() float64 {
	return math.Max(0, -c.CarryPreviousMonths)
}

// IsCompleteThisMonth reports whether nothing remains to be worked this month.
func (c Calculation) IsCompleteThisMonth() bool {
	return c.RemainingThisMonth == 0
}

// FormattedCarry renders the carry as "+5.0h" or "-2.0h".
func (c Calculation) FormattedCarry() string {
	return timecalc.FormatSignedHours(c.CarryPreviousMonths)
}

// Calculate computes the project's target standing at now from its full
// entry history. It reports false when the project has no positive target.
// Running entries never count.
func Calculate(project domain.Project, entries []domain.TimeEntry, now time.Time, cal timecalc.Calendar) (Calculation, bool) {
	monthlyTarget, ok := project.MonthlyTarget()
	if !ok {
		return Calculation{}, false
	}

	completedEntries := make([]domain.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsRunning() {
			completedEntries = append(completedEntries, entry)
		}
	}

	currentMonth := cal.Month(now)
	closedMonths := closedMonthsBefore(currentMonth, completedEntries, cal)

	var realizedClosedMonths float64
	for _, month := range closedMonths {
		realizedClosedMonths += hoursIn(month, completedEntries)
	}
	targetClosedMonths := monthlyTarget * float64(len(closedMonths))
	carry := realizedClosedMonths - targetClosedMonths

	realizedCurrentMonth := hoursIn(currentMonth, completedEntries)
	targetCurrentMonth := monthlyTarget

	credit := math.Max(0, carry)
	debt := math.Max(0, -carry)

	return Calculation{
		MonthlyTarget:        monthlyTarget,
		RealizedCurrentMonth: realizedCurrentMonth,
		TargetCurrentMonth:   targetCurrentMonth,
		CarryPreviousMonths:  carry,
		RemainingThisMonth:   math.Max(0, (targetCurrentMonth-realizedCurrentMonth-credit)+debt),
		StatusThisMonth:      (realizedCurrentMonth - targetCurrentMonth) + carry,
		NumberOfClosedMonths: len(closedMonths),
	}, true
}

// closedMonthsBefore lists every month from the first month with completed
// activity up to, but excluding, the current month.
func closedMonthsBefore(currentMonth timecalc.Interval, completed []domain.TimeEntry, cal timecalc.Calendar) []timecalc.Interval {
	if len(completed) == 0 {
		return nil
	}

	first := completed[0].StartedAt
	for _, entry := range completed[1:] {
		if entry.StartedAt.Before(first) {
			first = entry.StartedAt
		}
	}

	var months []timecalc.Interval
	for month := cal.Month(first); month.Start.Before(currentMonth.Start); month = cal.Month(month.End) {
		months = append(months, month)
	}
	return months
}

func hoursIn(month timecalc.Interval, completed []domain.TimeEntry) float64 {
	var hours float64
	for _, entry := range completed {
		if month.Contains(entry.StartedAt) {
			hours += timecalc.SecondsToHours(entry.DurationSeconds(*entry.EndedAt))
		}
	}
	return hours
}
