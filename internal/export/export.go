// Package export writes aggregated periods as CSV or JSON.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/report"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat parses "csv" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

// Input is one aggregated period plus what is needed to render it.
// Running entries are exported with their elapsed time at Now.
type Input struct {
	Report       report.PeriodReport
	ProjectNames map[string]string
	Now          time.Time
	Location     *time.Location
}

// Write renders in to w in the given format.
func Write(w io.Writer, format Format, in Input) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, in)
	case FormatJSON:
		return WriteJSON(w, in)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func (in Input) location() *time.Location {
	if in.Location == nil {
		return time.Local
	}
	return in.Location
}

func (in Input) projectName(entry domain.TimeEntry) string {
	if entry.ProjectID == nil {
		return ""
	}
	if name, ok := in.ProjectNames[*entry.ProjectID]; ok {
		return name
	}
	return "Unknown"
}

func (in Input) formatTime(t time.Time) string {
	return t.In(in.location()).Format(time.RFC3339)
}

func (in Input) endedAt(entry domain.TimeEntry) string {
	if entry.EndedAt == nil {
		return ""
	}
	return in.formatTime(*entry.EndedAt)
}
