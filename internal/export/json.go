package export

import (
	"encoding/json"
	"fmt"
	"io"

	"timeledger/internal/timecalc"
)

type jsonExport struct {
	ExportedAt   string    `json:"exported_at"`
	Period       string    `json:"period"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	TotalSeconds int64     `json:"total_seconds"`
	Total        string    `json:"total"`
	Count        int       `json:"count"`
	Days         []jsonDay `json:"days"`
}

type jsonDay struct {
	Date         string      `json:"date"`
	TotalSeconds int64       `json:"total_seconds"`
	Entries      []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string `json:"id"`
	Project     string `json:"project,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at,omitempty"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Running     bool   `json:"running,omitempty"`
	Note        string `json:"note,omitempty"`
}

// WriteJSON writes the period as an indented JSON document.
func WriteJSON(w io.Writer, in Input) error {
	doc := jsonExport{
		ExportedAt:   in.formatTime(in.Now),
		Period:       string(in.Report.Kind),
		From:         in.formatTime(in.Report.Interval.Start),
		To:           in.formatTime(in.Report.Interval.End),
		TotalSeconds: in.Report.TotalSeconds,
		Total:        timecalc.FormatHoursMinutes(in.Report.TotalSeconds),
		Count:        in.Report.EntryCount(),
		Days:         make([]jsonDay, 0, len(in.Report.Groups)),
	}

	for _, group := range in.Report.Groups {
		day := jsonDay{
			Date:         group.Date.Format("2006-01-02"),
			TotalSeconds: group.TotalSeconds,
			Entries:      make([]jsonEntry, 0, len(group.Entries)),
		}
		for _, entry := range group.Entries {
			seconds := entry.DurationSeconds(in.Now)
			item := jsonEntry{
				ID:          entry.ID,
				Project:     in.projectName(entry),
				StartedAt:   in.formatTime(entry.StartedAt),
				EndedAt:     in.endedAt(entry),
				DurationSec: seconds,
				Duration:    timecalc.FormatHHMMSS(seconds),
				Running:     entry.IsRunning(),
				Note:        entry.Note,
			}
			if entry.ProjectID != nil {
				item.ProjectID = *entry.ProjectID
			}
			day.Entries = append(day.Entries, item)
		}
		doc.Days = append(doc.Days, day)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
