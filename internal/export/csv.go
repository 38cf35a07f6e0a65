package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"timeledger/internal/timecalc"
)

var csvHeader = []string{"ID", "Date", "Project", "Start", "End", "Duration (s)", "Duration", "Running", "Note"}

// WriteCSV writes one row per entry, newest day first.
func WriteCSV(w io.Writer, in Input) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, group := range in.Report.Groups {
		date := group.Date.Format("2006-01-02")
		for _, entry := range group.Entries {
			seconds := entry.DurationSeconds(in.Now)
			row := []string{
				entry.ID,
				date,
				in.projectName(entry),
				in.formatTime(entry.StartedAt),
				in.endedAt(entry),
				strconv.FormatInt(seconds, 10),
				timecalc.FormatHHMMSS(seconds),
				strconv.FormatBool(entry.IsRunning()),
				entry.Note,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
