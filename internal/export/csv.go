// Package export writes history to CSV and JSON files. CSV covers the focus
// session report; JSON is the full history dump.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focuskit/internal/store"
)

func ToCSV(sessions []store.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Kind", "Planned (s)", "Started", "Completed", "Duration"}); err != nil {
		return err
	}

	for _, s := range sessions {
		completedStr := ""
		if s.CompletedAt != nil {
			completedStr = s.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			s.ID.String(),
			string(s.Kind),
			fmt.Sprintf("%d", s.PlannedSecs),
			s.StartedAt.Local().Format(time.RFC3339),
			completedStr,
			formatDuration(int64(s.PlannedSecs)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
