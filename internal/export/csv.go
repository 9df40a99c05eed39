package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

func ToCSV(sessions []history.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Status", "Resumed", "Started", "Ended", "Planned (s)", "Remaining (s)", "Focus"}); err != nil {
		return err
	}

	for _, s := range sessions {
		endStr := ""
		if s.EndedAt != nil {
			endStr = s.EndedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", s.ID),
			s.Status,
			fmt.Sprintf("%t", s.Resumed),
			s.StartedAt.Local().Format(time.RFC3339),
			endStr,
			fmt.Sprintf("%d", s.Duration),
			fmt.Sprintf("%d", s.Remaining),
			formatDuration(s.Duration - s.Remaining),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
