package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	Resumed      bool   `json:"resumed"`
	StartedAt    string `json:"started_at"`
	EndedAt      string `json:"ended_at,omitempty"`
	PlannedSec   int64  `json:"planned_seconds"`
	RemainingSec int64  `json:"remaining_seconds"`
	Focus        string `json:"focus"`
}

func ToJSON(sessions []history.Session, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		endStr := ""
		if s.EndedAt != nil {
			endStr = s.EndedAt.Local().Format(time.RFC3339)
		}

		export.Sessions = append(export.Sessions, jsonSession{
			ID:           s.ID,
			Status:       s.Status,
			Resumed:      s.Resumed,
			StartedAt:    s.StartedAt.Local().Format(time.RFC3339),
			EndedAt:      endStr,
			PlannedSec:   s.Duration,
			RemainingSec: s.Remaining,
			Focus:        formatDuration(s.Duration - s.Remaining),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
