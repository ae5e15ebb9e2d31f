package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/focuskit/internal/store"
)

type jsonExport struct {
	ExportedAt  string           `json:"exported_at"`
	Sessions    []jsonSession    `json:"sessions"`
	Completions []jsonCompletion `json:"habit_completions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	PlannedSec  int    `json:"planned_seconds"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type jsonCompletion struct {
	Habit string `json:"habit"`
	Day   string `json:"day"`
}

func ToJSON(snap store.Snapshot, path string) error {
	habits := make(map[uuid.UUID]string, len(snap.Habits))
	for _, h := range snap.Habits {
		habits[h.ID] = h.Name
	}

	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, s := range snap.Sessions {
		completedStr := ""
		if s.CompletedAt != nil {
			completedStr = s.CompletedAt.Local().Format(time.RFC3339)
		}
		out.Sessions = append(out.Sessions, jsonSession{
			ID:          s.ID.String(),
			Kind:        string(s.Kind),
			PlannedSec:  s.PlannedSecs,
			StartedAt:   s.StartedAt.Local().Format(time.RFC3339),
			CompletedAt: completedStr,
		})
	}

	for _, c := range snap.Completions {
		name := habits[c.HabitID]
		if name == "" {
			name = "Unknown"
		}
		out.Completions = append(out.Completions, jsonCompletion{
			Habit: name,
			Day:   c.Day.Local().Format("2006-01-02"),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
