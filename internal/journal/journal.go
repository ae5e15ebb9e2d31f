// Package journal is the daily-log notes service.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/store"
)

// ErrNotFound reports an update or delete against a missing note id.
var ErrNotFound = errors.New("note not found")

type Log struct {
	store *store.Store
	bus   *event.Bus
	log   *zap.Logger

	now func() time.Time
}

func New(s *store.Store, bus *event.Bus, log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{store: s, bus: bus, log: log, now: time.Now}
}

// Notes returns all notes, newest first.
func (l *Log) Notes() []store.Note {
	notes := l.store.Notes()
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes
}

func (l *Log) Add(title, content string, tags []string) store.Note {
	now := l.now()
	note := store.Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	notes := l.store.Notes()
	notes = append(notes, note)
	if err := l.store.SaveNotes(notes); err != nil {
		l.log.Error("persist notes failed", zap.Error(err))
	}
	l.log.Info("note added", zap.String("title", note.Title))
	l.bus.PublishNotesChanged()
	return note
}

// Update replaces the stored note with the same id, refreshing UpdatedAt.
// Updating a missing note is a logged no-op.
func (l *Log) Update(n store.Note) error {
	notes := l.store.Notes()
	for i := range notes {
		if notes[i].ID == n.ID {
			n.UpdatedAt = l.now()
			notes[i] = n
			if err := l.store.SaveNotes(notes); err != nil {
				l.log.Error("persist notes failed", zap.Error(err))
			}
			l.log.Info("note updated", zap.String("title", n.Title))
			l.bus.PublishNotesChanged()
			return nil
		}
	}
	l.log.Warn("note update skipped", zap.String("id", n.ID.String()))
	return fmt.Errorf("update note %s: %w", n.ID, ErrNotFound)
}

func (l *Log) Delete(id uuid.UUID) {
	notes := l.store.Notes()
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		l.log.Warn("note delete skipped", zap.String("id", id.String()))
		return
	}
	if err := l.store.SaveNotes(kept); err != nil {
		l.log.Error("persist notes failed", zap.Error(err))
	}
	l.bus.PublishNotesChanged()
}

// ParseTags splits comma-separated tag text, trimming blanks.
func ParseTags(text string) []string {
	var tags []string
	for _, t := range strings.Split(text, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Tags collects the sorted set of tags across notes.
func Tags(notes []store.Note) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, n := range notes {
		for _, t := range n.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Filter narrows notes to those carrying tag (when nonempty) and matching
// search case-insensitively in title or content (when nonempty).
func Filter(notes []store.Note, tag, search string) []store.Note {
	search = strings.ToLower(search)
	var out []store.Note
	for _, n := range notes {
		if tag != "" && !hasTag(n, tag) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func hasTag(n store.Note, tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
