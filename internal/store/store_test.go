package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory(zap.NewNop())
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func completedSession(kind SessionKind, plannedSecs int, completedAt time.Time) Session {
	started := completedAt.Add(-time.Duration(plannedSecs) * time.Second)
	return Session{
		ID:          uuid.New(),
		Kind:        kind,
		PlannedSecs: plannedSecs,
		StartedAt:   started,
		CompletedAt: &completedAt,
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory(zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/focuskit.db"
	s, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/focuskit.db"
	s, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendSession(completedSession(SessionWork, 1500, time.Now())); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got := len(s2.Sessions()); got != 1 {
		t.Fatalf("expected 1 session after reopen, got %d", got)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Record round-trips
// ============================================================

func TestSessionsEmptyByDefault(t *testing.T) {
	s := newTestStore(t)
	if got := s.Sessions(); len(got) != 0 {
		t.Fatalf("expected no sessions, got %d", len(got))
	}
}

func TestAppendSession(t *testing.T) {
	s := newTestStore(t)
	sess := completedSession(SessionWork, 1500, time.Now())
	if err := s.AppendSession(sess); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendSession(completedSession(SessionShortBreak, 300, time.Now())); err != nil {
		t.Fatal(err)
	}

	got := s.Sessions()
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != sess.ID {
		t.Fatalf("expected first appended session first, got %v", got[0].ID)
	}
	if got[0].Kind != SessionWork || !got[0].Completed() {
		t.Fatalf("session lost fields: %+v", got[0])
	}
	if got[0].Planned() != 25*time.Minute {
		t.Fatalf("expected 25m planned, got %v", got[0].Planned())
	}
}

func TestIncompleteSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	sess := Session{ID: uuid.New(), Kind: SessionWork, PlannedSecs: 1500, StartedAt: time.Now()}
	if err := s.AppendSession(sess); err != nil {
		t.Fatal(err)
	}
	got := s.Sessions()
	if got[0].Completed() {
		t.Fatal("expected incomplete session")
	}
}

func TestHabitsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	h := Habit{
		ID:        uuid.New(),
		Name:      "Read",
		Color:     "#FF6B6B",
		CreatedAt: time.Now(),
		Reminder: &ReminderPolicy{
			Interval: ReminderHourly,
			From:     TimeOfDay{Hour: 9, Minute: 15},
			To:       TimeOfDay{Hour: 11, Minute: 45},
		},
		NotificationsEnabled: true,
	}
	if err := s.SaveHabits([]Habit{h}); err != nil {
		t.Fatal(err)
	}

	got := s.Habits()
	if len(got) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(got))
	}
	if got[0].Reminder == nil || got[0].Reminder.From.Minute != 15 {
		t.Fatalf("reminder policy lost: %+v", got[0].Reminder)
	}
}

func TestHabitNilReminderStaysNil(t *testing.T) {
	s := newTestStore(t)
	h := Habit{ID: uuid.New(), Name: "Walk", CreatedAt: time.Now()}
	if err := s.SaveHabits([]Habit{h}); err != nil {
		t.Fatal(err)
	}
	if got := s.Habits(); got[0].Reminder != nil {
		t.Fatalf("expected nil reminder, got %+v", got[0].Reminder)
	}
}

func TestCompletionsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	c := HabitCompletion{ID: uuid.New(), HabitID: uuid.New(), Day: time.Now()}
	if err := s.SaveCompletions([]HabitCompletion{c}); err != nil {
		t.Fatal(err)
	}
	got := s.Completions()
	if len(got) != 1 || got[0].HabitID != c.HabitID {
		t.Fatalf("completions round trip failed: %+v", got)
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	n := Note{
		ID:        uuid.New(),
		Title:     "ideas",
		Content:   "write more tests",
		Tags:      []string{"work", "go"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.SaveNotes([]Note{n}); err != nil {
		t.Fatal(err)
	}
	got := s.Notes()
	if len(got) != 1 || len(got[0].Tags) != 2 {
		t.Fatalf("notes round trip failed: %+v", got)
	}
}

func TestGameScores(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendGameScore(GameScore{ID: uuid.New(), Kind: GameReaction, Score: 21, RecordedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendGameScore(GameScore{ID: uuid.New(), Kind: GamePuzzle, Score: 80, RecordedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	got := s.GameScores()
	if len(got) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(got))
	}
	if got[0].Kind != GameReaction || got[0].Score != 21 {
		t.Fatalf("score lost fields: %+v", got[0])
	}
}

func TestTimerSessions(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	ts := TimerSession{ID: uuid.New(), DurationMS: 90_500, StartedAt: now.Add(-90 * time.Second), EndedAt: now}
	if err := s.AppendTimerSession(ts); err != nil {
		t.Fatal(err)
	}
	got := s.TimerSessions()
	if len(got) != 1 {
		t.Fatalf("expected 1 timer session, got %d", len(got))
	}
	if got[0].Duration() != 90500*time.Millisecond {
		t.Fatalf("expected 90.5s, got %v", got[0].Duration())
	}
}

func TestAchievementsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	a := Achievement{ID: uuid.New(), Key: "first_steps", Title: "First Steps", Unlocked: true, UnlockedAt: &now}
	if err := s.SaveAchievements([]Achievement{a}); err != nil {
		t.Fatal(err)
	}
	got := s.Achievements()
	if len(got) != 1 || !got[0].Unlocked || got[0].UnlockedAt == nil {
		t.Fatalf("achievements round trip failed: %+v", got)
	}
}

// ============================================================
// Settings
// ============================================================

func TestPomodoroSettingsDefault(t *testing.T) {
	s := newTestStore(t)
	got := s.PomodoroSettings()
	want := DefaultPomodoroSettings()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}

func TestPomodoroSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	set := PomodoroSettings{
		WorkSecs:               30 * 60,
		ShortBreakSecs:         10 * 60,
		LongBreakSecs:          20 * 60,
		AutoStartNext:          false,
		SessionsUntilLongBreak: 3,
	}
	if err := s.SavePomodoroSettings(set); err != nil {
		t.Fatal(err)
	}
	if got := s.PomodoroSettings(); got != set {
		t.Fatalf("expected %+v, got %+v", set, got)
	}
}

func TestAppSettingsDefault(t *testing.T) {
	s := newTestStore(t)
	if got := s.AppSettings(); got != DefaultAppSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestAppSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	set := AppSettings{Theme: "dark", SoundsEnabled: false, NotificationsEnabled: true, GameDifficulty: "hard"}
	if err := s.SaveAppSettings(set); err != nil {
		t.Fatal(err)
	}
	if got := s.AppSettings(); got != set {
		t.Fatalf("expected %+v, got %+v", set, got)
	}
}

// ============================================================
// Corrupt data tolerance
// ============================================================

func TestCorruptListLoadsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.put(KeyPomodoroSessions, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if got := s.Sessions(); got != nil {
		t.Fatalf("expected nil for corrupt blob, got %+v", got)
	}
}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := s.put(KeyPomodoroSettings, []byte("[]garbage")); err != nil {
		t.Fatal(err)
	}
	if got := s.PomodoroSettings(); got != DefaultPomodoroSettings() {
		t.Fatalf("expected defaults for corrupt settings, got %+v", got)
	}
}

func TestCorruptBlobOverwritable(t *testing.T) {
	s := newTestStore(t)
	if err := s.put(KeyHabits, []byte("oops")); err != nil {
		t.Fatal(err)
	}
	h := Habit{ID: uuid.New(), Name: "Recover", CreatedAt: time.Now()}
	if err := s.SaveHabits([]Habit{h}); err != nil {
		t.Fatal(err)
	}
	if got := s.Habits(); len(got) != 1 {
		t.Fatalf("expected recovery after overwrite, got %+v", got)
	}
}

// ============================================================
// Delete and snapshot
// ============================================================

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveNotes([]Note{{ID: uuid.New(), Title: "bye"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(KeyNotes); err != nil {
		t.Fatal(err)
	}
	if got := s.Notes(); len(got) != 0 {
		t.Fatalf("expected no notes after delete, got %d", len(got))
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("nonexistent"); err != nil {
		t.Fatalf("delete of missing key should be a no-op, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendSession(completedSession(SessionWork, 1500, time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHabits([]Habit{{ID: uuid.New(), Name: "H"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveNotes([]Note{{ID: uuid.New(), Title: "N"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendGameScore(GameScore{ID: uuid.New(), Kind: GamePuzzle, Score: 1}); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if len(snap.Sessions) != 1 || len(snap.Habits) != 1 || len(snap.Notes) != 1 || len(snap.Scores) != 1 {
		t.Fatalf("snapshot incomplete: %+v", snap)
	}
	if len(snap.Completions) != 0 {
		t.Fatalf("expected no completions, got %d", len(snap.Completions))
	}
}
