package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewHabits
	viewJournal
	viewTools
	viewProfile
)

var viewNames = []string{"Timer", "Habits", "Journal", "Tools", "Profile"}

// --- Messages ---

// pomodoroTickMsg is the 1s clock source for the pomodoro engine.
type pomodoroTickMsg time.Time

// stopwatchTickMsg is the 0.1s clock source for the stopwatch. It is only
// re-armed while the stopwatch runs, so a stale tick after a pause lands on
// a stopped watch and dies.
type stopwatchTickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// --- Helpers ---

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatStopwatch(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	tenths := int(d.Milliseconds()/100) % 10
	return fmt.Sprintf("%02d:%02d.%d", m, s, tenths)
}
