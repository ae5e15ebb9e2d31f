package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/achievement"
	"github.com/sadopc/focuskit/internal/config"
	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/games"
	"github.com/sadopc/focuskit/internal/habit"
	"github.com/sadopc/focuskit/internal/journal"
	"github.com/sadopc/focuskit/internal/logging"
	"github.com/sadopc/focuskit/internal/notify"
	"github.com/sadopc/focuskit/internal/store"
	"github.com/sadopc/focuskit/internal/timer"
	"github.com/sadopc/focuskit/internal/tui"
)

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	s, err := store.New(cfg.DBPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	bus := event.NewBus()
	sched := notify.NewRegistry(log)

	engine := timer.New(s, bus, log)
	stopwatch := timer.NewStopwatch(s, log)
	tracker := habit.NewTracker(s, sched, bus, log)
	notes := journal.New(s, bus, log)
	achievements := achievement.New(s, bus, log)
	svc := games.NewService(s, log)

	achievements.Load()
	tracker.ScheduleAll()

	// Completion chimes ride the same scheduler as habit reminders.
	bus.OnSessionCompleted(func(e event.SessionCompleted) {
		title, body := "Focus complete", "Time for a break."
		if e.Session.Kind != store.SessionWork {
			title, body = "Break over", "Back to work."
		}
		if err := sched.Schedule(notify.Request{
			ID:    "session_" + e.Session.ID.String(),
			Spec:  notify.Once(0),
			Title: title,
			Body:  body,
		}); err != nil {
			log.Warn("schedule completion notification", zap.Error(err))
		}
	})

	app := tui.NewApp(tui.Deps{
		Store:        s,
		Bus:          bus,
		Engine:       engine,
		Stopwatch:    stopwatch,
		Tracker:      tracker,
		Journal:      notes,
		Achievements: achievements,
		Games:        svc,
		Log:          log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
