package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/achievement"
	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/export"
	"github.com/sadopc/focuskit/internal/games"
	"github.com/sadopc/focuskit/internal/habit"
	"github.com/sadopc/focuskit/internal/journal"
	"github.com/sadopc/focuskit/internal/store"
	"github.com/sadopc/focuskit/internal/timer"
)

// pendingEvents collects bus events raised synchronously while the model
// processes a message. The pointer is shared across model copies so the
// drain in Update sees everything the engines published.
type pendingEvents struct {
	completed []event.SessionCompleted
	dirty     bool
}

// App is the root Bubble Tea model.
type App struct {
	store        *store.Store
	engine       *timer.Engine
	stopwatch    *timer.Stopwatch
	tracker      *habit.Tracker
	journal      *journal.Log
	achievements *achievement.Engine
	games        *games.Service
	log          *zap.Logger

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	pomodoro pomodoroModel
	habits   habitsModel
	notes    journalModel
	tools    toolsModel
	profile  profileModel

	help    help.Model
	status  string
	pending *pendingEvents
}

// Deps bundles the engines the UI drives. All fields are required.
type Deps struct {
	Store        *store.Store
	Bus          *event.Bus
	Engine       *timer.Engine
	Stopwatch    *timer.Stopwatch
	Tracker      *habit.Tracker
	Journal      *journal.Log
	Achievements *achievement.Engine
	Games        *games.Service
	Log          *zap.Logger
}

func NewApp(d Deps) App {
	h := help.New()
	h.ShowAll = false

	pending := &pendingEvents{}
	d.Bus.OnSessionCompleted(func(e event.SessionCompleted) {
		pending.completed = append(pending.completed, e)
		pending.dirty = true
	})
	d.Bus.OnHabitsChanged(func(event.HabitsChanged) { pending.dirty = true })
	d.Bus.OnNotesChanged(func(event.NotesChanged) { pending.dirty = true })

	return App{
		store:        d.Store,
		engine:       d.Engine,
		stopwatch:    d.Stopwatch,
		tracker:      d.Tracker,
		journal:      d.Journal,
		achievements: d.Achievements,
		games:        d.Games,
		log:          d.Log,
		activeView:   viewTimer,
		pomodoro:     newPomodoroModel(d.Engine),
		habits:       newHabitsModel(d.Tracker),
		notes:        newJournalModel(d.Journal),
		tools:        newToolsModel(d.Stopwatch, d.Games),
		profile:      newProfileModel(d.Store, d.Achievements),
		help:         h,
		pending:      pending,
	}
}

func (a App) Init() tea.Cmd {
	return pomodoroTickCmd()
}

func pomodoroTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pomodoroTickMsg(t)
	})
}

func stopwatchTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return stopwatchTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.pomodoro.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.tools.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.NextTab):
			a.activeView = (a.activeView + 1) % 5
			a.refreshCurrentView()
			return a, nil
		case key.Matches(msg, keys.PrevTab):
			a.activeView = (a.activeView + 4) % 5
			a.refreshCurrentView()
			return a, nil
		}
		return a.updateActiveView(msg)

	case pomodoroTickMsg:
		a.engine.Tick(time.Second)
		var cmds []tea.Cmd
		cmds = append(cmds, pomodoroTickCmd())
		if cmd := a.drainEvents(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case stopwatchTickMsg:
		// Re-arm only while running; a stale tick lands here and dies.
		if !a.stopwatch.Running() {
			return a, nil
		}
		a.stopwatch.Tick(100 * time.Millisecond)
		return a, stopwatchTickCmd()

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.status = errorStyle.Render(msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case reactionTargetMsg:
		// Delivered regardless of the active tab; the round keeps running.
		var cmd tea.Cmd
		a.tools, cmd = a.tools.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewJournal:
		a.notes, cmd = a.notes.update(msg)
	case viewTools:
		a.tools, cmd = a.tools.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}

	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if drained := a.drainEvents(); drained != nil {
		cmds = append(cmds, drained)
	}
	if len(cmds) == 0 {
		return a, nil
	}
	return a, tea.Batch(cmds...)
}

// drainEvents turns engine events collected during dispatch into status
// lines and re-runs achievement evaluation.
func (a *App) drainEvents() tea.Cmd {
	p := a.pending
	if p == nil || (!p.dirty && len(p.completed) == 0) {
		return nil
	}

	var texts []string
	for _, ev := range p.completed {
		switch ev.Session.Kind {
		case store.SessionWork:
			texts = append(texts, "Focus complete — time for a break \a")
		default:
			texts = append(texts, "Break over — back to work \a")
		}
	}
	p.completed = p.completed[:0]

	if p.dirty {
		p.dirty = false
		for _, unlocked := range a.achievements.Evaluate() {
			texts = append(texts, fmt.Sprintf("Achievement unlocked: %s %s", unlocked.Icon, unlocked.Title))
		}
	}

	a.profile.invalidate()
	if len(texts) == 0 {
		return nil
	}
	text := texts[len(texts)-1]
	return func() tea.Msg {
		return statusMsg{text: text}
	}
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewHabits:
		return a.habits.formActive
	case viewJournal:
		return a.notes.formActive
	case viewTimer:
		return a.pomodoro.formActive
	}
	return false
}

func (a *App) refreshCurrentView() {
	switch a.activeView {
	case viewHabits:
		a.habits.refresh()
	case viewJournal:
		a.notes.refresh()
	case viewProfile:
		a.profile.refresh()
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.pomodoro.view()
	case viewHabits:
		content = a.habits.view()
	case viewJournal:
		content = a.notes.view()
	case viewTools:
		content = a.tools.view()
	case viewProfile:
		content = a.profile.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focuskit")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Active timer indicators in the footer, visible from any tab.
	timerInfo := ""
	switch a.engine.State() {
	case timer.StateRunning:
		timerInfo = successStyle.Render(" ● " + formatClock(a.engine.Remaining()))
	case timer.StatePaused:
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.engine.Remaining()))
	}
	if a.stopwatch.Running() {
		timerInfo += highlightStyle.Render(" ⏱ " + formatStopwatch(a.stopwatch.Elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

type exportDoneMsg struct {
	path string
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (sessions)", "JSON (sessions + habits)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Select):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	default:
		if msg.String() == "esc" {
			a.exportPicking = false
		}
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("focuskit-export-%s.csv", dateStr))
			if err := export.ToCSV(a.store.Sessions(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("focuskit-export-%s.json", dateStr))
			if err := export.ToJSON(a.store.Snapshot(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
