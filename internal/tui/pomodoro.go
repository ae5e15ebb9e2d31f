package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focuskit/internal/store"
	"github.com/sadopc/focuskit/internal/timer"
)

var phaseLabels = map[store.SessionKind]string{
	store.SessionWork:       "FOCUS",
	store.SessionShortBreak: "SHORT BREAK",
	store.SessionLongBreak:  "LONG BREAK",
}

type pomodoroModel struct {
	engine *timer.Engine
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formWork      *string
	formShort     *string
	formLong      *string
	formAutoStart *bool
	formCycle     *string
}

func newPomodoroModel(e *timer.Engine) pomodoroModel {
	work, short, long, cycle := "", "", "", ""
	auto := true
	return pomodoroModel{
		engine:        e,
		formWork:      &work,
		formShort:     &short,
		formLong:      &long,
		formAutoStart: &auto,
		formCycle:     &cycle,
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Start):
			p.engine.Start()
		case key.Matches(msg, keys.Pause):
			if p.engine.State() == timer.StatePaused {
				p.engine.Start()
			} else {
				p.engine.Pause()
			}
		case key.Matches(msg, keys.Reset):
			p.engine.Reset()
		case key.Matches(msg, keys.Skip):
			p.engine.Skip()
		case key.Matches(msg, keys.Settings):
			return p.showSettingsForm()
		}
	}
	return p, nil
}

func (p pomodoroModel) showSettingsForm() (pomodoroModel, tea.Cmd) {
	s := p.engine.Settings()
	*p.formWork = strconv.Itoa(s.WorkSecs / 60)
	*p.formShort = strconv.Itoa(s.ShortBreakSecs / 60)
	*p.formLong = strconv.Itoa(s.LongBreakSecs / 60)
	*p.formAutoStart = s.AutoStartNext
	*p.formCycle = strconv.Itoa(s.SessionsUntilLongBreak)

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus duration (25-50 min)").Value(p.formWork).Validate(validateMinutes),
			huh.NewInput().Title("Short break (3-15 min)").Value(p.formShort).Validate(validateMinutes),
			huh.NewInput().Title("Long break (10-30 min)").Value(p.formLong).Validate(validateMinutes),
			huh.NewConfirm().Title("Auto-start next phase").Value(p.formAutoStart),
			huh.NewInput().Title("Focus sessions per long break").Value(p.formCycle).Validate(validateMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func validateMinutes(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (p pomodoroModel) updateForm(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p, p.applySettings()
	}

	return p, cmd
}

func (p pomodoroModel) applySettings() tea.Cmd {
	work, _ := strconv.Atoi(strings.TrimSpace(*p.formWork))
	short, _ := strconv.Atoi(strings.TrimSpace(*p.formShort))
	long, _ := strconv.Atoi(strings.TrimSpace(*p.formLong))
	cycle, _ := strconv.Atoi(strings.TrimSpace(*p.formCycle))

	updates := []struct {
		kind    store.SessionKind
		minutes int
	}{
		{store.SessionWork, work},
		{store.SessionShortBreak, short},
		{store.SessionLongBreak, long},
	}
	for _, u := range updates {
		if err := p.engine.UpdateDuration(u.kind, u.minutes); err != nil {
			text := fmt.Sprintf("%d min rejected for %s: %v", u.minutes, u.kind, err)
			return func() tea.Msg { return statusMsg{text: text, isError: true} }
		}
	}
	if err := p.engine.UpdateSettings(*p.formAutoStart, cycle); err != nil {
		text := fmt.Sprintf("Settings rejected: %v", err)
		return func() tea.Msg { return statusMsg{text: text, isError: true} }
	}
	return func() tea.Msg { return statusMsg{text: "Timer settings saved"} }
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Timer Settings")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Pomodoro Timer")

	var timeDisplay, phaseLabel, indicator string
	clock := formatClock(p.engine.Remaining())
	label := phaseLabels[p.engine.Kind()]

	switch p.engine.State() {
	case timer.StateIdle:
		timeDisplay = mutedStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		phaseLabel = mutedStyle.Render(label)
		indicator = mutedStyle.Render("Press s to begin")
	case timer.StateRunning:
		style := accentStyle
		if p.engine.Kind() != store.SessionWork {
			style = successStyle
		}
		timeDisplay = style.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		phaseLabel = style.Bold(true).Render(label)
		indicator = p.renderCycle()
	case timer.StatePaused:
		timeDisplay = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		phaseLabel = warningStyle.Bold(true).Render(label + " — PAUSED")
		indicator = p.renderCycle()
	}

	bar := p.renderProgressBar(w - 10)

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		bar,
		indicator,
	)

	tally := mutedStyle.Render(fmt.Sprintf("Today: %d focus  ·  Week: %d",
		p.engine.CompletedToday(), p.engine.CompletedThisWeek()))

	var controls string
	switch p.engine.State() {
	case timer.StateIdle:
		controls = mutedStyle.Render("s: start  o: settings  q: quit")
	case timer.StateRunning:
		controls = mutedStyle.Render("p: pause  x: skip phase  r: reset")
	case timer.StatePaused:
		controls = mutedStyle.Render("p: resume  x: skip phase  r: reset")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", tally, controls),
	)
}

func (p pomodoroModel) renderCycle() string {
	target := p.engine.Settings().SessionsUntilLongBreak
	done := p.engine.WorkStreak()

	var parts []string
	for i := 0; i < target; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && p.engine.Kind() == store.SessionWork:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", done, target))
	return progress + counter
}

func (p pomodoroModel) renderProgressBar(width int) string {
	if width < 10 {
		width = 10
	}
	filled := int(p.engine.Progress() * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return highlightStyle.Render(bar)
}
