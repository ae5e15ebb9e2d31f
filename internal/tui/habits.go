package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/focuskit/internal/habit"
	"github.com/sadopc/focuskit/internal/store"
)

var habitColors = []string{"#7C6CFF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

var reminderChoices = []string{"none", "daily", "hourly", "multiple"}

type habitsModel struct {
	tracker *habit.Tracker
	width   int
	height  int

	habits []store.Habit
	cursor int

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  uuid.UUID

	// Form field pointers (survive value copies)
	formName     *string
	formColor    *string
	formReminder *string
	formAt       *string
	formFrom     *string
	formTo       *string
	formTimes    *string
	formNotify   *bool
}

func newHabitsModel(t *habit.Tracker) habitsModel {
	name, color, reminder, at, from, to, times := "", habitColors[0], "none", "", "", "", ""
	notify := true
	m := habitsModel{
		tracker:      t,
		formName:     &name,
		formColor:    &color,
		formReminder: &reminder,
		formAt:       &at,
		formFrom:     &from,
		formTo:       &to,
		formTimes:    &times,
		formNotify:   &notify,
	}
	m.refresh()
	return m
}

func (h *habitsModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h *habitsModel) refresh() {
	h.habits = h.tracker.Habits()
	if h.cursor >= len(h.habits) {
		h.cursor = max(0, len(h.habits)-1)
	}
}

func (h habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.habits)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Select):
			if len(h.habits) > 0 {
				done := h.tracker.ToggleCompletion(h.habits[h.cursor].ID, time.Now())
				text := "Marked not done"
				if done {
					text = "Marked done"
				}
				return h, func() tea.Msg { return statusMsg{text: text} }
			}
		case key.Matches(msg, keys.New):
			return h.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(h.habits) > 0 {
				target := h.habits[h.cursor]
				return h.showForm(&target)
			}
		case key.Matches(msg, keys.Delete):
			if len(h.habits) > 0 {
				h.tracker.Delete(h.habits[h.cursor].ID)
				h.refresh()
				return h, func() tea.Msg { return statusMsg{text: "Habit deleted"} }
			}
		}
	}
	return h, nil
}

func (h habitsModel) showForm(existing *store.Habit) (habitsModel, tea.Cmd) {
	if existing != nil {
		h.editing = true
		h.editingID = existing.ID
		*h.formName = existing.Name
		*h.formColor = existing.Color
		*h.formNotify = existing.NotificationsEnabled
		*h.formReminder, *h.formAt, *h.formFrom, *h.formTo, *h.formTimes = describePolicy(existing.Reminder)
	} else {
		h.editing = false
		*h.formName = ""
		*h.formColor = habitColors[0]
		*h.formReminder = "none"
		*h.formAt = "09:00"
		*h.formFrom = "09:00"
		*h.formTo = "18:00"
		*h.formTimes = ""
		*h.formNotify = true
	}

	colorOptions := make([]huh.Option[string], len(habitColors))
	for i, c := range habitColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}
	reminderOptions := make([]huh.Option[string], len(reminderChoices))
	for i, c := range reminderChoices {
		reminderOptions[i] = huh.NewOption(c, c)
	}

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(h.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(h.formColor),
			huh.NewSelect[string]().Title("Reminder").Options(reminderOptions...).Value(h.formReminder),
			huh.NewInput().Title("Daily at (HH:MM)").Value(h.formAt),
			huh.NewInput().Title("Hourly from (HH:MM)").Value(h.formFrom),
			huh.NewInput().Title("Hourly until (HH:MM)").Value(h.formTo),
			huh.NewInput().Title("Times (HH:MM, comma-separated)").Value(h.formTimes),
			huh.NewConfirm().Title("Notifications enabled").Value(h.formNotify),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		if *h.formName == "" {
			return h, nil
		}

		policy := buildPolicy(*h.formReminder, *h.formAt, *h.formFrom, *h.formTo, *h.formTimes)
		if h.editing {
			for _, existing := range h.tracker.Habits() {
				if existing.ID == h.editingID {
					existing.Name = *h.formName
					existing.Color = *h.formColor
					existing.Reminder = policy
					existing.NotificationsEnabled = *h.formNotify
					h.tracker.Update(existing)
					break
				}
			}
		} else {
			h.tracker.Add(store.Habit{
				ID:                   uuid.New(),
				Name:                 *h.formName,
				Color:                *h.formColor,
				CreatedAt:            time.Now(),
				Reminder:             policy,
				NotificationsEnabled: *h.formNotify,
			})
		}
		h.refresh()
	}

	return h, cmd
}

// describePolicy flattens a reminder policy into form field values.
func describePolicy(p *store.ReminderPolicy) (interval, at, from, to, times string) {
	at, from, to = "09:00", "09:00", "18:00"
	if p == nil {
		return "none", at, from, to, ""
	}
	switch p.Interval {
	case store.ReminderDaily:
		return "daily", formatTimeOfDay(p.At), from, to, ""
	case store.ReminderHourly:
		return "hourly", at, formatTimeOfDay(p.From), formatTimeOfDay(p.To), ""
	case store.ReminderMultiple:
		parts := make([]string, len(p.Times))
		for i, t := range p.Times {
			parts[i] = formatTimeOfDay(t)
		}
		return "multiple", at, from, to, strings.Join(parts, ", ")
	}
	return "none", at, from, to, ""
}

func buildPolicy(interval, at, from, to, times string) *store.ReminderPolicy {
	switch interval {
	case "daily":
		return &store.ReminderPolicy{Interval: store.ReminderDaily, At: parseTimeOfDay(at)}
	case "hourly":
		return &store.ReminderPolicy{
			Interval: store.ReminderHourly,
			From:     parseTimeOfDay(from),
			To:       parseTimeOfDay(to),
		}
	case "multiple":
		var points []store.TimeOfDay
		for _, part := range strings.Split(times, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			points = append(points, parseTimeOfDay(part))
		}
		if len(points) == 0 {
			return nil
		}
		return &store.ReminderPolicy{Interval: store.ReminderMultiple, Times: points}
	}
	return nil
}

func parseTimeOfDay(s string) store.TimeOfDay {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	if hour < 0 || hour > 23 {
		hour = 9
	}
	if minute < 0 || minute > 59 {
		minute = 0
	}
	return store.TimeOfDay{Hour: hour, Minute: minute}
}

func formatTimeOfDay(t store.TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (h habitsModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		title := titleStyle.Render("New Habit")
		if h.editing {
			title = titleStyle.Render("Edit Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Habits")

	if len(h.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := time.Now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-8s %-8s %s", "", "Name", "Today", "Streak", "Reminder"))
	rows = append(rows, header)

	for i, hb := range h.habits {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(hb.Color)).Render("●")
		check := mutedStyle.Render("○")
		if h.tracker.IsCompleted(hb.ID, now) {
			check = successStyle.Render("✓")
		}
		streak := h.tracker.Streak(hb.ID, now)
		streakText := "-"
		if streak > 0 {
			streakText = fmt.Sprintf("%d🔥", streak)
		}

		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %-8s %-8s", cursor, colorDot, hb.Name, check, streakText))
		rows = append(rows, row+mutedStyle.Render(reminderSummary(hb)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: toggle today  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func reminderSummary(h store.Habit) string {
	if h.Reminder == nil {
		return "none"
	}
	if !h.NotificationsEnabled {
		return string(h.Reminder.Interval) + " (muted)"
	}
	switch h.Reminder.Interval {
	case store.ReminderDaily:
		return "daily " + formatTimeOfDay(h.Reminder.At)
	case store.ReminderHourly:
		return fmt.Sprintf("hourly %s-%s", formatTimeOfDay(h.Reminder.From), formatTimeOfDay(h.Reminder.To))
	case store.ReminderMultiple:
		return fmt.Sprintf("%d times/day", len(h.Reminder.Times))
	}
	return string(h.Reminder.Interval)
}
