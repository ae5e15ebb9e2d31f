package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focuskit/internal/achievement"
	"github.com/sadopc/focuskit/internal/stats"
	"github.com/sadopc/focuskit/internal/store"
)

type profileModel struct {
	store        *store.Store
	achievements *achievement.Engine
	width        int
	height       int

	summary  stats.Summary
	weekly   []stats.DayCount
	unlocks  []store.Achievement
	chart    barchart.Model
	loaded   bool
	stale    bool
}

func newProfileModel(s *store.Store, a *achievement.Engine) profileModel {
	return profileModel{
		store:        s,
		achievements: a,
		chart:        barchart.New(60, 10),
		stale:        true,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.stale = true
}

// invalidate marks the cached aggregates dirty; the next render recomputes.
func (p *profileModel) invalidate() {
	p.stale = true
}

func (p *profileModel) refresh() {
	now := time.Now()
	snap := p.store.Snapshot()
	p.summary = stats.Compute(snap, now)
	p.weekly = stats.WeeklyWork(snap, now)
	p.unlocks = p.achievements.Load()
	p.buildChart()
	p.loaded = true
	p.stale = false
}

func (p *profileModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if p.height > 30 {
		chartHeight = 14
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, dc := range p.weekly {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if dc.Count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: dc.Day.Format("Mon"),
			Values: []barchart.BarValue{
				{Name: "sessions", Value: float64(dc.Count), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && p.stale {
		p.refresh()
	}
	return p, nil
}

func (p profileModel) view() string {
	w := p.width - 4

	pp := &p
	if pp.stale || !pp.loaded {
		pp.refresh()
	}

	title := titleStyle.Render("Profile")

	summaryView := pp.renderSummary(w)
	chartTitle := mutedStyle.Render("Focus sessions, last 7 days")
	chartView := pp.chart.View()
	achView := pp.renderAchievements()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", summaryView, "", chartTitle, chartView, "", achView,
		),
	)
}

func (p *profileModel) renderSummary(w int) string {
	s := p.summary

	cells := []string{
		statCell("Today", fmt.Sprintf("%d", s.CompletedToday)),
		statCell("This week", fmt.Sprintf("%d", s.CompletedThisWeek)),
		statCell("Total focus", fmt.Sprintf("%d", s.TotalPomodoros)),
		statCell("Avg focus", formatClock(s.AverageFocus)),
		statCell("Habit ticks", fmt.Sprintf("%d", s.HabitsCompleted)),
		statCell("Notes", fmt.Sprintf("%d", s.NotesCreated)),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func statCell(label, value string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		highlightStyle.Bold(true).Padding(0, 2).Render(value),
		mutedStyle.Padding(0, 2).Render(label),
	)
}

func (p *profileModel) renderAchievements() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Achievements"))
	rows = append(rows, "")

	for _, a := range p.unlocks {
		if a.Unlocked {
			when := ""
			if a.UnlockedAt != nil {
				when = mutedStyle.Render("  " + a.UnlockedAt.Format("Jan 02, 2006"))
			}
			rows = append(rows, successStyle.Render(fmt.Sprintf("  %s %s", a.Icon, a.Title))+when)
			rows = append(rows, mutedStyle.Render("     "+a.Description))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  🔒 %s", a.Title)))
			rows = append(rows, mutedStyle.Render("     "+a.Description))
		}
	}

	return strings.Join(rows, "\n")
}
