package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focuskit/internal/games"
	"github.com/sadopc/focuskit/internal/store"
	"github.com/sadopc/focuskit/internal/timer"
)

type toolMode int

const (
	toolStopwatch toolMode = iota
	toolPuzzle
	toolReaction
)

var toolNames = []string{"Stopwatch", "15-Puzzle", "Reaction"}

// reactionTargetMsg re-shows the reaction target after a random delay.
// seq guards against stale timers from abandoned rounds.
type reactionTargetMsg struct {
	seq int
}

const reactionRounds = 30

type toolsModel struct {
	stopwatch *timer.Stopwatch
	games     *games.Service
	width     int
	height    int

	mode toolMode

	puzzle      *games.Puzzle
	puzzleMoves int

	reaction     *games.Reaction
	reactionSeq  int
	reactionShot int // targets shown this round
}

func newToolsModel(sw *timer.Stopwatch, svc *games.Service) toolsModel {
	return toolsModel{
		stopwatch: sw,
		games:     svc,
		puzzle:    games.NewPuzzle(),
		reaction:  games.NewReaction(),
	}
}

func (t *toolsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t toolsModel) update(msg tea.Msg) (toolsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reactionTargetMsg:
		if msg.seq != t.reactionSeq || !t.reaction.Active() {
			return t, nil
		}
		t.reaction.ShowTarget()
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			t.mode = toolStopwatch
			return t, nil
		case "2":
			t.mode = toolPuzzle
			return t, nil
		case "3":
			t.mode = toolReaction
			return t, nil
		}

		switch t.mode {
		case toolStopwatch:
			return t.updateStopwatch(msg)
		case toolPuzzle:
			return t.updatePuzzle(msg)
		case toolReaction:
			return t.updateReaction(msg)
		}
	}
	return t, nil
}

func (t toolsModel) updateStopwatch(msg tea.KeyMsg) (toolsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		wasRunning := t.stopwatch.Running()
		t.stopwatch.Start()
		if !wasRunning {
			return t, stopwatchTickCmd()
		}
	case key.Matches(msg, keys.Pause):
		if t.stopwatch.Running() {
			t.stopwatch.Pause()
		} else if t.stopwatch.Elapsed() > 0 {
			t.stopwatch.Start()
			return t, stopwatchTickCmd()
		}
	case key.Matches(msg, keys.Skip):
		t.stopwatch.Stop()
		return t, func() tea.Msg { return statusMsg{text: "Stopwatch saved"} }
	case key.Matches(msg, keys.Reset):
		t.stopwatch.Reset()
	}
	return t, nil
}

func (t toolsModel) updatePuzzle(msg tea.KeyMsg) (toolsModel, tea.Cmd) {
	if key.Matches(msg, keys.New) {
		t.puzzle = games.NewPuzzle()
		t.puzzleMoves = 0
		return t, nil
	}
	if t.puzzle.Solved() {
		return t, nil
	}

	blankRow, blankCol := t.puzzle.Blank()
	var row, col int
	switch msg.String() {
	case "up", "k":
		row, col = blankRow+1, blankCol // tile below slides up
	case "down", "j":
		row, col = blankRow-1, blankCol
	case "left", "h":
		row, col = blankRow, blankCol+1
	case "right", "l":
		row, col = blankRow, blankCol-1
	default:
		return t, nil
	}

	if t.puzzle.Move(row, col) {
		t.puzzleMoves++
		if t.puzzle.Solved() {
			t.games.RecordPuzzleSolve()
			text := fmt.Sprintf("Puzzle solved in %d moves!", t.puzzleMoves)
			return t, func() tea.Msg { return statusMsg{text: text} }
		}
	}
	return t, nil
}

func (t toolsModel) updateReaction(msg tea.KeyMsg) (toolsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		if !t.reaction.Active() {
			t.reaction.Start()
			t.reactionSeq++
			t.reactionShot = 1
		}
	case key.Matches(msg, keys.Select):
		if !t.reaction.Active() {
			return t, nil
		}
		if t.reaction.Hit() {
			if t.reactionShot >= reactionRounds {
				score := t.reaction.Finish(t.games)
				text := fmt.Sprintf("Round over — score %d", score)
				return t, func() tea.Msg { return statusMsg{text: text} }
			}
			t.reactionShot++
			return t, t.nextTargetCmd()
		}
	case key.Matches(msg, keys.Skip):
		if t.reaction.Active() {
			score := t.reaction.Finish(t.games)
			text := fmt.Sprintf("Round over — score %d", score)
			return t, func() tea.Msg { return statusMsg{text: text} }
		}
	}
	return t, nil
}

func (t toolsModel) nextTargetCmd() tea.Cmd {
	seq := t.reactionSeq
	delay := time.Duration(400+rand.IntN(1200)) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return reactionTargetMsg{seq: seq}
	})
}

func (t toolsModel) view() string {
	w := t.width - 4

	var tabs []string
	for i, name := range toolNames {
		if toolMode(i) == t.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	var body string
	switch t.mode {
	case toolStopwatch:
		body = t.viewStopwatch(w)
	case toolPuzzle:
		body = t.viewPuzzle()
	case toolReaction:
		body = t.viewReaction()
	}

	nav := mutedStyle.Render("  1/2/3: switch tool")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (t toolsModel) viewStopwatch(w int) string {
	clock := formatStopwatch(t.stopwatch.Elapsed())

	var display, state string
	switch {
	case t.stopwatch.Running():
		display = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		state = successStyle.Render("RUNNING")
	case t.stopwatch.Elapsed() > 0:
		display = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		state = warningStyle.Render("PAUSED")
	default:
		display = mutedStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(clock)
		state = mutedStyle.Render("Ready")
	}

	controls := mutedStyle.Render("s: start  p: pause/resume  x: stop & save  r: reset")

	return lipgloss.JoinVertical(lipgloss.Center, display, state, "", controls)
}

func (t toolsModel) viewPuzzle() string {
	var rows []string
	for i := 0; i < games.GridSize; i++ {
		var cells []string
		for j := 0; j < games.GridSize; j++ {
			v := t.puzzle.Tile(i, j)
			if v == 0 {
				cells = append(cells, mutedStyle.Render("    "))
				continue
			}
			cells = append(cells, highlightStyle.Render(fmt.Sprintf(" %2d ", v)))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	status := mutedStyle.Render(fmt.Sprintf("Moves: %d", t.puzzleMoves))
	if t.puzzle.Solved() && t.puzzleMoves > 0 {
		status = successStyle.Render("Solved!")
	}
	if solves := t.games.Rounds(store.GamePuzzle); solves > 0 {
		status += mutedStyle.Render(fmt.Sprintf("  solved: %d", solves))
	}

	controls := mutedStyle.Render("arrows: slide tiles  n: new puzzle")

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(rows, "\n"), "", status, controls,
	)
}

func (t toolsModel) viewReaction() string {
	var body string
	switch {
	case !t.reaction.Active():
		body = mutedStyle.Render("Press s to start. Hit enter when the target appears.")
	case t.reaction.TargetVisible():
		body = accentStyle.Bold(true).Render("  ◉ NOW — hit enter!  ")
	default:
		body = mutedStyle.Render("  wait for it...  ")
	}

	score := fmt.Sprintf("Score: %d   Target %d/%d", t.reaction.Score(), t.reactionShot, reactionRounds)
	best := t.games.BestScore(store.GameReaction)
	if best > 0 {
		score += fmt.Sprintf("   best: %d", best)
	}

	controls := mutedStyle.Render("s: start  enter: hit  x: end round")

	return lipgloss.JoinVertical(lipgloss.Left,
		body, "", mutedStyle.Render(score), controls,
	)
}
