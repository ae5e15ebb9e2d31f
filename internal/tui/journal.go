package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/focuskit/internal/journal"
	"github.com/sadopc/focuskit/internal/store"
)

type journalModel struct {
	journal *journal.Log
	width   int
	height  int

	notes  []store.Note
	cursor int
	tagIdx int // 0 = all tags
	search string

	formActive bool
	form       *huh.Form
	formType   string // "note", "edit_note", "search"
	editingID  uuid.UUID

	// Form field pointers (survive value copies)
	formTitle   *string
	formContent *string
	formTags    *string
	formSearch  *string
}

func newJournalModel(l *journal.Log) journalModel {
	title, content, tags, search := "", "", "", ""
	m := journalModel{
		journal:     l,
		formTitle:   &title,
		formContent: &content,
		formTags:    &tags,
		formSearch:  &search,
	}
	m.refresh()
	return m
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

func (j *journalModel) refresh() {
	all := j.journal.Notes()
	j.notes = journal.Filter(all, j.activeTag(all), j.search)
	if j.cursor >= len(j.notes) {
		j.cursor = max(0, len(j.notes)-1)
	}
}

// activeTag resolves tagIdx against the current tag universe.
func (j journalModel) activeTag(all []store.Note) string {
	if j.tagIdx == 0 {
		return ""
	}
	tags := journal.Tags(all)
	if j.tagIdx-1 < len(tags) {
		return tags[j.tagIdx-1]
	}
	return ""
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.notes)-1 {
				j.cursor++
			}
		case key.Matches(msg, keys.New):
			return j.showNoteForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(j.notes) > 0 {
				target := j.notes[j.cursor]
				return j.showNoteForm(&target)
			}
		case key.Matches(msg, keys.Delete):
			if len(j.notes) > 0 {
				j.journal.Delete(j.notes[j.cursor].ID)
				j.refresh()
				return j, func() tea.Msg { return statusMsg{text: "Note deleted"} }
			}
		default:
			switch msg.String() {
			case "/":
				return j.showSearchForm()
			case "t":
				all := j.journal.Notes()
				j.tagIdx = (j.tagIdx + 1) % (len(journal.Tags(all)) + 1)
				j.cursor = 0
				j.refresh()
			}
		}
	}
	return j, nil
}

func (j journalModel) showNoteForm(existing *store.Note) (journalModel, tea.Cmd) {
	if existing != nil {
		j.formType = "edit_note"
		j.editingID = existing.ID
		*j.formTitle = existing.Title
		*j.formContent = existing.Content
		*j.formTags = strings.Join(existing.Tags, ", ")
	} else {
		j.formType = "note"
		*j.formTitle = ""
		*j.formContent = ""
		*j.formTags = ""
	}

	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(j.formTitle),
			huh.NewText().Title("Content").Value(j.formContent),
			huh.NewInput().Title("Tags (comma-separated)").Value(j.formTags),
		),
	).WithShowHelp(true).WithShowErrors(true)

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) showSearchForm() (journalModel, tea.Cmd) {
	j.formType = "search"
	*j.formSearch = j.search

	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search notes").Value(j.formSearch),
		),
	).WithShowHelp(true)

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	if j.form.State == huh.StateCompleted {
		j.formActive = false
		switch j.formType {
		case "note":
			if *j.formTitle != "" || *j.formContent != "" {
				j.journal.Add(*j.formTitle, *j.formContent, journal.ParseTags(*j.formTags))
			}
		case "edit_note":
			for _, n := range j.journal.Notes() {
				if n.ID == j.editingID {
					n.Title = *j.formTitle
					n.Content = *j.formContent
					n.Tags = journal.ParseTags(*j.formTags)
					j.journal.Update(n)
					break
				}
			}
		case "search":
			j.search = strings.TrimSpace(*j.formSearch)
			j.cursor = 0
		}
		j.refresh()
	}

	return j, cmd
}

func (j journalModel) view() string {
	w := j.width - 4

	if j.formActive && j.form != nil {
		title := titleStyle.Render("New Note")
		switch j.formType {
		case "edit_note":
			title = titleStyle.Render("Edit Note")
		case "search":
			title = titleStyle.Render("Search")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", j.form.View())
		return panelStyle.Width(w).Render(content)
	}

	all := j.journal.Notes()
	header := titleStyle.Render("Journal")
	if tag := j.activeTag(all); tag != "" {
		header += mutedStyle.Render("  filter: #" + tag)
	}
	if j.search != "" {
		header += mutedStyle.Render("  search: " + j.search)
	}

	if len(j.notes) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No notes. Press n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, n := range j.notes {
		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		when := mutedStyle.Render(n.UpdatedAt.Format("Jan 02 15:04"))
		tags := ""
		if len(n.Tags) > 0 {
			tags = highlightStyle.Render(" #" + strings.Join(n.Tags, " #"))
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-32s", cursor, truncate(n.Title, 32)))+" "+when+tags)

		if i == j.cursor {
			preview := truncate(strings.ReplaceAll(n.Content, "\n", " "), w-8)
			rows = append(rows, mutedStyle.Render("    "+preview))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  /: search  t: cycle tag filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
