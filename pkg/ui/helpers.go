package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"dailyfocus/pkg/store"
)

// rebuildNoteRows derives the notes table from the document and the
// transient view state. Each rebuild fully replaces the previous rows;
// rebuilding twice without a mutation produces the same rows.
func (m *Model) rebuildNoteRows() {
	doc := &m.store.Doc

	sorted := store.SortNotes(doc.Notes)
	filtered := store.FilterNotes(sorted, m.searchQuery)
	buckets := store.GroupNotesByWeek(filtered)
	searching := m.searchQuery != ""

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.AccentColor))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText))
	linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LinkColor))

	var rows []table.Row
	var refs []rowRef

	for _, bucket := range buckets {
		collapsed := doc.CollapsedWeeks[bucket.Key]
		// An active search forces every bucket open so matches are
		// never hidden; the stored state is left alone.
		open := searching || !collapsed

		marker := "▾"
		if !open {
			marker = "▸"
		}
		header := fmt.Sprintf("%s %s – %s (%d)", marker, bucket.Start, bucket.End, len(bucket.Notes))
		rows = append(rows, table.Row{headerStyle.Render(header)})
		refs = append(refs, rowRef{kind: rowWeekHeader, weekKey: bucket.Key})

		if !open {
			continue
		}

		for _, note := range bucket.Notes {
			line := mutedStyle.Render(note.Date) + "  " + firstLine(note.Content)
			if note.PhotoName != "" {
				line += "  " + mutedStyle.Render("["+note.PhotoName+"]")
			}
			if label, ok := store.LinkPreview(note.Link); ok {
				line += "  " + linkStyle.Render(label)
			}
			rows = append(rows, table.Row{line})
			refs = append(refs, rowRef{kind: rowNote, id: note.ID, weekKey: bucket.Key})
		}
	}

	if len(rows) == 0 {
		empty := "Add a quick reflection to start your streak."
		if searching {
			empty = "No notes match your search."
		}
		rows = append(rows, table.Row{mutedStyle.Render(empty)})
		refs = append(refs, rowRef{kind: rowBlank})
	}

	m.notesTable.SetRows(rows)
	m.noteRows = refs
	m.moveCursorTo(&m.notesTable, refs)
}

// rebuildTodoRows derives the todos table from the document.
func (m *Model) rebuildTodoRows() {
	doc := &m.store.Doc

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.DoneColor)).Strikethrough(true)

	var rows []table.Row
	var refs []rowRef

	if !doc.TodosCollapsed {
		for _, todo := range store.SortTodos(doc.Todos) {
			check := "[ ]"
			if todo.Done {
				check = "[x]"
			}
			text := firstLine(todo.Text)
			if todo.Done {
				text = doneStyle.Render(text)
			}
			line := check + " " + text
			if todo.Deadline != "" {
				line += "  " + mutedStyle.Render("due "+todo.Deadline)
			}
			rows = append(rows, table.Row{line})
			refs = append(refs, rowRef{kind: rowTodo, id: todo.ID})
		}

		if len(rows) == 0 {
			rows = append(rows, table.Row{mutedStyle.Render("Capture your next action to stay focused.")})
			refs = append(refs, rowRef{kind: rowBlank})
		}
	}

	m.todosTable.SetRows(rows)
	m.todoRows = refs
	m.moveCursorTo(&m.todosTable, refs)
}

// moveCursorTo puts the cursor on the entity named by focusID, if it is
// visible, and clamps the cursor otherwise.
func (m *Model) moveCursorTo(t *table.Model, refs []rowRef) {
	if m.focusID != "" {
		for i, ref := range refs {
			if ref.id == m.focusID {
				t.SetCursor(i)
				m.focusID = ""
				return
			}
		}
	}
	if t.Cursor() >= len(refs) {
		t.SetCursor(len(refs) - 1)
	}
	if t.Cursor() < 0 {
		t.SetCursor(0)
	}
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + "…"
	}
	return text
}

// layout recomputes table sizes from the window.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	notesWidth := m.width * 2 / 3
	todosWidth := m.width - notesWidth - 6
	if todosWidth < 20 {
		todosWidth = 20
	}
	m.notesTable.SetWidth(notesWidth)
	m.notesTable.SetColumns([]table.Column{{Title: "", Width: notesWidth - 2}})
	m.todosTable.SetWidth(todosWidth)
	m.todosTable.SetColumns([]table.Column{{Title: "", Width: todosWidth - 2}})

	height := m.height - 8
	if height < 4 {
		height = 4
	}
	m.notesTable.SetHeight(height)
	m.todosTable.SetHeight(height)
}
