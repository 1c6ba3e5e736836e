package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"dailyfocus/pkg/store"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		sb.WriteString(m.renderLists())

	case SearchMode:
		sb.WriteString(m.titleBar(" Search Notes "))
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.renderNotesPane())

	case EditNoteMode:
		sb.WriteString(m.titleBar(" Edit Note "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderNoteForm())
		sb.WriteString("\n\n")
		sb.WriteString(m.statusBar("Tab: next field • Enter from date: done • Esc: close"))

	case EditTodoMode:
		sb.WriteString(m.titleBar(" Edit Todo "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderTodoForm())
		sb.WriteString("\n\n")
		sb.WriteString(m.statusBar("Tab: next field • Enter from deadline: done • Esc: close"))

	case PathPromptMode:
		title := " Attach Photo "
		hint := "Enter the path of an image file"
		if m.promptFor == pathForImport {
			title = " Import "
			hint = "Enter the path of an export file"
		}
		sb.WriteString(m.titleBar(title))
		sb.WriteString("\n\n")
		sb.WriteString(hint)
		sb.WriteString("\n\n")
		sb.WriteString(m.pathInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.statusBar("Enter: confirm • Esc: cancel"))

	case DeleteConfirmMode:
		sb.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.theme.SelectedText)).
			Background(lipgloss.Color(m.theme.ErrorColor)).
			Padding(0, 1).
			Render(" Delete "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderDeletePreview())
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))

	case HelpViewMode:
		sb.WriteString(m.renderHelp())
	}

	// Status / error line
	if m.status != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.AccentColor)).Render(m.status))
	}
	if m.err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", m.err))
	}

	return sb.String()
}

func (m Model) titleBar(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.SelectedText)).
		Background(lipgloss.Color(m.theme.AccentColor)).
		Padding(0, 1).
		Render(text)
}

func (m Model) statusBar(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.AccentColor)).
		Background(lipgloss.Color(m.theme.BorderColor)).
		Padding(0, 1).
		Render(text)
}

// renderLists draws the two panes side by side.
func (m Model) renderLists() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar(" DailyFocus "))
	sb.WriteString("  ")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText)).Render(m.store.Today()))
	sb.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderNotesPane(), "  ", m.renderTodosPane())
	sb.WriteString(panes)
	sb.WriteString("\n")

	if m.searchQuery != "" {
		filter := fmt.Sprintf("Showing notes matching %q (press / then esc to clear)", m.searchQuery)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.NormalText)).Render(filter))
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText)).Render("ctrl+b: commands"))

	return sb.String()
}

func (m Model) paneStyle(active bool) lipgloss.Style {
	border := m.theme.BorderColor
	if active {
		border = m.theme.AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1)
}

func (m Model) renderNotesPane() string {
	title := lipgloss.NewStyle().Bold(true).Render("Notes")
	if m.searchQuery != "" {
		title += lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText)).Render(" (filtered)")
	}
	body := title + "\n" + m.notesTable.View()
	return m.paneStyle(m.activePane == NotesPane && m.mode == NormalMode).Render(body)
}

func (m Model) renderTodosPane() string {
	marker := "▾"
	if m.store.Doc.TodosCollapsed {
		marker = "▸"
	}
	title := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("%s Todos (%d open)", marker, m.store.OpenTodoCount()))
	body := title
	if !m.store.Doc.TodosCollapsed {
		body += "\n" + m.todosTable.View()
	}
	return m.paneStyle(m.activePane == TodosPane && m.mode == NormalMode).Render(body)
}

// renderNoteForm renders the note editing form
func (m Model) renderNoteForm() string {
	var sb strings.Builder

	note := m.store.NoteByID(m.editingID)

	sb.WriteString("Content:\n")
	sb.WriteString(m.contentInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Link:\n")
	sb.WriteString(m.linkInput.View())
	if label, ok := store.LinkPreview(m.linkInput.Value()); ok {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LinkColor)).Render("→ " + label))
	}
	sb.WriteString("\n\n")

	sb.WriteString("Date (YYYY-MM-DD):\n")
	sb.WriteString(m.dateInput.View())

	if note != nil && note.PhotoName != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText)).
			Render("Photo: " + note.PhotoName))
	}

	return m.formStyle().Render(sb.String())
}

// renderTodoForm renders the todo editing form
func (m Model) renderTodoForm() string {
	var sb strings.Builder

	sb.WriteString("Text:\n")
	sb.WriteString(m.contentInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Deadline (YYYY-MM-DD, empty for none):\n")
	sb.WriteString(m.deadlineInput.View())

	return m.formStyle().Render(sb.String())
}

func (m Model) formStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderColor)).
		Padding(1, 2)
}

func (m Model) renderDeletePreview() string {
	var sb strings.Builder
	if m.editingPane == NotesPane {
		if note := m.store.NoteByID(m.editingID); note != nil {
			sb.WriteString("Are you sure you want to delete this note?\n\n")
			sb.WriteString(fmt.Sprintf("Date: %s\n", note.Date))
			sb.WriteString(fmt.Sprintf("Content: %s\n", firstLine(note.Content)))
		}
	} else {
		if todo := m.store.TodoByID(m.editingID); todo != nil {
			sb.WriteString("Are you sure you want to delete this todo?\n\n")
			sb.WriteString(fmt.Sprintf("Text: %s\n", firstLine(todo.Text)))
			if todo.Deadline != "" {
				sb.WriteString(fmt.Sprintf("Deadline: %s\n", todo.Deadline))
			}
		}
	}
	return sb.String()
}

// renderHelp draws the fullscreen command list
func (m Model) renderHelp() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.NormalText))

	addCommand := func(binding key.Binding) {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			descStyle.Render(binding.Help().Desc),
			keyStyle.Render(binding.Help().Key)))
	}

	addCommand(m.keyMap.QuitApp)
	addCommand(m.keyMap.ShowHelp)
	addCommand(m.keyMap.SwitchPane)
	addCommand(m.keyMap.AddNote)
	addCommand(m.keyMap.AddTodo)
	addCommand(m.keyMap.EditEntry)
	addCommand(m.keyMap.DeleteEntry)
	addCommand(m.keyMap.ToggleDone)
	addCommand(m.keyMap.ToggleCollapse)
	addCommand(m.keyMap.SearchNotes)
	addCommand(m.keyMap.AttachPhoto)
	addCommand(m.keyMap.RemovePhoto)
	addCommand(m.keyMap.ExportData)
	addCommand(m.keyMap.ImportData)
	addCommand(m.keyMap.ToggleTheme)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.MutedText)).
		Render("Esc to close"))

	return sb.String()
}
