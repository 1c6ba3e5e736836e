package ui

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dailyfocus/pkg/store"
	"dailyfocus/pkg/utils"
)

// statusTTL is how long a status message stays up unless superseded.
const statusTTL = 2500 * time.Millisecond

// statusClearMsg clears the status line when no newer message took over.
type statusClearMsg struct {
	seq int
}

// photoReadMsg carries the outcome of an async photo file read.
type photoReadMsg struct {
	noteID   string
	filename string
	mimeType string
	data     []byte
	err      error
}

// importReadMsg carries the outcome of an async import file read.
type importReadMsg struct {
	filename string
	data     []byte
	err      error
}

// setStatus shows a transient status message that self-clears after
// statusTTL unless a newer message supersedes it first.
func (m *Model) setStatus(message string) tea.Cmd {
	m.status = message
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

const savedStatus = "Saved your note for today"

// readPhotoCmd reads an image file off the event loop. A second read
// started before the first completes wins on the same note.
func readPhotoCmd(noteID, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return photoReadMsg{noteID: noteID, err: err}
		}
		mimeType := http.DetectContentType(data)
		if !strings.HasPrefix(mimeType, "image/") {
			return photoReadMsg{noteID: noteID, err: fmt.Errorf("%s is not an image", filepath.Base(path))}
		}
		return photoReadMsg{
			noteID:   noteID,
			filename: filepath.Base(path),
			mimeType: mimeType,
			data:     data,
		}
	}
}

// readImportCmd reads an export artifact off the event loop.
func readImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importReadMsg{filename: filepath.Base(path), data: data, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.QuitApp):
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.SwitchPane):
				if m.activePane == NotesPane {
					m.activePane = TodosPane
					m.notesTable.Blur()
					m.todosTable.Focus()
				} else {
					m.activePane = NotesPane
					m.todosTable.Blur()
					m.notesTable.Focus()
				}

			case key.Matches(msg, m.keyMap.AddNote):
				note, err := m.store.AddNote()
				if err != nil {
					if errors.Is(err, store.ErrDayFull) {
						cmds = append(cmds, m.setStatus(fmt.Sprintf("Limit reached (%d notes for today).", store.MaxNotesPerDay)))
					} else {
						m.err = err
					}
					break
				}
				m.activePane = NotesPane
				m.todosTable.Blur()
				m.notesTable.Focus()
				m.focusID = note.ID
				m.rebuildNoteRows()
				m.openNoteEditor(note.ID)
				cmds = append(cmds, m.setStatus(savedStatus))

			case key.Matches(msg, m.keyMap.AddTodo):
				todo, err := m.store.AddTodo()
				if err != nil {
					m.err = err
					break
				}
				m.activePane = TodosPane
				m.notesTable.Blur()
				m.todosTable.Focus()
				m.focusID = todo.ID
				m.rebuildTodoRows()
				m.openTodoEditor(todo.ID)
				cmds = append(cmds, m.setStatus(savedStatus))

			case key.Matches(msg, m.keyMap.EditEntry):
				ref, ok := m.selectedRef()
				if !ok {
					break
				}
				switch ref.kind {
				case rowNote:
					m.openNoteEditor(ref.id)
				case rowTodo:
					m.openTodoEditor(ref.id)
				case rowWeekHeader:
					if err := m.store.ToggleWeek(ref.weekKey); err != nil {
						m.err = err
					}
					m.rebuildNoteRows()
				}

			case key.Matches(msg, m.keyMap.DeleteEntry):
				ref, ok := m.selectedRef()
				if ok && (ref.kind == rowNote || ref.kind == rowTodo) {
					m.mode = DeleteConfirmMode
					m.editingID = ref.id
					m.editingPane = m.activePane
				}

			case key.Matches(msg, m.keyMap.ToggleDone):
				ref, ok := m.selectedRef()
				if ok && ref.kind == rowTodo {
					if err := m.store.ToggleTodoDone(ref.id); err != nil {
						m.err = err
						break
					}
					m.focusID = ref.id
					m.rebuildTodoRows()
					cmds = append(cmds, m.setStatus(savedStatus))
				}

			case key.Matches(msg, m.keyMap.ToggleCollapse):
				if m.activePane == TodosPane {
					if err := m.store.ToggleTodosCollapsed(); err != nil {
						m.err = err
						break
					}
					m.rebuildTodoRows()
					cmds = append(cmds, m.setStatus(savedStatus))
					break
				}
				ref, ok := m.selectedRef()
				if ok && ref.weekKey != "" {
					if err := m.store.ToggleWeek(ref.weekKey); err != nil {
						m.err = err
						break
					}
					m.rebuildNoteRows()
					cmds = append(cmds, m.setStatus(savedStatus))
				}

			case key.Matches(msg, m.keyMap.SearchNotes):
				m.mode = SearchMode
				m.searchInput.SetValue(m.searchQuery)
				m.searchInput.Focus()
				return m, nil

			case key.Matches(msg, m.keyMap.AttachPhoto):
				ref, ok := m.selectedRef()
				if ok && ref.kind == rowNote {
					m.mode = PathPromptMode
					m.promptFor = pathForPhoto
					m.photoNoteID = ref.id
					m.pathInput.Reset()
					m.pathInput.Placeholder = "Path to an image file"
					m.pathInput.Focus()
					return m, nil
				}

			case key.Matches(msg, m.keyMap.RemovePhoto):
				ref, ok := m.selectedRef()
				if ok && ref.kind == rowNote {
					note := m.store.NoteByID(ref.id)
					if note == nil || note.Photo == "" {
						break
					}
					if err := m.store.RemovePhoto(ref.id); err != nil {
						m.err = err
						break
					}
					m.focusID = ref.id
					m.rebuildNoteRows()
					cmds = append(cmds, m.setStatus("Photo removed"))
				}

			case key.Matches(msg, m.keyMap.ExportData):
				path := filepath.Join(m.config.ExportDir, m.store.ExportName())
				content, err := m.store.ExportBytes()
				if err == nil {
					err = os.WriteFile(path, content, 0644)
				}
				if err != nil {
					utils.Log("export failed: %v", err)
					cmds = append(cmds, m.setStatus("Export failed"))
					break
				}
				cmds = append(cmds, m.setStatus("Exported daily summary to "+path))

			case key.Matches(msg, m.keyMap.ImportData):
				m.mode = PathPromptMode
				m.promptFor = pathForImport
				m.pathInput.Reset()
				m.pathInput.Placeholder = "Path to an export file"
				m.pathInput.Focus()
				return m, nil

			case key.Matches(msg, m.keyMap.ToggleTheme):
				m.setTheme(m.theme.Next())
				if err := m.store.SetTheme(m.theme.Name); err != nil {
					m.err = err
				}
			}

		case EditNoteMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.focusID = m.editingID
				m.editingID = ""
				m.resetInputs()
				m.rebuildNoteRows()

			case "tab":
				m.focusNextInput()

			case "shift+tab":
				m.focusPreviousInput()

			case "enter":
				if m.activeInput == 2 { // Submit on enter from the last field (date)
					cmds = append(cmds, m.submitNoteForm())
				} else {
					m.focusNextInput()
				}

			default:
				cmds = append(cmds, m.updateNoteFormInput(msg))
			}

		case EditTodoMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.focusID = m.editingID
				m.editingID = ""
				m.resetInputs()
				m.rebuildTodoRows()

			case "tab":
				m.focusNextInput()

			case "shift+tab":
				m.focusPreviousInput()

			case "enter":
				if m.activeInput == 1 { // Submit on enter from the deadline field
					cmds = append(cmds, m.submitTodoForm())
				} else {
					m.focusNextInput()
				}

			default:
				cmds = append(cmds, m.updateTodoFormInput(msg))
			}

		case SearchMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.searchQuery = ""
				m.searchInput.Reset()
				m.rebuildNoteRows()

			case "enter":
				m.searchQuery = m.searchInput.Value()
				utils.Log("searching for: %s", m.searchQuery)
				m.mode = NormalMode
				m.rebuildNoteRows()

			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				cmds = append(cmds, cmd)
				// Live filtering: narrow as the query is typed
				if m.searchInput.Value() != m.searchQuery {
					m.searchQuery = m.searchInput.Value()
					m.rebuildNoteRows()
				}
			}

		case PathPromptMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.pathInput.Reset()

			case "enter":
				path := strings.TrimSpace(m.pathInput.Value())
				m.mode = NormalMode
				m.pathInput.Reset()
				if path == "" {
					break
				}
				switch m.promptFor {
				case pathForPhoto:
					// A known non-image extension fails fast without a
					// read; anything else is settled by content sniffing
					// in readPhotoCmd.
					ext := strings.ToLower(filepath.Ext(path))
					if mt := mime.TypeByExtension(ext); mt != "" && !strings.HasPrefix(mt, "image/") {
						cmds = append(cmds, m.setStatus("Only image files can be attached"))
						break
					}
					cmds = append(cmds, readPhotoCmd(m.photoNoteID, path))
				case pathForImport:
					cmds = append(cmds, readImportCmd(path))
				}

			default:
				m.pathInput, cmd = m.pathInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				var err error
				if m.editingPane == NotesPane {
					err = m.store.RemoveNote(m.editingID)
				} else {
					err = m.store.RemoveTodo(m.editingID)
				}
				if err != nil {
					m.err = err
				} else {
					if m.editingPane == NotesPane {
						m.rebuildNoteRows()
					} else {
						m.rebuildTodoRows()
					}
					cmds = append(cmds, m.setStatus("Deleted"))
				}
				m.mode = NormalMode
				m.editingID = ""

			case "n", "N", "esc":
				m.mode = NormalMode
				m.editingID = ""
			}

		case HelpViewMode:
			switch {
			case msg.String() == "esc", key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = NormalMode
			}
		}

	case photoReadMsg:
		if msg.err != nil {
			utils.Log("photo read failed: %v", msg.err)
			cmds = append(cmds, m.setStatus("Couldn't attach photo: "+msg.err.Error()))
			break
		}
		if err := m.store.AttachPhoto(msg.noteID, msg.filename, msg.mimeType, msg.data); err != nil {
			cmds = append(cmds, m.setStatus("Couldn't attach photo: "+err.Error()))
			break
		}
		m.focusID = msg.noteID
		m.rebuildNoteRows()
		cmds = append(cmds, m.setStatus("Photo attached"))

	case importReadMsg:
		if msg.err != nil {
			utils.Log("import read failed: %v", msg.err)
			cmds = append(cmds, m.setStatus("Couldn't read "+msg.filename))
			break
		}
		if err := m.store.Import(msg.data); err != nil {
			utils.Log("import failed: %v", err)
			cmds = append(cmds, m.setStatus("Import failed: not a valid export file"))
			break
		}
		m.rebuildNoteRows()
		m.rebuildTodoRows()
		cmds = append(cmds, m.setStatus("Imported "+msg.filename))

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	}

	// Only move list cursors in normal mode
	if m.mode == NormalMode {
		if m.activePane == NotesPane {
			m.notesTable, cmd = m.notesTable.Update(msg)
		} else {
			m.todosTable, cmd = m.todosTable.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// openNoteEditor populates the note form and enters EditNoteMode.
func (m *Model) openNoteEditor(id string) {
	note := m.store.NoteByID(id)
	if note == nil {
		return
	}
	m.mode = EditNoteMode
	m.editingID = id
	m.resetInputs()
	m.contentInput.SetValue(note.Content)
	m.linkInput.SetValue(note.Link)
	m.dateInput.SetValue(note.Date)
}

// openTodoEditor populates the todo form and enters EditTodoMode.
func (m *Model) openTodoEditor(id string) {
	todo := m.store.TodoByID(id)
	if todo == nil {
		return
	}
	m.mode = EditTodoMode
	m.editingID = id
	m.resetInputs()
	m.contentInput.SetValue(todo.Text)
	m.deadlineInput.SetValue(todo.Deadline)
}

// updateNoteFormInput feeds a key to the active note field. Free-text
// fields persist on every edit without rebuilding the list, so typing
// is never disrupted; the date is structural and applies on submit.
func (m *Model) updateNoteFormInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeInput {
	case 0:
		before := m.contentInput.Value()
		m.contentInput, cmd = m.contentInput.Update(msg)
		if m.contentInput.Value() != before {
			if err := m.store.SetNoteContent(m.editingID, m.contentInput.Value()); err != nil {
				m.err = err
				return cmd
			}
			return tea.Batch(cmd, m.setStatus(savedStatus))
		}
	case 1:
		before := m.linkInput.Value()
		m.linkInput, cmd = m.linkInput.Update(msg)
		if m.linkInput.Value() != before {
			if err := m.store.SetNoteLink(m.editingID, m.linkInput.Value()); err != nil {
				m.err = err
				return cmd
			}
			return tea.Batch(cmd, m.setStatus(savedStatus))
		}
	case 2:
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return cmd
}

// updateTodoFormInput feeds a key to the active todo field, persisting
// text edits immediately. The deadline applies on submit.
func (m *Model) updateTodoFormInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeInput {
	case 0:
		before := m.contentInput.Value()
		m.contentInput, cmd = m.contentInput.Update(msg)
		if m.contentInput.Value() != before {
			if err := m.store.SetTodoText(m.editingID, m.contentInput.Value()); err != nil {
				m.err = err
				return cmd
			}
			return tea.Batch(cmd, m.setStatus(savedStatus))
		}
	case 1:
		m.deadlineInput, cmd = m.deadlineInput.Update(msg)
	}
	return cmd
}

// submitNoteForm applies the structural date edit and leaves the form.
func (m *Model) submitNoteForm() tea.Cmd {
	var statusCmd tea.Cmd
	date := strings.TrimSpace(m.dateInput.Value())
	note := m.store.NoteByID(m.editingID)
	if note != nil && date != "" && date != note.Date {
		if err := m.store.SetNoteDate(m.editingID, date); err != nil {
			statusCmd = m.setStatus(err.Error())
		} else {
			statusCmd = m.setStatus(savedStatus)
		}
	}
	m.mode = NormalMode
	m.focusID = m.editingID
	m.editingID = ""
	m.resetInputs()
	m.rebuildNoteRows()
	return statusCmd
}

// submitTodoForm applies the structural deadline edit and leaves the form.
func (m *Model) submitTodoForm() tea.Cmd {
	var statusCmd tea.Cmd
	deadline := strings.TrimSpace(m.deadlineInput.Value())
	todo := m.store.TodoByID(m.editingID)
	if todo != nil && deadline != todo.Deadline {
		if err := m.store.SetTodoDeadline(m.editingID, deadline); err != nil {
			statusCmd = m.setStatus(err.Error())
		} else {
			statusCmd = m.setStatus(savedStatus)
		}
	}
	m.mode = NormalMode
	m.focusID = m.editingID
	m.editingID = ""
	m.resetInputs()
	m.rebuildTodoRows()
	return statusCmd
}

// focusNextInput cycles forward through the active form's fields.
func (m *Model) focusNextInput() {
	m.activeInput = (m.activeInput + 1) % m.formFieldCount()
	m.syncInputFocus()
}

// focusPreviousInput cycles backward through the active form's fields.
func (m *Model) focusPreviousInput() {
	count := m.formFieldCount()
	m.activeInput = (m.activeInput + count - 1) % count
	m.syncInputFocus()
}

func (m *Model) formFieldCount() int {
	if m.mode == EditTodoMode {
		return 2
	}
	return 3
}

func (m *Model) syncInputFocus() {
	m.contentInput.Blur()
	m.linkInput.Blur()
	m.dateInput.Blur()
	m.deadlineInput.Blur()

	if m.mode == EditTodoMode {
		switch m.activeInput {
		case 0:
			m.contentInput.Focus()
		case 1:
			m.deadlineInput.Focus()
		}
		return
	}

	switch m.activeInput {
	case 0:
		m.contentInput.Focus()
	case 1:
		m.linkInput.Focus()
	case 2:
		m.dateInput.Focus()
	}
}

// setTheme swaps palettes and restyles both tables.
func (m *Model) setTheme(theme Theme) {
	m.theme = theme

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectedText)).
		Background(lipgloss.Color(theme.SelectedBg)).
		Bold(true)
	m.notesTable.SetStyles(s)
	m.todosTable.SetStyles(s)

	// Row text carries baked-in colors, so rebuild both lists
	m.rebuildNoteRows()
	m.rebuildTodoRows()
}
