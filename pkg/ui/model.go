package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dailyfocus/pkg/config"
	"dailyfocus/pkg/keymaps"
	"dailyfocus/pkg/store"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	EditNoteMode
	EditTodoMode
	DeleteConfirmMode
	SearchMode
	PathPromptMode // entering a file path for photo/import
	HelpViewMode
)

// Pane identifies which list has the cursor.
type Pane int

const (
	NotesPane Pane = iota
	TodosPane
)

// pathPurpose says what the path prompt is collecting a path for.
type pathPurpose int

const (
	pathForPhoto pathPurpose = iota
	pathForImport
)

// rowKind classifies table rows so actions can resolve the cursor to an
// entity id instead of a position.
type rowKind int

const (
	rowBlank rowKind = iota
	rowNote
	rowTodo
	rowWeekHeader
)

type rowRef struct {
	kind    rowKind
	id      string // note/todo id
	weekKey string // set on rowWeekHeader and rowNote
}

// Model represents the application state
type Model struct {
	store *store.Store

	notesTable table.Model
	todosTable table.Model
	noteRows   []rowRef
	todoRows   []rowRef

	activePane    Pane
	width, height int
	err           error

	// Configuration
	config config.Config
	keyMap keymaps.KeyMap
	theme  Theme

	// Transient view state
	searchQuery string
	status      string
	statusSeq   int
	focusID     string // entity to put the cursor on after the next rebuild

	// Form state
	mode          InputMode
	contentInput  textinput.Model
	linkInput     textinput.Model
	dateInput     textinput.Model
	deadlineInput textinput.Model
	searchInput   textinput.Model
	pathInput     textinput.Model
	activeInput   int

	// Edit/delete/prompt state
	editingID   string
	editingPane Pane
	promptFor   pathPurpose
	photoNoteID string
}

// NewModel creates a new UI model over the loaded store.
func NewModel(s *store.Store, cfg config.Config) Model {
	theme := ThemeByName(s.Theme())

	notesTable := newListTable(theme)
	todosTable := newListTable(theme)

	contentInput := textinput.New()
	contentInput.Placeholder = "What happened today?"
	contentInput.Width = 60
	contentInput.CharLimit = 0

	linkInput := textinput.New()
	linkInput.Placeholder = "Link (optional)"
	linkInput.Width = 60

	dateInput := textinput.New()
	dateInput.Placeholder = "Date (YYYY-MM-DD)"
	dateInput.Width = 60

	deadlineInput := textinput.New()
	deadlineInput.Placeholder = "Deadline (YYYY-MM-DD, optional)"
	deadlineInput.Width = 60

	searchInput := textinput.New()
	searchInput.Placeholder = "Search notes"
	searchInput.Width = 40

	pathInput := textinput.New()
	pathInput.Placeholder = "File path"
	pathInput.Width = 60

	m := Model{
		store:         s,
		notesTable:    notesTable,
		todosTable:    todosTable,
		activePane:    NotesPane,
		config:        cfg,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		theme:         theme,
		mode:          NormalMode,
		contentInput:  contentInput,
		linkInput:     linkInput,
		dateInput:     dateInput,
		deadlineInput: deadlineInput,
		searchInput:   searchInput,
		pathInput:     pathInput,
	}

	m.notesTable.Focus()
	m.rebuildNoteRows()
	m.rebuildTodoRows()

	return m
}

func newListTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "", Width: 60}}),
		table.WithHeight(10),
	)

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
	t.SetStyles(s)

	return t
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// selectedRef resolves the active pane's cursor to a row ref.
func (m *Model) selectedRef() (rowRef, bool) {
	rows := m.noteRows
	t := &m.notesTable
	if m.activePane == TodosPane {
		rows = m.todoRows
		t = &m.todosTable
	}
	idx := t.Cursor()
	if idx < 0 || idx >= len(rows) {
		return rowRef{}, false
	}
	return rows[idx], true
}

// resetInputs clears the edit form state.
func (m *Model) resetInputs() {
	m.contentInput.Reset()
	m.linkInput.Reset()
	m.dateInput.Reset()
	m.deadlineInput.Reset()

	m.activeInput = 0
	m.contentInput.Focus()
	m.linkInput.Blur()
	m.dateInput.Blur()
	m.deadlineInput.Blur()
}
