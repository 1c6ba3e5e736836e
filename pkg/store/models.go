package store

// MaxNotesPerDay caps how many notes may share one calendar date.
// Adding past the cap is refused.
const MaxNotesPerDay = 50

// Note is a short dated journal entry. Date is the note's logical day
// and is independent of CreatedAt, which only orders notes within a day.
type Note struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"` // RFC 3339
	Photo     string `json:"photo,omitempty"`     // data URL
	PhotoName string `json:"photoName,omitempty"` // original filename, display only
	Link      string `json:"link,omitempty"`
}

// Todo is a single task with an optional deadline.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"` // YYYY-MM-DD
	Deadline  string `json:"deadline,omitempty"`
	Done      bool   `json:"done"`
}

// Document is the full persisted application state. It is the single
// source of truth: the rendered view and the stored bytes are always
// derived from it.
type Document struct {
	Notes          []Note          `json:"notes"`
	Todos          []Todo          `json:"todos"`
	LastOpened     string          `json:"lastOpened"`
	TodosCollapsed bool            `json:"todosCollapsed"`
	CollapsedWeeks map[string]bool `json:"collapsedWeeks"`
}

// NewDocument returns the built-in defaults used when nothing has been
// stored yet.
func NewDocument() Document {
	return Document{
		Notes:          []Note{},
		Todos:          []Todo{},
		CollapsedWeeks: map[string]bool{},
	}
}
