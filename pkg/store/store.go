// Package store owns the in-memory journal document and keeps it in
// sync with the key-value storage: every mutation is followed by a
// full-document overwrite of the stored bytes.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dailyfocus/pkg/storage"
	"dailyfocus/pkg/utils"
)

const (
	dateLayout = "2006-01-02"

	// ThemeDark is the default when no preference has been stored.
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Store couples a Document to its backing KV. All note and todo
// operations go through it so that persistence is never skipped.
type Store struct {
	Doc Document

	kv storage.KV

	// Overridable in tests.
	Now   func() time.Time
	NewID func() string
}

// New creates a Store over kv with the document at built-in defaults.
// Call Load to read whatever was persisted before.
func New(kv storage.KV) *Store {
	return &Store{
		Doc:   NewDocument(),
		kv:    kv,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Today returns the current calendar date string.
func (s *Store) Today() string {
	return s.Now().Format(dateLayout)
}

// Load reads the stored document. An absent key leaves the defaults in
// place; malformed bytes are logged and recovered field by field so a
// corrupt store never blocks the user. Notes are normalized afterwards
// and LastOpened is refreshed.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(storage.DocumentKey)
	if err != nil {
		return err
	}
	if ok {
		s.mergeStored(raw)
	}
	s.normalize()
	s.Doc.LastOpened = s.Today()
	return nil
}

// mergeStored overlays stored bytes onto the current document, field by
// field. Unparseable fields keep their current value.
func (s *Store) mergeStored(raw []byte) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		utils.Log("failed to parse stored document: %v", err)
		return
	}
	decodeNoteList(fields, &s.Doc.Notes)
	decodeTodoList(fields, &s.Doc.Todos)
	decodeField(fields, "lastOpened", &s.Doc.LastOpened)
	decodeField(fields, "todosCollapsed", &s.Doc.TodosCollapsed)
	decodeField(fields, "collapsedWeeks", &s.Doc.CollapsedWeeks)
}

// decodeField unmarshals one raw field into dst, leaving dst untouched
// when the field is missing or the wrong shape.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		utils.Log("ignoring malformed field %q: %v", name, err)
		return
	}
	*dst = value
}

// decodeNoteList decodes the notes array entry by entry and field by
// field, so one bad value (a numeric content, say) costs only that
// value, never the whole collection. Entries that are not objects at
// all are dropped.
func decodeNoteList(fields map[string]json.RawMessage, dst *[]Note) {
	raw, ok := fields["notes"]
	if !ok {
		return
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		utils.Log("ignoring malformed field %q: %v", "notes", err)
		return
	}
	notes := make([]Note, 0, len(entries))
	for _, entry := range entries {
		var entryFields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &entryFields); err != nil {
			utils.Log("dropping malformed note entry: %v", err)
			continue
		}
		var note Note
		decodeField(entryFields, "id", &note.ID)
		decodeField(entryFields, "date", &note.Date)
		decodeField(entryFields, "content", &note.Content)
		decodeField(entryFields, "createdAt", &note.CreatedAt)
		decodeField(entryFields, "photo", &note.Photo)
		decodeField(entryFields, "photoName", &note.PhotoName)
		decodeField(entryFields, "link", &note.Link)
		notes = append(notes, note)
	}
	*dst = notes
}

// decodeTodoList is the todo counterpart of decodeNoteList.
func decodeTodoList(fields map[string]json.RawMessage, dst *[]Todo) {
	raw, ok := fields["todos"]
	if !ok {
		return
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		utils.Log("ignoring malformed field %q: %v", "todos", err)
		return
	}
	todos := make([]Todo, 0, len(entries))
	for _, entry := range entries {
		var entryFields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &entryFields); err != nil {
			utils.Log("dropping malformed todo entry: %v", err)
			continue
		}
		var todo Todo
		decodeField(entryFields, "id", &todo.ID)
		decodeField(entryFields, "text", &todo.Text)
		decodeField(entryFields, "createdAt", &todo.CreatedAt)
		decodeField(entryFields, "deadline", &todo.Deadline)
		decodeField(entryFields, "done", &todo.Done)
		todos = append(todos, todo)
	}
	*dst = todos
}

// normalize repairs whatever shape legacy or imported data arrived in:
// every note ends up with an id, a valid date and a valid timestamp,
// the view-state fields are never nil, and collapse state for weeks
// without notes is dropped.
func (s *Store) normalize() {
	today := s.Today()
	now := s.Now().Format(time.RFC3339)

	if s.Doc.Notes == nil {
		s.Doc.Notes = []Note{}
	}
	for i := range s.Doc.Notes {
		note := &s.Doc.Notes[i]
		if note.ID == "" {
			note.ID = s.NewID()
		}
		if !validDate(note.Date) {
			note.Date = today
		}
		if _, err := time.Parse(time.RFC3339, note.CreatedAt); err != nil {
			note.CreatedAt = now
		}
	}

	if s.Doc.Todos == nil {
		s.Doc.Todos = []Todo{}
	}
	for i := range s.Doc.Todos {
		todo := &s.Doc.Todos[i]
		if todo.ID == "" {
			todo.ID = s.NewID()
		}
		if !validDate(todo.CreatedAt) {
			todo.CreatedAt = today
		}
		if todo.Deadline != "" && !validDate(todo.Deadline) {
			todo.Deadline = ""
		}
	}

	if s.Doc.CollapsedWeeks == nil {
		s.Doc.CollapsedWeeks = map[string]bool{}
	}
	s.PruneCollapsedWeeks()
}

func validDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// Persist overwrites the stored document with the current one.
func (s *Store) Persist() error {
	raw, err := json.Marshal(s.Doc)
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	if err := s.kv.Set(storage.DocumentKey, raw); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// ExportBytes renders the full document as a pretty-printed artifact.
func (s *Store) ExportBytes() ([]byte, error) {
	raw, err := json.MarshalIndent(s.Doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return append(raw, '\n'), nil
}

// ExportName returns the artifact filename for the current date.
func (s *Store) ExportName() string {
	return fmt.Sprintf("daily_summary_%s.json", s.Today())
}

// Import replaces notes, todos and the persisted view flags wholesale
// from an export artifact, falling back field by field to the current
// state when a field is missing or the wrong shape. On a parse failure
// the document is left untouched and the error is returned.
func (s *Store) Import(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	decodeNoteList(fields, &s.Doc.Notes)
	decodeTodoList(fields, &s.Doc.Todos)
	decodeField(fields, "todosCollapsed", &s.Doc.TodosCollapsed)
	decodeField(fields, "collapsedWeeks", &s.Doc.CollapsedWeeks)
	s.normalize()
	return s.Persist()
}

// Theme reads the stored theme preference, defaulting to dark.
func (s *Store) Theme() string {
	raw, ok, err := s.kv.Get(storage.ThemeKey)
	if err != nil || !ok {
		return ThemeDark
	}
	if string(raw) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(theme string) error {
	return s.kv.Set(storage.ThemeKey, []byte(theme))
}
