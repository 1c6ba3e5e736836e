package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"dailyfocus/pkg/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	s := New(kv)
	s.Now = func() time.Time {
		return time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	}
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, kv
}

// storedDocument deserializes what the KV currently holds.
func storedDocument(t *testing.T, kv *storage.Memory) Document {
	t.Helper()
	raw, ok, err := kv.Get(storage.DocumentKey)
	if err != nil || !ok {
		t.Fatalf("no stored document (ok=%v err=%v)", ok, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("stored document does not parse: %v", err)
	}
	return doc
}

func TestPersistRoundTrip(t *testing.T) {
	s, kv := newTestStore(t)

	note, err := s.AddNote()
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if err := s.SetNoteContent(note.ID, "wrote some Go"); err != nil {
		t.Fatalf("SetNoteContent failed: %v", err)
	}
	todo, err := s.AddTodo()
	if err != nil {
		t.Fatalf("AddTodo failed: %v", err)
	}
	if err := s.SetTodoText(todo.ID, "review the release"); err != nil {
		t.Fatalf("SetTodoText failed: %v", err)
	}

	// The stored bytes must deserialize to exactly the in-memory document
	if got := storedDocument(t, kv); !reflect.DeepEqual(got, s.Doc) {
		t.Errorf("stored document diverged:\n got %+v\nwant %+v", got, s.Doc)
	}

	if err := s.ToggleTodoDone(todo.ID); err != nil {
		t.Fatalf("ToggleTodoDone failed: %v", err)
	}
	if got := storedDocument(t, kv); !reflect.DeepEqual(got, s.Doc) {
		t.Errorf("stored document diverged after toggle")
	}
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Doc.Notes) != 0 || len(s.Doc.Todos) != 0 {
		t.Errorf("expected empty defaults, got %+v", s.Doc)
	}
	if s.Doc.LastOpened != "2025-06-04" {
		t.Errorf("LastOpened = %q, want 2025-06-04", s.Doc.LastOpened)
	}
	if s.Doc.CollapsedWeeks == nil {
		t.Error("CollapsedWeeks should never be nil after Load")
	}
}

func TestLoadRecoversFromCorruptStorage(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(storage.DocumentKey, []byte("{not json"))

	s := New(kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load should swallow corrupt storage, got %v", err)
	}
	if len(s.Doc.Notes) != 0 || len(s.Doc.Todos) != 0 {
		t.Errorf("corrupt storage should fall back to defaults, got %+v", s.Doc)
	}
}

func TestLoadRecoversMalformedFieldsIndividually(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(storage.DocumentKey, []byte(`{
		"notes": [{"id": "n1", "date": "2025-06-02", "content": "kept", "createdAt": "2025-06-02T08:00:00Z"}],
		"todos": "this is not a list",
		"collapsedWeeks": {"2025-06-02_2025-06-08": true}
	}`))

	s := New(kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Doc.Notes) != 1 || s.Doc.Notes[0].Content != "kept" {
		t.Errorf("parseable notes should survive, got %+v", s.Doc.Notes)
	}
	if len(s.Doc.Todos) != 0 {
		t.Errorf("malformed todos should fall back to defaults, got %+v", s.Doc.Todos)
	}
	if !s.Doc.CollapsedWeeks["2025-06-02_2025-06-08"] {
		t.Error("collapsedWeeks should survive")
	}
}

func TestLoadKeepsEntriesWithMalformedValues(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(storage.DocumentKey, []byte(`{
		"notes": [
			{"id": "n1", "date": "2025-06-02", "content": 123, "createdAt": "2025-06-02T08:00:00Z"},
			{"id": "n2", "date": "2025-06-03", "content": "fine", "createdAt": "2025-06-03T08:00:00Z"}
		],
		"todos": [
			{"id": "t1", "text": 42, "createdAt": "2025-06-02", "done": false}
		]
	}`))

	s, _ := newTestStore(t)
	s.kv = kv
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// One numeric content must not cost the whole collection
	if len(s.Doc.Notes) != 2 {
		t.Fatalf("want both notes kept, got %d: %+v", len(s.Doc.Notes), s.Doc.Notes)
	}
	if s.Doc.Notes[0].Content != "" {
		t.Errorf("non-string content should coerce to empty, got %q", s.Doc.Notes[0].Content)
	}
	if s.Doc.Notes[1].Content != "fine" {
		t.Errorf("valid note damaged: %+v", s.Doc.Notes[1])
	}
	if len(s.Doc.Todos) != 1 || s.Doc.Todos[0].Text != "" {
		t.Errorf("non-string todo text should coerce to empty, got %+v", s.Doc.Todos)
	}
}

func TestLoadDropsNonObjectEntries(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(storage.DocumentKey, []byte(`{
		"notes": ["just a string", {"id": "n1", "date": "2025-06-02", "content": "kept", "createdAt": "2025-06-02T08:00:00Z"}]
	}`))

	s, _ := newTestStore(t)
	s.kv = kv
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Doc.Notes) != 1 || s.Doc.Notes[0].Content != "kept" {
		t.Errorf("want only the object entry, got %+v", s.Doc.Notes)
	}
}

func TestLoadNormalizesNotes(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(storage.DocumentKey, []byte(`{
		"notes": [
			{"content": "no id, no date"},
			{"id": "n2", "date": "not-a-date", "createdAt": "garbage"}
		],
		"todos": [{"text": "bare", "deadline": "soonish"}]
	}`))

	s, _ := newTestStore(t)
	s.kv = kv
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	first := s.Doc.Notes[0]
	if first.ID == "" {
		t.Error("missing note id should be generated")
	}
	if first.Date != "2025-06-04" {
		t.Errorf("missing date should become today, got %q", first.Date)
	}
	if _, err := time.Parse(time.RFC3339, first.CreatedAt); err != nil {
		t.Errorf("missing createdAt should become a valid timestamp, got %q", first.CreatedAt)
	}

	second := s.Doc.Notes[1]
	if second.Date != "2025-06-04" {
		t.Errorf("invalid date should become today, got %q", second.Date)
	}

	todo := s.Doc.Todos[0]
	if todo.ID == "" {
		t.Error("missing todo id should be generated")
	}
	if todo.CreatedAt != "2025-06-04" {
		t.Errorf("missing todo createdAt should become today, got %q", todo.CreatedAt)
	}
	if todo.Deadline != "" {
		t.Errorf("invalid deadline should be cleared, got %q", todo.Deadline)
	}
}

func TestImportMissingFieldKeepsCurrent(t *testing.T) {
	s, _ := newTestStore(t)
	todo, _ := s.AddTodo()
	s.SetTodoText(todo.ID, "survives the import")

	payload := []byte(`{"notes": [{"id": "n9", "date": "2025-06-01", "content": "imported", "createdAt": "2025-06-01T10:00:00Z"}]}`)
	if err := s.Import(payload); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(s.Doc.Notes) != 1 || s.Doc.Notes[0].ID != "n9" {
		t.Errorf("notes should be replaced from the payload, got %+v", s.Doc.Notes)
	}
	if len(s.Doc.Todos) != 1 || s.Doc.Todos[0].Text != "survives the import" {
		t.Errorf("missing todos field should preserve current todos, got %+v", s.Doc.Todos)
	}
}

func TestImportParseFailureLeavesDocumentUntouched(t *testing.T) {
	s, kv := newTestStore(t)
	note, _ := s.AddNote()
	s.SetNoteContent(note.ID, "precious")
	before := storedDocument(t, kv)
	beforeMem := s.Doc

	if err := s.Import([]byte("definitely not json")); err == nil {
		t.Fatal("Import should fail on unparseable bytes")
	}

	if !reflect.DeepEqual(s.Doc, beforeMem) {
		t.Error("in-memory document changed on failed import")
	}
	if got := storedDocument(t, kv); !reflect.DeepEqual(got, before) {
		t.Error("stored document changed on failed import")
	}
}

func TestImportNormalizesPayload(t *testing.T) {
	s, _ := newTestStore(t)
	payload := []byte(`{"notes": [{"content": "raw import"}]}`)
	if err := s.Import(payload); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if s.Doc.Notes[0].ID == "" || s.Doc.Notes[0].Date != "2025-06-04" {
		t.Errorf("imported notes should be normalized, got %+v", s.Doc.Notes[0])
	}
}

func TestExport(t *testing.T) {
	s, _ := newTestStore(t)
	note, _ := s.AddNote()
	s.SetNoteContent(note.ID, "export me")

	raw, err := s.ExportBytes()
	if err != nil {
		t.Fatalf("ExportBytes failed: %v", err)
	}
	if raw[len(raw)-1] != '\n' {
		t.Error("artifact should end with a newline")
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("artifact does not parse: %v", err)
	}
	if !reflect.DeepEqual(doc, s.Doc) {
		t.Errorf("artifact diverged from the document")
	}

	if name := s.ExportName(); name != "daily_summary_2025-06-04.json" {
		t.Errorf("ExportName = %q", name)
	}
}

func TestThemeDefaultsToDark(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.Theme(); got != ThemeDark {
		t.Errorf("Theme = %q, want dark default", got)
	}
	if err := s.SetTheme(ThemeLight); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if got := s.Theme(); got != ThemeLight {
		t.Errorf("Theme = %q after SetTheme(light)", got)
	}
	// Garbage falls back to dark rather than erroring
	s.SetTheme("mauve")
	if got := s.Theme(); got != ThemeDark {
		t.Errorf("Theme = %q, unknown values should read as dark", got)
	}
}
