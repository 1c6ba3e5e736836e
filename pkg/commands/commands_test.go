package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dailyfocus/pkg/storage"
	"dailyfocus/pkg/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(storage.NewMemory())
	s.Now = func() time.Time {
		return time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	}
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestExportDefaultsToDateStampedName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddNote(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	HandleExportCommand(s, dir)

	want := filepath.Join(dir, "daily_summary_2025-06-04.json")
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected artifact at default name: %v", err)
	}
	if !bytes.HasSuffix(content, []byte("\n")) {
		t.Error("artifact should end with a newline")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	note, _ := src.AddNote()
	src.SetNoteContent(note.ID, "reviewed the release notes")
	todo, _ := src.AddTodo()
	src.SetTodoText(todo.ID, "file the expense report")
	src.SetTodoDeadline(todo.ID, "2025-06-10")

	path := filepath.Join(t.TempDir(), "backup.json")
	HandleExportCommand(src, path)

	dst := newTestStore(t)
	HandleImportCommand(dst, path)

	if len(dst.Doc.Notes) != 1 || dst.Doc.Notes[0].Content != "reviewed the release notes" {
		t.Errorf("notes did not survive the round trip: %+v", dst.Doc.Notes)
	}
	if len(dst.Doc.Todos) != 1 || dst.Doc.Todos[0].Deadline != "2025-06-10" {
		t.Errorf("todos did not survive the round trip: %+v", dst.Doc.Todos)
	}
}

func TestSchemaAcceptsOwnExport(t *testing.T) {
	s := newTestStore(t)
	note, _ := s.AddNote()
	s.SetNoteLink(note.ID, "example.com/standup")
	todo, _ := s.AddTodo()
	s.ToggleTodoDone(todo.ID)

	raw, err := s.ExportBytes()
	if err != nil {
		t.Fatal(err)
	}

	schema, err := CompileDocumentSchema()
	if err != nil {
		t.Fatal(err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if err := schema.Validate(doc); err != nil {
		t.Errorf("our own export artifact should validate: %v", err)
	}
}

func TestPurgeDoneKeepsOpenTodos(t *testing.T) {
	s := newTestStore(t)
	open, _ := s.AddTodo()
	done, _ := s.AddTodo()
	s.ToggleTodoDone(done.ID)

	HandlePurgeCommand(s, "done", "", true)

	if len(s.Doc.Todos) != 1 || s.Doc.Todos[0].ID != open.ID {
		t.Errorf("want only the open todo left, got %+v", s.Doc.Todos)
	}
}

func TestPurgeNotesDropsOnlyTheGivenDay(t *testing.T) {
	s := newTestStore(t)
	s.AddNoteOn("2025-06-03")
	keep, _ := s.AddNoteOn("2025-06-04")

	HandlePurgeCommand(s, "notes", "2025-06-03", true)

	if len(s.Doc.Notes) != 1 || s.Doc.Notes[0].ID != keep.ID {
		t.Errorf("want only the other day's note left, got %+v", s.Doc.Notes)
	}
}

func TestSchemaRejectsMalformedArtifacts(t *testing.T) {
	schema, err := CompileDocumentSchema()
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		json string
	}{
		{"note missing id", `{"notes":[{"date":"2025-06-04","content":"","createdAt":"now"}]}`},
		{"note date wrong shape", `{"notes":[{"id":"a","date":"June 4","content":"","createdAt":"now"}]}`},
		{"todo done not boolean", `{"todos":[{"id":"a","text":"","createdAt":"2025-06-04","done":"yes"}]}`},
		{"collapsedWeeks value not boolean", `{"collapsedWeeks":{"2025-06-02_2025-06-08":"open"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var doc interface{}
			if err := json.Unmarshal([]byte(tc.json), &doc); err != nil {
				t.Fatal(err)
			}
			if err := schema.Validate(doc); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
