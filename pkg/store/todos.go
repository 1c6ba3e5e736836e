package store

import (
	"fmt"
	"sort"
)

// AddTodo appends an empty, undone todo with no deadline and persists.
func (s *Store) AddTodo() (*Todo, error) {
	todo := Todo{
		ID:        s.NewID(),
		CreatedAt: s.Today(),
	}
	s.Doc.Todos = append(s.Doc.Todos, todo)
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return &s.Doc.Todos[len(s.Doc.Todos)-1], nil
}

// TodoByID locates a todo by its id.
func (s *Store) TodoByID(id string) *Todo {
	for i := range s.Doc.Todos {
		if s.Doc.Todos[i].ID == id {
			return &s.Doc.Todos[i]
		}
	}
	return nil
}

// SetTodoText updates a todo's free text and persists.
func (s *Store) SetTodoText(id, text string) error {
	todo := s.TodoByID(id)
	if todo == nil {
		return fmt.Errorf("no todo %s", id)
	}
	todo.Text = text
	return s.Persist()
}

// ToggleTodoDone flips completion and persists.
func (s *Store) ToggleTodoDone(id string) error {
	todo := s.TodoByID(id)
	if todo == nil {
		return fmt.Errorf("no todo %s", id)
	}
	todo.Done = !todo.Done
	return s.Persist()
}

// SetTodoDeadline sets or clears (empty value) a todo's deadline and
// persists. Invalid dates are rejected.
func (s *Store) SetTodoDeadline(id, deadline string) error {
	if deadline != "" && !validDate(deadline) {
		return fmt.Errorf("invalid deadline %q: use YYYY-MM-DD", deadline)
	}
	todo := s.TodoByID(id)
	if todo == nil {
		return fmt.Errorf("no todo %s", id)
	}
	todo.Deadline = deadline
	return s.Persist()
}

// RemoveTodo filters the todo out by id and persists.
func (s *Store) RemoveTodo(id string) error {
	kept := s.Doc.Todos[:0]
	for _, todo := range s.Doc.Todos {
		if todo.ID != id {
			kept = append(kept, todo)
		}
	}
	s.Doc.Todos = kept
	return s.Persist()
}

// ToggleTodosCollapsed flips the shared todo-list collapse flag and
// persists.
func (s *Store) ToggleTodosCollapsed() error {
	s.Doc.TodosCollapsed = !s.Doc.TodosCollapsed
	return s.Persist()
}

// OpenTodoCount counts not-done todos for the collapse toggle label.
func (s *Store) OpenTodoCount() int {
	count := 0
	for _, todo := range s.Doc.Todos {
		if !todo.Done {
			count++
		}
	}
	return count
}

// SortTodos returns a copy in display order: undone before done; within
// undone, todos with a deadline before those without, earlier deadline
// first; all remaining ties by creation order ascending.
func SortTodos(todos []Todo) []Todo {
	sorted := make([]Todo, len(todos))
	copy(sorted, todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Done != b.Done {
			return !a.Done
		}
		if !a.Done {
			hasA, hasB := a.Deadline != "", b.Deadline != ""
			if hasA != hasB {
				return hasA
			}
			if hasA && a.Deadline != b.Deadline {
				return a.Deadline < b.Deadline
			}
		}
		return a.CreatedAt < b.CreatedAt
	})
	return sorted
}
