package commands

import (
	"errors"
	"fmt"
	"os"

	"dailyfocus/pkg/store"
)

// HandleAddNote processes the --note command
func HandleAddNote(s *store.Store, content string, dateStr string) {
	date := dateStr
	if date == "" {
		date = s.Today()
	}

	note, err := s.AddNoteOn(date)
	if err != nil {
		if errors.Is(err, store.ErrDayFull) {
			fmt.Printf("Limit reached (%d notes for %s)\n", store.MaxNotesPerDay, date)
		} else {
			fmt.Printf("Error adding note: %v\n", err)
		}
		os.Exit(1)
	}

	if err := s.SetNoteContent(note.ID, content); err != nil {
		fmt.Printf("Error adding note: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added note for %s\n", date)
}

// HandleAddTodo processes the --todo command
func HandleAddTodo(s *store.Store, text string, deadline string) {
	todo, err := s.AddTodo()
	if err != nil {
		fmt.Printf("Error adding todo: %v\n", err)
		os.Exit(1)
	}

	if err := s.SetTodoText(todo.ID, text); err != nil {
		fmt.Printf("Error adding todo: %v\n", err)
		os.Exit(1)
	}

	if deadline != "" {
		if err := s.SetTodoDeadline(todo.ID, deadline); err != nil {
			fmt.Printf("Error setting deadline: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Added todo")
}
