package commands

import (
	"fmt"
	"os"
	"strings"

	"dailyfocus/pkg/store"
)

// HandlePurgeCommand processes --purge commands. "done" drops completed
// todos; "notes" drops the notes of the --date day.
func HandlePurgeCommand(s *store.Store, what, dateStr string, skipConfirm bool) {
	var count int
	switch what {
	case "done":
		for _, todo := range s.Doc.Todos {
			if todo.Done {
				count++
			}
		}
	case "notes":
		if dateStr == "" {
			fmt.Println("--purge notes requires --date")
			os.Exit(1)
		}
		for _, note := range s.Doc.Notes {
			if note.Date == dateStr {
				count++
			}
		}
	default:
		fmt.Printf("Unknown purge target: %s\n", what)
		os.Exit(1)
	}

	if count == 0 {
		fmt.Println("Nothing to purge.")
		return
	}

	// Show confirmation unless --yes flag is used
	if !skipConfirm {
		fmt.Printf("Are you sure you want to delete %d entr(ies)? (y/N): ", count)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	switch what {
	case "done":
		kept := s.Doc.Todos[:0]
		for _, todo := range s.Doc.Todos {
			if !todo.Done {
				kept = append(kept, todo)
			}
		}
		s.Doc.Todos = kept
	case "notes":
		kept := s.Doc.Notes[:0]
		for _, note := range s.Doc.Notes {
			if note.Date != dateStr {
				kept = append(kept, note)
			}
		}
		s.Doc.Notes = kept
	}

	s.PruneCollapsedWeeks()
	if err := s.Persist(); err != nil {
		fmt.Printf("Error purging: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully deleted %d entr(ies)\n", count)
}
