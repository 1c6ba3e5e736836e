package commands

import (
	"fmt"
	"os"

	"dailyfocus/pkg/store"
)

// HandleImportCommand processes --import commands
func HandleImportCommand(s *store.Store, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	if err := s.Import(content); err != nil {
		fmt.Printf("Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d note(s) and %d todo(s) from %s\n", len(s.Doc.Notes), len(s.Doc.Todos), filename)
}
