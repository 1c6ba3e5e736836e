package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"dailyfocus/pkg/store"
)

// HandleExportCommand processes --export commands. When the target is a
// directory the artifact gets the default date-stamped name.
func HandleExportCommand(s *store.Store, target string) {
	path := target
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		path = filepath.Join(target, s.ExportName())
	}

	content, err := s.ExportBytes()
	if err != nil {
		fmt.Printf("Error exporting: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d note(s) and %d todo(s) to %s\n", len(s.Doc.Notes), len(s.Doc.Todos), path)
}
