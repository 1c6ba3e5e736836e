package cli

import (
	"flag"

	"dailyfocus/pkg/commands"
	"dailyfocus/pkg/store"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// One-shot entry operations
	AddNote      string
	AddTodo      string
	DateFlag     string
	DeadlineFlag string

	// Import/Export operations
	ImportFile   string
	ExportTarget string
	ValidateFile string

	// Maintenance
	PurgeTarget string
	YesFlag     bool
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// One-shot entry operations
	flag.StringVar(&args.AddNote, "note", "", "Add a note without opening the UI")
	flag.StringVar(&args.AddTodo, "todo", "", "Add a todo without opening the UI")
	flag.StringVar(&args.DateFlag, "date", "", "Date for the note (YYYY-MM-DD)")
	flag.StringVar(&args.DeadlineFlag, "deadline", "", "Deadline for the todo (YYYY-MM-DD)")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import notes and todos from an export file")
	flag.StringVar(&args.ExportTarget, "export", "", "Export everything to a file or directory")
	flag.StringVar(&args.ValidateFile, "validate", "", "Check a file against the export schema")

	// Maintenance
	flag.StringVar(&args.PurgeTarget, "purge", "", "Purge entries (done, notes)")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(s *store.Store, args *Args) bool {
	if args.AddNote != "" {
		commands.HandleAddNote(s, args.AddNote, args.DateFlag)
		return true
	}

	if args.AddTodo != "" {
		commands.HandleAddTodo(s, args.AddTodo, args.DeadlineFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(s, args.ImportFile)
		return true
	}

	if args.ExportTarget != "" {
		commands.HandleExportCommand(s, args.ExportTarget)
		return true
	}

	if args.ValidateFile != "" {
		commands.HandleValidateCommand(args.ValidateFile)
		return true
	}

	if args.PurgeTarget != "" {
		commands.HandlePurgeCommand(s, args.PurgeTarget, args.DateFlag, args.YesFlag)
		return true
	}

	// No CLI command was handled
	return false
}
