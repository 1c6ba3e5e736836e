package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dailyfocus/pkg/cli"
	"dailyfocus/pkg/config"
	"dailyfocus/pkg/storage"
	"dailyfocus/pkg/store"
	"dailyfocus/pkg/ui"
	"dailyfocus/pkg/utils"
)

func main() {
	args := cli.ParseArgs()

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.OpenSQLite(cfg.Database)
	if err != nil {
		fmt.Printf("Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	s := store.New(kv)
	if err := s.Load(); err != nil {
		fmt.Printf("Error loading data: %v\n", err)
		os.Exit(1)
	}
	if err := s.Persist(); err != nil {
		fmt.Printf("Error saving data: %v\n", err)
		os.Exit(1)
	}

	// One-shot CLI commands skip the UI entirely
	if cli.HandleCommands(s, args) {
		return
	}

	p := tea.NewProgram(ui.NewModel(s, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
