package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/tally/internal/config"
	"github.com/jwulff/tally/internal/store"
	"github.com/jwulff/tally/internal/timeapp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	file := store.TimeFile(cfg.Files.Directory)

	p := tea.NewProgram(timeapp.New(cfg, file), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}
