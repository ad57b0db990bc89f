// Package main is the entry point for the submission review TUI. It loads
// recent submissions from the audit store and opens the tabbed browser.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"themegate/internal/config"
	"themegate/internal/database"
	"themegate/internal/store"
	"themegate/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		fmt.Fprintln(os.Stderr, "failed to run migrations:", err)
		os.Exit(1)
	}

	submissions, err := store.NewSubmissionStore(db).ListRecent(0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load submissions:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.New(submissions), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "review UI failed:", err)
		os.Exit(1)
	}
}
