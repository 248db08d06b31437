package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tasky/internal/app"
	"tasky/internal/ui"
)

// runTUI opens the interactive view. Logs go to a file so they never
// draw over the screen.
func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logFile, err := openLogFile(cfg.ResolvedLogFile())
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := app.NewLogger(cfg.LogLevel, logFile)

	s, err := app.Open(cmd.Context(), cfg, log, app.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(ui.New(s), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
