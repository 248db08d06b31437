package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"tasky/internal/app"
	"tasky/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tasky",
	Short: "A personal to-do list with plans, stats and daily backups",
	Long: `Tasky keeps a single-user to-do list in a local SQLite file.

Run without arguments to open the interactive view. Every command takes
a dated backup of the database first, at most once per day.

Examples:
  tasky                          # interactive view
  tasky add "Write report" --priority High
  tasky hide                     # clear the main list without completing
  tasky backup restore 2026-03-09`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tasky.yaml", "path to the YAML config file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openSession loads config, takes the startup backup and opens the store.
// CLI commands log to stderr.
func openSession(cmd *cobra.Command) (*app.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := app.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	return app.Open(cmd.Context(), cfg, log, app.Options{})
}

// openLogFile returns the file the interactive view logs into.
func openLogFile(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
