package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tasky/internal/app"
	"tasky/internal/backup"
	"tasky/internal/model"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "List, create and restore dated database snapshots",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Take today's snapshot if it does not exist yet",
	Args:  cobra.NoArgs,
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [YYYY-MM-DD]",
	Short: "Replace the database with a snapshot",
	Long: `Replace the database with a snapshot.

Without a date the newest snapshot is used. The current file is kept
next to the database with a .before_restore suffix. You are asked to
type "yes" (any case) before anything is overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupListCmd, backupCreateCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func backupManager(cmd *cobra.Command) (*backup.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewBackupManager(cfg, app.NewLogger(cfg.LogLevel, cmd.ErrOrStderr()), nil), nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	m, err := backupManager(cmd)
	if err != nil {
		return err
	}
	snapshots, err := m.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No backups.")
		return nil
	}
	for _, s := range snapshots {
		fmt.Fprintf(out, "%s  %s\n", s.Date, s.Path)
	}
	return nil
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	m, err := backupManager(cmd)
	if err != nil {
		return err
	}
	created, err := m.Create(cmd.Context())
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Backup created.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Today's backup already exists.")
	}
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	m, err := backupManager(cmd)
	if err != nil {
		return err
	}

	snapshots, err := m.List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no backups to restore: %w", model.ErrNotFound)
	}
	snapshot := snapshots[0]
	if len(args) == 1 {
		if _, err := time.Parse(time.DateOnly, args[0]); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
		}
		found := false
		for _, s := range snapshots {
			if s.Date == args[0] {
				snapshot, found = s, true
				break
			}
		}
		if !found {
			return fmt.Errorf("no backup from %s: %w", args[0], model.ErrNotFound)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Restore the backup from %s over the current database? Type yes to continue: ", snapshot.Date)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		fmt.Fprintln(out, "Restore cancelled.")
		return nil
	}

	if err := m.Restore(snapshot.Filename); err != nil {
		return err
	}
	fmt.Fprintf(out, "Restored %s. The previous database was saved with the %s suffix.\n", snapshot.Filename, backup.EmergencySuffix)
	return nil
}
