// Package backup keeps dated whole-file copies of the task database.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tasky/internal/model"
)

const (
	filePrefix = "tasks_backup_"
	fileSuffix = ".db"
	dateLayout = "2006-01-02"

	// EmergencySuffix is appended to the live file name before a restore.
	EmergencySuffix = ".before_restore"

	DefaultRetentionDays = 7
)

// Snapshot is one dated copy in the backup directory.
type Snapshot struct {
	Filename string
	Path     string
	Date     string
}

// Config holds the dependencies for the backup manager.
type Config struct {
	DatabasePath  string
	Dir           string
	RetentionDays int
	Logger        *slog.Logger
	// Verify checks that the live database can be read before it is copied.
	Verify func(path string) error
	Now    func() time.Time
}

// Manager exclusively owns the snapshot directory.
type Manager struct {
	dbPath    string
	dir       string
	retention int
	log       *slog.Logger
	verify    func(string) error
	now       func() time.Time
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		dbPath:    cfg.DatabasePath,
		dir:       cfg.Dir,
		retention: cfg.RetentionDays,
		log:       cfg.Logger,
		verify:    cfg.Verify,
		now:       cfg.Now,
	}
	if m.retention <= 0 {
		m.retention = DefaultRetentionDays
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.verify == nil {
		m.verify = func(string) error { return nil }
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.log = m.log.With("component", "backup")
	return m
}

// FileName is the snapshot name for the calendar day of t.
func FileName(t time.Time) string {
	return filePrefix + t.Format(dateLayout) + fileSuffix
}

// ParseFileName extracts the YYYY-MM-DD date of a snapshot file name.
func ParseFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", false
	}
	return raw, true
}

// Create writes today's snapshot unless one already exists, then prunes.
// The returned bool reports whether a new file was written.
func (m *Manager) Create(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		m.log.Error("create backup dir failed", "dir", m.dir, "error", err)
		return false, fmt.Errorf("create backup dir: %w", err)
	}
	if _, err := os.Stat(m.dbPath); err != nil {
		m.log.Warn("no database file to back up", "path", m.dbPath)
		return false, fmt.Errorf("stat database: %w", err)
	}

	target := filepath.Join(m.dir, FileName(m.now()))
	if _, err := os.Stat(target); err == nil {
		m.log.Info("today's backup already exists", "path", target)
		return false, nil
	}

	if err := m.verify(m.dbPath); err != nil {
		m.log.Error("database verification failed, backup skipped", "path", m.dbPath, "error", err)
		return false, fmt.Errorf("verify database: %w", err)
	}
	if err := copyFile(m.dbPath, target); err != nil {
		m.log.Error("backup copy failed", "path", target, "error", err)
		return false, fmt.Errorf("copy database: %w", err)
	}
	m.log.Info("backup created", "path", target)

	if _, err := m.Prune(); err != nil {
		m.log.Warn("prune old backups failed", "error", err)
	}
	return true, nil
}

// Prune deletes snapshots dated before now minus the retention window.
// Unrecognised files are never touched.
func (m *Manager) Prune() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read backup dir: %w", err)
	}

	now := m.now()
	cutoff := now.AddDate(0, 0, -m.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, ok := ParseFileName(entry.Name())
		if !ok {
			continue
		}
		date, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil || !date.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, entry.Name())); err != nil {
			m.log.Warn("remove old backup failed", "file", entry.Name(), "error", err)
			continue
		}
		removed++
		m.log.Info("removed old backup", "file", entry.Name())
	}
	if removed > 0 {
		m.log.Info("old backups cleaned", "count", removed)
	}
	return removed, nil
}

// List returns snapshots newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := ParseFileName(entry.Name())
		if !ok {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Filename: entry.Name(),
			Path:     filepath.Join(m.dir, entry.Name()),
			Date:     date,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date > snapshots[j].Date
	})
	return snapshots, nil
}

// Latest is the newest snapshot, if any.
func (m *Manager) Latest() (Snapshot, bool, error) {
	snapshots, err := m.List()
	if err != nil || len(snapshots) == 0 {
		return Snapshot{}, false, err
	}
	return snapshots[0], true, nil
}

// Restore replaces the live database with the named snapshot. The current
// file is first copied next to itself with EmergencySuffix.
func (m *Manager) Restore(filename string) error {
	if filepath.Base(filename) != filename {
		return fmt.Errorf("%w: snapshot name %q must not contain a path", model.ErrValidation, filename)
	}
	source := filepath.Join(m.dir, filename)
	if _, err := os.Stat(source); err != nil {
		m.log.Error("snapshot not found", "path", source)
		return fmt.Errorf("snapshot %q: %w", filename, model.ErrNotFound)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		emergency := m.dbPath + EmergencySuffix
		if err := copyFile(m.dbPath, emergency); err != nil {
			m.log.Error("emergency copy failed, restore aborted", "path", emergency, "error", err)
			return fmt.Errorf("emergency copy: %w", err)
		}
		m.log.Info("current database saved", "path", emergency)
	}

	if err := copyFile(source, m.dbPath); err != nil {
		m.log.Error("restore failed", "snapshot", filename, "error", err)
		return fmt.Errorf("restore %q: %w", filename, err)
	}
	m.log.Info("database restored", "snapshot", filename)
	return nil
}

// RestoreDate restores the snapshot taken on date (YYYY-MM-DD).
func (m *Manager) RestoreDate(date string) error {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", model.ErrValidation, date)
	}
	return m.Restore(FileName(t))
}

// copyFile writes src over dst through a temp file and keeps src's mtime.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
