// Package app wires configuration, storage and services into one session
// owned by the entry point.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"tasky/internal/backup"
	"tasky/internal/config"
	"tasky/internal/repository"
	"tasky/internal/service"
)

// NewLogger builds a text logger for the given level name.
func NewLogger(levelStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewBackupManager builds the snapshot manager for cfg without touching the
// database connection.
func NewBackupManager(cfg config.Config, log *slog.Logger, now service.Clock) *backup.Manager {
	return backup.NewManager(backup.Config{
		DatabasePath:  cfg.DatabasePath,
		Dir:           cfg.BackupDir,
		RetentionDays: cfg.BackupRetentionDays,
		Logger:        log,
		Verify:        repository.Probe,
		Now:           now,
	})
}

// Options tune Open.
type Options struct {
	// Now overrides the wall clock.
	Now service.Clock
	// SkipStartupBackup disables the snapshot taken before the store opens.
	SkipStartupBackup bool
}

// Session holds everything a front end needs for one process lifetime.
type Session struct {
	Config  config.Config
	Log     *slog.Logger
	DB      *gorm.DB
	Tasks   *service.TaskService
	Plans   *service.PlanService
	Stats   *service.StatsService
	Reports *service.ReminderService
	Backups *backup.Manager

	now     service.Clock
	mu      sync.Mutex
	lastDay string
}

// Open takes the startup backup, opens the store and builds the services.
// A failed backup is logged and does not stop the session.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger, opts Options) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	backups := NewBackupManager(cfg, log, now)
	if !opts.SkipStartupBackup {
		if _, err := backups.Create(ctx); err != nil {
			log.Warn("startup backup skipped", "error", err)
		}
	}

	db, err := repository.NewDB(cfg.DatabasePath, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	s := &Session{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Tasks:   service.NewTaskService(taskRepo, now),
		Plans:   service.NewPlanService(repository.NewPlanRepository(db), now),
		Stats:   service.NewStatsService(taskRepo, now, cfg.StreakLookbackDays),
		Backups: backups,
		now:     now,
		lastDay: now().Format(time.DateOnly),
	}
	s.Reports = service.NewReminderService(s.Tasks, s.Stats)
	return s, nil
}

// Now is the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}

// CheckDayRollover reports true once for each new calendar day observed.
func (s *Session) CheckDayRollover() bool {
	today := s.now().Format(time.DateOnly)

	s.mu.Lock()
	defer s.mu.Unlock()
	if today == s.lastDay {
		return false
	}
	s.Log.Info("day changed", "from", s.lastDay, "to", today)
	s.lastDay = today
	return true
}

func (s *Session) Close() error {
	return repository.Close(s.DB)
}
