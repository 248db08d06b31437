package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"tasky/internal/service"
)

// Config keeps runtime settings for the application.
type Config struct {
	DatabasePath        string `yaml:"database_path" env:"TASKY_DB" env-default:"tasks.db"`
	BackupDir           string `yaml:"backup_dir" env:"TASKY_BACKUP_DIR" env-default:"backups"`
	BackupRetentionDays int    `yaml:"backup_retention_days" env:"TASKY_BACKUP_RETENTION_DAYS" env-default:"7"`
	BackupTime          string `yaml:"backup_time" env:"TASKY_BACKUP_TIME" env-default:"09:00"`
	StreakLookbackDays  int    `yaml:"streak_lookback_days" env:"TASKY_STREAK_LOOKBACK_DAYS" env-default:"3650"`
	LogLevel            string `yaml:"log_level" env:"TASKY_LOG_LEVEL" env-default:"INFO"`
	LogFile             string `yaml:"log_file" env:"TASKY_LOG_FILE"`
	TelegramToken       string `yaml:"telegram_token" env:"TELEGRAM_TOKEN"`
	TelegramChatID      int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	ReportTime          string `yaml:"report_time" env:"TASKY_REPORT_TIME" env-default:"21:00"`
}

// Load reads the YAML file at path when it exists and applies environment
// overrides on top. An empty path means environment only.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.BackupRetentionDays < 1 {
		return fmt.Errorf("backup_retention_days must be at least 1, got %d", c.BackupRetentionDays)
	}
	if c.StreakLookbackDays < 1 {
		return fmt.Errorf("streak_lookback_days must be at least 1, got %d", c.StreakLookbackDays)
	}
	if _, _, err := service.ParseClock(c.BackupTime); err != nil {
		return fmt.Errorf("backup_time: %w", err)
	}
	if _, _, err := service.ParseClock(c.ReportTime); err != nil {
		return fmt.Errorf("report_time: %w", err)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("telegram_chat_id is required when telegram_token is set")
	}
	return nil
}

// TelegramEnabled reports whether the digest bot should run.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// ResolvedLogFile is where the interactive UI writes its log.
func (c Config) ResolvedLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(c.DatabasePath), "tasky.log")
}
