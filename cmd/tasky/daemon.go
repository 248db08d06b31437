package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tasky/internal/bot"
	"tasky/internal/service"
)

const jobTimeout = 30 * time.Second

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run scheduled backups and the Telegram digest in the foreground",
	Long: `Run scheduled backups and the Telegram digest in the foreground.

A snapshot is taken every day at backup_time. When telegram_token and
telegram_chat_id are configured, the digest is sent at report_time and
the bot answers /tasks, /stats and /report from that chat. Stops on
SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := s.Config
	log := s.Log
	scheduler := service.NewSchedulerService(time.Local, log)

	if _, err := scheduler.ScheduleDaily("backup", cfg.BackupTime, func() {
		jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
		defer cancel()
		if _, err := s.Backups.Create(jobCtx); err != nil {
			log.Error("scheduled backup failed", "error", err)
		}
	}); err != nil {
		return err
	}

	var botDone chan error
	if cfg.TelegramEnabled() {
		b, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID, bot.Deps{
			Tasks:   s.Tasks,
			Stats:   s.Stats,
			Reports: s.Reports,
			Logger:  log,
		})
		if err != nil {
			return err
		}
		if _, err := scheduler.ScheduleDaily("telegram report", cfg.ReportTime, func() {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			if err := b.SendDailyReport(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("daily report failed", "error", err)
			}
		}); err != nil {
			return err
		}
		botDone = make(chan error, 1)
		go func() { botDone <- b.Start(ctx) }()
	} else {
		log.Info("telegram not configured, digest disabled")
	}

	scheduler.Start()
	log.Info("daemon started", "backup_time", cfg.BackupTime, "report_time", cfg.ReportTime)

	<-ctx.Done()
	log.Info("shutting down")
	scheduler.Stop()
	if botDone != nil {
		if err := <-botDone; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}
