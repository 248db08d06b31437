package bot

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tasky/internal/analytics"
	"tasky/internal/model"
	"tasky/internal/service"
)

const maxListedTasks = 30

// API is the part of tgbotapi.BotAPI the bot relies on.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot answers read-only commands from a single owner chat and pushes the
// daily digest there.
type Bot struct {
	api       API
	ownerChat int64
	taskSvc   *service.TaskService
	statsSvc  *service.StatsService
	reportSvc *service.ReminderService
	now       service.Clock
	log       *slog.Logger
}

// Deps bundles what the bot reads from.
type Deps struct {
	Tasks   *service.TaskService
	Stats   *service.StatsService
	Reports *service.ReminderService
	Now     service.Clock
	Logger  *slog.Logger
}

func New(token string, ownerChat int64, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	b := NewWithAPI(api, ownerChat, deps)
	b.log.Info("bot authorized", "account", api.Self.UserName)
	return b, nil
}

// NewWithAPI builds a bot over an already constructed API client.
func NewWithAPI(api API, ownerChat int64, deps Deps) *Bot {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Bot{
		api:       api,
		ownerChat: ownerChat,
		taskSvc:   deps.Tasks,
		statsSvc:  deps.Stats,
		reportSvc: deps.Reports,
		now:       now,
		log:       log.With("component", "bot"),
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if err := b.handleUpdate(ctx, update); err != nil {
			b.log.Error("handle update failed", "update", update.UpdateID, "error", err)
		}
	}
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	if msg.Chat.ID != b.ownerChat {
		b.log.Warn("message from foreign chat ignored", "chat", msg.Chat.ID)
		return nil
	}
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, "I only understand commands. Try /help.")
	}

	b.log.Info("command received", "command", msg.Command(), "args", msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		return b.sendText(msg.Chat.ID, helpText)
	case "tasks":
		all := strings.EqualFold(strings.TrimSpace(msg.CommandArguments()), "all")
		return b.handleTasks(ctx, msg.Chat.ID, all)
	case "stats":
		return b.handleStats(ctx, msg.Chat.ID)
	case "report":
		return b.handleReport(ctx, msg.Chat.ID)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

const helpText = "ℹ️ <b>Tasky</b>\n" +
	"• /tasks — open tasks on the main list\n" +
	"• /tasks all — include hidden tasks\n" +
	"• /stats — completion stats and streak\n" +
	"• /report — today's digest\n" +
	"• /help — this message"

func (b *Bot) handleTasks(ctx context.Context, chatID int64, includeHidden bool) error {
	tasks, err := b.taskSvc.List(ctx, includeHidden)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	var hidden int64
	if !includeHidden {
		if hidden, err = b.taskSvc.HiddenCount(ctx); err != nil {
			return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
		}
	}
	return b.sendText(chatID, formatTaskList(tasks, hidden))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	dash, err := b.statsSvc.Dashboard(ctx, b.now())
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not compute stats: %s", escape(err.Error())))
	}
	return b.sendText(chatID, formatDashboard(dash))
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) error {
	text, err := b.reportSvc.DailySummary(ctx, b.now())
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(chatID, text)
}

// SendDailyReport pushes the digest to the owner chat.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := b.reportSvc.DailySummary(ctx, b.now())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}
	if err := b.sendText(b.ownerChat, text); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	b.log.Info("daily report sent", "chat", b.ownerChat)
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func formatTaskList(tasks []model.Task, hidden int64) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Open tasks</b>\n\n")
	if len(tasks) == 0 {
		builder.WriteString("Nothing to do. Add tasks from the terminal.\n")
	}
	for i, task := range tasks {
		if i == maxListedTasks {
			builder.WriteString(fmt.Sprintf("… and %d more\n", len(tasks)-maxListedTasks))
			break
		}
		builder.WriteString(formatTask(task))
	}
	if hidden > 0 {
		builder.WriteString(fmt.Sprintf("\n🙈 %d hidden, use /tasks all\n", hidden))
	}
	return strings.TrimSpace(builder.String())
}

func formatTask(task model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>#%d</b> %s", task.ID, escape(strings.TrimSpace(task.Title))))
	b.WriteString(fmt.Sprintf(" · %s · %s", escape(task.Category), escape(task.Priority)))
	if task.StartedAt != nil {
		b.WriteString(" ▶️")
	}
	if task.Hidden {
		b.WriteString(" 🙈")
	}
	b.WriteByte('\n')
	return b.String()
}

func formatDashboard(d analytics.Dashboard) string {
	var b strings.Builder
	b.WriteString("📊 <b>Stats</b>\n\n")
	b.WriteString(fmt.Sprintf("Total: %d · Done: %d · Pending: %d\n", d.Overall.Total, d.Overall.Completed, d.Overall.Pending))
	b.WriteString(fmt.Sprintf("Completion rate: %.1f%%\n", d.Overall.CompletionRate))
	if d.Overall.WithDuration > 0 {
		b.WriteString(fmt.Sprintf("Avg time to done: %s\n", analytics.FormatDuration(d.Overall.AvgCompletionMinutes)))
	}
	b.WriteString(fmt.Sprintf("\n<b>Today</b>: %d created, %d done\n", d.Today.Created, d.Today.Completed))
	b.WriteString(fmt.Sprintf("<b>This week</b>: %d created, %d done", d.Week.Created, d.Week.Completed))
	if d.Week.MostProductiveDay != "" {
		b.WriteString(fmt.Sprintf(", best day %s", d.Week.MostProductiveDay))
	}
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("<b>This month</b>: %d created, %d done (%.1f%%)", d.Month.Created, d.Month.Completed, d.Month.CompletionRate))
	if d.Month.BestWeek != "" {
		b.WriteString(fmt.Sprintf(", best %s", d.Month.BestWeek))
	}
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("\n🔥 Streak: <b>%d</b> day(s)", d.Streak))
	return b.String()
}

func escape(s string) string {
	return html.EscapeString(s)
}
