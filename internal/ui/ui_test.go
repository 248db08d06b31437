package ui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasky/internal/analytics"
	"tasky/internal/app"
	"tasky/internal/config"
	"tasky/internal/model"
	"tasky/internal/service"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func newTestSession(t *testing.T, clock *testClock) *app.Session {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		DatabasePath:        filepath.Join(dir, "tasks.db"),
		BackupDir:           filepath.Join(dir, "backups"),
		BackupRetentionDays: 7,
		StreakLookbackDays:  30,
	}
	s, err := app.Open(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), app.Options{
		Now:               clock.Now,
		SkipStartupBackup: true,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestModel(t *testing.T) (Model, *app.Session, *testClock) {
	t.Helper()

	clock := &testClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	s := newTestSession(t, clock)
	m := send(New(s), tea.WindowSizeMsg{Width: 120, Height: 40})
	return reload(m), s, clock
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func reload(m Model) Model {
	return send(m, m.load())
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func mustCreate(t *testing.T, s *app.Session, title string) *model.Task {
	t.Helper()

	task, err := s.Tasks.CreateTask(context.Background(), service.TaskInput{Title: title})
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", title, err)
	}
	return task
}

func TestAddTaskFlow(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	m = send(m, press("a"))
	if m.state != stateAddTitle {
		t.Fatalf("expected title input, got state %d", m.state)
	}
	m = typeText(m, "Buy milk")
	m = send(m, press("enter"))
	if m.state != stateAddDesc || m.pendingTitle != "Buy milk" {
		t.Fatalf("expected description input, state=%d title=%q", m.state, m.pendingTitle)
	}
	m = typeText(m, "2 litres")
	m = reload(send(m, press("enter")))

	if m.state != stateBrowse || m.err != nil {
		t.Fatalf("add did not finish: state=%d err=%v", m.state, m.err)
	}
	items := m.tasks.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 task, got %d", len(items))
	}
	got := items[0].(taskItem).task
	if got.Title != "Buy milk" || got.Description != "2 litres" || got.Category != model.DefaultCategory {
		t.Fatalf("unexpected task %+v", got)
	}
}

func TestAddTaskRequiresTitle(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)

	m = send(m, press("a"), press("enter"))
	if m.state != stateAddTitle || m.err == nil {
		t.Fatalf("blank title accepted: state=%d err=%v", m.state, m.err)
	}
	m = send(m, press("esc"))
	if m.state != stateBrowse {
		t.Fatalf("esc did not cancel, state=%d", m.state)
	}
	all, _ := s.Tasks.List(context.Background(), true)
	if len(all) != 0 {
		t.Fatalf("expected no tasks, got %d", len(all))
	}
}

func TestCompleteAndStart(t *testing.T) {
	t.Parallel()

	m, s, clock := newTestModel(t)
	ctx := context.Background()
	mustCreate(t, s, "older")
	newest := mustCreate(t, s, "newest")
	m = reload(m)

	m = reload(send(m, press("s")))
	task, err := s.Tasks.GetTask(ctx, newest.ID)
	if err != nil || task.StartedAt == nil {
		t.Fatalf("start not recorded: %+v (%v)", task, err)
	}

	m = send(m, press("s"))
	if !strings.Contains(m.status, "already started") {
		t.Fatalf("expected already-started notice, got %q", m.status)
	}

	clock.t = clock.t.Add(45 * time.Minute)
	m = reload(send(m, press("x")))
	if len(m.tasks.Items()) != 1 {
		t.Fatalf("completed task still listed, %d items", len(m.tasks.Items()))
	}
	if m.dash.Overall.Completed != 1 || m.dash.Today.Completed != 1 {
		t.Fatalf("dashboard not refreshed: %+v", m.dash.Overall)
	}
	if m.dash.Overall.AvgCompletionMinutes != 45 {
		t.Fatalf("expected 45 min average, got %v", m.dash.Overall.AvgCompletionMinutes)
	}
}

func TestHideToggleUnhide(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)
	mustCreate(t, s, "one")
	mustCreate(t, s, "two")
	m = reload(m)

	m = reload(send(m, press("r")))
	if len(m.tasks.Items()) != 0 || m.hidden != 2 {
		t.Fatalf("after hide: %d visible, %d hidden", len(m.tasks.Items()), m.hidden)
	}
	if !strings.Contains(m.View(), "2 hidden") {
		t.Fatal("hidden count not shown")
	}

	m = reload(send(m, press("h")))
	if !m.showHidden || len(m.tasks.Items()) != 2 {
		t.Fatalf("show hidden: flag=%t items=%d", m.showHidden, len(m.tasks.Items()))
	}

	m = reload(send(m, press("h"), press("u")))
	if len(m.tasks.Items()) != 2 || m.hidden != 0 {
		t.Fatalf("after unhide: %d visible, %d hidden", len(m.tasks.Items()), m.hidden)
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)
	mustCreate(t, s, "keep or drop")
	m = reload(m)

	m = send(m, press("d"))
	if m.state != stateConfirm {
		t.Fatalf("expected confirm state, got %d", m.state)
	}
	if !strings.Contains(m.View(), "keep or drop") {
		t.Fatal("confirmation does not name the task")
	}
	m = reload(send(m, press("n")))
	if len(m.tasks.Items()) != 1 {
		t.Fatal("task deleted despite cancel")
	}

	m = reload(send(m, press("d"), press("y")))
	if len(m.tasks.Items()) != 0 {
		t.Fatal("task not deleted")
	}
}

func TestPlansView(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)

	m = send(m, press("tab"), press("tab"))
	if m.view != viewPlans {
		t.Fatalf("expected plans view, got %d", m.view)
	}
	m = send(m, press("a"))
	m = typeText(m, "Read two books")
	m = reload(send(m, press("enter")))
	if len(m.plans.Items()) != 1 {
		t.Fatalf("expected 1 week plan, got %d", len(m.plans.Items()))
	}

	m = reload(send(m, press("f")))
	if m.frame != model.TimeFrameMonth || len(m.plans.Items()) != 0 {
		t.Fatalf("month frame: frame=%s items=%d", m.frame, len(m.plans.Items()))
	}

	m = reload(send(m, press("f")))
	m = reload(send(m, press("d"), press("y")))
	plans, _ := s.Plans.ListPlans(context.Background(), "")
	if len(plans) != 0 {
		t.Fatalf("plan not deleted, %d left", len(plans))
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)
	_, cmd := m.Update(press("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestTickDetectsRollover(t *testing.T) {
	t.Parallel()

	m, s, clock := newTestModel(t)

	_, cmd := m.Update(tickMsg(clock.t))
	if cmd == nil {
		t.Fatal("tick must reschedule itself")
	}

	clock.t = clock.t.AddDate(0, 0, 1)
	m.Update(tickMsg(clock.t))
	if s.CheckDayRollover() {
		t.Fatal("tick did not consume the day change")
	}
}

func TestRenderStats(t *testing.T) {
	t.Parallel()

	out := RenderStats(analytics.Dashboard{
		Overall: analytics.Overall{Total: 2, Completed: 1, Pending: 1, CompletionRate: 50},
		Week:    analytics.Weekly{MostProductiveDay: "Tuesday"},
		Month:   analytics.Monthly{BestWeek: "Week 10"},
		Streak:  3,
	})
	for _, want := range []string{"Total tasks: 2", "Completion rate: 50.0%", "Avg time to done: n/a", "Tuesday", "Week 10", "Streak: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats view missing %q:\n%s", want, out)
		}
	}
}
