package analytics

import (
	"math"
	"testing"
	"time"

	"tasky/internal/model"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *model.Timestamp { return model.NewTimestamp(t) }

func pending(created string) model.Task {
	return model.Task{Status: model.StatusPending, CreatedAt: ptr(at(created))}
}

func done(created, completed string) model.Task {
	return model.Task{Status: model.StatusDone, CreatedAt: ptr(at(created)), CompletedAt: ptr(at(completed))}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStatsEmptyTable(t *testing.T) {
	t.Parallel()

	got := Stats(nil)
	if got.Total != 0 || got.CompletionRate != 0 || got.AvgCompletionMinutes != 0 || got.WithDuration != 0 {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestStatsTwoTasksOneDone(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		done("2026-03-10 09:00", "2026-03-10 09:10"),
		pending("2026-03-10 09:00"),
	}
	got := Stats(tasks)
	if got.Total != 2 || got.Completed != 1 || got.Pending != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if !almostEqual(got.CompletionRate, 50) {
		t.Fatalf("expected rate 50, got %v", got.CompletionRate)
	}
	if got.WithDuration != 1 || !almostEqual(got.AvgCompletionMinutes, 10) {
		t.Fatalf("expected avg 10 over 1 row, got %v over %d", got.AvgCompletionMinutes, got.WithDuration)
	}
}

func TestStatsCountsHiddenTasks(t *testing.T) {
	t.Parallel()

	hidden := pending("2026-03-10 09:00")
	hidden.Hidden = true
	got := Stats([]model.Task{hidden})
	if got.Total != 1 || got.Pending != 1 {
		t.Fatalf("hidden task not counted: %+v", got)
	}
}

func TestDurationUndefinedWithoutTimestamps(t *testing.T) {
	t.Parallel()

	noCreated := model.Task{Status: model.StatusDone, CompletedAt: ptr(at("2026-03-10 10:00"))}
	got := Stats([]model.Task{noCreated})
	if got.WithDuration != 0 || got.AvgCompletionMinutes != 0 {
		t.Fatalf("expected no duration rows, got %+v", got)
	}
}

func TestWindows(t *testing.T) {
	t.Parallel()

	anchor := at("2026-03-10 15:30") // Tuesday

	tests := []struct {
		name       string
		w          Window
		start, end string
	}{
		{"day", DayWindow(anchor), "2026-03-10 00:00", "2026-03-11 00:00"},
		{"week", WeekWindow(anchor), "2026-03-09 00:00", "2026-03-16 00:00"},
		{"week on sunday", WeekWindow(at("2026-03-15 23:59")), "2026-03-09 00:00", "2026-03-16 00:00"},
		{"month", MonthWindow(anchor), "2026-03-01 00:00", "2026-04-01 00:00"},
		{"december", MonthWindow(at("2026-12-31 10:00")), "2026-12-01 00:00", "2027-01-01 00:00"},
	}
	for _, tt := range tests {
		if !tt.w.Start.Equal(at(tt.start)) || !tt.w.End.Equal(at(tt.end)) {
			t.Errorf("%s: expected [%s, %s), got [%v, %v)", tt.name, tt.start, tt.end, tt.w.Start, tt.w.End)
		}
	}
}

func TestRollupsKeyCompletionByCompletedAt(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		// created last week, completed today
		done("2026-03-03 09:00", "2026-03-10 09:00"),
		// created and completed today, 30 minutes
		done("2026-03-10 08:00", "2026-03-10 08:30"),
		// created today, still open
		pending("2026-03-10 11:00"),
		// completed on Monday of the same week
		done("2026-03-09 08:00", "2026-03-09 09:00"),
		// completed in February
		done("2026-02-27 08:00", "2026-02-27 08:05"),
	}
	now := at("2026-03-10 18:00")

	day := Daily(tasks, now)
	if day.Created != 2 || day.Completed != 2 {
		t.Fatalf("daily counts: %+v", day)
	}
	if want := 7*24*60 + 30.0; !almostEqual(day.TotalMinutes, want) {
		t.Fatalf("daily minutes: expected %v, got %v", want, day.TotalMinutes)
	}

	week := WeeklyStats(tasks, now)
	if week.Created != 3 || week.Completed != 3 {
		t.Fatalf("weekly counts: %+v", week)
	}
	if week.MostProductiveDay != "Tuesday" {
		t.Fatalf("expected Tuesday, got %q", week.MostProductiveDay)
	}

	month := MonthlyStats(tasks, now)
	if month.Created != 4 || month.Completed != 3 {
		t.Fatalf("monthly counts: %+v", month)
	}
	if !almostEqual(month.CompletionRate, 75) {
		t.Fatalf("expected monthly rate 75, got %v", month.CompletionRate)
	}
	if month.BestWeek != "Week 10" {
		t.Fatalf("expected Week 10, got %q", month.BestWeek)
	}
}

func TestMostProductiveDayNone(t *testing.T) {
	t.Parallel()

	got := MostProductiveDay([]model.Task{pending("2026-03-10 09:00")}, WeekWindow(at("2026-03-10 09:00")))
	if got != "" {
		t.Fatalf("expected no day, got %q", got)
	}
}

func TestBestWeekUsesWeekOfYear(t *testing.T) {
	t.Parallel()

	// March 1st 2026 is a Sunday, so it belongs to week 08 together with
	// the last days of February.
	tasks := []model.Task{
		done("2026-03-01 08:00", "2026-03-01 09:00"),
		done("2026-03-01 08:00", "2026-03-01 10:00"),
		done("2026-03-31 08:00", "2026-03-31 09:00"),
	}
	got := BestWeek(tasks, MonthWindow(at("2026-03-15 12:00")))
	if got != "Week 08" {
		t.Fatalf("expected Week 08, got %q", got)
	}
}

func TestWeekOfYear(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"2026-01-01 00:00": 0,
		"2026-03-01 00:00": 8,
		"2026-03-09 00:00": 10,
		"2026-03-15 00:00": 10,
		"2026-03-30 00:00": 13,
	}
	for day, want := range tests {
		if got := weekOfYear(at(day)); got != want {
			t.Errorf("weekOfYear(%s) = %d, want %d", day, got, want)
		}
	}
}

func TestStreak(t *testing.T) {
	t.Parallel()

	today := at("2026-03-10 20:00")
	tests := []struct {
		name  string
		tasks []model.Task
		want  int
	}{
		{name: "no completions ever", tasks: []model.Task{pending("2026-03-10 09:00")}, want: 0},
		{name: "empty table", tasks: nil, want: 0},
		{
			name: "today missing",
			tasks: []model.Task{
				done("2026-03-09 08:00", "2026-03-09 09:00"),
			},
			want: 0,
		},
		{
			name: "three days then gap",
			tasks: []model.Task{
				done("2026-03-10 08:00", "2026-03-10 09:00"),
				done("2026-03-10 08:00", "2026-03-10 10:00"),
				done("2026-03-09 08:00", "2026-03-09 09:00"),
				done("2026-03-08 08:00", "2026-03-08 23:59"),
				done("2026-03-06 08:00", "2026-03-06 09:00"),
			},
			want: 3,
		},
	}
	for _, tt := range tests {
		if got := Streak(tt.tasks, today, DefaultStreakLookback); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestStreakIsCapped(t *testing.T) {
	t.Parallel()

	today := at("2026-03-10 12:00")
	var tasks []model.Task
	for i := 0; i < 10; i++ {
		day := today.AddDate(0, 0, -i)
		tasks = append(tasks, model.Task{Status: model.StatusDone, CreatedAt: ptr(day), CompletedAt: ptr(day)})
	}
	if got := Streak(tasks, today, 4); got != 4 {
		t.Fatalf("expected streak capped at 4, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:    "0 min",
		59.9: "59 min",
		61:   "1h 1m",
		1439: "23h 59m",
		1500: "1d 1h",
	}
	for minutes, want := range tests {
		if got := FormatDuration(minutes); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", minutes, got, want)
		}
	}
}
