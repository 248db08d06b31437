// Package analytics derives completion statistics from task rows.
//
// Every function is pure: callers pass the full task table (hidden rows
// included) and an anchor time whose location defines calendar days.
package analytics

import (
	"fmt"
	"time"

	"tasky/internal/model"
)

// DefaultStreakLookback bounds the backward walk in Streak to ten years.
const DefaultStreakLookback = 3650

// Overall summarises the whole table.
type Overall struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate float64
	// WithDuration counts the rows AvgCompletionMinutes was computed from;
	// zero means "no data" rather than "instant completion".
	WithDuration         int
	AvgCompletionMinutes float64
}

// Window is a half-open range of calendar days [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Last is the final day inside the window.
func (w Window) Last() time.Time {
	return w.End.AddDate(0, 0, -1)
}

// Contains reports whether the calendar day of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	day := startOfDay(t, w.Start.Location())
	return !day.Before(w.Start) && day.Before(w.End)
}

// Rollup counts activity inside a window. Creation is keyed by created_at,
// completion and time spent by completed_at.
type Rollup struct {
	Window
	Created      int
	Completed    int
	TotalMinutes float64
}

type Weekly struct {
	Rollup
	// MostProductiveDay is a weekday name, empty when nothing was completed.
	MostProductiveDay string
}

type Monthly struct {
	Rollup
	// CompletionRate is completed/created for the month.
	CompletionRate float64
	// BestWeek is "Week NN", empty when nothing was completed.
	BestWeek string
}

// Dashboard bundles every figure the stats views show.
type Dashboard struct {
	Overall Overall
	Today   Rollup
	Week    Weekly
	Month   Monthly
	Streak  int
}

// Build computes the full dashboard anchored at now.
func Build(tasks []model.Task, now time.Time, streakLookback int) Dashboard {
	return Dashboard{
		Overall: Stats(tasks),
		Today:   Daily(tasks, now),
		Week:    WeeklyStats(tasks, now),
		Month:   MonthlyStats(tasks, now),
		Streak:  Streak(tasks, now, streakLookback),
	}
}

func Stats(tasks []model.Task) Overall {
	var o Overall
	var minutes float64
	for _, task := range tasks {
		o.Total++
		if task.IsDone() {
			o.Completed++
		} else {
			o.Pending++
		}
		if d, ok := task.Duration(); ok {
			o.WithDuration++
			minutes += d.Minutes()
		}
	}
	o.CompletionRate = percent(o.Completed, o.Total)
	if o.WithDuration > 0 {
		o.AvgCompletionMinutes = minutes / float64(o.WithDuration)
	}
	return o
}

func DayWindow(day time.Time) Window {
	start := startOfDay(day, day.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekWindow is Monday through Sunday around anchor.
func WeekWindow(anchor time.Time) Window {
	start := startOfDay(anchor, anchor.Location())
	offset := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// MonthWindow spans the first to the last calendar day of anchor's month.
func MonthWindow(anchor time.Time) Window {
	y, m, _ := anchor.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

func Daily(tasks []model.Task, day time.Time) Rollup {
	return rollup(tasks, DayWindow(day))
}

func WeeklyStats(tasks []model.Task, anchor time.Time) Weekly {
	w := WeekWindow(anchor)
	return Weekly{
		Rollup:            rollup(tasks, w),
		MostProductiveDay: MostProductiveDay(tasks, w),
	}
}

func MonthlyStats(tasks []model.Task, anchor time.Time) Monthly {
	w := MonthWindow(anchor)
	r := rollup(tasks, w)
	return Monthly{
		Rollup:         r,
		CompletionRate: percent(r.Completed, r.Created),
		BestWeek:       BestWeek(tasks, w),
	}
}

// MostProductiveDay names the weekday with the most completions in w.
// Ties go to the earliest day; callers must not depend on that choice.
func MostProductiveDay(tasks []model.Task, w Window) string {
	counts := make(map[string]int)
	days := make(map[string]time.Time)
	for _, day := range completionDays(tasks, w) {
		key := day.Format(time.DateOnly)
		counts[key]++
		days[key] = day
	}

	best, bestCount := "", 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best, bestCount = key, n
		}
	}
	if bestCount == 0 {
		return ""
	}
	return days[best].Weekday().String()
}

// BestWeek labels the week-of-year with the most completions in w. Weeks
// are numbered Monday-first, so a week straddling a month boundary is split
// between the two months it touches.
func BestWeek(tasks []model.Task, w Window) string {
	counts := make(map[int]int)
	for _, day := range completionDays(tasks, w) {
		counts[weekOfYear(day)]++
	}

	bestWeek, bestCount := 0, 0
	for week, n := range counts {
		if n > bestCount || (n == bestCount && week < bestWeek) {
			bestWeek, bestCount = week, n
		}
	}
	if bestCount == 0 {
		return ""
	}
	return fmt.Sprintf("Week %02d", bestWeek)
}

// Streak counts consecutive days ending at today with at least one
// completion. It stops at the first gap and never looks back further than
// maxLookback days.
func Streak(tasks []model.Task, today time.Time, maxLookback int) int {
	if maxLookback <= 0 {
		maxLookback = DefaultStreakLookback
	}
	loc := today.Location()
	done := make(map[string]struct{})
	for _, task := range tasks {
		if task.CompletedAt != nil {
			done[task.CompletedAt.In(loc).Format(time.DateOnly)] = struct{}{}
		}
	}

	streak := 0
	day := startOfDay(today, loc)
	for streak < maxLookback {
		if _, ok := done[day.Format(time.DateOnly)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// FormatDuration renders minutes the way the dashboard prints them.
func FormatDuration(minutes float64) string {
	m := int(minutes)
	switch {
	case m < 60:
		return fmt.Sprintf("%d min", m)
	case m < 1440:
		return fmt.Sprintf("%dh %dm", m/60, m%60)
	default:
		return fmt.Sprintf("%dd %dh", m/1440, (m%1440)/60)
	}
}

func rollup(tasks []model.Task, w Window) Rollup {
	r := Rollup{Window: w}
	for _, task := range tasks {
		if task.CreatedAt != nil && w.Contains(task.CreatedAt.Time) {
			r.Created++
		}
		if task.CompletedAt == nil || !w.Contains(task.CompletedAt.Time) {
			continue
		}
		r.Completed++
		if d, ok := task.Duration(); ok {
			r.TotalMinutes += d.Minutes()
		}
	}
	return r
}

func completionDays(tasks []model.Task, w Window) []time.Time {
	var days []time.Time
	for _, task := range tasks {
		if task.CompletedAt != nil && w.Contains(task.CompletedAt.Time) {
			days = append(days, startOfDay(task.CompletedAt.Time, w.Start.Location()))
		}
	}
	return days
}

// weekOfYear numbers weeks from the first Monday of the year; earlier days
// belong to week 0.
func weekOfYear(day time.Time) int {
	yday := day.YearDay() - 1
	monday := (int(day.Weekday()) + 6) % 7
	return (yday + 7 - monday) / 7
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
