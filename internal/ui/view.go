package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasky/internal/analytics"
)

var (
	appStyle       = lipgloss.NewStyle().Padding(1, 2)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle      = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))

	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("148"))
)

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error())
	}

	switch m.state {
	case stateAddTitle, stateAddDesc:
		header := "New Task"
		if m.state == stateAddDesc {
			header = "New Task: " + m.pendingTitle
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: next • esc: cancel") +
				errView,
		)
	case stateAddPlan:
		return appStyle.Render(
			titleStyle.Render("New "+m.frame+" Plan") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateConfirm:
		return appStyle.Render(
			confirmStyle.Render("Delete?") + "\n\n" +
				"  " + m.selectedLabel() + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	}

	var body, help string
	switch m.view {
	case viewTasks:
		body = m.tasks.View()
		help = "a: add • x: done • s: start • d: delete • r: hide all • u: unhide • h: show hidden"
		if m.hidden > 0 && !m.showHidden {
			help = fmt.Sprintf("%d hidden • ", m.hidden) + help
		}
	case viewStats:
		body = RenderStats(m.dash)
	case viewPlans:
		body = m.plans.View()
		help = "a: add • d: delete • f: week/month"
	}
	help = strings.TrimPrefix(help+" • tab: next view • q: quit", " • ")

	footer := statusStyle.Render(help)
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	return appStyle.Render(m.renderTabs() + "\n\n" + body + "\n" + footer + errView)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return strings.Join(tabs, "   ")
}

func (m Model) selectedLabel() string {
	switch m.view {
	case viewTasks:
		if item, ok := m.tasks.SelectedItem().(taskItem); ok {
			return item.task.Title
		}
	case viewPlans:
		if item, ok := m.plans.SelectedItem().(planItem); ok {
			return item.plan.Heading
		}
	}
	return ""
}

// RenderStats lays the dashboard out as four cards.
func RenderStats(d analytics.Dashboard) string {
	overall := fmt.Sprintf("%s\nTotal tasks: %d\nCompleted: %d\nPending: %d\nCompletion rate: %.1f%%\nAvg time to done: %s",
		titleStyle.Render("Overall"),
		d.Overall.Total, d.Overall.Completed, d.Overall.Pending,
		d.Overall.CompletionRate,
		avgDuration(d.Overall),
	)
	today := fmt.Sprintf("%s\nCreated: %d\nCompleted: %d\nTime to done: %s\nStreak: %d day(s)",
		titleStyle.Render("Today"),
		d.Today.Created, d.Today.Completed,
		analytics.FormatDuration(d.Today.TotalMinutes),
		d.Streak,
	)
	week := fmt.Sprintf("%s\n%s to %s\nCreated: %d\nCompleted: %d\nMost productive: %s",
		titleStyle.Render("This week"),
		d.Week.Start.Format("Jan 02"), d.Week.Last().Format("Jan 02"),
		d.Week.Created, d.Week.Completed,
		orDash(d.Week.MostProductiveDay),
	)
	month := fmt.Sprintf("%s\n%s\nCreated: %d\nCompleted: %d\nCompletion rate: %.1f%%\nBest week: %s",
		titleStyle.Render("This month"),
		d.Month.Start.Format("January 2006"),
		d.Month.Created, d.Month.Completed,
		d.Month.CompletionRate,
		orDash(d.Month.BestWeek),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top, cardStyle.Render(overall), " ", cardStyle.Render(today))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cardStyle.Render(week), " ", cardStyle.Render(month))
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func avgDuration(o analytics.Overall) string {
	if o.WithDuration == 0 {
		return "n/a"
	}
	return analytics.FormatDuration(o.AvgCompletionMinutes)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
