package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasky/internal/analytics"
	"tasky/internal/app"
	"tasky/internal/model"
	"tasky/internal/service"
)

type view int

const (
	viewTasks view = iota
	viewStats
	viewPlans
)

var viewNames = []string{"Tasks", "Stats", "Plans"}

type appState int

const (
	stateBrowse appState = iota
	stateAddTitle
	stateAddDesc
	stateAddPlan
	stateConfirm
)

const rolloverInterval = time.Minute

type keyMap struct {
	Add          key.Binding
	Done         key.Binding
	Start        key.Binding
	Delete       key.Binding
	Hide         key.Binding
	Unhide       key.Binding
	ToggleHidden key.Binding
	Frame        key.Binding
	NextView     key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Done:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		Start:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Hide:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "hide all")),
		Unhide:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unhide all")),
		ToggleHidden: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "show hidden")),
		Frame:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "week/month")),
		NextView:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the top-level BubbleTea model for the tasky TUI.
type Model struct {
	session *app.Session
	keys    keyMap

	view       view
	state      appState
	tasks      list.Model
	plans      list.Model
	input      textinput.Model
	frame      string
	showHidden bool
	hidden     int64
	dash       analytics.Dashboard

	pendingTitle string
	status       string
	err          error
	width        int
	height       int
}

type dataMsg struct {
	tasks  []model.Task
	hidden int64
	plans  []model.Plan
	dash   analytics.Dashboard
}

type errMsg struct{ error }

type tickMsg time.Time

// New creates the TUI model over an open session.
func New(s *app.Session) Model {
	keys := newKeyMap()

	ti := textinput.New()
	ti.CharLimit = 256

	taskList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	taskList.Title = "Tasks"
	taskList.Styles.Title = titleStyle
	taskList.SetShowHelp(false)
	taskList.SetFilteringEnabled(true)
	taskList.SetStatusBarItemName("task", "tasks")

	planList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	planList.Title = "Week plans"
	planList.Styles.Title = titleStyle
	planList.SetShowHelp(false)
	planList.SetFilteringEnabled(true)
	planList.SetStatusBarItemName("plan", "plans")

	return Model{
		session: s,
		keys:    keys,
		tasks:   taskList,
		plans:   planList,
		input:   ti,
		frame:   model.TimeFrameWeek,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load, tick())
}

func tick() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// load re-queries everything the three views show.
func (m Model) load() tea.Msg {
	ctx := context.Background()

	tasks, err := m.session.Tasks.List(ctx, m.showHidden)
	if err != nil {
		return errMsg{err}
	}
	hidden, err := m.session.Tasks.HiddenCount(ctx)
	if err != nil {
		return errMsg{err}
	}
	plans, err := m.session.Plans.ListPlans(ctx, m.frame)
	if err != nil {
		return errMsg{err}
	}
	dash, err := m.session.Stats.Dashboard(ctx, time.Time{})
	if err != nil {
		return errMsg{err}
	}
	return dataMsg{tasks: tasks, hidden: hidden, plans: plans, dash: dash}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		// tabs header and footer lines
		listHeight := msg.Height - v - 4
		m.tasks.SetSize(msg.Width-h, listHeight)
		m.plans.SetSize(msg.Width-h, listHeight)
		return m, nil

	case dataMsg:
		m.setTasks(msg.tasks)
		m.setPlans(msg.plans)
		m.hidden = msg.hidden
		m.dash = msg.dash
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case tickMsg:
		if m.session.CheckDayRollover() {
			return m, tea.Batch(m.load, tick())
		}
		return m, tick()
	}

	switch m.state {
	case stateAddTitle, stateAddDesc, stateAddPlan:
		return m.updateInput(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m *Model) setTasks(tasks []model.Task) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	m.tasks.SetItems(items)
	if m.showHidden {
		m.tasks.Title = "Tasks (including hidden)"
	} else {
		m.tasks.Title = "Tasks"
	}
}

func (m *Model) setPlans(plans []model.Plan) {
	items := make([]list.Item, len(plans))
	for i, p := range plans {
		items[i] = planItem{plan: p}
	}
	m.plans.SetItems(items)
	m.plans.Title = m.frame + " plans"
}

func (m Model) filtering() bool {
	switch m.view {
	case viewTasks:
		return m.tasks.SettingFilter()
	case viewPlans:
		return m.plans.SettingFilter()
	}
	return false
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.NextView):
			m.view = (m.view + 1) % view(len(viewNames))
			m.status = ""
			return m, nil
		}

		switch m.view {
		case viewTasks:
			if next, cmd, handled := m.handleTaskKey(keyMsg); handled {
				return next, cmd
			}
		case viewPlans:
			if next, cmd, handled := m.handlePlanKey(keyMsg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case viewPlans:
		m.plans, cmd = m.plans.Update(msg)
	}
	return m, cmd
}

func (m Model) handleTaskKey(keyMsg tea.KeyMsg) (Model, tea.Cmd, bool) {
	ctx := context.Background()
	tasks := m.session.Tasks

	switch {
	case key.Matches(keyMsg, m.keys.Add):
		m.state = stateAddTitle
		m.pendingTitle = ""
		cmd := m.openInput("Task title...")
		return m, cmd, true

	case key.Matches(keyMsg, m.keys.Done):
		item, ok := m.tasks.SelectedItem().(taskItem)
		if !ok {
			return m, nil, true
		}
		if err := tasks.CompleteTask(ctx, item.task.ID); err != nil {
			m.err = err
			return m, nil, true
		}
		m.status = fmt.Sprintf("Completed %q", item.task.Title)
		return m, m.load, true

	case key.Matches(keyMsg, m.keys.Start):
		item, ok := m.tasks.SelectedItem().(taskItem)
		if !ok {
			return m, nil, true
		}
		if item.task.StartedAt != nil {
			m.status = fmt.Sprintf("%q was already started", item.task.Title)
			return m, nil, true
		}
		if err := tasks.StartTask(ctx, item.task.ID); err != nil {
			m.err = err
			return m, nil, true
		}
		m.status = fmt.Sprintf("Started %q", item.task.Title)
		return m, m.load, true

	case key.Matches(keyMsg, m.keys.Delete):
		if m.tasks.SelectedItem() == nil {
			return m, nil, true
		}
		m.state = stateConfirm
		return m, nil, true

	case key.Matches(keyMsg, m.keys.Hide):
		n, err := tasks.HideIncomplete(ctx)
		if err != nil {
			m.err = err
			return m, nil, true
		}
		m.status = fmt.Sprintf("%d task(s) hidden", n)
		return m, m.load, true

	case key.Matches(keyMsg, m.keys.Unhide):
		n, err := tasks.UnhideAll(ctx)
		if err != nil {
			m.err = err
			return m, nil, true
		}
		m.status = fmt.Sprintf("%d task(s) back on the list", n)
		return m, m.load, true

	case key.Matches(keyMsg, m.keys.ToggleHidden):
		m.showHidden = !m.showHidden
		return m, m.load, true
	}
	return m, nil, false
}

func (m Model) handlePlanKey(keyMsg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(keyMsg, m.keys.Add):
		m.state = stateAddPlan
		cmd := m.openInput(m.frame + " plan heading...")
		return m, cmd, true

	case key.Matches(keyMsg, m.keys.Frame):
		if m.frame == model.TimeFrameWeek {
			m.frame = model.TimeFrameMonth
		} else {
			m.frame = model.TimeFrameWeek
		}
		return m, m.load, true

	case key.Matches(keyMsg, m.keys.Delete):
		if m.plans.SelectedItem() == nil {
			return m, nil, true
		}
		m.state = stateConfirm
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) openInput(placeholder string) tea.Cmd {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.err = nil
	return m.input.Focus()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = stateBrowse
			m.pendingTitle = ""
			m.input.Blur()
			return m, nil
		case "enter":
			return m.submitInput()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	value := strings.TrimSpace(m.input.Value())

	switch m.state {
	case stateAddTitle:
		if value == "" {
			m.err = errors.New("title is required")
			return m, nil
		}
		m.pendingTitle = value
		m.state = stateAddDesc
		cmd := m.openInput("Description (optional)...")
		return m, cmd

	case stateAddDesc:
		task, err := m.session.Tasks.CreateTask(ctx, service.TaskInput{Title: m.pendingTitle, Description: value})
		m.state = stateBrowse
		m.pendingTitle = ""
		m.input.Blur()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Added #%d", task.ID)
		return m, m.load

	case stateAddPlan:
		plan, err := m.session.Plans.CreatePlan(ctx, service.PlanInput{Heading: value, TimeFrame: m.frame})
		if err != nil {
			m.err = err
			return m, nil
		}
		m.state = stateBrowse
		m.input.Blur()
		m.status = fmt.Sprintf("Added %s plan #%d", plan.TimeFrame, plan.ID)
		return m, m.load
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y":
		m.state = stateBrowse
		ctx := context.Background()
		var err error
		switch m.view {
		case viewTasks:
			if item, ok := m.tasks.SelectedItem().(taskItem); ok {
				err = m.session.Tasks.DeleteTask(ctx, item.task.ID)
			}
		case viewPlans:
			if item, ok := m.plans.SelectedItem().(planItem); ok {
				err = m.session.Plans.DeletePlan(ctx, item.plan.ID)
			}
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Deleted"
		return m, m.load
	case "n", "esc":
		m.state = stateBrowse
		return m, nil
	}
	return m, nil
}
