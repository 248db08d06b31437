package ui

import (
	"fmt"

	"tasky/internal/model"
)

// taskItem wraps model.Task to satisfy the list.DefaultItem interface.
type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string {
	mark := "[ ]"
	if i.task.StartedAt != nil {
		mark = "[>]"
	}
	title := fmt.Sprintf("%s %s %s", mark, priorityMark(i.task.Priority), i.task.Title)
	if i.task.Hidden {
		title += " (hidden)"
	}
	return title
}

func (i taskItem) Description() string {
	desc := fmt.Sprintf("#%d · %s · %s", i.task.ID, i.task.Category, i.task.Priority)
	if i.task.CreatedAt != nil {
		desc += " · " + i.task.CreatedAt.Format("2006-01-02 15:04")
	}
	if i.task.Description != "" {
		desc += " · " + i.task.Description
	}
	return desc
}

func (i taskItem) FilterValue() string {
	return i.task.Title
}

// planItem wraps model.Plan the same way.
type planItem struct {
	plan model.Plan
}

func (i planItem) Title() string {
	return fmt.Sprintf("%s %s", priorityMark(i.plan.Priority), i.plan.Heading)
}

func (i planItem) Description() string {
	desc := fmt.Sprintf("#%d · %s · %s", i.plan.ID, i.plan.FocusArea, i.plan.Status)
	if i.plan.Description != "" {
		desc += " · " + i.plan.Description
	}
	return desc
}

func (i planItem) FilterValue() string {
	return i.plan.Heading
}

func priorityMark(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return highStyle.Render("!!")
	case model.PriorityLow:
		return lowStyle.Render("..")
	default:
		return mediumStyle.Render("! ")
	}
}
