package importer

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"tasky/internal/service"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Done        bool   `yaml:"done,omitempty"`
}

// YAMLPlan represents a single plan in the YAML input.
type YAMLPlan struct {
	Heading     string `yaml:"heading"`
	Description string `yaml:"description,omitempty"`
	FocusArea   string `yaml:"focus_area,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	TimeFrame   string `yaml:"time_frame"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
	Plans []YAMLPlan `yaml:"plans"`
}

// Result counts what an import created.
type Result struct {
	Tasks int
	Plans int
}

// Import parses a YAML document and creates its tasks, then its plans.
// It stops at the first entry the services reject; Result reports what was
// created up to that point.
func Import(ctx context.Context, tasks *service.TaskService, plans *service.PlanService, data []byte) (Result, error) {
	var res Result

	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return res, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Tasks) == 0 && len(input.Plans) == 0 {
		return res, fmt.Errorf("no tasks or plans found in YAML")
	}

	for i, yt := range input.Tasks {
		task, err := tasks.CreateTask(ctx, service.TaskInput{
			Title:       yt.Title,
			Description: yt.Description,
			Category:    yt.Category,
			Priority:    yt.Priority,
		})
		if err != nil {
			return res, fmt.Errorf("task %d (%q): %w", i+1, yt.Title, err)
		}
		res.Tasks++
		if yt.Done {
			if err := tasks.CompleteTask(ctx, task.ID); err != nil {
				return res, fmt.Errorf("complete task %q: %w", yt.Title, err)
			}
		}
	}

	for i, yp := range input.Plans {
		if _, err := plans.CreatePlan(ctx, service.PlanInput{
			Heading:     yp.Heading,
			Description: yp.Description,
			FocusArea:   yp.FocusArea,
			Priority:    yp.Priority,
			TimeFrame:   yp.TimeFrame,
		}); err != nil {
			return res, fmt.Errorf("plan %d (%q): %w", i+1, yp.Heading, err)
		}
		res.Plans++
	}
	return res, nil
}
