package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tasky/internal/model"
	"tasky/internal/service"
)

var (
	addCategory string
	addPriority string
	listAll     bool
)

var addCmd = &cobra.Command{
	Use:   "add <title> [description]",
	Short: "Add a task to the main list",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show incomplete tasks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAction("done"),
}

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Record when work on a task began (first call wins)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAction("start"),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAction("delete"),
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide every incomplete task from the main list",
	Long: `Hide every incomplete task from the main list.

Hidden tasks keep their status and still count in statistics.
Completing a task always brings it back; use "tasky unhide" to
restore the whole list.`,
	Args: cobra.NoArgs,
	RunE: runHide,
}

var unhideCmd = &cobra.Command{
	Use:   "unhide",
	Short: "Bring every hidden task back to the main list",
	Args:  cobra.NoArgs,
	RunE:  runUnhide,
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "category (default General)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "High, Medium or Low (default Medium)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include hidden tasks")

	rootCmd.AddCommand(addCmd, listCmd, doneCmd, startCmd, deleteCmd, hideCmd, unhideCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	input := service.TaskInput{
		Title:    args[0],
		Category: addCategory,
		Priority: addPriority,
	}
	if len(args) == 2 {
		input.Description = args[1]
	}
	task, err := s.Tasks.CreateTask(cmd.Context(), input)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d: %s\n", task.ID, task.Title)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	tasks, err := s.Tasks.List(ctx, listAll)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
	} else {
		fmt.Fprintln(out, taskTable(tasks))
	}
	if !listAll {
		hidden, err := s.Tasks.HiddenCount(ctx)
		if err != nil {
			return err
		}
		if hidden > 0 {
			fmt.Fprintf(out, "%d hidden task(s), use --all to show them\n", hidden)
		}
	}
	return nil
}

func runTaskAction(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		task, err := s.Tasks.GetTask(ctx, id)
		if err != nil {
			return fmt.Errorf("task #%d: %w", id, err)
		}

		out := cmd.OutOrStdout()
		switch action {
		case "done":
			if err := s.Tasks.CompleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Completed #%d: %s\n", id, task.Title)
		case "start":
			if task.StartedAt != nil {
				fmt.Fprintf(out, "#%d was already started at %s\n", id, task.StartedAt.Format("2006-01-02 15:04"))
				return nil
			}
			if err := s.Tasks.StartTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Started #%d: %s\n", id, task.Title)
		case "delete":
			if err := s.Tasks.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted #%d: %s\n", id, task.Title)
		}
		return nil
	}
}

func runHide(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Tasks.HideIncomplete(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) hidden\n", n)
	return nil
}

func runUnhide(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Tasks.UnhideAll(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) unhidden\n", n)
	return nil
}

func taskTable(tasks []model.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		state := ""
		if t.StartedAt != nil {
			state = "started"
		}
		if t.Hidden {
			state += " hidden"
		}
		created := ""
		if t.CreatedAt != nil {
			created = t.CreatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{strconv.FormatUint(uint64(t.ID), 10), t.Title, t.Category, t.Priority, created, state})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "PRIORITY", "CREATED", "STATE").
		Rows(rows...).
		Render()
}
