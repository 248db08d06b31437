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
	planFrame       string
	planFocus       string
	planPriority    string
	planDescription string
	planListFrame   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage weekly and monthly plans",
}

var planAddCmd = &cobra.Command{
	Use:   "add <heading>",
	Short: "Add a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanAdd,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planUpdateCmd = &cobra.Command{
	Use:   "update <id> <heading>",
	Short: "Replace a plan's fields",
	Long: `Replace a plan's fields.

Every field is rewritten: flags left out fall back to their defaults,
the same way "plan add" treats them.`,
	Args: cobra.ExactArgs(2),
	RunE: runPlanUpdate,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

func init() {
	for _, c := range []*cobra.Command{planAddCmd, planUpdateCmd} {
		c.Flags().StringVarP(&planFrame, "frame", "f", model.TimeFrameWeek, "Week or Month")
		c.Flags().StringVar(&planFocus, "focus", "", "focus area (default General)")
		c.Flags().StringVarP(&planPriority, "priority", "p", "", "High, Medium or Low (default Medium)")
		c.Flags().StringVarP(&planDescription, "description", "d", "", "longer description")
	}
	planListCmd.Flags().StringVarP(&planListFrame, "frame", "f", "", "only Week or Month plans")

	planCmd.AddCommand(planAddCmd, planListCmd, planUpdateCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

func planInput(heading string) service.PlanInput {
	return service.PlanInput{
		Heading:     heading,
		Description: planDescription,
		FocusArea:   planFocus,
		Priority:    planPriority,
		TimeFrame:   planFrame,
	}
}

func runPlanAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	plan, err := s.Plans.CreatePlan(cmd.Context(), planInput(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s plan #%d: %s\n", plan.TimeFrame, plan.ID, plan.Heading)
	return nil
}

func runPlanList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	plans, err := s.Plans.ListPlans(cmd.Context(), planListFrame)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plans.")
		return nil
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{strconv.FormatUint(uint64(p.ID), 10), p.TimeFrame, p.Heading, p.FocusArea, p.Priority, p.Status})
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "FRAME", "HEADING", "FOCUS", "PRIORITY", "STATUS").
		Rows(rows...).
		Render())
	return nil
}

func runPlanUpdate(cmd *cobra.Command, args []string) error {
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
	if _, err := s.Plans.GetPlan(ctx, id); err != nil {
		return fmt.Errorf("plan #%d: %w", id, err)
	}
	if err := s.Plans.UpdatePlan(ctx, id, planInput(args[1])); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated plan #%d\n", id)
	return nil
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
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
	if _, err := s.Plans.GetPlan(ctx, id); err != nil {
		return fmt.Errorf("plan #%d: %w", id, err)
	}
	if err := s.Plans.DeletePlan(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan #%d\n", id)
	return nil
}
