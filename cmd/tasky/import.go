package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasky/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Create tasks and plans from a YAML file",
	Long: `Create tasks and plans from a YAML file.

Format:
  tasks:
    - title: Write report
      description: Q1 numbers
      category: Work
      priority: High
      done: false
  plans:
    - heading: Ship v2
      focus_area: Work
      time_frame: Month

Entries are validated like any other input. The import stops at the
first invalid entry; everything before it is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := importer.Import(cmd.Context(), s.Tasks, s.Plans, data)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s) and %d plan(s)\n", res.Tasks, res.Plans)
	return err
}
