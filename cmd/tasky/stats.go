package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tasky/internal/ui"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics, rollups and the current streak",
	Long: `Show completion statistics, rollups and the current streak.

Daily, weekly and monthly figures are anchored at today unless --date
is given. Hidden tasks are included.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "anchor date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var at time.Time
	if statsDate != "" {
		day, err := time.ParseInLocation(time.DateOnly, statsDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", statsDate)
		}
		// end of the anchor day so everything completed that day counts
		at = day.Add(24*time.Hour - time.Second)
	}

	dash, err := s.Stats.Dashboard(cmd.Context(), at)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderStats(dash))
	return nil
}
