package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate review statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newAPIClient()
		stats, err := client.getStats()
		if err != nil {
			errorColor.Printf("failed to get stats: %v\n", err)
			return err
		}

		titleColor.Println("Review Statistics")
		fmt.Printf("  Total reviews: %d\n", stats.TotalReviews)
		fmt.Println("  Average scores:")
		fmt.Printf("    Readability: %.1f\n", stats.AverageScores.Readability)
		fmt.Printf("    Modularity:  %.1f\n", stats.AverageScores.Modularity)
		fmt.Printf("    Bug risk:    %.1f\n", stats.AverageScores.BugRisk)

		if len(stats.Languages) == 0 {
			return nil
		}
		fmt.Println("  Languages:")
		names := make([]string, 0, len(stats.Languages))
		for name := range stats.Languages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %-12s %d\n", name, stats.Languages[name])
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(statsCmd)
}
