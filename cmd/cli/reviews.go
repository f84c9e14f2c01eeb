package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listOffset int
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Browse stored reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reviews, most recent first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newAPIClient()
		reviews, err := client.listReviews(listLimit, listOffset)
		if err != nil {
			errorColor.Printf("failed to list reviews: %v\n", err)
			return err
		}
		if len(reviews) == 0 {
			dimColor.Println("no reviews stored")
			return nil
		}
		for _, r := range reviews {
			fmt.Printf("%s  %-30s %-12s %s\n",
				titleColor.Sprintf("#%-5d", r.ID),
				r.Filename,
				r.Language,
				dimColor.Sprint(r.CreatedAt.Format("2006-01-02 15:04")))
		}
		return nil
	},
}

var reviewsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid review id: %s", args[0])
		}
		client := newAPIClient()
		review, err := client.getReview(id)
		if err != nil {
			errorColor.Printf("failed to get review: %v\n", err)
			return err
		}
		printReview(review)
		return nil
	},
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid review id: %s", args[0])
		}
		client := newAPIClient()
		if err := client.deleteReview(id); err != nil {
			errorColor.Printf("failed to delete review: %v\n", err)
			return err
		}
		successColor.Printf("review #%d deleted\n", id)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewsListCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum number of reviews to list")
	reviewsListCmd.Flags().IntVar(&listOffset, "offset", 0, "number of reviews to skip")

	reviewsCmd.AddCommand(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsGetCmd)
	reviewsCmd.AddCommand(reviewsDeleteCmd)
	rootCmd.AddCommand(reviewsCmd)
}
