package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/code-sage/internal/core"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Upload a code file for AI review",
	Long: `Upload a code file to the code-sage server and print the stored review.

Examples:
  sage-cli analyze main.go
  sage-cli --server http://sage.internal:8080 analyze src/app.py`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	client := newAPIClient()

	dimColor.Printf("analyzing %s ...\n", args[0])
	review, err := client.uploadFile(args[0])
	if err != nil {
		errorColor.Printf("analysis failed: %v\n", err)
		return err
	}

	printReview(review)
	return nil
}

func printReview(r *core.Review) {
	titleColor.Printf("\nReview #%d: %s (%s, %d lines)\n\n", r.ID, r.Filename, r.Language, r.LinesOfCode)

	fmt.Print(renderMarkdown(r.ReviewSummary))
	fmt.Println()

	fmt.Printf("  readability %s   modularity %s   bug risk %s\n\n",
		scoreColor(r.ReadabilityScore).Sprintf("%d/10", r.ReadabilityScore),
		scoreColor(r.ModularityScore).Sprintf("%d/10", r.ModularityScore),
		scoreColor(10-r.BugRiskScore).Sprintf("%d/10", r.BugRiskScore))

	if len(r.Suggestions) > 0 {
		titleColor.Println("Suggestions")
		for _, s := range r.Suggestions {
			line := ""
			if s.Line > 0 {
				line = fmt.Sprintf(" (line %d)", s.Line)
			}
			fmt.Printf("  - %s%s\n", s.Description, dimColor.Sprint(line))
		}
		fmt.Println()
	}

	if len(r.Issues) > 0 {
		titleColor.Println("Issues")
		for _, i := range r.Issues {
			severity := strings.ToLower(i.Severity)
			fmt.Printf("  - [%s] %s\n", severityColor(severity).Sprint(severity), i.Description)
		}
		fmt.Println()
	}
}

// renderMarkdown pretty-prints the summary; on any renderer error the raw
// text is printed instead.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md + "\n"
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 7:
		return successColor
	case score >= 4:
		return warnColor
	default:
		return errorColor
	}
}

func severityColor(severity string) *color.Color {
	switch severity {
	case "high", "critical":
		return errorColor
	case "medium":
		return warnColor
	default:
		return dimColor
	}
}
