package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// SummaryCmd creates the summary command.
func SummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <url>",
		Short: "Generate a detailed video summary",
		Long:  "Generates the structured long-form summary (overview, highlights, key insights, conclusion).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSummary(cmd.Context(), args[0], outputJSON)
		},
	}

	return cmd
}

func runSummary(ctx context.Context, rawURL string, outputJSON bool) error {
	svc, content, err := postService(ctx, rawURL)
	if err != nil {
		return err
	}

	summary, err := svc.DetailedSummary(ctx, content)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]string{"summary": summary})
	}
	fmt.Println(summary)
	return nil
}
