package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/service"
)

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "ask <url-or-id> <question>",
		Short: "Ask a question about a video",
		Long: `Answers a question grounded on the video's stored chunks. Chunks must be
built first with 'chunks build'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd.Context(), args[0], args[1], showSources, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&showSources, "sources", false, "Show the retrieved source chunks")

	return cmd
}

func runAsk(ctx context.Context, arg, question string, showSources, outputJSON bool) error {
	videoID, err := resolveVideoID(arg)
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}

	client, err := app.openAIClient()
	if err != nil {
		return err
	}

	answerSvc := service.NewAnswerService(client, client, app.store)
	answer, err := answerSvc.Answer(ctx, videoID, question)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]interface{}{
			"answer":  answer.Text,
			"sources": sourcesForOutput(answer.Sources),
		})
	}

	fmt.Println(answer.Text)

	if showSources {
		fmt.Printf("\n%s\nSources:\n", strings.Repeat("-", 40))
		for i, src := range answer.Sources {
			fmt.Printf("%d. %s (score %.3f)\n", i+1, service.PositionLabel(src.Chunk.Chunk), src.Score)
			text := src.Chunk.Text
			if len(text) > 200 {
				text = text[:197] + "..."
			}
			fmt.Printf("   %s\n", text)
		}
	}
	return nil
}

func sourcesForOutput(results []domain.SimilarityResult) []map[string]interface{} {
	out := make([]map[string]interface{}, len(results))
	for i, src := range results {
		out[i] = map[string]interface{}{
			"score": src.Score,
			"kind":  string(src.Chunk.Kind),
			"start": src.Chunk.Start,
			"end":   src.Chunk.End,
			"text":  src.Chunk.Text,
		}
	}
	return out
}
