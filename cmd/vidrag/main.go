package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/cli"
	"github.com/tmls-media/vidrag/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidrag",
		Short: "Vidrag CLI - Video retrieval and content generation",
		Long: `Vidrag CLI builds embedded chunk collections from video transcripts and
metadata, answers grounded questions about them, and generates marketing
content.

Environment variables:
  VIDRAG_OPENAI_API_KEY     OpenAI API key (embeddings, answers, posts)
  VIDRAG_YOUTUBE_API_KEY    YouTube Data API key (video metadata)
  VIDRAG_ANTHROPIC_API_KEY  Anthropic API key (workflow diagrams)
  VIDRAG_DATA_DIR           Embedding store directory (default: .)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.ResolveCmd())
	rootCmd.AddCommand(client.ChunksCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.PostsCmd())
	rootCmd.AddCommand(client.SummaryCmd())
	rootCmd.AddCommand(client.WorkflowCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
