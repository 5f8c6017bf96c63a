package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/service"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// ChunksCmd creates the chunks command group.
func ChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Build and inspect embedded chunks",
	}

	cmd.AddCommand(chunksBuildCmd())
	cmd.AddCommand(chunksStatsCmd())

	return cmd
}

func chunksBuildCmd() *cobra.Command {
	var transcriptPath string

	cmd := &cobra.Command{
		Use:   "build <url-or-id>",
		Short: "Build embedded chunks for a video",
		Long: `Segments the video's text into chunks, embeds each chunk, and replaces the
stored collection. A timed transcript file (JSON array of {start, duration, text})
is used when provided; otherwise the video's metadata text is segmented.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runChunksBuild(cmd.Context(), args[0], transcriptPath, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to a timed transcript JSON file")

	return cmd
}

func runChunksBuild(ctx context.Context, arg, transcriptPath string, outputJSON bool) error {
	videoID, err := resolveVideoID(arg)
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}

	var src service.Source
	if transcriptPath != "" {
		segments, err := youtube.LoadTranscriptFile(transcriptPath)
		if err != nil {
			return err
		}
		src.Segments = segments
	} else {
		meta, err := app.metadataClient()
		if err != nil {
			return err
		}
		content, err := meta.VideoContent(ctx, videoID)
		if err != nil {
			return err
		}
		src.Content = content
	}

	embedding, err := app.openAIClient()
	if err != nil {
		return err
	}

	indexer := service.NewIndexServiceWithConfig(embedding, app.store, app.segmenterConfig())
	embedded, err := indexer.Build(ctx, videoID, src)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]interface{}{"video_id": videoID, "chunks": len(embedded)})
	}

	fmt.Printf("Built %d chunks for video %s\n", len(embedded), videoID)
	return nil
}

func chunksStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <url-or-id>",
		Short: "Show stats for a video's stored chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runChunksStats(args[0], outputJSON)
		},
	}

	return cmd
}

func runChunksStats(arg string, outputJSON bool) error {
	videoID, err := resolveVideoID(arg)
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}

	// Stats only reads the store, so no embedding client is needed.
	indexer := service.NewIndexServiceWithConfig(nil, app.store, app.segmenterConfig())
	stats, err := indexer.Stats(videoID)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(stats)
	}

	fmt.Printf("Tier:         %s\n", stats.Tier)
	fmt.Printf("Chunks:       %d\n", stats.Count)
	fmt.Printf("Avg words:    %.1f\n", stats.AvgWords)
	fmt.Printf("Avg duration: %.1fs\n", stats.AvgDuration)
	fmt.Printf("Words range:  %d-%d\n", stats.MinWords, stats.MaxWords)
	for i, sample := range stats.Samples {
		fmt.Printf("\nSample %d (start %s, %d words):\n  %s\n",
			i+1, service.FormatTimestamp(sample.Start), sample.Words, sample.Text)
	}
	return nil
}
