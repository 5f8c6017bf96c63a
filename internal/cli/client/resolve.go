package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// ResolveCmd creates the resolve command.
func ResolveCmd() *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Extract the video ID from a URL",
		Long:  "Parses a video URL into its ID and optionally fetches the video's metadata.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runResolve(cmd.Context(), args[0], fetch, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch video metadata from the content source")

	return cmd
}

func runResolve(ctx context.Context, rawURL string, fetch, outputJSON bool) error {
	videoID, err := youtube.ParseVideoID(rawURL)
	if err != nil {
		return err
	}

	result := map[string]string{"video_id": videoID}

	if fetch {
		app, err := loadApp()
		if err != nil {
			return err
		}
		meta, err := app.metadataClient()
		if err != nil {
			return err
		}
		content, err := meta.VideoContent(ctx, videoID)
		if err != nil {
			return err
		}
		result["title"] = content.Title
		result["channel"] = content.Channel
		result["published"] = content.Published
		result["view_count"] = content.ViewCount
	}

	if outputJSON {
		return printJSON(result)
	}

	fmt.Printf("Video ID: %s\n", videoID)
	if fetch {
		fmt.Printf("Title:    %s\n", result["title"])
		fmt.Printf("Channel:  %s\n", result["channel"])
		fmt.Printf("Views:    %s\n", result["view_count"])
	}
	return nil
}
