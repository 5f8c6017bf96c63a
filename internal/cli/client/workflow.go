package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/service"
)

// WorkflowCmd creates the workflow command.
func WorkflowCmd() *cobra.Command {
	var (
		outPath string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "workflow <url>",
		Short: "Generate a workflow infographic for a video",
		Long: `Generates a self-contained HTML workflow infographic from the video's
metadata. The page can be written to a file and optionally published to
object storage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runWorkflow(cmd.Context(), args[0], outPath, publish, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the HTML to a file")
	cmd.Flags().BoolVar(&publish, "publish", false, "Upload the HTML to object storage and print a download URL")

	return cmd
}

func runWorkflow(ctx context.Context, rawURL, outPath string, publish, outputJSON bool) error {
	videoID, err := resolveVideoID(rawURL)
	if err != nil {
		return err
	}

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

	generator, err := app.diagramClient()
	if err != nil {
		return err
	}

	var artifacts service.ArtifactStore
	if publish {
		artifacts, err = app.artifactStore(ctx)
		if err != nil {
			return err
		}
	}

	svc := service.NewWorkflowService(generator, artifacts)
	html, err := svc.Diagram(ctx, content)
	if err != nil {
		return err
	}

	var downloadURL string
	if publish {
		downloadURL, err = svc.Publish(ctx, videoID, html)
		if err != nil {
			return err
		}
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	}

	if outputJSON {
		result := map[string]string{"video_id": videoID}
		if outPath != "" {
			result["path"] = outPath
		}
		if downloadURL != "" {
			result["url"] = downloadURL
		}
		if outPath == "" {
			result["html"] = html
		}
		return printJSON(result)
	}

	switch {
	case outPath != "":
		fmt.Printf("Wrote workflow diagram to %s\n", outPath)
	default:
		fmt.Println(html)
	}
	if downloadURL != "" {
		fmt.Printf("Published: %s\n", downloadURL)
	}
	return nil
}
