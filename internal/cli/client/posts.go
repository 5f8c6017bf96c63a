package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/service"
)

// PostsCmd creates the posts command group.
func PostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Generate LinkedIn posts from video metadata",
	}

	cmd.AddCommand(postsSocialCmd())
	cmd.AddCommand(postsTemplatesCmd())

	return cmd
}

func postsSocialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social <url>",
		Short: "Generate the announcement-style post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runPostsSocial(cmd.Context(), args[0], outputJSON)
		},
	}

	return cmd
}

func runPostsSocial(ctx context.Context, rawURL string, outputJSON bool) error {
	svc, content, err := postService(ctx, rawURL)
	if err != nil {
		return err
	}

	post, err := svc.SocialPost(ctx, content, rawURL)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]string{"post": post})
	}
	fmt.Println(post)
	return nil
}

func postsTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates <url>",
		Short: "Generate every viral template variation",
		Long: `Generates all five viral post templates plus a pinned comment and hashtag
suggestions. Per-template failures are reported inline without aborting the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runPostsTemplates(cmd.Context(), args[0], outputJSON)
		},
	}

	return cmd
}

func runPostsTemplates(ctx context.Context, rawURL string, outputJSON bool) error {
	svc, content, err := postService(ctx, rawURL)
	if err != nil {
		return err
	}

	batch, err := svc.AllTemplatePosts(ctx, content, rawURL)
	if err != nil {
		return err
	}

	if outputJSON {
		out := make([]map[string]string, len(batch.Posts))
		for i, post := range batch.Posts {
			out[i] = map[string]string{"name": string(post.Name), "text": post.Text}
			if post.Err != nil {
				out[i]["error"] = post.Err.Error()
			}
		}
		result := map[string]interface{}{
			"posts":          out,
			"pinned_comment": batch.PinnedComment,
			"hashtags":       batch.Hashtags,
		}
		if batch.PinnedErr != nil {
			result["pinned_comment_error"] = batch.PinnedErr.Error()
		}
		return printJSON(result)
	}

	for _, post := range batch.Posts {
		fmt.Printf("=== %s ===\n", post.Name)
		if post.Err != nil {
			fmt.Printf("generation failed: %v\n", post.Err)
		} else {
			fmt.Println(post.Text)
		}
		fmt.Println()
	}

	if batch.PinnedErr != nil {
		fmt.Printf("%s\nPinned comment generation failed: %v\n", strings.Repeat("-", 40), batch.PinnedErr)
	} else if batch.PinnedComment != "" {
		fmt.Printf("%s\nPinned comment:\n%s\n", strings.Repeat("-", 40), batch.PinnedComment)
	}
	fmt.Printf("%s\nHashtags: %s\n", strings.Repeat("-", 40), batch.Hashtags)
	return nil
}

// postService resolves the video behind rawURL and builds the generation
// service shared by the post commands.
func postService(ctx context.Context, rawURL string) (*service.PostService, *domain.VideoContent, error) {
	videoID, err := resolveVideoID(rawURL)
	if err != nil {
		return nil, nil, err
	}

	app, err := loadApp()
	if err != nil {
		return nil, nil, err
	}

	meta, err := app.metadataClient()
	if err != nil {
		return nil, nil, err
	}

	content, err := meta.VideoContent(ctx, videoID)
	if err != nil {
		return nil, nil, err
	}

	client, err := app.openAIClient()
	if err != nil {
		return nil, nil, err
	}

	return service.NewPostService(client), content, nil
}
