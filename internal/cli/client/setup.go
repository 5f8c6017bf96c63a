package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/tmls-media/vidrag/internal/anthropic"
	"github.com/tmls-media/vidrag/internal/config"
	"github.com/tmls-media/vidrag/internal/openai"
	"github.com/tmls-media/vidrag/internal/service"
	"github.com/tmls-media/vidrag/internal/storage"
	"github.com/tmls-media/vidrag/internal/store"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// app bundles the configuration and store every command starts from. API
// clients are constructed on demand so commands that never touch a provider
// work without its key.
type app struct {
	cfg   *config.Config
	store *store.EmbeddingStore
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:   cfg,
		store: store.NewEmbeddingStore(cfg.DataDir),
	}, nil
}

func (a *app) metadataClient() (*youtube.Client, error) {
	return youtube.NewClient(a.cfg.YouTubeAPIKey, "")
}

func (a *app) openAIClient() (*openai.Client, error) {
	if !a.cfg.HasOpenAI() {
		return nil, openai.ErrNoAPIKey
	}
	return openai.NewClientWithConfig(openai.Config{
		APIKey:         a.cfg.OpenAIAPIKey,
		EmbeddingModel: goopenai.EmbeddingModel(a.cfg.EmbeddingModel),
		ChatModel:      a.cfg.ChatModel,
	}), nil
}

// diagramClient prefers the Anthropic model the workflow prompt was tuned on
// and falls back to the OpenAI chat model.
func (a *app) diagramClient() (service.GenerationClient, error) {
	if a.cfg.HasAnthropic() {
		return anthropic.NewClient(anthropic.Config{APIKey: a.cfg.AnthropicAPIKey})
	}
	return a.openAIClient()
}

func (a *app) artifactStore(ctx context.Context) (service.ArtifactStore, error) {
	if !a.cfg.HasS3() {
		return nil, nil
	}

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        a.cfg.S3Endpoint,
		Region:          a.cfg.S3Region,
		AccessKeyID:     a.cfg.S3AccessKey,
		SecretAccessKey: a.cfg.S3SecretKey,
		Bucket:          a.cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure S3 bucket: %w", err)
	}
	return s3Client, nil
}

func (a *app) segmenterConfig() service.SegmenterConfig {
	return service.SegmenterConfig{ChunkDuration: a.cfg.ChunkDuration}
}

// resolveVideoID accepts either a full video URL or a bare video ID.
func resolveVideoID(arg string) (string, error) {
	if strings.Contains(arg, "://") || strings.Contains(arg, "youtu") {
		return youtube.ParseVideoID(arg)
	}
	return arg, nil
}

func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
