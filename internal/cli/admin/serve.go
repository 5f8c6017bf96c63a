package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/tmls-media/vidrag/internal/anthropic"
	"github.com/tmls-media/vidrag/internal/api/handlers"
	"github.com/tmls-media/vidrag/internal/config"
	"github.com/tmls-media/vidrag/internal/openai"
	"github.com/tmls-media/vidrag/internal/server"
	"github.com/tmls-media/vidrag/internal/service"
	"github.com/tmls-media/vidrag/internal/storage"
	"github.com/tmls-media/vidrag/internal/store"
	"github.com/tmls-media/vidrag/internal/telemetry"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the vidrag API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	chunkStore := store.NewEmbeddingStore(cfg.DataDir)
	log.Printf("embedding store rooted at %s", cfg.DataDir)

	var meta handlers.MetadataService
	if cfg.HasYouTube() {
		ytClient, err := youtube.NewClient(cfg.YouTubeAPIKey, "")
		if err != nil {
			return fmt.Errorf("failed to create youtube client: %w", err)
		}
		meta = ytClient
		log.Println("youtube metadata source configured")
	}

	var embedding service.EmbeddingClient = &noOpEmbeddingClient{}
	var generator service.GenerationClient = &noOpGenerationClient{}
	if cfg.HasOpenAI() {
		client := openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: goopenai.EmbeddingModel(cfg.EmbeddingModel),
			ChatModel:      cfg.ChatModel,
		})
		embedding = client
		generator = client
	}

	// The workflow prompt was tuned on Claude; use it when a key is present.
	diagramGenerator := generator
	if cfg.HasAnthropic() {
		anthropicClient, err := anthropic.NewClient(anthropic.Config{APIKey: cfg.AnthropicAPIKey})
		if err != nil {
			return fmt.Errorf("failed to create anthropic client: %w", err)
		}
		diagramGenerator = anthropicClient
	}

	var artifacts service.ArtifactStore
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		artifacts = s3Client
	}

	indexSvc := service.NewIndexServiceWithConfig(embedding, chunkStore, service.SegmenterConfig{
		ChunkDuration: cfg.ChunkDuration,
	})
	answerSvc := service.NewAnswerService(embedding, generator, chunkStore)
	postSvc := service.NewPostService(generator)
	workflowSvc := service.NewWorkflowService(diagramGenerator, artifacts)

	routerCfg := server.RouterConfig{
		VideoHandler:    handlers.NewVideoHandler(meta),
		ChunkHandler:    handlers.NewChunkHandler(indexSvc, meta),
		AskHandler:      handlers.NewAskHandler(answerSvc),
		PostHandler:     handlers.NewPostHandler(postSvc, meta),
		WorkflowHandler: handlers.NewWorkflowHandler(workflowSvc, meta),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

type noOpEmbeddingClient struct{}

func (c *noOpEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embedding provider not configured: OPENAI_API_KEY required")
}

type noOpGenerationClient struct{}

func (c *noOpGenerationClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "", fmt.Errorf("generation provider not configured: OPENAI_API_KEY required")
}
