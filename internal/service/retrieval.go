package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/telemetry"
)

// GenerationClient defines the interface for text generation
type GenerationClient interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Answer is the result of one grounded question.
type Answer struct {
	Text    string
	Context string
	Sources []domain.SimilarityResult
}

// AnswerService answers free-text questions about a video by retrieving the
// most relevant stored chunks and grounding a generation call on them.
type AnswerService struct {
	embedding EmbeddingClient
	generator GenerationClient
	store     ChunkStore
	topK      int
}

// NewAnswerService creates a new AnswerService instance
func NewAnswerService(embedding EmbeddingClient, generator GenerationClient, chunkStore ChunkStore) *AnswerService {
	return &AnswerService{
		embedding: embedding,
		generator: generator,
		store:     chunkStore,
		topK:      DefaultTopK,
	}
}

// Answer resolves the stored chunks for videoID, retrieves the topK most
// similar to the question, and generates a grounded answer.
//
// A missing store surfaces as domain.ErrEmbeddingsNotFound so the caller can
// decide to run an explicit build; it never triggers a rebuild here, which
// would make every question pay the embed-all-chunks cost. Embedding and
// generation failures are propagated verbatim, with no retry.
func (s *AnswerService) Answer(ctx context.Context, videoID, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrMissingRequiredField
	}

	ctx, span := telemetry.StartSpan(ctx, "AnswerService.Answer", telemetry.SpanAttributes{
		VideoID:   videoID,
		Operation: "answer",
	})
	defer span.End()

	chunks, _, err := s.store.Read(videoID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	queryEmbedding, err := s.embedding.GenerateEmbedding(ctx, question)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	sources := Rank(queryEmbedding, chunks, s.topK)
	contextText := BuildContext(sources)

	answer, err := s.generator.GenerateText(ctx, answerPrompt(question, contextText), 0)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Answer{
		Text:    answer,
		Context: contextText,
		Sources: sources,
	}, nil
}

// BuildContext assembles the grounding context handed to the generation
// service: one labeled block per chunk in rank order, newline-joined.
func BuildContext(results []domain.SimilarityResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s %s", PositionLabel(r.Chunk.Chunk), r.Chunk.Text))
	}
	return strings.Join(parts, "\n")
}

// PositionLabel formats a chunk's position marker. Timed chunks are labeled
// with their second range; section chunks carry synthetic stride positions,
// so they are labeled as sections rather than timestamps.
func PositionLabel(c domain.Chunk) string {
	if c.Kind == domain.ChunkKindTimed {
		return fmt.Sprintf("[%.2f–%.2f]", c.Start, c.End)
	}
	return fmt.Sprintf("[Section %.0f–%.0f]", c.Start, c.End)
}

func answerPrompt(question, contextText string) string {
	return fmt.Sprintf(`You are an expert assistant. Answer the question using ONLY the following context (video content).

Question: %s

Context:
%s

Format it in an easy to understand manner
Answer:
`, question, contextText)
}

// FormatTimestamp converts seconds to MM:SS for display.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
