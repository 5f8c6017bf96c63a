package service

import (
	"context"
	"fmt"

	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/store"
	"github.com/tmls-media/vidrag/internal/telemetry"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkStore defines the persistence interface for embedded chunks
type ChunkStore interface {
	Write(videoID string, tier store.Tier, chunks []domain.EmbeddedChunk) error
	Read(videoID string) ([]domain.EmbeddedChunk, store.Tier, error)
}

// Source is the text input for one video: a timed transcript when captions
// are available, otherwise the metadata record. The segmenter strategy is
// selected from its shape.
type Source struct {
	Segments []domain.TranscriptSegment
	Content  *domain.VideoContent
}

// IndexService builds and inspects the embedded chunk collection for a video.
type IndexService struct {
	client EmbeddingClient
	store  ChunkStore
	cfg    SegmenterConfig
}

// NewIndexService creates a new IndexService instance
func NewIndexService(client EmbeddingClient, chunkStore ChunkStore) *IndexService {
	return NewIndexServiceWithConfig(client, chunkStore, DefaultSegmenterConfig())
}

func NewIndexServiceWithConfig(client EmbeddingClient, chunkStore ChunkStore, cfg SegmenterConfig) *IndexService {
	return &IndexService{
		client: client,
		store:  chunkStore,
		cfg:    cfg.withDefaults(),
	}
}

// Build is the one-shot batch operation: segment the source, embed every
// chunk, and replace the stored collection for the video's large tier. The
// batch runs to completion or fails outright; a failed run writes nothing.
func (s *IndexService) Build(ctx context.Context, videoID string, src Source) ([]domain.EmbeddedChunk, error) {
	if videoID == "" {
		return nil, domain.ErrMissingRequiredField
	}

	ctx, span := telemetry.StartSpan(ctx, "IndexService.Build", telemetry.SpanAttributes{
		VideoID:   videoID,
		Operation: "build",
	})
	defer span.End()

	chunks := s.segment(src)
	if len(chunks) == 0 {
		return nil, domain.ErrNoContent
	}

	embedded := make([]domain.EmbeddedChunk, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.client.GenerateEmbedding(ctx, chunk.Text)
		if err != nil {
			span.SetError(err)
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		embedded = append(embedded, domain.EmbeddedChunk{Chunk: chunk, Embedding: embedding})
	}

	if err := s.store.Write(videoID, store.TierLarge, embedded); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to store chunks: %w", err)
	}

	return embedded, nil
}

func (s *IndexService) segment(src Source) []domain.Chunk {
	if len(src.Segments) > 0 {
		return NewTranscriptSegmenter(src.Segments, s.cfg).Segment()
	}
	if src.Content != nil {
		return NewContentSegmenter(src.Content.FullText(), s.cfg).Segment()
	}
	return nil
}

// ChunkSample is a preview of one stored chunk.
type ChunkSample struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
	Words int     `json:"words"`
}

// ChunkStats summarizes the stored chunk collection for a video.
type ChunkStats struct {
	Tier        string        `json:"tier"`
	Count       int           `json:"count"`
	AvgWords    float64       `json:"avg_words"`
	AvgDuration float64       `json:"avg_duration"`
	MinWords    int           `json:"min_words"`
	MaxWords    int           `json:"max_words"`
	Samples     []ChunkSample `json:"samples"`
}

const statsSampleCount = 3
const statsSampleChars = 100

// Stats inspects the stored collection for a video without re-reading the
// content source.
func (s *IndexService) Stats(videoID string) (*ChunkStats, error) {
	chunks, tier, err := s.store.Read(videoID)
	if err != nil {
		return nil, err
	}

	stats := &ChunkStats{Tier: string(tier), Count: len(chunks)}

	var totalWords int
	var totalDuration float64
	for i, chunk := range chunks {
		words := chunk.WordCount()
		totalWords += words
		totalDuration += chunk.Duration()
		if i == 0 || words < stats.MinWords {
			stats.MinWords = words
		}
		if words > stats.MaxWords {
			stats.MaxWords = words
		}
	}
	if len(chunks) > 0 {
		stats.AvgWords = float64(totalWords) / float64(len(chunks))
		stats.AvgDuration = totalDuration / float64(len(chunks))
	}

	for i := 0; i < len(chunks) && i < statsSampleCount; i++ {
		text := chunks[i].Text
		if len(text) > statsSampleChars {
			text = text[:statsSampleChars] + "..."
		}
		stats.Samples = append(stats.Samples, ChunkSample{
			Start: chunks[i].Start,
			Text:  text,
			Words: chunks[i].WordCount(),
		})
	}

	return stats, nil
}
