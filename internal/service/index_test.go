package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/store"
)

func TestIndexService_BuildFromTranscript(t *testing.T) {
	embedding := new(MockEmbeddingClient)
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(embedding, chunkStore)

	embedding.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1, 2, 3}, nil)
	chunkStore.On("Write", "vid1", store.TierLarge, mock.Anything).Return(nil)

	src := Source{Segments: []domain.TranscriptSegment{
		{Start: 0, Duration: 15, Text: "first half"},
		{Start: 15, Duration: 15, Text: "second half"},
		{Start: 30, Duration: 5, Text: "coda"},
	}}

	embedded, err := svc.Build(context.Background(), "vid1", src)
	require.NoError(t, err)
	require.Len(t, embedded, 2)
	assert.Equal(t, domain.ChunkKindTimed, embedded[0].Kind)
	assert.Equal(t, []float32{1, 2, 3}, embedded[0].Embedding)

	chunkStore.AssertCalled(t, "Write", "vid1", store.TierLarge, embedded)
}

func TestIndexService_BuildFromContent(t *testing.T) {
	embedding := new(MockEmbeddingClient)
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(embedding, chunkStore)

	embedding.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1}, nil)
	chunkStore.On("Write", "vid1", store.TierLarge, mock.Anything).Return(nil)

	embedded, err := svc.Build(context.Background(), "vid1", Source{Content: sampleContent()})
	require.NoError(t, err)
	require.NotEmpty(t, embedded)
	assert.Equal(t, domain.ChunkKindSection, embedded[0].Kind)
}

func TestIndexService_BuildTranscriptWinsOverContent(t *testing.T) {
	embedding := new(MockEmbeddingClient)
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(embedding, chunkStore)

	embedding.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1}, nil)
	chunkStore.On("Write", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	src := Source{
		Segments: []domain.TranscriptSegment{{Start: 0, Duration: 10, Text: "caption text"}},
		Content:  sampleContent(),
	}

	embedded, err := svc.Build(context.Background(), "vid1", src)
	require.NoError(t, err)
	require.Len(t, embedded, 1)
	assert.Equal(t, domain.ChunkKindTimed, embedded[0].Kind)
	assert.Equal(t, "caption text", embedded[0].Text)
}

func TestIndexService_BuildEmptySource(t *testing.T) {
	svc := NewIndexService(new(MockEmbeddingClient), new(MockChunkStore))

	_, err := svc.Build(context.Background(), "vid1", Source{})
	assert.ErrorIs(t, err, domain.ErrNoContent)
}

func TestIndexService_BuildEmptyVideoID(t *testing.T) {
	svc := NewIndexService(new(MockEmbeddingClient), new(MockChunkStore))

	_, err := svc.Build(context.Background(), "", Source{Content: sampleContent()})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestIndexService_BuildEmbeddingFailureWritesNothing(t *testing.T) {
	embedding := new(MockEmbeddingClient)
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(embedding, chunkStore)

	embedding.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	src := Source{Segments: []domain.TranscriptSegment{{Start: 0, Duration: 10, Text: "caption"}}}
	_, err := svc.Build(context.Background(), "vid1", src)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	chunkStore.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexService_BuildStoreFailurePropagates(t *testing.T) {
	embedding := new(MockEmbeddingClient)
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(embedding, chunkStore)

	embedding.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1}, nil)
	chunkStore.On("Write", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	src := Source{Segments: []domain.TranscriptSegment{{Start: 0, Duration: 10, Text: "caption"}}}
	_, err := svc.Build(context.Background(), "vid1", src)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIndexService_Stats(t *testing.T) {
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(new(MockEmbeddingClient), chunkStore)

	chunks := []domain.EmbeddedChunk{
		{Chunk: domain.Chunk{Kind: domain.ChunkKindTimed, Start: 0, End: 30, Text: "one two three"}, Embedding: []float32{1}},
		{Chunk: domain.Chunk{Kind: domain.ChunkKindTimed, Start: 30, End: 70, Text: "four five six seven eight"}, Embedding: []float32{1}},
	}
	chunkStore.On("Read", "vid1").Return(chunks, "large", nil)

	stats, err := svc.Stats("vid1")
	require.NoError(t, err)

	assert.Equal(t, "large", stats.Tier)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 4.0, stats.AvgWords, 1e-9)
	assert.InDelta(t, 35.0, stats.AvgDuration, 1e-9)
	assert.Equal(t, 3, stats.MinWords)
	assert.Equal(t, 5, stats.MaxWords)
	require.Len(t, stats.Samples, 2)
	assert.Equal(t, "one two three", stats.Samples[0].Text)
}

func TestIndexService_StatsTruncatesSamples(t *testing.T) {
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(new(MockEmbeddingClient), chunkStore)

	long := nWords(60)
	chunks := make([]domain.EmbeddedChunk, 5)
	for i := range chunks {
		chunks[i] = domain.EmbeddedChunk{
			Chunk:     domain.Chunk{Kind: domain.ChunkKindSection, Start: float64(i) * 30, End: float64(i+1) * 30, Text: long},
			Embedding: []float32{1},
		}
	}
	chunkStore.On("Read", "vid1").Return(chunks, "default", nil)

	stats, err := svc.Stats("vid1")
	require.NoError(t, err)

	require.Len(t, stats.Samples, 3)
	assert.Len(t, stats.Samples[0].Text, 103) // 100 chars + "..."
}

func TestIndexService_StatsMissingStore(t *testing.T) {
	chunkStore := new(MockChunkStore)
	svc := NewIndexService(new(MockEmbeddingClient), chunkStore)

	chunkStore.On("Read", "unknown").Return(nil, "", domain.ErrEmbeddingsNotFound)

	_, err := svc.Stats("unknown")
	assert.ErrorIs(t, err, domain.ErrEmbeddingsNotFound)
}
