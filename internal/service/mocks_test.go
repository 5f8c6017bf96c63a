package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/store"
)

type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

type MockChunkStore struct {
	mock.Mock
}

func (m *MockChunkStore) Write(videoID string, tier store.Tier, chunks []domain.EmbeddedChunk) error {
	args := m.Called(videoID, tier, chunks)
	return args.Error(0)
}

func (m *MockChunkStore) Read(videoID string) ([]domain.EmbeddedChunk, store.Tier, error) {
	args := m.Called(videoID)
	if args.Get(0) == nil {
		return nil, store.Tier(args.String(1)), args.Error(2)
	}
	return args.Get(0).([]domain.EmbeddedChunk), store.Tier(args.String(1)), args.Error(2)
}

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Upload(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockArtifactStore) DownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func sampleContent() *domain.VideoContent {
	return &domain.VideoContent{
		VideoID:     "vid1",
		Title:       "Scaling Vector Search",
		Description: "A talk about embedding pipelines and retrieval quality.",
		Channel:     "TMLS",
		Published:   "2024-06-01T00:00:00Z",
		ViewCount:   "1234",
	}
}
