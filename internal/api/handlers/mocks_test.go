package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/service"
)

type MockMetadataService struct {
	mock.Mock
}

func (m *MockMetadataService) VideoContent(ctx context.Context, videoID string) (*domain.VideoContent, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoContent), args.Error(1)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) Build(ctx context.Context, videoID string, src service.Source) ([]domain.EmbeddedChunk, error) {
	args := m.Called(ctx, videoID, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmbeddedChunk), args.Error(1)
}

func (m *MockIndexer) Stats(videoID string) (*service.ChunkStats, error) {
	args := m.Called(videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChunkStats), args.Error(1)
}

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, videoID, question string) (*service.Answer, error) {
	args := m.Called(ctx, videoID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Answer), args.Error(1)
}

type MockPostGenerator struct {
	mock.Mock
}

func (m *MockPostGenerator) SocialPost(ctx context.Context, content *domain.VideoContent, videoURL string) (string, error) {
	args := m.Called(ctx, content, videoURL)
	return args.String(0), args.Error(1)
}

func (m *MockPostGenerator) DetailedSummary(ctx context.Context, content *domain.VideoContent) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockPostGenerator) AllTemplatePosts(ctx context.Context, content *domain.VideoContent, videoURL string) (*service.TemplateBatch, error) {
	args := m.Called(ctx, content, videoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TemplateBatch), args.Error(1)
}

type MockWorkflowGenerator struct {
	mock.Mock
}

func (m *MockWorkflowGenerator) Diagram(ctx context.Context, content *domain.VideoContent) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockWorkflowGenerator) Publish(ctx context.Context, videoID, html string) (string, error) {
	args := m.Called(ctx, videoID, html)
	return args.String(0), args.Error(1)
}

func newTestContent() *domain.VideoContent {
	return &domain.VideoContent{
		VideoID:     "vid1",
		Title:       "Scaling Vector Search",
		Description: "A talk about retrieval.",
		Channel:     "TMLS",
		Published:   "2024-06-01T00:00:00Z",
		ViewCount:   "1234",
	}
}

func requestWithVideoID(method, url, videoID string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, strings.NewReader("{}"))
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", videoID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
