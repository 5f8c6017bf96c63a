package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/service"
)

func TestChunkHandler_Build_FromTranscript(t *testing.T) {
	mockIndexer := new(MockIndexer)
	handler := NewChunkHandler(mockIndexer, nil)

	embedded := []domain.EmbeddedChunk{
		{Chunk: domain.Chunk{Kind: domain.ChunkKindTimed, Start: 0, End: 30, Text: "a"}},
		{Chunk: domain.Chunk{Kind: domain.ChunkKindTimed, Start: 30, End: 60, Text: "b"}},
	}
	mockIndexer.On("Build", mock.Anything, "vid1", mock.MatchedBy(func(src service.Source) bool {
		return len(src.Segments) == 1 && src.Content == nil
	})).Return(embedded, nil)

	body := `{"transcript":[{"start":0,"duration":4,"text":"hello"}]}`
	req := requestWithVideoID(http.MethodPost, "/videos/vid1/chunks", "vid1", body)
	w := httptest.NewRecorder()

	handler.Build(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result struct {
		Data BuildResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "vid1", result.Data.VideoID)
	assert.Equal(t, 2, result.Data.Chunks)
	mockIndexer.AssertExpectations(t)
}

func TestChunkHandler_Build_FallsBackToMetadata(t *testing.T) {
	mockIndexer := new(MockIndexer)
	mockMeta := new(MockMetadataService)
	handler := NewChunkHandler(mockIndexer, mockMeta)

	content := newTestContent()
	mockMeta.On("VideoContent", mock.Anything, "vid1").Return(content, nil)
	mockIndexer.On("Build", mock.Anything, "vid1", mock.MatchedBy(func(src service.Source) bool {
		return len(src.Segments) == 0 && src.Content == content
	})).Return([]domain.EmbeddedChunk{{}}, nil)

	req := requestWithVideoID(http.MethodPost, "/videos/vid1/chunks", "vid1", "{}")
	w := httptest.NewRecorder()

	handler.Build(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockMeta.AssertExpectations(t)
	mockIndexer.AssertExpectations(t)
}

func TestChunkHandler_Build_NoTranscriptNoMetadata(t *testing.T) {
	handler := NewChunkHandler(new(MockIndexer), nil)

	req := requestWithVideoID(http.MethodPost, "/videos/vid1/chunks", "vid1", "{}")
	w := httptest.NewRecorder()

	handler.Build(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChunkHandler_Build_ServiceError(t *testing.T) {
	mockIndexer := new(MockIndexer)
	handler := NewChunkHandler(mockIndexer, nil)

	mockIndexer.On("Build", mock.Anything, "vid1", mock.Anything).Return(nil, domain.ErrEmbeddingFailed)

	body := `{"transcript":[{"start":0,"duration":4,"text":"hello"}]}`
	req := requestWithVideoID(http.MethodPost, "/videos/vid1/chunks", "vid1", body)
	w := httptest.NewRecorder()

	handler.Build(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestChunkHandler_Stats_Success(t *testing.T) {
	mockIndexer := new(MockIndexer)
	handler := NewChunkHandler(mockIndexer, nil)

	stats := &service.ChunkStats{Tier: "large", Count: 4, AvgWords: 80, MinWords: 50, MaxWords: 100}
	mockIndexer.On("Stats", "vid1").Return(stats, nil)

	req := requestWithVideoID(http.MethodGet, "/videos/vid1/chunks/stats", "vid1", "")
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data service.ChunkStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "large", result.Data.Tier)
	assert.Equal(t, 4, result.Data.Count)
}

func TestChunkHandler_Stats_NotBuilt(t *testing.T) {
	mockIndexer := new(MockIndexer)
	handler := NewChunkHandler(mockIndexer, nil)

	mockIndexer.On("Stats", "vid1").Return(nil, domain.ErrEmbeddingsNotFound)

	req := requestWithVideoID(http.MethodGet, "/videos/vid1/chunks/stats", "vid1", "")
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
