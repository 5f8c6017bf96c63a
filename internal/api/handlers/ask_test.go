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

func TestAskHandler_Ask_Success(t *testing.T) {
	mockSvc := new(MockAnswerer)
	handler := NewAskHandler(mockSvc)

	answer := &service.Answer{
		Text:    "It covers vector search.",
		Context: "[0.00–30.00] intro",
		Sources: []domain.SimilarityResult{
			{
				Score: 0.91,
				Chunk: domain.EmbeddedChunk{
					Chunk: domain.Chunk{Kind: domain.ChunkKindTimed, Start: 0, End: 30, Text: "intro"},
				},
			},
		},
	}
	mockSvc.On("Answer", mock.Anything, "vid1", "what is this about?").Return(answer, nil)

	body := `{"question":"what is this about?"}`
	req := requestWithVideoID(http.MethodPost, "/videos/vid1/ask", "vid1", body)
	w := httptest.NewRecorder()

	handler.Ask(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data AskResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "It covers vector search.", result.Data.Answer)
	require.Len(t, result.Data.Sources, 1)
	assert.Equal(t, "timed", result.Data.Sources[0].Kind)
	assert.Equal(t, 0.91, result.Data.Sources[0].Score)
	assert.Equal(t, "[0.00–30.00]", result.Data.Sources[0].Label)
	mockSvc.AssertExpectations(t)
}

func TestAskHandler_Ask_MissingQuestion(t *testing.T) {
	handler := NewAskHandler(new(MockAnswerer))

	req := requestWithVideoID(http.MethodPost, "/videos/vid1/ask", "vid1", "{}")
	w := httptest.NewRecorder()

	handler.Ask(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskHandler_Ask_InvalidBody(t *testing.T) {
	handler := NewAskHandler(new(MockAnswerer))

	req := requestWithVideoID(http.MethodPost, "/videos/vid1/ask", "vid1", "{not json")
	w := httptest.NewRecorder()

	handler.Ask(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskHandler_Ask_EmbeddingsNotBuilt(t *testing.T) {
	mockSvc := new(MockAnswerer)
	handler := NewAskHandler(mockSvc)

	mockSvc.On("Answer", mock.Anything, "vid1", "anything?").Return(nil, domain.ErrEmbeddingsNotFound)

	body := `{"question":"anything?"}`
	req := requestWithVideoID(http.MethodPost, "/videos/vid1/ask", "vid1", body)
	w := httptest.NewRecorder()

	handler.Ask(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
