package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/domain"
)

func TestVideoHandler_Resolve_Success(t *testing.T) {
	mockMeta := new(MockMetadataService)
	handler := NewVideoHandler(mockMeta)

	mockMeta.On("VideoContent", mock.Anything, "abc123").Return(newTestContent(), nil)

	body := `{"url":"https://www.youtube.com/watch?v=abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data ResolveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "abc123", result.Data.VideoID)
	assert.Equal(t, "Scaling Vector Search", result.Data.Title)
	assert.Equal(t, "TMLS", result.Data.Channel)
	mockMeta.AssertExpectations(t)
}

func TestVideoHandler_Resolve_NoMetadataSource(t *testing.T) {
	handler := NewVideoHandler(nil)

	body := `{"url":"https://youtu.be/abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data ResolveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "abc123", result.Data.VideoID)
	assert.Empty(t, result.Data.Title)
}

func TestVideoHandler_Resolve_InvalidBody(t *testing.T) {
	handler := NewVideoHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoHandler_Resolve_MissingURL(t *testing.T) {
	handler := NewVideoHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader("{}"))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, result.Error, "url is required")
}

func TestVideoHandler_Resolve_UnparseableURL(t *testing.T) {
	handler := NewVideoHandler(nil)

	body := `{"url":"https://example.com/not-a-video"}`
	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoHandler_Resolve_VideoNotFound(t *testing.T) {
	mockMeta := new(MockMetadataService)
	handler := NewVideoHandler(mockMeta)

	mockMeta.On("VideoContent", mock.Anything, "gone404").Return(nil, domain.ErrVideoNotFound)

	body := `{"url":"https://youtu.be/gone404"}`
	req := httptest.NewRequest(http.MethodPost, "/videos/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Resolve(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
