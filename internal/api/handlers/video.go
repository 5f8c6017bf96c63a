package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/youtube"
)

// MetadataService fetches video metadata from the content source.
type MetadataService interface {
	VideoContent(ctx context.Context, videoID string) (*domain.VideoContent, error)
}

type VideoHandler struct {
	meta MetadataService
}

// NewVideoHandler creates a video handler. meta may be nil when no content
// source API key is configured; Resolve then returns only the parsed ID.
func NewVideoHandler(meta MetadataService) *VideoHandler {
	return &VideoHandler{meta: meta}
}

type ResolveRequest struct {
	URL string `json:"url"`
}

type ResolveResponse struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title,omitempty"`
	Channel   string `json:"channel,omitempty"`
	Published string `json:"published,omitempty"`
	ViewCount string `json:"view_count,omitempty"`
}

// Resolve parses a video URL into its ID and, when a metadata source is
// configured, enriches the response with the video's snippet.
func (h *VideoHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		api.Error(w, http.StatusBadRequest, "url is required")
		return
	}

	videoID, err := youtube.ParseVideoID(req.URL)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := ResolveResponse{VideoID: videoID}

	if h.meta != nil {
		content, err := h.meta.VideoContent(r.Context(), videoID)
		if err != nil {
			api.HandleError(w, err)
			return
		}
		resp.Title = content.Title
		resp.Channel = content.Channel
		resp.Published = content.Published
		resp.ViewCount = content.ViewCount
	}

	api.Success(w, http.StatusOK, resp)
}
