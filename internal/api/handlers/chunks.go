package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/domain"
	"github.com/tmls-media/vidrag/internal/service"
)

// Indexer builds and inspects the embedded chunk collection for a video.
type Indexer interface {
	Build(ctx context.Context, videoID string, src service.Source) ([]domain.EmbeddedChunk, error)
	Stats(videoID string) (*service.ChunkStats, error)
}

type ChunkHandler struct {
	indexer Indexer
	meta    MetadataService
}

func NewChunkHandler(indexer Indexer, meta MetadataService) *ChunkHandler {
	return &ChunkHandler{indexer: indexer, meta: meta}
}

type BuildRequest struct {
	// Transcript carries timed caption segments when available. When absent
	// the video's metadata text is segmented instead.
	Transcript []domain.TranscriptSegment `json:"transcript,omitempty"`
}

type BuildResponse struct {
	VideoID string `json:"video_id"`
	Chunks  int    `json:"chunks"`
}

// Build replaces the stored chunk collection for a video.
func (h *ChunkHandler) Build(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		api.Error(w, http.StatusBadRequest, "video id is required")
		return
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	src := service.Source{Segments: req.Transcript}
	if len(src.Segments) == 0 {
		if h.meta == nil {
			api.Error(w, http.StatusBadRequest, "transcript is required when no metadata source is configured")
			return
		}
		content, err := h.meta.VideoContent(r.Context(), videoID)
		if err != nil {
			api.HandleError(w, err)
			return
		}
		src.Content = content
	}

	embedded, err := h.indexer.Build(r.Context(), videoID, src)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, BuildResponse{VideoID: videoID, Chunks: len(embedded)})
}

// Stats reports on the stored chunk collection without touching the source.
func (h *ChunkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		api.Error(w, http.StatusBadRequest, "video id is required")
		return
	}

	stats, err := h.indexer.Stats(videoID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, stats)
}
