package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/service"
)

// Answerer answers questions grounded on a video's stored chunks.
type Answerer interface {
	Answer(ctx context.Context, videoID, question string) (*service.Answer, error)
}

type AskHandler struct {
	svc Answerer
}

func NewAskHandler(svc Answerer) *AskHandler {
	return &AskHandler{svc: svc}
}

type AskRequest struct {
	Question string `json:"question"`
}

type SourceResponse struct {
	Score float64 `json:"score"`
	Kind  string  `json:"kind"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Label string  `json:"label"`
}

type AskResponse struct {
	Answer  string           `json:"answer"`
	Context string           `json:"context"`
	Sources []SourceResponse `json:"sources"`
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		api.Error(w, http.StatusBadRequest, "video id is required")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.svc.Answer(r.Context(), videoID, req.Question)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	sources := make([]SourceResponse, len(answer.Sources))
	for i, src := range answer.Sources {
		sources[i] = SourceResponse{
			Score: src.Score,
			Kind:  string(src.Chunk.Kind),
			Start: src.Chunk.Start,
			End:   src.Chunk.End,
			Text:  src.Chunk.Text,
			Label: service.PositionLabel(src.Chunk.Chunk),
		}
	}

	api.Success(w, http.StatusOK, AskResponse{
		Answer:  answer.Text,
		Context: answer.Context,
		Sources: sources,
	})
}
