package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/domain"
)

// WorkflowGenerator renders and publishes the workflow infographic.
type WorkflowGenerator interface {
	Diagram(ctx context.Context, content *domain.VideoContent) (string, error)
	Publish(ctx context.Context, videoID, html string) (string, error)
}

type WorkflowHandler struct {
	svc  WorkflowGenerator
	meta MetadataService
}

func NewWorkflowHandler(svc WorkflowGenerator, meta MetadataService) *WorkflowHandler {
	return &WorkflowHandler{svc: svc, meta: meta}
}

type WorkflowRequest struct {
	// Publish uploads the rendered page to object storage and returns a
	// download URL alongside the HTML.
	Publish bool `json:"publish,omitempty"`
}

type WorkflowResponse struct {
	HTML string `json:"html"`
	URL  string `json:"url,omitempty"`
}

// Diagram generates the workflow infographic for a video.
func (h *WorkflowHandler) Diagram(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		api.Error(w, http.StatusBadRequest, "video id is required")
		return
	}

	if h.meta == nil {
		api.Error(w, http.StatusBadRequest, "no metadata source is configured")
		return
	}

	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := h.meta.VideoContent(r.Context(), videoID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	html, err := h.svc.Diagram(r.Context(), content)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := WorkflowResponse{HTML: html}

	if req.Publish {
		url, err := h.svc.Publish(r.Context(), videoID, html)
		if err != nil {
			api.HandleError(w, err)
			return
		}
		resp.URL = url
	}

	api.Success(w, http.StatusOK, resp)
}
