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

// PostGenerator produces marketing copy from video metadata.
type PostGenerator interface {
	SocialPost(ctx context.Context, content *domain.VideoContent, videoURL string) (string, error)
	DetailedSummary(ctx context.Context, content *domain.VideoContent) (string, error)
	AllTemplatePosts(ctx context.Context, content *domain.VideoContent, videoURL string) (*service.TemplateBatch, error)
}

type PostHandler struct {
	svc  PostGenerator
	meta MetadataService
}

func NewPostHandler(svc PostGenerator, meta MetadataService) *PostHandler {
	return &PostHandler{svc: svc, meta: meta}
}

type PostRequest struct {
	URL string `json:"url"`
}

type SocialPostResponse struct {
	Post string `json:"post"`
}

type TemplatePostResponse struct {
	Name  string `json:"name"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type TemplatePostsResponse struct {
	Posts         []TemplatePostResponse `json:"posts"`
	PinnedComment string                 `json:"pinned_comment,omitempty"`
	PinnedError   string                 `json:"pinned_comment_error,omitempty"`
	Hashtags      string                 `json:"hashtags"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

func (h *PostHandler) content(w http.ResponseWriter, r *http.Request) (*domain.VideoContent, bool) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		api.Error(w, http.StatusBadRequest, "video id is required")
		return nil, false
	}

	if h.meta == nil {
		api.Error(w, http.StatusBadRequest, "no metadata source is configured")
		return nil, false
	}

	content, err := h.meta.VideoContent(r.Context(), videoID)
	if err != nil {
		api.HandleError(w, err)
		return nil, false
	}

	return content, true
}

// SocialPost generates the announcement-style LinkedIn post.
func (h *PostHandler) SocialPost(w http.ResponseWriter, r *http.Request) {
	content, ok := h.content(w, r)
	if !ok {
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.svc.SocialPost(r.Context(), content, req.URL)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SocialPostResponse{Post: post})
}

// TemplatePosts generates every template variation plus the pinned comment
// and hashtags. Per-template failures are reported inline.
func (h *PostHandler) TemplatePosts(w http.ResponseWriter, r *http.Request) {
	content, ok := h.content(w, r)
	if !ok {
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch, err := h.svc.AllTemplatePosts(r.Context(), content, req.URL)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]TemplatePostResponse, len(batch.Posts))
	for i, post := range batch.Posts {
		responses[i] = TemplatePostResponse{Name: string(post.Name), Text: post.Text}
		if post.Err != nil {
			responses[i].Error = post.Err.Error()
		}
	}

	resp := TemplatePostsResponse{
		Posts:         responses,
		PinnedComment: batch.PinnedComment,
		Hashtags:      batch.Hashtags,
	}
	if batch.PinnedErr != nil {
		resp.PinnedError = batch.PinnedErr.Error()
	}

	api.Success(w, http.StatusOK, resp)
}

// Summary generates the structured long-form summary.
func (h *PostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	content, ok := h.content(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.DetailedSummary(r.Context(), content)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SummaryResponse{Summary: summary})
}
