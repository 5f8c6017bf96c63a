package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmls-media/vidrag/internal/domain"
)

// ArtifactStore defines the interface for publishing generated artifacts
type ArtifactStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	DownloadURL(ctx context.Context, key string) (string, error)
}

// WorkflowService generates a self-contained workflow infographic HTML page
// from a video's content and optionally publishes it to object storage.
type WorkflowService struct {
	generator GenerationClient
	artifacts ArtifactStore
}

// NewWorkflowService creates a new WorkflowService instance. artifacts may be
// nil when no object storage is configured; Publish then fails with a clear
// error.
func NewWorkflowService(generator GenerationClient, artifacts ArtifactStore) *WorkflowService {
	return &WorkflowService{generator: generator, artifacts: artifacts}
}

// Diagram generates the infographic HTML. The model occasionally wraps output
// in markdown fences or drops the doctype; both are repaired here.
func (s *WorkflowService) Diagram(ctx context.Context, content *domain.VideoContent) (string, error) {
	html, err := s.generator.GenerateText(ctx, workflowPrompt(content), 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate workflow diagram: %w", err)
	}

	return cleanWorkflowHTML(html), nil
}

func cleanWorkflowHTML(html string) string {
	if strings.HasPrefix(html, "```html") {
		html = strings.ReplaceAll(html, "```html", "")
		html = strings.ReplaceAll(html, "```", "")
	}

	html = strings.TrimSpace(html)
	if !strings.HasPrefix(html, "<!DOCTYPE html>") && strings.HasPrefix(html, "<html>") {
		html = "<!DOCTYPE html>\n" + html
	}

	return html
}

// Publish uploads the rendered HTML and returns a presigned download URL.
func (s *WorkflowService) Publish(ctx context.Context, videoID, html string) (string, error) {
	if s.artifacts == nil {
		return "", domain.NewDomainError(domain.ErrCodeValidation, "artifact storage not configured")
	}

	key := fmt.Sprintf("workflow_%s.html", videoID)
	if err := s.artifacts.Upload(ctx, key, "text/html", []byte(html)); err != nil {
		return "", fmt.Errorf("failed to upload workflow artifact: %w", err)
	}

	url, err := s.artifacts.DownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to presign workflow artifact: %w", err)
	}

	return url, nil
}

func workflowPrompt(content *domain.VideoContent) string {
	return fmt.Sprintf(`You are an expert workflow visualization designer. Create an interactive HTML workflow diagram based on this video content. Create a complete, self-contained HTML workflow diagram. The output must be a COMPLETE HTML document that starts with <!DOCTYPE html> and ends with </html>. Do not wrap in `+"```html```"+` or any other formatting.

Create a single-frame technical infographic in the style of professional software architecture diagrams with modern AI/ML visualization aesthetics.

CANVAS SPECIFICATIONS:
- Size: 1200x1200px (square format for LinkedIn)
- Background: Clean white with subtle gradient overlay OR dark navy/purple gradient (based on content type)
- Margins: 60px on all sides for breathing room

VISUAL STYLE REQUIREMENTS:
- Professional software documentation style with modern AI/ML touches
- Professional color scheme (teals, blues, purples)
- Typography hierarchy: main title 42-48px with gradient text effect, section titles 20-24px, process labels 12-16px, code text 10-12px monospace

LAYOUT OPTIONS (pick the best fit for the content):
- Split comparison layout (45%% | 10%% | 45%%) for old-vs-new method content
- Top-to-bottom process flow with 3-4 major sections for pipelines
- Layered architecture diagram with labeled data flow for system content
- Numbered step-by-step sections (4-6 steps) for methodology content

COMPONENT SPECIFICATIONS:
- Section containers: subtle colored tint, 2-3px colored border, rounded corners, generous padding
- Process boxes with colored borders, subtle shadows, and connection arrows with arrowheads
- Code blocks on dark backgrounds with syntax-highlight colors where technical detail helps
- Metrics and performance indicators in badge-style callouts

use the information below to create, do not output
Video Title: %s
Channel: %s
Content: %s

Design Requirements:
- Professional software architecture diagram style
- Modern AI/ML visualization aesthetics
- Square format (1200x1200px) for LinkedIn
- Clean layout with proper spacing
- Clear workflow steps with arrows
- Technical details in code blocks where relevant
- Metrics and performance indicators
- Modern gradient backgrounds
- Complete HTML with embedded CSS

Output only the complete HTML code starting with <!DOCTYPE html>
`, content.Title, content.Channel, content.FullText())
}
