package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tmls-media/vidrag/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ErrNoAPIKey is returned when the YouTube Data API key is not set
var ErrNoAPIKey = errors.New("YOUTUBE_API_KEY environment variable not set")

// ParseVideoID extracts the video ID from any YouTube URL. It reads the `v`
// query parameter first and falls back to youtu.be short links.
func ParseVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err == nil {
		if id := parsed.Query().Get("v"); id != "" {
			return id, nil
		}
	}

	if idx := strings.Index(rawURL, "youtu.be/"); idx >= 0 {
		id := rawURL[idx+len("youtu.be/"):]
		if cut := strings.IndexAny(id, "?&/"); cut >= 0 {
			id = id[:cut]
		}
		if id != "" {
			return id, nil
		}
	}

	return "", domain.ErrInvalidVideoURL
}

// Client fetches video metadata from the YouTube Data API v3.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates a Data API client. baseURL is overridable for tests; pass
// empty for the real endpoint.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}, nil
}

type videoListResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// VideoContent fetches the snippet and statistics for one video. A missing or
// private video is reported as domain.ErrVideoNotFound.
func (c *Client) VideoContent(ctx context.Context, videoID string) (*domain.VideoContent, error) {
	if videoID == "" {
		return nil, domain.ErrMissingRequiredField
	}

	var result videoListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,statistics",
			"id":   videoID,
			"key":  c.apiKey,
		}).
		SetResult(&result).
		Get("/videos")
	if err != nil {
		return nil, fmt.Errorf("youtube API request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube API returned status %d", resp.StatusCode())
	}

	if len(result.Items) == 0 {
		return nil, domain.ErrVideoNotFound
	}

	item := result.Items[0]
	viewCount := item.Statistics.ViewCount
	if viewCount == "" {
		viewCount = "N/A"
	}

	content := &domain.VideoContent{
		VideoID:     videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Channel:     item.Snippet.ChannelTitle,
		Published:   item.Snippet.PublishedAt,
		ViewCount:   viewCount,
	}

	if err := domain.ValidateVideoContent(content); err != nil {
		return nil, err
	}

	return content, nil
}
