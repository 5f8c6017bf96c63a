package domain

import "fmt"

// VideoContent holds the metadata record returned by the content source for
// one video.
type VideoContent struct {
	VideoID     string
	Title       string
	Description string
	Channel     string
	Published   string
	ViewCount   string
}

// FullText builds the flat text blob used for metadata-derived chunking and
// for prompt context.
func (v *VideoContent) FullText() string {
	return fmt.Sprintf("Title: %s\n\nChannel: %s\n\nDescription: %s", v.Title, v.Channel, v.Description)
}

// ValidateVideoContent validates a VideoContent instance
func ValidateVideoContent(v *VideoContent) error {
	if v == nil {
		return fmt.Errorf("video content cannot be nil")
	}

	if v.VideoID == "" {
		return fmt.Errorf("video content VideoID is required")
	}

	if v.Title == "" && v.Description == "" {
		return ErrNoContent
	}

	return nil
}
