package domain

import (
	"fmt"
	"strings"
)

// ChunkKind distinguishes how a chunk's position markers should be read.
type ChunkKind string

const (
	// ChunkKindTimed marks chunks cut from a transcript; Start and End are
	// real playback seconds.
	ChunkKindTimed ChunkKind = "timed"
	// ChunkKindSection marks chunks cut from flat text (title + description);
	// Start and End are synthetic section boundaries at a fixed stride and
	// carry no temporal meaning.
	ChunkKindSection ChunkKind = "section"
)

// TranscriptSegment is one timed caption line from a video transcript.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Chunk is a contiguous span of source text with a position marker, the unit
// of retrieval.
type Chunk struct {
	Kind  ChunkKind
	Start float64
	End   float64
	Text  string
}

// WordCount returns the whitespace-split word count of the chunk text.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Text))
}

// Duration returns End - Start. For section chunks this is the stride, not a
// real duration.
func (c Chunk) Duration() float64 {
	return c.End - c.Start
}

// EmbeddedChunk is a Chunk plus its embedding vector. Dimensionality is fixed
// by the embedding model and constant within one store; a mismatch is a
// producer error and is not validated here.
type EmbeddedChunk struct {
	Chunk
	Embedding []float32
}

// SimilarityResult pairs an embedded chunk with its similarity score against
// one query. Produced transiently per query, never persisted.
type SimilarityResult struct {
	Score float64
	Chunk EmbeddedChunk
}

// ValidateChunk validates a Chunk instance
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}

	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("chunk text cannot be empty")
	}

	if c.End < c.Start {
		return fmt.Errorf("chunk end (%v) cannot precede start (%v)", c.End, c.Start)
	}

	if c.Kind != ChunkKindTimed && c.Kind != ChunkKindSection {
		return fmt.Errorf("chunk kind is invalid: %s", c.Kind)
	}

	return nil
}
