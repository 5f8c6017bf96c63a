package service

import (
	"regexp"
	"strings"

	"github.com/tmls-media/vidrag/internal/domain"
)

// SegmenterConfig controls how source text is cut into retrieval chunks.
type SegmenterConfig struct {
	// ChunkDuration closes a transcript chunk once it spans this many
	// seconds; for flat text it is the synthetic section stride.
	ChunkDuration float64
	// TranscriptMaxWords closes a transcript chunk once it accumulates this
	// many words, whichever of the two thresholds fires first.
	TranscriptMaxWords int
	// ContentMaxWords closes a flat-text chunk once it accumulates this many
	// words.
	ContentMaxWords int
}

// DefaultSegmenterConfig provides sane defaults for chunking.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		ChunkDuration:      30,
		TranscriptMaxWords: 100,
		ContentMaxWords:    50,
	}
}

func (cfg SegmenterConfig) withDefaults() SegmenterConfig {
	def := DefaultSegmenterConfig()
	if cfg.ChunkDuration <= 0 {
		cfg.ChunkDuration = def.ChunkDuration
	}
	if cfg.TranscriptMaxWords <= 0 {
		cfg.TranscriptMaxWords = def.TranscriptMaxWords
	}
	if cfg.ContentMaxWords <= 0 {
		cfg.ContentMaxWords = def.ContentMaxWords
	}
	return cfg
}

// Segmenter produces the ordered chunk sequence for one video's text.
// Implementations are strategies over the two source shapes: timed transcript
// segments and a flat metadata blob.
type Segmenter interface {
	Segment() []domain.Chunk
}

// TranscriptSegmenter cuts timed caption segments into chunks. A chunk closes
// when it spans ChunkDuration seconds or reaches TranscriptMaxWords words;
// the trailing remainder is flushed even when it satisfies neither threshold.
type TranscriptSegmenter struct {
	segments []domain.TranscriptSegment
	cfg      SegmenterConfig
}

func NewTranscriptSegmenter(segments []domain.TranscriptSegment, cfg SegmenterConfig) *TranscriptSegmenter {
	return &TranscriptSegmenter{segments: segments, cfg: cfg.withDefaults()}
}

func (s *TranscriptSegmenter) Segment() []domain.Chunk {
	var chunks []domain.Chunk

	var (
		buf     strings.Builder
		start   float64
		end     float64
		words   int
		started bool
	)

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return
		}
		chunks = append(chunks, domain.Chunk{
			Kind:  domain.ChunkKindTimed,
			Start: start,
			End:   end,
			Text:  text,
		})
		buf.Reset()
		words = 0
		started = false
	}

	for _, seg := range s.segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if !started {
			start = seg.Start
			started = true
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(text)
		end = seg.Start + seg.Duration
		words += len(strings.Fields(text))

		if end-start >= s.cfg.ChunkDuration || words >= s.cfg.TranscriptMaxWords {
			flush()
		}
	}

	// The last chunk may be short.
	flush()

	return chunks
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// ContentSegmenter cuts a flat text blob (title + description) into chunks at
// sentence boundaries. Chunks carry synthetic start/end positions at a fixed
// ChunkDuration stride; they are section labels, not timestamps.
type ContentSegmenter struct {
	text string
	cfg  SegmenterConfig
}

func NewContentSegmenter(text string, cfg SegmenterConfig) *ContentSegmenter {
	return &ContentSegmenter{text: text, cfg: cfg.withDefaults()}
}

func (s *ContentSegmenter) Segment() []domain.Chunk {
	sentences := make([]string, 0, 16)
	for _, raw := range sentenceSplitter.Split(s.text, -1) {
		if sentence := strings.TrimSpace(raw); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	var chunks []domain.Chunk

	var (
		buf   strings.Builder
		words int
	)

	for i, sentence := range sentences {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
		words += len(strings.Fields(sentence))

		if words >= s.cfg.ContentMaxWords || i == len(sentences)-1 {
			n := float64(len(chunks))
			chunks = append(chunks, domain.Chunk{
				Kind:  domain.ChunkKindSection,
				Start: n * s.cfg.ChunkDuration,
				End:   (n + 1) * s.cfg.ChunkDuration,
				Text:  buf.String(),
			})
			buf.Reset()
			words = 0
		}
	}

	return chunks
}
