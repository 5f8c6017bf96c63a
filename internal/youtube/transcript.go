package youtube

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmls-media/vidrag/internal/domain"
)

// ParseTranscript reads a transcript as a JSON array of
// {start, duration, text} records, the shape caption exporters emit.
// Whitespace-only lines are dropped; order is preserved.
func ParseTranscript(r io.Reader) ([]domain.TranscriptSegment, error) {
	var segments []domain.TranscriptSegment
	if err := json.NewDecoder(r).Decode(&segments); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}

	out := make([]domain.TranscriptSegment, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		if seg.Duration < 0 {
			return nil, fmt.Errorf("transcript segment at %vs has negative duration", seg.Start)
		}
		out = append(out, seg)
	}

	return out, nil
}

// LoadTranscriptFile reads a transcript file from disk.
func LoadTranscriptFile(path string) ([]domain.TranscriptSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer f.Close()

	return ParseTranscript(f)
}
