package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmls-media/vidrag/internal/domain"
)

// Tier names a stored chunk-collection variant. Reads prefer TierLarge and
// fall back to TierDefault.
type Tier string

const (
	TierLarge   Tier = "large"
	TierDefault Tier = "default"
)

// EmbeddingStore persists embedded chunks as one JSON file per (video, tier).
// File names match the original layout: embeddings_<id>_large.json for the
// large tier, embeddings_<id>.json for the default tier.
//
// Single-writer assumption: concurrent regenerations of the same video may
// race and the last writer wins. Each write replaces the whole file via a
// temp-file rename, so readers never observe a partially written collection.
type EmbeddingStore struct {
	dir string
}

// NewEmbeddingStore creates a store rooted at dir. The directory is created
// on first write.
func NewEmbeddingStore(dir string) *EmbeddingStore {
	if dir == "" {
		dir = "."
	}
	return &EmbeddingStore{dir: dir}
}

// storedChunk is the on-disk chunk shape. Kind was not written by earlier
// producers; readers default a missing kind to section. Unknown fields are
// ignored on read.
type storedChunk struct {
	Kind      string    `json:"kind,omitempty"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

func (s *EmbeddingStore) path(videoID string, tier Tier) string {
	if tier == TierLarge {
		return filepath.Join(s.dir, fmt.Sprintf("embeddings_%s_large.json", videoID))
	}
	return filepath.Join(s.dir, fmt.Sprintf("embeddings_%s.json", videoID))
}

// Write serializes the full chunk collection for (videoID, tier), replacing
// any prior content for that pair.
func (s *EmbeddingStore) Write(videoID string, tier Tier, chunks []domain.EmbeddedChunk) error {
	if strings.TrimSpace(videoID) == "" {
		return domain.ErrMissingRequiredField
	}

	records := make([]storedChunk, 0, len(chunks))
	for _, c := range chunks {
		records = append(records, storedChunk{
			Kind:      string(c.Kind),
			Start:     c.Start,
			End:       c.End,
			Text:      c.Text,
			Embedding: c.Embedding,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode chunks: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	target := s.path(videoID, tier)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write chunks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(target), err)
	}

	return nil
}

// Read loads the chunk collection for videoID, preferring the large tier.
// The default tier is consulted only when the large file is absent; a corrupt
// or unreadable file is reported as an error rather than masked by fallback.
// When no tier exists, domain.ErrEmbeddingsNotFound is returned.
func (s *EmbeddingStore) Read(videoID string) ([]domain.EmbeddedChunk, Tier, error) {
	chunks, err := s.ReadTier(videoID, TierLarge)
	if err == nil {
		return chunks, TierLarge, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, TierLarge, err
	}

	chunks, err = s.ReadTier(videoID, TierDefault)
	if err == nil {
		return chunks, TierDefault, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, TierDefault, err
	}

	return nil, "", domain.ErrEmbeddingsNotFound
}

// ReadTier loads exactly one tier. A missing file is reported with an error
// wrapping fs.ErrNotExist so callers can distinguish "absent" from "corrupt".
func (s *EmbeddingStore) ReadTier(videoID string, tier Tier) ([]domain.EmbeddedChunk, error) {
	data, err := os.ReadFile(s.path(videoID, tier))
	if err != nil {
		return nil, err
	}

	var records []storedChunk
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt embedding file for video %s (tier %s): %w", videoID, tier, err)
	}

	chunks := make([]domain.EmbeddedChunk, 0, len(records))
	for i, r := range records {
		kind := domain.ChunkKind(r.Kind)
		if kind == "" {
			kind = domain.ChunkKindSection
		}
		chunk := domain.Chunk{Kind: kind, Start: r.Start, End: r.End, Text: r.Text}
		if err := domain.ValidateChunk(&chunk); err != nil {
			return nil, fmt.Errorf("malformed chunk %d for video %s (tier %s): %w", i, videoID, tier, err)
		}
		chunks = append(chunks, domain.EmbeddedChunk{Chunk: chunk, Embedding: r.Embedding})
	}

	return chunks, nil
}

// Exists reports whether any tier is present for videoID.
func (s *EmbeddingStore) Exists(videoID string) bool {
	for _, tier := range []Tier{TierLarge, TierDefault} {
		if _, err := os.Stat(s.path(videoID, tier)); err == nil {
			return true
		}
	}
	return false
}
