package service

import (
	"math"
	"sort"

	"github.com/tmls-media/vidrag/internal/domain"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||). Mismatched lengths
// are a producer bug (all vectors in one store come from the same model);
// they yield -Inf rather than a plausible-looking score over a prefix, as
// does a zero-norm operand on either side, so degenerate pairs always rank
// last instead of propagating NaN into the sort.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(-1)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return math.Inf(-1)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every chunk against the query vector (brute-force, no index)
// and returns the topK highest-scoring chunks in descending score order.
// The sort is stable: equal scores keep their original relative order. A
// topK larger than the collection returns the whole collection, ordered;
// topK <= 0 falls back to DefaultTopK.
func Rank(query []float32, chunks []domain.EmbeddedChunk, topK int) []domain.SimilarityResult {
	if topK <= 0 {
		topK = DefaultTopK
	}

	results := make([]domain.SimilarityResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, domain.SimilarityResult{
			Score: CosineSimilarity(query, chunk.Embedding),
			Chunk: chunk,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}
