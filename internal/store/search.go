// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package store

import (
	"context"
	"math"
	"sort"
)

const (
	// DefaultTopK is the number of results returned when the caller does
	// not say otherwise.
	DefaultTopK = 3
	// DefaultMinScore is the relevance floor below which results are
	// considered noise.
	DefaultMinScore = 0.3
)

// Search scans every stored document in the namespace, scores it by cosine
// similarity against the query vector, and returns at most k results with
// score >= minScore, best first. Ties keep insertion order. Documents with
// mismatched dimensions score zero rather than failing the search.
//
// The scan is O(n·d) per query. The store targets low-thousands of short
// documents per namespace, where a linear scan beats maintaining an index.
func (s *Store) Search(ctx context.Context, namespace string, query []float64, k int, minScore float64) ([]SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultTopK
	}

	docs, err := s.Load(ctx, namespace)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		score := CosineSimilarity(query, doc.Embedding)
		if score < minScore {
			continue
		}
		results = append(results, SearchResult{
			ID:      doc.ID,
			Title:   doc.Title,
			Content: doc.Content,
			Score:   score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// CosineSimilarity returns dot(a,b) / (||a||·||b||) in [-1, 1]. Mismatched
// dimensions and zero vectors yield 0; malformed input never panics.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
