// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
)

const contextSeparator = "\n\n---\n\n"

// Retriever turns a query into an augmented system prompt. Retrieval is
// best-effort: any embedding or search failure degrades to the plain
// system prompt and is logged, never surfaced to the caller.
type Retriever struct {
	store    *store.Store
	embedder provider.Embedder
	topK     int
	minScore float64
}

// Source records one retrieved document for observability.
type Source struct {
	DocumentID string  `json:"documentId"`
	Score      float64 `json:"score"`
}

// NewRetriever creates a Retriever. topK <= 0 and minScore <= 0 select the
// store defaults (3 and 0.3).
func NewRetriever(st *store.Store, embedder provider.Embedder, topK int, minScore float64) *Retriever {
	if topK <= 0 {
		topK = store.DefaultTopK
	}
	if minScore <= 0 {
		minScore = store.DefaultMinScore
	}
	return &Retriever{
		store:    st,
		embedder: embedder,
		topK:     topK,
		minScore: minScore,
	}
}

// Retrieve embeds the query, searches the namespace, and appends any
// matches to the system prompt labeled as retrieved context. With no
// matches, or on any failure, the original prompt comes back unchanged
// with no sources.
func (r *Retriever) Retrieve(ctx context.Context, namespace, systemPrompt, query string) (string, []Source) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		slog.Warn("retrieval degraded: query embedding failed",
			"namespace", namespace,
			"error", err,
		)
		return systemPrompt, nil
	}

	results, err := r.store.Search(ctx, namespace, vec, r.topK, r.minScore)
	if err != nil {
		slog.Warn("retrieval degraded: search failed",
			"namespace", namespace,
			"error", err,
		)
		return systemPrompt, nil
	}
	if len(results) == 0 {
		return systemPrompt, nil
	}

	contents := make([]string, len(results))
	sources := make([]Source, len(results))
	for i, res := range results {
		contents[i] = res.Content
		sources[i] = Source{DocumentID: res.ID, Score: res.Score}
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nUse the following retrieved context when it is relevant to the question:")
	b.WriteString(contextSeparator)
	b.WriteString(strings.Join(contents, contextSeparator))

	return b.String(), sources
}
