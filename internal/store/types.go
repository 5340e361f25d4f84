// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package store

import "time"

// Document is a titled passage of text plus its embedding vector.
// Ids are unique within a namespace; global uniqueness is not required.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"embedding"`
	CreatedAt time.Time `json:"createdAt"`
}

// NamespaceConfig pairs a namespace with its system prompt. A namespace
// "exists" only if its config is present; documents without a config are
// reported but carry no creation time.
type NamespaceConfig struct {
	Namespace    string    `json:"namespace"`
	SystemPrompt string    `json:"systemPrompt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SearchResult is a scored match from a similarity search. Derived, never
// persisted. Score is cosine similarity in [-1, 1].
type SearchResult struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// NamespaceInfo summarizes one namespace for listing. CreatedAt is the
// zero time when the namespace directory has documents but no config.
type NamespaceInfo struct {
	Namespace     string    `json:"namespace"`
	DocumentCount int       `json:"documentCount"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}
