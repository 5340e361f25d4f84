// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package ingest turns raw markdown into a seeded namespace: split into
// titled sections, filter noise, embed each section, and write the results
// into the store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// DefaultMinSectionLength is the content length below which a section is
// considered noise, not a document.
const DefaultMinSectionLength = 50

// Pipeline seeds namespaces from raw markdown.
type Pipeline struct {
	store      *store.Store
	embedder   provider.Embedder
	minSection int
}

// New creates a Pipeline. minSectionLength <= 0 selects the default.
func New(st *store.Store, embedder provider.Embedder, minSectionLength int) *Pipeline {
	if minSectionLength <= 0 {
		minSectionLength = DefaultMinSectionLength
	}
	return &Pipeline{
		store:      st,
		embedder:   embedder,
		minSection: minSectionLength,
	}
}

// Summary reports the outcome of one ingestion call. Attempted counts only
// sections that passed the length filter; Failures holds the per-section
// errors of a partial success.
type Summary struct {
	Namespace string
	Seeded    int
	Attempted int
	Failures  []SectionFailure
}

// SectionFailure records why one section could not be seeded.
type SectionFailure struct {
	Title   string
	Message string
}

// String renders the summary the way the CLI reports it.
func (s *Summary) String() string {
	out := fmt.Sprintf("%d/%d documents seeded into %q", s.Seeded, s.Attempted, s.Namespace)
	for _, f := range s.Failures {
		out += fmt.Sprintf("\n  failed %q: %s", f.Title, f.Message)
	}
	return out
}

// Seed splits markdown into sections, writes the namespace config, then
// embeds and stores each viable section independently. A section failure
// is collected, not fatal; only zero viable sections fails the call.
// Re-ingesting identical content upserts under the same deterministic ids.
func (p *Pipeline) Seed(ctx context.Context, namespace, systemPrompt, markdown string) (*Summary, error) {
	sections := SplitSections(markdown)

	viable := make([]Section, 0, len(sections))
	for _, sec := range sections {
		if len(sec.Content) < p.minSection {
			continue
		}
		viable = append(viable, sec)
	}
	if len(viable) == 0 {
		return nil, ragerr.Errorf(ragerr.CodeIngestNoViableInput,
			"no sections with at least %d characters of content; split input on \"## \" headers and retry",
			p.minSection)
	}

	// Config goes first so a partially embedded namespace is still usable.
	cfg := store.NamespaceConfig{
		Namespace:    store.SanitizeNamespace(namespace),
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if existing, err := p.store.LoadConfig(ctx, namespace); err == nil && existing != nil {
		cfg.CreatedAt = existing.CreatedAt
		if systemPrompt == "" {
			cfg.SystemPrompt = existing.SystemPrompt
		}
	}
	if err := p.store.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}

	summary := &Summary{
		Namespace: cfg.Namespace,
		Attempted: len(viable),
	}

	for i, sec := range viable {
		doc, err := p.seedSection(ctx, cfg.Namespace, i+1, sec)
		if err != nil {
			slog.Warn("section not seeded",
				"namespace", cfg.Namespace,
				"title", sec.Title,
				"error", err,
			)
			summary.Failures = append(summary.Failures, SectionFailure{
				Title:   sec.Title,
				Message: err.Error(),
			})
			continue
		}

		slog.Debug("section seeded",
			"namespace", cfg.Namespace,
			"document_id", doc.ID,
			"dimensions", len(doc.Embedding),
		)
		summary.Seeded++
	}

	return summary, nil
}

func (p *Pipeline) seedSection(ctx context.Context, namespace string, index int, sec Section) (*store.Document, error) {
	vec, err := p.embedder.Embed(ctx, sec.Title+"\n"+sec.Content)
	if err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeIngestEmbedFailure, "embedding section", ragerr.Field("title", sec.Title))
	}

	doc := store.Document{
		ID:        fmt.Sprintf("%s-%d", namespace, index),
		Title:     sec.Title,
		Content:   sec.Content,
		Embedding: vec,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.Upsert(ctx, namespace, doc); err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeIngestStoreFailure, "storing section", ragerr.FieldDocumentID(doc.ID))
	}
	return &doc, nil
}
