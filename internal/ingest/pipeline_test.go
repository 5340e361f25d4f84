// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogabrielordonez/mcp-ragchat/internal/ingest"
	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

type fakeEmbedder struct {
	vec   []float64
	err   error
	calls []string

	// failOn makes Embed fail only for texts containing the substring.
	failOn string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, ragerr.New(ragerr.CodeProviderEmbedFailure, "embedding backend unavailable")
	}
	if f.vec != nil {
		return f.vec, nil
	}
	return []float64{0.1, 0.2, 0.3}, nil
}

// section builds a markdown section whose content clears the length filter.
func section(title string) string {
	return "## " + title + "\n" + strings.Repeat("Relevant content about "+title+". ", 3)
}

func TestSeed(t *testing.T) {
	st := store.New(t.TempDir())
	embedder := &fakeEmbedder{}
	pipeline := ingest.New(st, embedder, 0)

	markdown := section("Install") + "\n" + section("Configure")
	summary, err := pipeline.Seed(context.Background(), "docs", "You answer questions.", markdown)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Seeded)
	assert.Equal(t, 2, summary.Attempted)
	assert.Empty(t, summary.Failures)
	assert.Contains(t, summary.String(), `2/2 documents seeded into "docs"`)

	cfg, err := st.LoadConfig(context.Background(), "docs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "You answer questions.", cfg.SystemPrompt)

	docs, err := st.Load(context.Background(), "docs")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "docs-1", docs[0].ID)
	assert.Equal(t, "Install", docs[0].Title)
	assert.Equal(t, "docs-2", docs[1].ID)

	// The embedded text is title plus content.
	require.Len(t, embedder.calls, 2)
	assert.True(t, strings.HasPrefix(embedder.calls[0], "Install\n"))
}

func TestSeedFiltersShortSections(t *testing.T) {
	st := store.New(t.TempDir())
	pipeline := ingest.New(st, &fakeEmbedder{}, 0)

	markdown := "## Stub\ntoo short\n" + section("Real Section")
	summary, err := pipeline.Seed(context.Background(), "docs", "", markdown)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Seeded)
	assert.Equal(t, 1, summary.Attempted)

	docs, err := st.Load(context.Background(), "docs")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// The id index counts viable sections, so the survivor is docs-1.
	assert.Equal(t, "docs-1", docs[0].ID)
	assert.Equal(t, "Real Section", docs[0].Title)
}

func TestSeedNoViableSections(t *testing.T) {
	st := store.New(t.TempDir())
	pipeline := ingest.New(st, &fakeEmbedder{}, 0)

	_, err := pipeline.Seed(context.Background(), "docs", "", "## Only\nshort")
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeIngestNoViableInput, ragerr.CodeOf(err))

	// Nothing was written, not even the config.
	cfg, err := st.LoadConfig(context.Background(), "docs")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSeedPartialFailure(t *testing.T) {
	st := store.New(t.TempDir())
	embedder := &fakeEmbedder{failOn: "Broken"}
	pipeline := ingest.New(st, embedder, 0)

	markdown := section("Working") + "\n" + section("Broken")
	summary, err := pipeline.Seed(context.Background(), "docs", "prompt", markdown)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Seeded)
	assert.Equal(t, 2, summary.Attempted)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "Broken", summary.Failures[0].Title)

	// Config survives even though a section failed.
	cfg, err := st.LoadConfig(context.Background(), "docs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "prompt", cfg.SystemPrompt)
}

func TestSeedConfigWrittenBeforeEmbedding(t *testing.T) {
	st := store.New(t.TempDir())
	pipeline := ingest.New(st, &fakeEmbedder{err: ragerr.New(ragerr.CodeProviderEmbedFailure, "down")}, 0)

	summary, err := pipeline.Seed(context.Background(), "docs", "prompt", section("Anything"))
	require.NoError(t, err)
	assert.Zero(t, summary.Seeded)
	require.Len(t, summary.Failures, 1)

	cfg, err := st.LoadConfig(context.Background(), "docs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "prompt", cfg.SystemPrompt)
}

func TestSeedReingestUpsertsSameIDs(t *testing.T) {
	st := store.New(t.TempDir())
	pipeline := ingest.New(st, &fakeEmbedder{}, 0)
	ctx := context.Background()

	markdown := section("Install") + "\n" + section("Configure")
	_, err := pipeline.Seed(ctx, "docs", "first", markdown)
	require.NoError(t, err)
	_, err = pipeline.Seed(ctx, "docs", "", markdown)
	require.NoError(t, err)

	docs, err := st.Load(ctx, "docs")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// An empty prompt on re-ingest keeps the existing one.
	cfg, err := st.LoadConfig(ctx, "docs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "first", cfg.SystemPrompt)
}

func TestSeedSanitizesNamespace(t *testing.T) {
	st := store.New(t.TempDir())
	pipeline := ingest.New(st, &fakeEmbedder{}, 0)

	summary, err := pipeline.Seed(context.Background(), "my docs/v1", "", section("Anything"))
	require.NoError(t, err)
	assert.Equal(t, "my_docs_v1", summary.Namespace)
}
