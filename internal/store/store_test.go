// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(t.TempDir())
}

func TestSanitizeNamespace(t *testing.T) {
	assert.Equal(t, "docs", store.SanitizeNamespace("docs"))
	assert.Equal(t, "my-docs.v2", store.SanitizeNamespace("my-docs.v2"))
	assert.Equal(t, "a_b_c", store.SanitizeNamespace("a/b c"))
	assert.Equal(t, "__", store.SanitizeNamespace("…!"))
	assert.Equal(t, "", store.SanitizeNamespace(""))
}

func TestLoadMissingNamespace(t *testing.T) {
	st := newTestStore(t)

	docs, err := st.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	want := []store.Document{
		{ID: "docs-1", Title: "First", Content: "alpha", Embedding: []float64{0.1, 0.2}, CreatedAt: time.Now().UTC().Truncate(time.Second)},
		{ID: "docs-2", Title: "Second", Content: "beta", Embedding: []float64{0.3, 0.4}, CreatedAt: time.Now().UTC().Truncate(time.Second)},
	}
	require.NoError(t, st.Save(ctx, "docs", want))

	got, err := st.Load(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVectorsFileIsPrettyJSON(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "docs", []store.Document{{ID: "docs-1", Title: "t", Content: "c"}}))

	raw, err := os.ReadFile(filepath.Join(st.Base(), "docs", "vectors.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ")

	var docs []store.Document
	require.NoError(t, json.Unmarshal(raw, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "docs-1", docs[0].ID)
}

func TestUpsertAppendsAndReplaces(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Upsert(ctx, "docs", store.Document{ID: "docs-1", Content: "one"}))
	require.NoError(t, st.Upsert(ctx, "docs", store.Document{ID: "docs-2", Content: "two"}))
	require.NoError(t, st.Upsert(ctx, "docs", store.Document{ID: "docs-1", Content: "one updated"}))

	docs, err := st.Load(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Replacement keeps the original position.
	assert.Equal(t, "docs-1", docs[0].ID)
	assert.Equal(t, "one updated", docs[0].Content)
	assert.Equal(t, "docs-2", docs[1].ID)
}

func TestUpsertEmptyID(t *testing.T) {
	st := newTestStore(t)

	err := st.Upsert(context.Background(), "docs", store.Document{Content: "no id"})
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeStoreInvalidInput, ragerr.CodeOf(err))
}

func TestConfigRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cfg := store.NamespaceConfig{
		Namespace:    "docs",
		SystemPrompt: "You answer questions about the docs.",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, st.SaveConfig(ctx, cfg))

	got, err := st.LoadConfig(ctx, "docs")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cfg, *got)
}

func TestLoadConfigAbsent(t *testing.T) {
	st := newTestStore(t)

	cfg, err := st.LoadConfig(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigIgnoresUnknownFields(t *testing.T) {
	st := newTestStore(t)
	dir := filepath.Join(st.Base(), "docs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw := `{"namespace":"docs","systemPrompt":"p","legacyField":{"nested":true}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0o644))

	cfg, err := st.LoadConfig(context.Background(), "docs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "docs", cfg.Namespace)
	assert.Equal(t, "p", cfg.SystemPrompt)
}

func TestList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveConfig(ctx, store.NamespaceConfig{Namespace: "beta", CreatedAt: time.Now()}))
	require.NoError(t, st.Upsert(ctx, "beta", store.Document{ID: "beta-1"}))
	require.NoError(t, st.Upsert(ctx, "beta", store.Document{ID: "beta-2"}))

	// A namespace directory without a config still shows up.
	require.NoError(t, st.Upsert(ctx, "alpha", store.Document{ID: "alpha-1"}))

	infos, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "alpha", infos[0].Namespace)
	assert.Equal(t, 1, infos[0].DocumentCount)
	assert.True(t, infos[0].CreatedAt.IsZero())

	assert.Equal(t, "beta", infos[1].Namespace)
	assert.Equal(t, 2, infos[1].DocumentCount)
	assert.False(t, infos[1].CreatedAt.IsZero())
}

func TestListEmptyStore(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "never-created"))

	infos, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveConfig(ctx, store.NamespaceConfig{Namespace: "docs"}))
	require.NoError(t, st.Upsert(ctx, "docs", store.Document{ID: "docs-1"}))

	require.NoError(t, st.Delete(ctx, "docs"))

	cfg, err := st.LoadConfig(ctx, "docs")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	// Deleting again is a no-op.
	require.NoError(t, st.Delete(ctx, "docs"))
}

func TestCancelledContext(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.Load(ctx, "docs")
	assert.ErrorIs(t, err, context.Canceled)

	err = st.Save(ctx, "docs", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
