// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

type stub struct{ name string }

func (s *stub) Name() string { return s.name }

func (s *stub) Embed(context.Context, string) ([]float64, error) {
	return []float64{1}, nil
}

func (s *stub) Complete(context.Context, provider.CompletionRequest) (string, error) {
	return "ok", nil
}

func stubFactories() provider.Factories {
	return provider.Factories{
		Anthropic: func(string, string) (provider.Completer, error) {
			return &stub{name: "anthropic"}, nil
		},
		OpenAI: func(string, string, string) (provider.EmbedCompleter, error) {
			return &stub{name: "openai"}, nil
		},
		Google: func(context.Context, string, string, string) (provider.EmbedCompleter, error) {
			return &stub{name: "google"}, nil
		},
	}
}

// clearProviderEnv keeps the ambient developer environment from leaking
// into auto resolution.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestResolveExplicitSelection(t *testing.T) {
	clearProviderEnv(t)

	embedder, completer, err := provider.Resolve(context.Background(),
		provider.Selection{Embedding: "google", Completion: "openai"},
		provider.Credentials{OpenAIAPIKey: "sk-x", GoogleAPIKey: "g-x"},
		stubFactories(),
	)
	require.NoError(t, err)
	assert.Equal(t, "google", embedder.Name())
	assert.Equal(t, "openai", completer.Name())
}

func TestResolveAutoPriority(t *testing.T) {
	clearProviderEnv(t)

	cases := []struct {
		name           string
		creds          provider.Credentials
		wantCompletion string
		wantEmbedding  string
	}{
		{
			name:           "all keys prefer anthropic completion openai embedding",
			creds:          provider.Credentials{AnthropicAPIKey: "a", OpenAIAPIKey: "o", GoogleAPIKey: "g"},
			wantCompletion: "anthropic",
			wantEmbedding:  "openai",
		},
		{
			name:           "openai only",
			creds:          provider.Credentials{OpenAIAPIKey: "o"},
			wantCompletion: "openai",
			wantEmbedding:  "openai",
		},
		{
			name:           "google only",
			creds:          provider.Credentials{GoogleAPIKey: "g"},
			wantCompletion: "google",
			wantEmbedding:  "google",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			embedder, completer, err := provider.Resolve(context.Background(),
				provider.Selection{Embedding: provider.Auto, Completion: provider.Auto},
				tc.creds, stubFactories())
			require.NoError(t, err)
			assert.Equal(t, tc.wantEmbedding, embedder.Name())
			assert.Equal(t, tc.wantCompletion, completer.Name())
		})
	}
}

func TestResolveNoCredentials(t *testing.T) {
	clearProviderEnv(t)

	_, _, err := provider.Resolve(context.Background(),
		provider.Selection{Embedding: provider.Auto, Completion: provider.Auto},
		provider.Credentials{}, stubFactories())
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeProviderNotConfigured, ragerr.CodeOf(err))
	assert.True(t, ragerr.IsNotFound(err))
}

func TestResolveAnthropicOnlyCannotEmbed(t *testing.T) {
	clearProviderEnv(t)

	// Anthropic covers completion, but there is no embedding backend.
	_, _, err := provider.Resolve(context.Background(),
		provider.Selection{Embedding: provider.Auto, Completion: provider.Auto},
		provider.Credentials{AnthropicAPIKey: "a"}, stubFactories())
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeProviderNotConfigured, ragerr.CodeOf(err))
}

func TestResolveUnknownProvider(t *testing.T) {
	clearProviderEnv(t)

	_, _, err := provider.Resolve(context.Background(),
		provider.Selection{Embedding: "openai", Completion: "bedrock"},
		provider.Credentials{OpenAIAPIKey: "o"}, stubFactories())
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeProviderUnknown, ragerr.CodeOf(err))
}

func TestResolveEnvFallback(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	embedder, completer, err := provider.Resolve(context.Background(),
		provider.Selection{Embedding: provider.Auto, Completion: provider.Auto},
		provider.Credentials{}, stubFactories())
	require.NoError(t, err)
	assert.Equal(t, "openai", embedder.Name())
	assert.Equal(t, "openai", completer.Name())
}
