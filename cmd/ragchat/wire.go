// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/gogabrielordonez/mcp-ragchat/internal/chat"
	"github.com/gogabrielordonez/mcp-ragchat/internal/config"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider/anthropic"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider/google"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider/openai"
	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
)

// loadConfig builds the validated Config from the global viper state
// initViper prepared.
func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// newStore opens the document store rooted at the configured data
// directory.
func newStore(cfg *config.Config) *store.Store {
	return store.New(cfg.DataDir)
}

// resolveProviders is a var so command tests can substitute fakes
// without reaching for real SDK clients.
var resolveProviders = func(ctx context.Context, cfg *config.Config) (provider.Embedder, provider.Completer, error) {
	sel := provider.Selection{
		Embedding:  cfg.Providers.Embedding,
		Completion: cfg.Providers.Completion,
	}
	creds := provider.Credentials{
		AnthropicAPIKey: cfg.Providers.Anthropic.APIKey,
		OpenAIAPIKey:    cfg.Providers.OpenAI.APIKey,
		GoogleAPIKey:    cfg.Providers.Google.APIKey,
	}
	factories := provider.Factories{
		Anthropic: func(apiKey, model string) (provider.Completer, error) {
			if m := cfg.Providers.Anthropic.CompletionModel; m != "" {
				model = m
			}
			return anthropic.New(anthropic.Config{APIKey: apiKey, Model: model})
		},
		OpenAI: func(apiKey, embeddingModel, completionModel string) (provider.EmbedCompleter, error) {
			if m := cfg.Providers.OpenAI.EmbeddingModel; m != "" {
				embeddingModel = m
			}
			if m := cfg.Providers.OpenAI.CompletionModel; m != "" {
				completionModel = m
			}
			return openai.New(openai.Config{
				APIKey:          apiKey,
				EmbeddingModel:  embeddingModel,
				CompletionModel: completionModel,
			})
		},
		Google: func(ctx context.Context, apiKey, embeddingModel, completionModel string) (provider.EmbedCompleter, error) {
			if m := cfg.Providers.Google.EmbeddingModel; m != "" {
				embeddingModel = m
			}
			if m := cfg.Providers.Google.CompletionModel; m != "" {
				completionModel = m
			}
			return google.New(ctx, google.Config{
				APIKey:          apiKey,
				EmbeddingModel:  embeddingModel,
				CompletionModel: completionModel,
			})
		},
	}
	return provider.Resolve(ctx, sel, creds, factories)
}

// newHandler assembles the full chat pipeline for a configured store.
func newHandler(st *store.Store, embedder provider.Embedder, completer provider.Completer, cfg *config.Config) *chat.Handler {
	retriever := chat.NewRetriever(st, embedder, cfg.Retrieval.TopK, cfg.Retrieval.MinScore)
	return chat.NewHandler(st, retriever, completer)
}

// setupLogging routes slog to stderr so stdout stays clean for command
// output. Verbose mode lowers the level to debug.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
