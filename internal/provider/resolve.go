// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package provider

import (
	"context"
	"log/slog"
	"os"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Auto selects a provider by credential presence instead of naming one.
const Auto = "auto"

// Credentials holds the per-provider configuration the resolver draws
// from. Empty API keys fall back to the conventional environment
// variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY).
type Credentials struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string

	EmbeddingModel  string
	CompletionModel string
}

// Selection names which provider backs each capability. Valid values per
// capability are a concrete provider name or Auto.
type Selection struct {
	Embedding  string
	Completion string
}

// Factories builds concrete clients for the resolver. Split out so tests
// can resolve selection logic without constructing SDK clients.
type Factories struct {
	Anthropic func(apiKey, model string) (Completer, error)
	OpenAI    func(apiKey, embeddingModel, completionModel string) (EmbedCompleter, error)
	Google    func(ctx context.Context, apiKey, embeddingModel, completionModel string) (EmbedCompleter, error)
}

// EmbedCompleter is satisfied by providers that offer both capabilities.
type EmbedCompleter interface {
	Embedder
	Completer
}

// Resolve turns a Selection into concrete capability objects, once, at
// startup. Auto keeps the fixed priority order of the original design:
// completion anthropic > openai > google, embedding openai > google.
// Re-deriving the choice per call is exactly what this replaces.
func Resolve(ctx context.Context, sel Selection, creds Credentials, f Factories) (Embedder, Completer, error) {
	creds = withEnvFallback(creds)

	completer, err := resolveCompleter(ctx, sel.Completion, creds, f)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := resolveEmbedder(ctx, sel.Embedding, creds, f)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("providers resolved",
		"embedding", embedder.Name(),
		"completion", completer.Name(),
	)
	return embedder, completer, nil
}

func resolveCompleter(ctx context.Context, name string, creds Credentials, f Factories) (Completer, error) {
	switch name {
	case "anthropic":
		return f.Anthropic(creds.AnthropicAPIKey, creds.CompletionModel)
	case "openai":
		return f.OpenAI(creds.OpenAIAPIKey, creds.EmbeddingModel, creds.CompletionModel)
	case "google":
		return f.Google(ctx, creds.GoogleAPIKey, creds.EmbeddingModel, creds.CompletionModel)
	case Auto, "":
		switch {
		case creds.AnthropicAPIKey != "":
			return f.Anthropic(creds.AnthropicAPIKey, creds.CompletionModel)
		case creds.OpenAIAPIKey != "":
			return f.OpenAI(creds.OpenAIAPIKey, creds.EmbeddingModel, creds.CompletionModel)
		case creds.GoogleAPIKey != "":
			return f.Google(ctx, creds.GoogleAPIKey, creds.EmbeddingModel, creds.CompletionModel)
		default:
			return nil, ragerr.New(ragerr.CodeProviderNotConfigured,
				"no completion provider configured: set an Anthropic, OpenAI, or Gemini API key")
		}
	default:
		return nil, ragerr.Errorf(ragerr.CodeProviderUnknown, "unknown completion provider %q", name)
	}
}

func resolveEmbedder(ctx context.Context, name string, creds Credentials, f Factories) (Embedder, error) {
	switch name {
	case "openai":
		return f.OpenAI(creds.OpenAIAPIKey, creds.EmbeddingModel, creds.CompletionModel)
	case "google":
		return f.Google(ctx, creds.GoogleAPIKey, creds.EmbeddingModel, creds.CompletionModel)
	case Auto, "":
		switch {
		case creds.OpenAIAPIKey != "":
			return f.OpenAI(creds.OpenAIAPIKey, creds.EmbeddingModel, creds.CompletionModel)
		case creds.GoogleAPIKey != "":
			return f.Google(ctx, creds.GoogleAPIKey, creds.EmbeddingModel, creds.CompletionModel)
		default:
			return nil, ragerr.New(ragerr.CodeProviderNotConfigured,
				"no embedding provider configured: set an OpenAI or Gemini API key")
		}
	default:
		return nil, ragerr.Errorf(ragerr.CodeProviderUnknown, "unknown embedding provider %q", name)
	}
}

func withEnvFallback(creds Credentials) Credentials {
	if creds.AnthropicAPIKey == "" {
		creds.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if creds.OpenAIAPIKey == "" {
		creds.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if creds.GoogleAPIKey == "" {
		creds.GoogleAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	return creds
}
