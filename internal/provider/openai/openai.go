// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package openai implements the embedding and completion collaborators on
// the OpenAI API.
package openai

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Default models used when the config carries no override.
const (
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultCompletionModel = "gpt-4.1-mini"
)

// Config holds OpenAI client configuration.
type Config struct {
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
	BaseURL         string // optional, useful for testing against a mock server
}

// Client implements both provider.Embedder and provider.Completer.
type Client struct {
	client          openaisdk.Client
	embeddingModel  string
	completionModel string
}

// New creates an OpenAI client. Returns an error if the API key is missing.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ragerr.New(ragerr.CodeProviderNotConfigured, "openai: missing api key", ragerr.FieldProvider("openai"))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	completionModel := cfg.CompletionModel
	if completionModel == "" {
		completionModel = DefaultCompletionModel
	}

	return &Client{
		client:          openaisdk.NewClient(opts...),
		embeddingModel:  embeddingModel,
		completionModel: completionModel,
	}, nil
}

func (c *Client) Name() string { return "openai" }

// Embed requests a single embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(c.embeddingModel),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfString: openaisdk.String(text),
		},
	})
	if err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeProviderEmbedFailure, "openai: embedding call", ragerr.FieldProvider("openai"))
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ragerr.New(ragerr.CodeProviderResponseInvalid, "openai: no embedding in response", ragerr.FieldProvider("openai"))
	}
	return resp.Data[0].Embedding, nil
}

// Complete performs a single non-streaming chat completion.
func (c *Client) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.completionModel),
		Messages: convertTurns(req),
	})
	if err != nil {
		return "", ragerr.Wrap(err, ragerr.CodeProviderCompleteFailure, "openai: completion call", ragerr.FieldProvider("openai"))
	}
	if len(resp.Choices) == 0 {
		return "", ragerr.New(ragerr.CodeProviderResponseInvalid, "openai: no choices in response", ragerr.FieldProvider("openai"))
	}
	return resp.Choices[0].Message.Content, nil
}

func convertTurns(req provider.CompletionRequest) []openaisdk.ChatCompletionMessageParamUnion {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		msgs = append(msgs, openaisdk.SystemMessage(req.SystemPrompt))
	}
	for _, turn := range req.History {
		switch turn.Role {
		case provider.RoleUser:
			msgs = append(msgs, openaisdk.UserMessage(turn.Text))
		case provider.RoleAssistant:
			msgs = append(msgs, openaisdk.AssistantMessage(turn.Text))
		}
	}
	msgs = append(msgs, openaisdk.UserMessage(req.Message))
	return msgs
}
