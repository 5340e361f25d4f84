// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package google implements the embedding and completion collaborators on
// the Google Gemini API.
package google

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Default models used when the config carries no override.
const (
	DefaultEmbeddingModel  = "text-embedding-004"
	DefaultCompletionModel = "gemini-2.5-flash"
)

// Config holds Google client configuration.
type Config struct {
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
}

// Client implements both provider.Embedder and provider.Completer.
type Client struct {
	client          *genai.Client
	embeddingModel  string
	completionModel string
}

// New creates a Gemini client. Returns an error if the API key is missing.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ragerr.New(ragerr.CodeProviderNotConfigured, "google: missing api key", ragerr.FieldProvider("google"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeProviderNotConfigured, "google: creating client", ragerr.FieldProvider("google"))
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
		client:          client,
		embeddingModel:  embeddingModel,
		completionModel: completionModel,
	}, nil
}

func (c *Client) Name() string { return "google" }

// Embed requests a single embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, ragerr.Wrap(err, ragerr.CodeProviderEmbedFailure, "google: embedding call", ragerr.FieldProvider("google"))
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, ragerr.New(ragerr.CodeProviderResponseInvalid, "google: no embedding in response", ragerr.FieldProvider("google"))
	}

	values := resp.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Complete performs a single non-streaming generate call and concatenates
// the text parts of the first candidate.
func (c *Client) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	var config *genai.GenerateContentConfig
	if req.SystemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{
					{Text: req.SystemPrompt},
				},
			},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.completionModel, convertTurns(req), config)
	if err != nil {
		return "", ragerr.Wrap(err, ragerr.CodeProviderCompleteFailure, "google: completion call", ragerr.FieldProvider("google"))
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		break
	}
	if sb.Len() == 0 {
		return "", ragerr.New(ragerr.CodeProviderResponseInvalid, "google: empty completion response", ragerr.FieldProvider("google"))
	}
	return sb.String(), nil
}

func convertTurns(req provider.CompletionRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "user"
		if turn.Role == provider.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: turn.Text},
			},
		})
	}
	contents = append(contents, &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: req.Message},
		},
	})
	return contents
}
