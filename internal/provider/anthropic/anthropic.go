// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package anthropic implements the completion collaborator on the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// DefaultModel is used when the config carries no model override.
const DefaultModel = "claude-haiku-4-5"

const defaultMaxTokens = 1024

// Config holds Anthropic client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, useful for testing against a mock server
}

// Completer implements provider.Completer using the Anthropic Messages API.
type Completer struct {
	client anthropicsdk.Client
	model  string
}

// New creates an Anthropic completer. Returns an error if the API key is
// missing.
func New(cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, ragerr.New(ragerr.CodeProviderNotConfigured, "anthropic: missing api key", ragerr.FieldProvider("anthropic"))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Completer{
		client: anthropicsdk.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *Completer) Name() string { return "anthropic" }

// Complete performs a single non-streaming Messages call and concatenates
// the text blocks of the reply.
func (c *Completer) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.model),
		Messages:  convertTurns(req.History, req.Message),
		MaxTokens: defaultMaxTokens,
	}
	if req.SystemPrompt != "" {
		params.System = []anthropicsdk.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", ragerr.Wrap(err, ragerr.CodeProviderCompleteFailure, "anthropic: completion call", ragerr.FieldProvider("anthropic"))
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// convertTurns maps conversation turns plus the current message into
// Anthropic message params. Turns with roles the API does not know are
// skipped; the handler has already dropped malformed ones.
func convertTurns(history []provider.Turn, message string) []anthropicsdk.MessageParam {
	msgs := make([]anthropicsdk.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Role {
		case provider.RoleUser:
			msgs = append(msgs, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(turn.Text)))
		case provider.RoleAssistant:
			msgs = append(msgs, anthropicsdk.NewAssistantMessage(anthropicsdk.NewTextBlock(turn.Text)))
		}
	}
	msgs = append(msgs, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(message)))
	return msgs
}
