// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package provider defines the narrow collaborator interfaces the
// pipeline consumes (embedding and completion) and resolves configured
// provider names into concrete clients once at startup.
package provider

import "context"

// Embedder turns a text into a fixed-length numeric vector.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Completer generates an assistant reply from a system prompt, prior
// conversation turns, and the current user message.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is the input to a single completion call.
type CompletionRequest struct {
	SystemPrompt string
	History      []Turn
	Message      string
}

// Turn is one caller-supplied conversational exchange. History lives with
// the caller; the core never persists it.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
