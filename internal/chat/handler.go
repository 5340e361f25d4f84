// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package chat handles a single chat exchange: validate and sanitize the
// request, retrieve context, call the completion collaborator, and shape
// the reply. The HTTP path and the local CLI path both go through Handle.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	"github.com/gogabrielordonez/mcp-ragchat/internal/store"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Request is one inbound chat exchange. An empty message is allowed
// through (it just produces a low-signal reply); only a missing message is
// rejected, and that check lives with the transport.
type Request struct {
	Message string          `json:"message"`
	History []provider.Turn `json:"history,omitempty"`
}

// Reply is the outcome of a handled exchange.
type Reply struct {
	Reply     string   `json:"reply"`
	Sources   []string `json:"sources"`
	LatencyMs int64    `json:"latencyMs"`
}

// Handler orchestrates one exchange against one namespace store.
type Handler struct {
	store     *store.Store
	retriever *Retriever
	completer provider.Completer
}

// NewHandler creates a Handler.
func NewHandler(st *store.Store, retriever *Retriever, completer provider.Completer) *Handler {
	return &Handler{
		store:     st,
		retriever: retriever,
		completer: completer,
	}
}

// Handle runs one exchange. A namespace without config is a distinct
// not-found outcome, reported before any embedding or completion work.
// Retrieval failures degrade to an unaugmented prompt; a completion
// failure is fatal to the request. Latency covers sanitization through
// completion return.
func (h *Handler) Handle(ctx context.Context, namespace string, req Request) (*Reply, error) {
	cfg, err := h.store.LoadConfig(ctx, namespace)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ragerr.Errorf(ragerr.CodeStoreNamespaceNotConfigured,
			"namespace %q is not configured; ingest content into it first", namespace)
	}

	requestID := uuid.NewString()
	start := time.Now()

	message := SanitizeText(req.Message)
	history := SanitizeHistory(req.History)

	prompt, sources := h.retriever.Retrieve(ctx, namespace, cfg.SystemPrompt, message)

	reply, err := h.completer.Complete(ctx, provider.CompletionRequest{
		SystemPrompt: prompt,
		History:      history,
		Message:      message,
	})
	if err != nil {
		slog.Error("completion failed",
			"request_id", requestID,
			"namespace", namespace,
			"error", err,
		)
		return nil, err
	}

	latency := time.Since(start)

	ids := make([]string, len(sources))
	for i, src := range sources {
		ids[i] = src.DocumentID
	}

	slog.Info("chat handled",
		"request_id", requestID,
		"namespace", namespace,
		"sources", len(ids),
		"latency_ms", latency.Milliseconds(),
	)

	return &Reply{
		Reply:     reply,
		Sources:   ids,
		LatencyMs: latency.Milliseconds(),
	}, nil
}
