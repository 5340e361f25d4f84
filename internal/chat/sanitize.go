// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package chat

import (
	"strings"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
)

const (
	// MaxTextLength caps every sanitized text field, message and history
	// turns alike.
	MaxTextLength = 1000
	// MaxHistoryTurns bounds the conversation window forwarded to the
	// completion collaborator.
	MaxHistoryTurns = 10
)

// SanitizeText strips the C0 control characters that have no place in a
// prompt (keeping tab, newline, and carriage return) and truncates to
// MaxTextLength runes. Idempotent: sanitizing sanitized text is a no-op.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	runes := []rune(out)
	if len(runes) > MaxTextLength {
		out = string(runes[:MaxTextLength])
	}
	return out
}

// SanitizeHistory keeps the most recent MaxHistoryTurns well-formed turns,
// sanitizing each text. Turns missing a role or text are dropped, never
// rejected.
func SanitizeHistory(history []provider.Turn) []provider.Turn {
	kept := make([]provider.Turn, 0, len(history))
	for _, turn := range history {
		if turn.Role == "" || turn.Text == "" {
			continue
		}
		kept = append(kept, provider.Turn{
			Role: turn.Role,
			Text: SanitizeText(turn.Text),
		})
	}

	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}
	return kept
}
