// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package chat_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogabrielordonez/mcp-ragchat/internal/chat"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", chat.SanitizeText("hel\x00lo"))
	assert.Equal(t, "a\tb\nc\rd", chat.SanitizeText("a\tb\nc\rd"))
	assert.Equal(t, "ab", chat.SanitizeText("\x01a\x0bb\x1f"))
	assert.Equal(t, "", chat.SanitizeText(""))
}

func TestSanitizeTextTruncates(t *testing.T) {
	long := strings.Repeat("x", chat.MaxTextLength+100)
	out := chat.SanitizeText(long)
	assert.Len(t, []rune(out), chat.MaxTextLength)

	// Truncation counts runes, not bytes.
	wide := strings.Repeat("é", chat.MaxTextLength+5)
	out = chat.SanitizeText(wide)
	assert.Len(t, []rune(out), chat.MaxTextLength)
}

func TestSanitizeTextIdempotent(t *testing.T) {
	in := "some \x02dirty\x1f text " + strings.Repeat("pad ", 300)
	once := chat.SanitizeText(in)
	assert.Equal(t, once, chat.SanitizeText(once))
}

func TestSanitizeHistoryDropsMalformed(t *testing.T) {
	history := []provider.Turn{
		{Role: provider.RoleUser, Text: "question"},
		{Role: "", Text: "no role"},
		{Role: provider.RoleAssistant, Text: ""},
		{Role: provider.RoleAssistant, Text: "answer\x00"},
	}

	out := chat.SanitizeHistory(history)
	require.Len(t, out, 2)
	assert.Equal(t, "question", out[0].Text)
	assert.Equal(t, "answer", out[1].Text)
}

func TestSanitizeHistoryKeepsMostRecent(t *testing.T) {
	var history []provider.Turn
	for i := 0; i < chat.MaxHistoryTurns+5; i++ {
		history = append(history, provider.Turn{Role: provider.RoleUser, Text: fmt.Sprintf("turn %d", i)})
	}

	out := chat.SanitizeHistory(history)
	require.Len(t, out, chat.MaxHistoryTurns)
	assert.Equal(t, "turn 5", out[0].Text)
	assert.Equal(t, fmt.Sprintf("turn %d", chat.MaxHistoryTurns+4), out[len(out)-1].Text)
}

func TestSanitizeHistoryEmpty(t *testing.T) {
	assert.Empty(t, chat.SanitizeHistory(nil))
}
