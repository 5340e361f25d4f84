// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package ingest

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is one titled passage cut from the raw markdown.
type Section struct {
	Title   string
	Content string
}

// FrontMatter is the optional YAML block at the top of an ingested file.
// It can seed the namespace system prompt without a separate flag.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Prompt string `yaml:"prompt"`
}

// SplitSections cuts raw markdown on second-level headers into ordered
// sections. Each section's first line becomes its title (header marker
// stripped), the remainder its content. Text before the first header is
// treated the same way: first line as title, rest as content.
func SplitSections(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var chunks []string
	if rest, ok := strings.CutPrefix(text, "## "); ok {
		chunks = strings.Split(rest, "\n## ")
	} else {
		chunks = strings.Split(text, "\n## ")
	}

	sections := make([]Section, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		title := chunk
		content := ""
		if idx := strings.Index(chunk, "\n"); idx >= 0 {
			title = chunk[:idx]
			content = strings.TrimSpace(chunk[idx+1:])
		}
		title = strings.TrimSpace(strings.TrimPrefix(title, "## "))

		sections = append(sections, Section{Title: title, Content: content})
	}
	return sections
}

// StripFrontMatter parses and removes a leading "---" delimited YAML block.
// Text without front matter is returned unchanged with a zero FrontMatter;
// a malformed block is left in place rather than rejected.
func StripFrontMatter(text string) (FrontMatter, string) {
	var fm FrontMatter

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	rest, ok := strings.CutPrefix(normalized, "---\n")
	if !ok {
		return fm, text
	}

	// The closing fence is a line holding exactly "---": either
	// followed by a newline or closing the input. A line that merely
	// starts with "---" is content, not a fence.
	var block, body string
	if end := strings.Index(rest, "\n---\n"); end >= 0 {
		block = rest[:end]
		body = rest[end+len("\n---\n"):]
	} else if strings.HasSuffix(rest, "\n---") {
		block = rest[:len(rest)-len("\n---")]
	} else {
		return fm, text
	}

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return FrontMatter{}, text
	}
	return fm, body
}
