// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogabrielordonez/mcp-ragchat/internal/ingest"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

func newIngestCmd() *cobra.Command {
	var (
		namespace    string
		systemPrompt string
	)

	cmd := &cobra.Command{
		Use:   "ingest <markdown-file>",
		Short: "Seed a namespace from a markdown document",
		Long: `Ingest splits a markdown document on "## " headings, embeds each
section, and stores the result as a searchable namespace. A YAML front
matter block may supply the namespace title and system prompt; the
--namespace and --prompt flags override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return ragerr.Wrap(err, ragerr.CodeCLIInputInvalid, "reading markdown file")
			}

			front, body := ingest.StripFrontMatter(string(raw))
			if namespace == "" {
				namespace = front.Title
			}
			if namespace == "" {
				return ragerr.New(ragerr.CodeCLIInputInvalid,
					"namespace required: pass --namespace or set title: in the front matter")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			prompt := systemPrompt
			if prompt == "" {
				prompt = front.Prompt
			}

			embedder, _, err := resolveProviders(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			pipeline := ingest.New(newStore(cfg), embedder, cfg.Ingest.MinSectionLength)
			summary, err := pipeline.Seed(cmd.Context(), namespace, prompt, body)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			for _, failure := range summary.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: %s\n", failure.Title, failure.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace to seed (defaults to the front matter title)")
	cmd.Flags().StringVarP(&systemPrompt, "prompt", "p", "", "system prompt for the namespace (overrides front matter)")

	return cmd
}
