// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogabrielordonez/mcp-ragchat/internal/chat"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

func newChatCmd() *cobra.Command {
	var (
		namespace   string
		showSources bool
	)

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask a one-shot question against a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				return ragerr.New(ragerr.CodeCLIInputInvalid, "--namespace is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			embedder, completer, err := resolveProviders(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			handler := newHandler(newStore(cfg), embedder, completer, cfg)
			reply, err := handler.Handle(cmd.Context(), namespace, chat.Request{Message: args[0]})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply.Reply)
			if showSources && len(reply.Sources) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nsources: %v\n", reply.Sources)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace to query (required)")
	cmd.Flags().BoolVar(&showSources, "sources", false, "print source document ids after the reply")

	return cmd
}
