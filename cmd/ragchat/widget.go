// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogabrielordonez/mcp-ragchat/internal/widget"
)

func newWidgetCmd() *cobra.Command {
	var (
		endpoint  string
		namespace string
		title     string
	)

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Print an embeddable HTML chat widget",
		Long: `Widget prints a self-contained HTML snippet that talks to a running
ragchat endpoint. Paste it into any page to get a chat box.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snippet, err := widget.Render(widget.Params{
				Endpoint:  endpoint,
				Namespace: namespace,
				Title:     title,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snippet)
			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "http://127.0.0.1:3117", "base URL of the running ragchat server")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace label shown in the widget")
	cmd.Flags().StringVarP(&title, "title", "t", "Ask a question", "widget title")

	return cmd
}
