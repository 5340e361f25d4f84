// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored namespaces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			infos, err := newStore(cfg).List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no namespaces")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAMESPACE\tDOCUMENTS\tCREATED")
			for _, info := range infos {
				created := "-"
				if !info.CreatedAt.IsZero() {
					created = info.CreatedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", info.Namespace, info.DocumentCount, created)
			}
			return w.Flush()
		},
	}
}
