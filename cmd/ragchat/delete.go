// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <namespace>",
		Short: "Delete a namespace and its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return ragerr.New(ragerr.CodeCLIInputInvalid, "refusing to delete without --force")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := newStore(cfg).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted namespace %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm deletion")

	return cmd
}
