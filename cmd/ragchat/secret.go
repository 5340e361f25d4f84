// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogabrielordonez/mcp-ragchat/internal/secrets"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// serviceName is the keyring service under which ragchat stores secrets.
const serviceName = "ragchat"

// secretStoreFactory creates a secrets.Store. It is a package-level
// variable so tests can substitute a mock implementation.
var secretStoreFactory = func() secrets.Store {
	return secrets.NewKeyringStore()
}

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage API keys in the OS keyring",
		Long: `Store and delete secrets under the ragchat service in the operating
system keyring. A stored secret is referenced from the config as
keyring://ragchat/<name>.`,
	}

	cmd.AddCommand(
		newSecretSetCmd(),
		newSecretDeleteCmd(),
	)

	return cmd
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Store a secret, reading the value from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			fmt.Fprintf(cmd.OutOrStdout(), "Value for %s: ", name)
			reader := bufio.NewReader(cmd.InOrStdin())
			value, err := reader.ReadString('\n')
			if err != nil && value == "" {
				return ragerr.Wrap(err, ragerr.CodeCLIInputInvalid, "reading secret value")
			}
			value = strings.TrimRight(value, "\r\n")
			if value == "" {
				return ragerr.New(ragerr.CodeCLIInputInvalid, "secret value must not be empty")
			}

			if err := secretStoreFactory().Store(serviceName, name, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored secret %s; reference it as keyring://%s/%s\n", name, serviceName, name)
			return nil
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := secretStoreFactory().Delete(serviceName, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted secret %s\n", name)
			return nil
		},
	}
}
