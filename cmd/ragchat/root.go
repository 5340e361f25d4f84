// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogabrielordonez/mcp-ragchat/internal/config"
	"github.com/gogabrielordonez/mcp-ragchat/internal/secrets"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// NewRootCmd creates the root ragchat command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ragchat",
		Short:         "ragchat is retrieval-augmented chat over your own documents",
		Long:          "ragchat ingests markdown into embedded knowledge bases and answers questions against them, locally or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags, mapped to viper keys in initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("data-dir", "", "path to data directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newIngestCmd(),
		newChatCmd(),
		newServeCmd(),
		newListCmd(),
		newDeleteCmd(),
		newWidgetCmd(),
		newSecretCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return ragerr.Wrap(err, ragerr.CodeConfigLoadReadFailure, "reading config file")
		}
	} else {
		// Auto-discover ragchat.yaml from standard locations. No config
		// file is fine, defaults and env vars still apply; parse or
		// permission errors must surface.
		v.SetConfigName("ragchat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ragchat")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return ragerr.Wrap(err, ragerr.CodeConfigLoadReadFailure, "reading config")
			}
		}
	}

	// API keys may be keyring://service/key URIs; resolve them once here.
	secrets.ResolveViperSecrets(v, secrets.NewKeyringStore())

	// Bind persistent flags to viper keys.
	if flag := cmd.Root().PersistentFlags().Lookup("data-dir"); flag != nil && flag.Changed {
		v.Set("data_dir", flag.Value.String())
	}
	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return ragerr.Wrap(err, ragerr.CodeCLISetupFailure, "binding verbose flag")
	}

	return nil
}
