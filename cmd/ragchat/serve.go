// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogabrielordonez/mcp-ragchat/internal/config"
	"github.com/gogabrielordonez/mcp-ragchat/internal/server"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		namespace string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a namespace over HTTP",
		Long: `Serve starts an HTTP endpoint bound to one namespace. If the
configured port is taken, the next ports are tried in order up to the
retry limit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if namespace == "" {
				return ragerr.New(ragerr.CodeCLIInputInvalid, "--namespace is required")
			}

			setupLogging(viper.GetBool("verbose"))

			// First run drops a commented default config next to the
			// user's other configs.
			config.Bootstrap()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			embedder, completer, err := resolveProviders(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			srv, err := server.New(namespace, newHandler(newStore(cfg), embedder, completer, cfg), server.Config{
				Host:           cfg.Server.Host,
				Port:           cfg.Server.Port,
				MaxPortRetries: cfg.Server.MaxPortRetries,
			})
			if err != nil {
				return err
			}

			handle, err := srv.Start()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving namespace %q on http://%s\n", namespace, handle.Addr)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return handle.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace to serve (required)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")

	return cmd
}
