// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package server exposes one namespace over HTTP. Starting a server
// returns an explicit Handle owned by the caller; there is no process-wide
// singleton, and "replace the previous listener" is a caller decision
// (stop, then start).
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/gogabrielordonez/mcp-ragchat/internal/chat"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// DefaultMaxPortRetries bounds how many successive ports are tried when
// the requested one is taken.
const DefaultMaxPortRetries = 10

// Config holds HTTP server configuration.
type Config struct {
	Host           string
	Port           int
	MaxPortRetries int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server serves the chat wire protocol for a single namespace.
type Server struct {
	namespace string
	handler   *chat.Handler
	cfg       Config
	router    http.Handler
}

// New creates a Server for the given namespace.
func New(namespace string, handler *chat.Handler, cfg Config) (*Server, error) {
	if cfg.Port <= 0 {
		return nil, ragerr.Errorf(ragerr.CodeConfigValidateInvalidValue, "server port must be positive, got %d", cfg.Port)
	}
	if cfg.MaxPortRetries <= 0 {
		cfg.MaxPortRetries = DefaultMaxPortRetries
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 120 * time.Second
	}

	s := &Server{
		namespace: namespace,
		handler:   handler,
		cfg:       cfg,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler, for wire-level tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Handle is a running listener. Stop it when done; starting a replacement
// first without stopping leaks the port.
type Handle struct {
	Port int
	Addr string

	srv  *http.Server
	done chan error
}

// Start binds a listener and serves in the background. When the requested
// port is already taken it walks upward one port at a time, bounded by
// MaxPortRetries; the port actually bound is on the returned Handle.
func (s *Server) Start() (*Handle, error) {
	ln, port, err := s.listen()
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	done := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
		}
		close(done)
	}()

	slog.Info("serving namespace",
		"namespace", s.namespace,
		"addr", ln.Addr().String(),
		"port", port,
	)

	return &Handle{
		Port: port,
		Addr: ln.Addr().String(),
		srv:  srv,
		done: done,
	}, nil
}

// Stop shuts the listener down gracefully, waiting for in-flight requests
// until the context expires.
func (h *Handle) Stop(ctx context.Context) error {
	if err := h.srv.Shutdown(ctx); err != nil {
		return ragerr.Wrap(err, ragerr.CodeServerShutdownFailure, "shutting down listener")
	}
	return <-h.done
}

// listen tries cfg.Port, then port+1 and so on while the bind fails with
// "address in use", up to MaxPortRetries attempts. Any other bind error is
// fatal immediately.
func (s *Server) listen() (net.Listener, int, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxPortRetries; attempt++ {
		port := s.cfg.Port + attempt
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)

		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, port, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, 0, ragerr.Wrapf(err, ragerr.CodeServerStartFailure, "listening on %s", addr)
		}

		slog.Warn("port in use, trying next", "addr", addr)
		lastErr = err
	}

	return nil, 0, ragerr.Wrapf(lastErr, ragerr.CodeServerBindFailure,
		"no free port in range %d-%d", s.cfg.Port, s.cfg.Port+s.cfg.MaxPortRetries-1)
}
