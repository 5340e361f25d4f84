// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gogabrielordonez/mcp-ragchat/internal/chat"
	"github.com/gogabrielordonez/mcp-ragchat/internal/provider"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// routes builds the wire protocol:
//
//	GET  /      → 200 {status, namespace}
//	OPTIONS *   → 200, CORS headers, empty body
//	POST /chat  → 200 {reply, sources, latencyMs} | 400 | 404 | 500
//	anything else → 404
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	// Every response carries the CORS headers, Origin or not; the cors
	// middleware below only covers requests that send one, and still
	// owns the preflight negotiation.
	r.Use(corsHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handleStatus)
	r.Post("/chat", s.handleChat)
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
	r.NotFound(notFound)
	// The contract has no 405: an unsupported method on a known path is
	// just another unknown route.
	r.MethodNotAllowed(notFound)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"namespace": s.namespace,
	})
}

type chatBody struct {
	Message *string         `json:"message"`
	History []provider.Turn `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "message" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if body.Message == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	reply, err := s.handler.Handle(r.Context(), s.namespace, chat.Request{
		Message: *body.Message,
		History: body.History,
	})
	if err != nil {
		writeJSON(w, ragerr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
