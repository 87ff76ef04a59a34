// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers binds the operation protocol and the health check to
// HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"engagecms/internal/apperr"
	"engagecms/internal/cache"
	"engagecms/internal/graph"
	"engagecms/internal/logger"
	"engagecms/internal/metrics"
)

// maxBodyBytes caps the size of a POST request body.
const maxBodyBytes = 1 << 20

// ResponseCache stores encoded query responses. *cache.QueryCache
// implements it. Set must drop the body when the cache was invalidated
// after gen was read from Generation.
type ResponseCache interface {
	Generation(ctx context.Context) (gen int64, ok bool)
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, gen int64)
}

// GraphQL serves the single operation endpoint.
type GraphQL struct {
	exec    *graph.Executor
	cache   ResponseCache
	metrics *metrics.Metrics
}

// NewGraphQL creates the endpoint handler. rc and m may be nil.
func NewGraphQL(exec *graph.Executor, rc ResponseCache, m *metrics.Metrics) *GraphQL {
	return &GraphQL{exec: exec, cache: rc, metrics: m}
}

// Get runs a query named by the operationName query parameter with the
// JSON in the variables parameter. Mutations are refused with 405.
// Cacheable queries are served from the response cache when possible.
func (g *GraphQL) Get(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	name := params.Get("operationName")
	variables := []byte(params.Get("variables"))

	if graph.IsMutation(name) {
		w.Header().Set("Allow", http.MethodPost)
		g.writeResponse(w, r, http.StatusMethodNotAllowed, g.exec.ErrorResponse(
			apperr.Validation("operationName", "mutation %s must be sent with POST", name),
		))
		return
	}

	op, err := graph.Decode(name, variables)
	if err != nil {
		g.writeResponse(w, r, http.StatusBadRequest, g.exec.ErrorResponse(err))
		return
	}

	if g.cache == nil || !op.Cacheable() {
		g.writeResponse(w, r, http.StatusOK, g.exec.Execute(r.Context(), name, op))
		return
	}

	key := cache.Key(name, variables)
	if body, ok := g.cache.Get(r.Context(), key); ok {
		if g.metrics != nil {
			g.metrics.CacheHit()
		}
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, http.StatusOK, body)
		return
	}
	if g.metrics != nil {
		g.metrics.CacheMiss()
	}

	gen, cacheable := g.cache.Generation(r.Context())
	resp := g.exec.Execute(r.Context(), name, op)
	body, err := json.Marshal(resp)
	if err != nil {
		g.encodeFailed(w, r, err)
		return
	}
	if cacheable && !resp.Failed() {
		g.cache.Set(r.Context(), key, body, gen)
	}
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, http.StatusOK, body)
}

// Post runs the operation described by a JSON request body.
func (g *GraphQL) Post(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req graph.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			g.writeResponse(w, r, http.StatusRequestEntityTooLarge, g.exec.ErrorResponse(
				apperr.Validation("body", "request body exceeds %d bytes", tooLarge.Limit),
			))
			return
		}
		g.writeResponse(w, r, http.StatusBadRequest, g.exec.ErrorResponse(&apperr.Error{
			Kind:    apperr.KindValidation,
			Field:   "body",
			Message: "malformed request body",
			Err:     err,
		}))
		return
	}

	op, err := graph.Decode(req.OperationName, req.Variables)
	if err != nil {
		g.writeResponse(w, r, http.StatusBadRequest, g.exec.ErrorResponse(err))
		return
	}

	g.writeResponse(w, r, http.StatusOK, g.exec.Execute(r.Context(), req.OperationName, op))
}

func (g *GraphQL) writeResponse(w http.ResponseWriter, r *http.Request, status int, resp graph.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		g.encodeFailed(w, r, err)
		return
	}
	writeJSON(w, status, body)
}

func (g *GraphQL) encodeFailed(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("encode response failed", "error", err)
	body, _ := json.Marshal(g.exec.ErrorResponse(apperr.Internal("encode response", err)))
	writeJSON(w, http.StatusInternalServerError, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
