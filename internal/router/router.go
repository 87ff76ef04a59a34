// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and the middleware chain of the
// engagecms API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"engagecms/internal/auth"
	"engagecms/internal/handlers"
	"engagecms/internal/middleware"
)

// Deps are the handlers and collaborators the router wires together.
type Deps struct {
	GraphQL *handlers.GraphQL
	Health  http.Handler
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Resolver turns bearer tokens into viewers. Nil disables
	// authentication.
	Resolver auth.Resolver
	// Timeout bounds every operation. Zero disables it.
	Timeout time.Duration
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Method(http.MethodGet, "/health", d.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/graphql", func(r chi.Router) {
		if d.Timeout > 0 {
			r.Use(middleware.Timeout(d.Timeout))
		}
		r.Use(middleware.Authenticate(d.Resolver))

		r.Get("/", d.GraphQL.Get)
		r.Post("/", d.GraphQL.Post)
	})

	return r
}
