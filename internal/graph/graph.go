// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package graph is the protocol layer: it decodes named operations with
// JSON variables into typed calls, validates their arguments, dispatches
// them to the services and renders results and errors in a
// GraphQL-compatible response envelope.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"engagecms/internal/apperr"
	"engagecms/internal/logger"
	"engagecms/internal/metrics"
	"engagecms/internal/service"
)

// Request is a call as received from a client.
type Request struct {
	OperationName string          `json:"operationName"`
	Variables     json.RawMessage `json:"variables"`
}

// Response is the envelope returned for every call. Exactly one of Data
// and Errors is set.
type Response struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []Error        `json:"errors,omitempty"`
}

// Error is a single client-facing error.
type Error struct {
	Message    string     `json:"message"`
	Extensions Extensions `json:"extensions"`
}

// Extensions carries the machine-readable part of an Error.
type Extensions struct {
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
	// Detail holds the full error chain and is only set in development.
	Detail string `json:"detail,omitempty"`
}

// Options configures an Executor.
type Options struct {
	// Dev attaches error details to responses.
	Dev bool
	// Metrics, if set, records every executed operation.
	Metrics *metrics.Metrics
	// OnMutation, if set, is called after every successful mutation.
	OnMutation func(ctx context.Context, op string)
}

// Executor runs operations against the services.
type Executor struct {
	svc        *service.Services
	dev        bool
	metrics    *metrics.Metrics
	onMutation func(ctx context.Context, op string)
}

// NewExecutor returns an executor over svc.
func NewExecutor(svc *service.Services, opts Options) *Executor {
	return &Executor{
		svc:        svc,
		dev:        opts.Dev,
		metrics:    opts.Metrics,
		onMutation: opts.OnMutation,
	}
}

// Decode builds the operation called name from its JSON variables and
// validates the arguments. Unknown operations, unknown variables and
// invalid values are Validation errors.
func Decode(name string, variables json.RawMessage) (Operation, error) {
	op := newOperation(name)
	if op == nil {
		return nil, apperr.Validation("operationName", "unknown operation %q", name)
	}

	if vars := bytes.TrimSpace(variables); len(vars) > 0 && !bytes.Equal(vars, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(vars))
		dec.DisallowUnknownFields()
		if err := dec.Decode(op); err != nil {
			return nil, decodeError(err)
		}
	}

	if err := validateArgs(op); err != nil {
		return nil, err
	}
	return op, nil
}

// IsMutation reports whether name is a known mutation.
func IsMutation(name string) bool {
	op := newOperation(name)
	return op != nil && op.Mutation()
}

// Execute runs op and wraps its result under name.
func (e *Executor) Execute(ctx context.Context, name string, op Operation) Response {
	start := time.Now()
	result, err := op.execute(ctx, e.svc)
	took := time.Since(start)

	log := logger.FromContext(ctx)
	code := "OK"
	if err != nil {
		code = apperr.KindOf(err).String()
		level := slog.LevelInfo
		if apperr.KindOf(err) == apperr.KindInternal {
			level = slog.LevelError
		}
		log.Log(ctx, level, "operation failed", "operation", name, "code", code, "error", err)
	} else {
		log.Debug("operation executed", "operation", name, "duration", took)
	}
	if e.metrics != nil {
		e.metrics.ObserveOperation(name, code, took)
	}

	if err != nil {
		return e.ErrorResponse(err)
	}
	if op.Mutation() && e.onMutation != nil {
		e.onMutation(ctx, name)
	}
	return Response{Data: map[string]any{name: result}}
}

// Run decodes and executes req.
func (e *Executor) Run(ctx context.Context, req Request) Response {
	op, err := Decode(req.OperationName, req.Variables)
	if err != nil {
		return e.ErrorResponse(err)
	}
	return e.Execute(ctx, req.OperationName, op)
}

// ErrorResponse renders err as a response. Internal errors only expose a
// generic message unless the executor runs in development mode.
func (e *Executor) ErrorResponse(err error) Response {
	out := Error{
		Message:    apperr.PublicMessage(err),
		Extensions: Extensions{Code: apperr.KindOf(err).String()},
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		out.Extensions.Field = ae.Field
	}
	if e.dev {
		out.Extensions.Detail = err.Error()
	}
	return Response{Errors: []Error{out}}
}

// Failed reports whether r carries errors.
func (r Response) Failed() bool { return len(r.Errors) > 0 }

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "variables"
		}
		return apperr.Validation(field, "%s must be of type %s", field, typeErr.Type)
	}
	return &apperr.Error{
		Kind:    apperr.KindValidation,
		Field:   "variables",
		Message: fmt.Sprintf("invalid variables: %v", err),
		Err:     err,
	}
}
