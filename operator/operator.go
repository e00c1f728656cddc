// Copyright 2026 The CSV Relic Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package operator defines the pull-based open/next/close contract
// (§4.1) shared by every node in an operator tree, and the execution
// Context threaded through it.
package operator

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"

	"github.com/csvrelic/queryengine/internal/trace"
	"github.com/csvrelic/queryengine/value"
)

// EOS is the terminal marker returned by Next to signal exhaustion.
// It is io.EOF so operators compose naturally with Go's own streaming
// idioms; Next must be idempotent and keep returning EOS afterward.
var EOS = io.EOF

// Context carries the ambient facilities an operator may consult
// while pulling rows: a cancellable context.Context, a trace Hook, and
// an opentracing Tracer for per-operator spans. It does not carry
// session/user state — the core has no notion of a session (§1
// Non-goals: multi-user isolation).
type Context struct {
	context.Context
	Hook   trace.Hook
	Tracer opentracing.Tracer
}

// NewContext builds a Context with sane defaults: a no-op trace hook
// and opentracing's NoopTracer, matching the teacher's own default
// wiring in server/handler_linux_test.go.
func NewContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Context: ctx,
		Hook:    trace.NoopHook{},
		Tracer:  opentracing.NoopTracer{},
	}
}

// WithHook returns a shallow copy of c using the given trace hook.
func (c *Context) WithHook(h trace.Hook) *Context {
	cp := *c
	cp.Hook = h
	return &cp
}

// WithTracer returns a shallow copy of c using the given tracer.
func (c *Context) WithTracer(t opentracing.Tracer) *Context {
	cp := *c
	cp.Tracer = t
	return &cp
}

// Stopped reports whether the underlying context.Context has been
// cancelled. Operators should check this at iteration boundaries and
// return EOS promptly (§5 "Cancellation").
func (c *Context) Stopped() bool {
	select {
	case <-c.Done():
		return true
	default:
		return false
	}
}

// Operator is the pull-based iterator contract every tree node
// implements (§4.1).
type Operator interface {
	// Open acquires resources and prepares state, propagating to
	// children. Must be called exactly once before the first Next.
	Open(ctx *Context) error
	// Next returns the next row in output order, or EOS. Must not be
	// called before Open or after Close, and must keep returning EOS
	// once reached.
	Next(ctx *Context) (value.Tuple, error)
	// Close releases resources, propagating to children. Must be
	// called exactly once, after the terminal is reached or the
	// caller abandons the stream.
	Close(ctx *Context) error
	// Schema returns this operator's output schema, a deterministic
	// function of its inputs and parameters (§3).
	Schema() value.Schema
	// Name identifies the operator kind for tracing and plan-printing.
	Name() string
}

// Span starts a span named "operator.method" on ctx's Tracer (a no-op
// span under the default NoopTracer). The span has no parent; spans of
// nested operators are not linked to one another. Callers must call
// the returned finish function regardless.
func Span(ctx *Context, operatorName, method string) func() {
	if ctx == nil || ctx.Tracer == nil {
		return func() {}
	}
	span := ctx.Tracer.StartSpan(operatorName + "." + method)
	return span.Finish
}
