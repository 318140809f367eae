// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otbstack provides OpenTelemetry and zap integration for bstack. It
// carries the trace context of each push along with its element, so that the
// pop that eventually receives the element can link back to it no matter
// whether the element was buffered or handed off.
package otbstack

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// PropagatedValue wraps an element with the trace context of the push that
// produced it.
type PropagatedValue[E any] struct {
	// Value is the element as pushed.
	Value E
	// TraceContext identifies the span that was current when Value was pushed.
	TraceContext trace.SpanContext
}

// Propagate captures the span context current in ctx alongside v.
func Propagate[E any](ctx context.Context, v E) PropagatedValue[E] {
	return PropagatedValue[E]{
		Value:        v,
		TraceContext: trace.SpanFromContext(ctx).SpanContext(),
	}
}

// ContextWithPusher returns a copy of ctx whose remote span context is that of
// the push that produced pv, so that spans started from it continue the
// pusher's trace. If pv carries no valid span context, ctx is returned as is.
func ContextWithPusher[E any](ctx context.Context, pv PropagatedValue[E]) context.Context {
	if !pv.TraceContext.IsValid() {
		return ctx
	}
	return trace.ContextWithRemoteSpanContext(ctx, pv.TraceContext)
}
