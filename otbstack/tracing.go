// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otbstack

import (
	"context"
	"time"

	"github.com/petenewcomb/bstack-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracedStack is a [bstack.Stack] whose pushes and pops are recorded as spans.
// Each pop span is linked to the span of the push whose element it received.
type TracedStack[E any] struct {
	name  string
	stack *bstack.Stack[PropagatedValue[E]]
}

// NewTracedStack wraps stack. Span names are derived from name.
func NewTracedStack[E any](name string, stack *bstack.Stack[PropagatedValue[E]]) *TracedStack[E] {
	return &TracedStack[E]{
		name:  name,
		stack: stack,
	}
}

// Push pushes v within a span that becomes the trace context carried by v.
func (s *TracedStack[E]) Push(ctx context.Context, v E) {
	ctx, span := otel.Tracer("otbstack").Start(ctx, s.name+".push")
	defer span.End()
	s.stack.Push(Propagate(ctx, v))
}

// Pop pops an element, blocking like [bstack.Stack.Pop]. The span it records
// covers the wait and is linked to the pusher's span. The span is started
// only once the element has arrived, since links must be known up front.
func (s *TracedStack[E]) Pop(ctx context.Context) E {
	start := time.Now()
	pv := s.stack.Pop()

	opts := []trace.SpanStartOption{
		trace.WithTimestamp(start),
		trace.WithAttributes(attribute.String("component", "otbstack")),
	}
	if pv.TraceContext.IsValid() {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: pv.TraceContext}))
	}
	_, span := otel.Tracer("otbstack").Start(ctx, s.name+".pop", opts...)
	span.End()
	return pv.Value
}

// Len returns the number of elements that could be popped without blocking.
func (s *TracedStack[E]) Len() int {
	return s.stack.Len()
}

// Unwrap returns the underlying stack.
func (s *TracedStack[E]) Unwrap() *bstack.Stack[PropagatedValue[E]] {
	return s.stack
}
