// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otbstack_test

import (
	"context"
	"fmt"
	"io"

	"github.com/petenewcomb/bstack-go/otbstack"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Example demonstrating a consumer that picks up the producer's trace
func Example_tracing() {
	// Spans are exported to io.Discard here; a real program would send them
	// to a collector.
	exporter, _ := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)
	defer tp.Shutdown(context.Background())

	ctx, rootSpan := otel.Tracer("example").Start(context.Background(), "handle-request")
	defer rootSpan.End()

	jobs := otbstack.Instrumented[string]("jobs")
	jobs.Push(ctx, "resize-image")
	jobs.Push(ctx, "send-email")
	fmt.Println("Processing", jobs.Pop(context.Background()))
	fmt.Println("Processing", jobs.Pop(context.Background()))

	// The stack is empty now, so this consumer waits for the next push.
	result := make(chan string)
	go func() {
		result <- jobs.Pop(context.Background())
	}()
	jobs.Push(ctx, "update-index")
	fmt.Println("Processing", <-result)
	fmt.Println("Left over:", jobs.Len())

	// Output:
	// Processing send-email
	// Processing resize-image
	// Processing update-index
	// Left over: 0
}
