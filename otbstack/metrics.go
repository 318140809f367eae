// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otbstack

import (
	"context"

	"github.com/petenewcomb/bstack-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsObserver returns an observer that counts stack events in
// <name>.events, labeled by event, and tracks the number of blocked pops in
// <name>.waiters. Instruments come from the global meter provider at the time
// of the call.
func MetricsObserver(name string) bstack.Observer {
	meter := otel.GetMeterProvider().Meter("otbstack")
	events, _ := meter.Int64Counter(name+".events",
		metric.WithDescription("Stack operations by outcome"))
	waiters, _ := meter.Int64UpDownCounter(name+".waiters",
		metric.WithDescription("Pops blocked waiting for an element"))

	return bstack.ObserverFunc(func(e bstack.Event) {
		ctx := context.Background()
		events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", e.String())))
		if d := waitersDelta(e); d != 0 {
			waiters.Add(ctx, d)
		}
	})
}

// waitersDelta is the change in the number of blocked pops that e implies.
func waitersDelta(e bstack.Event) int64 {
	switch {
	case e.Waiting():
		return 1
	case e == bstack.EventResumed:
		return -1
	default:
		return 0
	}
}
