// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otbstack

import (
	"github.com/petenewcomb/bstack-go"
)

// Instrumented creates a stack with tracing, metrics, and logging applied in
// one step. Metrics and log lines are tagged with name, as are span names.
func Instrumented[E any](name string) *TracedStack[E] {
	s, err := InstrumentedWithConfig(name, bstack.Config[PropagatedValue[E]]{})
	if err != nil {
		// Unreachable: the zero Config is always valid.
		panic(err)
	}
	return s
}

// InstrumentedWithConfig is like [Instrumented] but starts from cfg. The
// logging and metrics observers are added alongside any observer cfg already
// names.
func InstrumentedWithConfig[E any](name string, cfg bstack.Config[PropagatedValue[E]]) (*TracedStack[E], error) {
	cfg.Observer = bstack.MultiObserver(
		cfg.Observer,
		LoggingObserver(name),
		MetricsObserver(name),
	)
	stack, err := bstack.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewTracedStack(name, stack), nil
}
