// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package waitq provides the suspend/resume capability that the synchronizer
// installs into its cells. A [Continuation] stands for exactly one blocked
// caller and carries exactly one value to it.
package waitq

import "github.com/petenewcomb/bstack-go/internal/cerr"

// ErrAlreadyResumed is the panic value raised when a continuation is resumed a
// second time.
const ErrAlreadyResumed = cerr.Error("continuation already resumed")

// A Continuation has the following lifecycle:
//
// 1. A [Factory] returns a fresh continuation that has been neither resumed nor
// awaited.
//
// 2a. Resume stores the value. A later Await returns it without blocking.
//
// 2b. Await blocks the calling goroutine. A later Resume, typically from
// another goroutine, unblocks it and Await returns the value.
//
// Resume must be called at most once and must never block, since it runs on
// the resumer's goroutine in the middle of a push. Await must be called at most
// once, by the goroutine the continuation was created for.
type Continuation[E any] interface {
	Resume(value E)
	Await() E
}

// Factory creates a new continuation for the calling goroutine.
type Factory[E any] func() Continuation[E]

// DefaultFactory returns a [Factory] producing channel-backed [Waiter] values.
func DefaultFactory[E any]() Factory[E] {
	return func() Continuation[E] {
		return NewWaiter[E]()
	}
}
