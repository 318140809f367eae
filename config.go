// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

import (
	"github.com/petenewcomb/bstack-go/internal/sqs"
	"github.com/petenewcomb/bstack-go/internal/waitq"
)

// A Continuation is the handle a consumer parks on while it waits in
// [Stack.Pop] for a producer to hand it a value. Resume is called exactly once,
// from the producer's goroutine, and must not block. Await is called at most
// once, from the consumer's goroutine, and blocks until Resume has been called.
type Continuation[E any] = waitq.Continuation[E]

// A ContinuationFactory creates a fresh [Continuation] for the calling
// goroutine. It is the suspend/resume capability a [Stack] is built on.
type ContinuationFactory[E any] = waitq.Factory[E]

// ChannelContinuations returns the default [ContinuationFactory], which parks
// consumers on a channel receive.
func ChannelContinuations[E any]() ContinuationFactory[E] {
	return waitq.DefaultFactory[E]()
}

// CondContinuations returns a [ContinuationFactory] that parks consumers on a
// [sync.Cond].
func CondContinuations[E any]() ContinuationFactory[E] {
	return waitq.CondFactory[E]()
}

// DefaultSegmentSize is the number of waiter slots allocated at a time when
// [Config.SegmentSize] is zero.
const DefaultSegmentSize = sqs.DefaultSegmentSize

// Config holds the optional settings of a [Stack]. The zero value selects the
// defaults for every field.
type Config[E any] struct {
	// SegmentSize is the number of waiter slots the stack allocates at a time
	// when consumers queue up. Zero means [DefaultSegmentSize]; negative values
	// are rejected.
	SegmentSize int

	// NewContinuation supplies the handles that waiting consumers park on. Nil
	// means [ChannelContinuations].
	NewContinuation ContinuationFactory[E]

	// Observer, if not nil, is told which path every push and pop took.
	Observer Observer

	// Step, if not nil, is called immediately before every atomic operation
	// performed by Push and Pop, including those inside the waiter queue. It is
	// meant for tests that need to pause or reorder goroutines between atomic
	// steps, and should be left nil otherwise.
	Step func()
}
