// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package waitq

import (
	"sync"
	"sync/atomic"
)

// Waiter is a [Continuation] backed by a channel with a buffer length of one,
// so that Resume never blocks even when it wins the race against Await.
type Waiter[E any] struct {
	resumed atomic.Bool
	valueCh chan E
}

func NewWaiter[E any]() *Waiter[E] {
	return &Waiter[E]{
		valueCh: make(chan E, 1),
	}
}

func (w *Waiter[E]) Resume(value E) {
	if !w.resumed.CompareAndSwap(false, true) {
		panic(ErrAlreadyResumed)
	}
	// Cannot block: the buffer is empty until this send.
	w.valueCh <- value
}

func (w *Waiter[E]) Await() E {
	return <-w.valueCh
}

// CondWaiter is a [Continuation] that parks the awaiting goroutine on a
// [sync.Cond]. It exists for callers that want a parked-thread handle rather
// than a channel, and to keep the synchronizer honest about depending only on
// the Continuation contract.
type CondWaiter[E any] struct {
	mu      sync.Mutex
	cond    sync.Cond
	resumed bool
	value   E
}

func NewCondWaiter[E any]() *CondWaiter[E] {
	w := &CondWaiter[E]{}
	w.cond.L = &w.mu
	return w
}

// CondFactory returns a [Factory] producing [CondWaiter] values.
func CondFactory[E any]() Factory[E] {
	return func() Continuation[E] {
		return NewCondWaiter[E]()
	}
}

func (w *CondWaiter[E]) Resume(value E) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.resumed {
		panic(ErrAlreadyResumed)
	}
	w.resumed = true
	w.value = value
	w.cond.Signal()
}

func (w *CondWaiter[E]) Await() E {
	w.mu.Lock()
	defer w.mu.Unlock()
	for !w.resumed {
		w.cond.Wait()
	}
	value := w.value
	// Release the reference so the value can be collected along with the
	// caller's copy.
	var zero E
	w.value = zero
	return value
}
