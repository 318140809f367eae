// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package bstack provides a concurrent LIFO stack whose Pop blocks on an empty
// stack and is completed by a direct hand-off from a later Push, rather than by
// waking the consumer to re-check shared state.
//
// A [Stack] combines three lock-free structures. An atomic balance counter,
// incremented by every push and decremented by every pop, lets each call decide
// in a single atomic step whether it is on the fast path (a buffered element
// is available, or a consumer is waiting for one) without allocating. A
// Treiber-style linked list holds the buffered elements, and may also hold
// placeholder nodes that record consumers which lost a race against the
// counter. A segment queue synchronizer parks the waiting consumers in FIFO
// order and delivers each one exactly one value.
//
// Buffered elements are popped in LIFO order. Consumers that had to wait are
// matched in the order in which they parked. There is no bound on the number
// of buffered elements or waiting consumers, and a consumer blocked in
// [Stack.Pop] cannot be canceled: it waits until some push matches it.
package bstack
