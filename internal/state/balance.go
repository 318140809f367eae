// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package state

import (
	"sync/atomic"
)

// Balance is the atomic counter whose sign tells producers and consumers which
// side of a blocking stack is ahead. It is incremented once per push and
// decremented once per pop, and never mutated otherwise.
//
// A positive value is the number of elements that have been promised to
// consumers but that may not have been linked into the element list yet. A
// negative value is the number of consumers that are committed to suspending
// and that no producer has yet been assigned to.
type Balance struct {
	v atomic.Int64
}

// Produce records one push. It returns true if the pre-increment value was
// negative, meaning that a consumer is already committed to suspending and the
// caller must hand its element directly to a suspended consumer instead of
// linking it into the list.
func (b *Balance) Produce() bool {
	return b.v.Add(1) <= 0
}

// Consume records one pop. It returns true if the pre-decrement value was zero
// or less, meaning that no element is guaranteed to be present and the caller
// must suspend.
func (b *Balance) Consume() bool {
	return b.v.Add(-1) < 0
}

// Load returns the current value. It is exact only when no push or pop is in
// flight.
func (b *Balance) Load() int64 {
	return b.v.Load()
}
