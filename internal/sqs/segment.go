// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sqs

import (
	"sync/atomic"

	"github.com/petenewcomb/bstack-go/internal/waitq"
)

type cellKind uint8

const (
	// The zero value is never stored: an empty cell is a nil pointer.
	_ cellKind = iota
	cellInstalled
	cellFulfilled
)

// cell is the content of one slot of a segment. A nil *cell is the empty
// state.
type cell[E any] struct {
	kind         cellKind
	continuation waitq.Continuation[E] // only for cellInstalled
}

type segment[E any] struct {
	cells []atomic.Pointer[cell[E]]
	next  atomic.Pointer[segment[E]]

	// Both indices only ever increase and may run past len(cells); an index at
	// or beyond len(cells) reserves nothing.
	enqIdx atomic.Int64
	deqIdx atomic.Int64
}

func newSegment[E any](size int) *segment[E] {
	return &segment[E]{
		cells: make([]atomic.Pointer[cell[E]], size),
	}
}

// drained reports whether every reserved cell has been claimed by a resumer.
func (s *segment[E]) drained() bool {
	return s.deqIdx.Load() >= s.enqIdx.Load()
}
