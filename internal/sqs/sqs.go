// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sqs contains a segment queue synchronizer: an unbounded FIFO queue of
// suspended callers built from a singly linked list of fixed-size segments.
// [Synchronizer.Suspend] blocks the caller until a value arrives and
// [Synchronizer.Resume] hands a value to the oldest caller still waiting.
//
// Each segment holds a small array of cells plus two indices. Callers reserve
// cells by incrementing the indices, so the only pointer CASes are on segment
// links, one per SegmentSize waiters. A cell moves from empty to installed
// (a waiter is parked in it) or from empty to fulfilled (a resumer got there
// first and the cell is dead), and from installed to fulfilled exactly once.
package sqs

import (
	"runtime"
	"sync/atomic"

	"github.com/petenewcomb/bstack-go/internal/cerr"
	"github.com/petenewcomb/bstack-go/internal/waitq"
)

// DefaultSegmentSize is the number of cells per segment when
// [Config.SegmentSize] is zero.
const DefaultSegmentSize = 4

// ErrInvalidSegmentSize is returned by [New] for a negative
// [Config.SegmentSize].
const ErrInvalidSegmentSize = cerr.Error("segment size must not be negative")

// goschedEvery bounds how long a retry loop may spin before yielding the
// processor to the goroutine it is waiting on.
const goschedEvery = 64

// Config holds the settings of a [Synchronizer]. The zero value is valid.
type Config[E any] struct {
	// SegmentSize is the number of cells per segment. Zero means
	// DefaultSegmentSize.
	SegmentSize int

	// NewContinuation creates the handle a suspending caller parks on. Nil
	// means [waitq.DefaultFactory].
	NewContinuation waitq.Factory[E]

	// Step, if not nil, is called before every atomic step. It exists so that
	// tests can interleave callers at the granularity of single atomics.
	Step func()
}

// Synchronizer is the queue itself. It must be created with [New].
type Synchronizer[E any] struct {
	size            int64
	newContinuation waitq.Factory[E]
	step            func()

	// fulfilled is shared by all cells of all segments; cells compare kinds,
	// not identities.
	fulfilled *cell[E]

	head atomic.Pointer[segment[E]]
	tail atomic.Pointer[segment[E]]
}

// New creates an empty synchronizer, or fails with [ErrInvalidSegmentSize].
func New[E any](cfg Config[E]) (*Synchronizer[E], error) {
	if cfg.SegmentSize < 0 {
		return nil, ErrInvalidSegmentSize
	}
	size := cfg.SegmentSize
	if size == 0 {
		size = DefaultSegmentSize
	}
	newContinuation := cfg.NewContinuation
	if newContinuation == nil {
		newContinuation = waitq.DefaultFactory[E]()
	}

	q := &Synchronizer[E]{
		size:            int64(size),
		newContinuation: newContinuation,
		step:            cfg.Step,
		fulfilled:       &cell[E]{kind: cellFulfilled},
	}

	// Start from a dummy segment with no cells filled rather than from nil, so
	// that Suspend and Resume never special-case an empty queue.
	dummy := newSegment[E](size)
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q, nil
}

// Suspend blocks until a matching call to Resume and returns the value passed
// to it. There is no timeout and no way to withdraw once suspended.
func (q *Synchronizer[E]) Suspend() E {
	c := q.newContinuation()
	if c == nil {
		panic("continuation factory returned nil")
	}
	installed := &cell[E]{kind: cellInstalled, continuation: c}

	var spins uint32
	for {
		q.pause()
		tail := q.tail.Load()
		q.pause()
		i := tail.enqIdx.Add(1) - 1
		switch {
		case i < q.size:
			// A resumer that reserved this index before us has already marked
			// the cell fulfilled, in which case the CAS fails and we move on
			// to a fresh index.
			q.pause()
			if tail.cells[i].CompareAndSwap(nil, installed) {
				return c.Await()
			}
		case i == q.size:
			// We reserved the boundary index, so it falls to us to append a
			// segment. Pre-seed it with ourselves to save the extra round
			// trip through the cell protocol.
			seg := newSegment[E](int(q.size))
			seg.cells[0].Store(installed)
			seg.enqIdx.Store(1)
			q.append(seg)
			return c.Await()
		default:
			// Someone else reserved the boundary index and is about to append
			// a segment. Wait for tail to move.
			backoff(&spins)
		}
	}
}

// append links seg after the last segment and swings tail to it.
func (q *Synchronizer[E]) append(seg *segment[E]) {
	for {
		q.pause()
		tail := q.tail.Load()
		q.pause()
		next := tail.next.Load()
		if next != nil {
			// Tail is lagging behind; help it along and retry.
			q.pause()
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		q.pause()
		if tail.next.CompareAndSwap(nil, seg) {
			q.pause()
			q.tail.CompareAndSwap(tail, seg)
			return
		}
	}
}

// Resume hands value to the oldest suspended caller. The caller must know that
// a matching Suspend has happened or will happen: Resume spins until it finds
// one.
func (q *Synchronizer[E]) Resume(value E) {
	var spins uint32
	for {
		q.pause()
		head := q.head.Load()
		q.pause()
		if head.drained() {
			q.pause()
			next := head.next.Load()
			if next == nil {
				// Either no waiter has reserved a cell yet, or the one that
				// reserved the boundary index has not linked its segment yet.
				backoff(&spins)
				continue
			}
			q.pause()
			q.head.CompareAndSwap(head, next)
			continue
		}

		q.pause()
		i := head.deqIdx.Add(1) - 1
		if i >= q.size {
			// A concurrent resumer claimed the last cell; head is drained now.
			continue
		}

		q.pause()
		prev := head.cells[i].Swap(q.fulfilled)
		if prev == nil {
			// The waiter that reserved this cell has not installed itself yet.
			// The cell is now dead for it, and it will reserve another; so do
			// we. This is a genuine busy-wait under contention.
			backoff(&spins)
			continue
		}
		if prev.kind != cellInstalled {
			panic("synchronizer cell fulfilled twice")
		}
		prev.continuation.Resume(value)
		return
	}
}

// Segments returns the number of segments reachable from head, including
// drained ones not yet unlinked. The result is only a snapshot.
func (q *Synchronizer[E]) Segments() int {
	n := 0
	for seg := q.head.Load(); seg != nil; seg = seg.next.Load() {
		n++
	}
	return n
}

func (q *Synchronizer[E]) pause() {
	if q.step != nil {
		q.step()
	}
}

func backoff(spins *uint32) {
	*spins++
	if *spins%goschedEvery == 0 {
		runtime.Gosched()
	}
}
