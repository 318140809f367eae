// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

import (
	"github.com/petenewcomb/bstack-go/internal/sqs"
	"github.com/petenewcomb/bstack-go/internal/state"
)

// Stack is an unbounded concurrent LIFO stack whose [Stack.Pop] blocks while
// the stack is empty. All methods are safe for concurrent use. A Stack must be
// created with [New] or [NewWithConfig].
//
// Elements that are pushed while no consumer is waiting are buffered and
// popped in LIFO order. A push that finds a consumer waiting hands its element
// directly to the consumer that has been waiting longest, skipping the buffer.
//
// Neither buffered elements nor waiting consumers are bounded, so sustained
// one-sided load grows memory without limit.
type Stack[E any] struct {
	balance  state.Balance
	list     list[E]
	waiters  *sqs.Synchronizer[E]
	observer Observer
	step     func()
}

// New creates an empty [Stack] with the default configuration.
func New[E any]() *Stack[E] {
	s, err := NewWithConfig(Config[E]{})
	if err != nil {
		// Unreachable: the zero Config is always valid.
		panic(err)
	}
	return s
}

// NewWithConfig creates an empty [Stack] with the given configuration. See
// [Config] for the meaning of each field and its zero value.
func NewWithConfig[E any](cfg Config[E]) (*Stack[E], error) {
	waiters, err := sqs.New(sqs.Config[E]{
		SegmentSize:     cfg.SegmentSize,
		NewContinuation: cfg.NewContinuation,
		Step:            cfg.Step,
	})
	if err != nil {
		return nil, err
	}
	return &Stack[E]{
		waiters:  waiters,
		observer: cfg.Observer,
		step:     cfg.Step,
	}, nil
}

// Push adds element to the stack, or hands it to a waiting [Stack.Pop] if there
// is one. Push never blocks, though it may retry a bounded number of times
// under contention.
func (s *Stack[E]) Push(element E) {
	// A negative balance means some pop has committed to suspending without
	// touching the list, so we owe that pop our element.
	s.pause()
	if s.balance.Produce() {
		s.observe(EventHandedOff)
		s.waiters.Resume(element)
		return
	}

	n := &node[E]{element: element}
	for {
		s.pause()
		top := s.list.top()
		if top != nil && top.placeholder {
			// A pop that was promised an element found the list without one
			// and left a placeholder. Take it off and hand our element over.
			s.pause()
			if s.list.replaceTop(top, top.next) {
				s.observe(EventPlaceholderMatched)
				s.waiters.Resume(element)
				return
			}
			continue
		}
		n.next = top
		s.pause()
		if s.list.replaceTop(top, n) {
			s.observe(EventBuffered)
			return
		}
	}
}

// Pop removes and returns the most recently pushed element. If the stack is
// empty, Pop blocks until a [Stack.Push] hands it an element. Once blocked, Pop
// cannot be canceled.
func (s *Stack[E]) Pop() E {
	// A non-positive balance means no element is promised to us.
	s.pause()
	if s.balance.Consume() {
		s.observe(EventSuspended)
		return s.suspend()
	}

	// An element is promised to us, but its push may not have linked it yet.
	for {
		s.pause()
		top := s.list.top()
		if top != nil && !top.placeholder {
			s.pause()
			if s.list.replaceTop(top, top.next) {
				s.observe(EventPopped)
				return top.element
			}
			continue
		}
		// Either the list is empty or other promised pops are already waiting
		// on it. Record ourselves so that the push that owes us an element
		// finds something to match against, then wait for it.
		placeholder := &node[E]{placeholder: true, next: top}
		s.pause()
		if s.list.replaceTop(top, placeholder) {
			s.observe(EventPlaceholderPublished)
			return s.suspend()
		}
	}
}

func (s *Stack[E]) suspend() E {
	element := s.waiters.Suspend()
	s.observe(EventResumed)
	return element
}

// Len returns the number of elements that could be popped without blocking.
// The result is exact only when no push or pop is in flight.
func (s *Stack[E]) Len() int {
	return int(max(0, s.balance.Load()))
}

// Balance returns the raw balance counter: the number of buffered elements
// when positive, or the negated number of blocked pops that no push has yet
// been assigned to when negative. The result is exact only when no push or pop
// is in flight.
func (s *Stack[E]) Balance() int64 {
	return s.balance.Load()
}

func (s *Stack[E]) observe(e Event) {
	if s.observer != nil {
		s.observer.Observe(e)
	}
}

func (s *Stack[E]) pause() {
	if s.step != nil {
		s.step()
	}
}
