// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"github.com/petenewcomb/bstack-go/internal/waitq"
)

// Continuations returns a continuation factory whose continuations park the
// running actor with the scheduler instead of blocking its goroutine
// independently. Continuations must be created by actors.
func Continuations[E any](s *Scheduler) waitq.Factory[E] {
	return func() waitq.Continuation[E] {
		a := s.running
		if a == nil {
			panic("continuation created outside of an actor")
		}
		return &continuation[E]{s: s, owner: a}
	}
}

type continuation[E any] struct {
	s       *Scheduler
	owner   *actor
	resumed bool
	value   E
}

// Resume is called by the running actor. The owner becomes runnable but does
// not run until the scheduler grants it control.
func (c *continuation[E]) Resume(value E) {
	if c.resumed {
		panic(waitq.ErrAlreadyResumed)
	}
	c.resumed = true
	c.value = value
	c.s.msgs <- message{kind: msgWake, actor: c.owner}
}

// Await parks the owner until it has been resumed and granted control.
func (c *continuation[E]) Await() E {
	c.s.msgs <- message{kind: msgBlock, actor: c.owner}
	<-c.owner.grant
	return c.value
}
