// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"cmp"

	"github.com/addrummond/heap"
	"pgregory.net/rapid"
)

// Op is one operation to run as an actor.
type Op struct {
	Name string
	Func func()
}

// Scheduler grants control to one actor at a time. Its Step method is meant to
// be installed as the step hook of the structure under test, and
// [Continuations] as its continuation factory, so that the scheduler can see
// every point at which an actor may be preempted or parked.
//
// Only Run and the methods it calls touch rapid, always from the goroutine that
// called Run.
type Scheduler struct {
	t      *rapid.T
	config *Config

	msgs    chan message
	running *actor
	now     int
	grants  int
	events  heap.Heap[actorEvent, heap.Min]
	ready   []actorEvent
	actors  []*actor
	live    int
}

type actor struct {
	name  string
	grant chan struct{}

	// Owned by the scheduler goroutine.
	blocked bool
	woken   bool
	done    bool
}

type messageKind int

const (
	msgStep messageKind = iota
	msgBlock
	msgWake
	msgDone
)

type message struct {
	kind  messageKind
	actor *actor
}

type actorEvent struct {
	Time  int
	Actor *actor
}

func (a *actorEvent) Cmp(b *actorEvent) int {
	return cmp.Compare(a.Time, b.Time)
}

func NewScheduler(t *rapid.T, config *Config) *Scheduler {
	if config == nil {
		config = &DefaultConfig
	}
	if config.Delay.Min < 1 {
		panic("minimum delay must be at least one")
	}
	return &Scheduler{
		t:      t,
		config: config,
		msgs:   make(chan message),
	}
}

// Step yields control from the running actor back to the scheduler and blocks
// until the scheduler grants it control again. Outside of Run, or when called
// by a goroutine that is not an actor, it does nothing.
func (s *Scheduler) Step() {
	a := s.running
	if a == nil {
		return
	}
	s.msgs <- message{kind: msgStep, actor: a}
	<-a.grant
}

// Run starts one actor per op and schedules them, together with any actors
// left parked by earlier calls, until all have finished or none can make
// progress. It returns the names of the actors still parked on a continuation
// that nothing has resumed. A later Run may resume them; otherwise their
// goroutines are abandoned.
func (s *Scheduler) Run(ops ...Op) []string {
	for _, op := range ops {
		a := &actor{
			name:  op.Name,
			grant: make(chan struct{}),
		}
		s.actors = append(s.actors, a)
		go func() {
			<-a.grant
			op.Func()
			s.msgs <- message{kind: msgDone, actor: a}
		}()
		s.schedule(a)
	}
	s.live += len(ops)

	for s.live > 0 {
		e, ok := s.next()
		if !ok {
			break
		}
		s.grants++
		if s.grants > s.config.MaxSteps {
			s.t.Fatalf("no completion after %d steps; livelock?", s.config.MaxSteps)
		}
		s.now = e.Time
		s.running = e.Actor
		if s.config.Debug {
			s.t.Logf("%d: granting %s", s.now, e.Actor.name)
		}
		e.Actor.grant <- struct{}{}
		s.awaitYield()
	}

	var stuck []string
	for _, a := range s.actors {
		if !a.done {
			stuck = append(stuck, a.name)
		}
	}
	return stuck
}

// Now returns the current virtual time.
func (s *Scheduler) Now() int {
	return s.now
}

// awaitYield processes messages until the running actor gives up control.
func (s *Scheduler) awaitYield() {
	for {
		m := <-s.msgs
		a := m.actor
		switch m.kind {
		case msgWake:
			// The running actor resumed a parked one and keeps running.
			if a.blocked {
				a.blocked = false
				s.schedule(a)
			} else {
				a.woken = true
			}
			continue
		case msgStep:
			s.schedule(a)
		case msgBlock:
			if a.woken {
				a.woken = false
				s.schedule(a)
			} else {
				a.blocked = true
			}
		case msgDone:
			a.done = true
			s.live--
		}
		s.running = nil
		return
	}
}

func (s *Scheduler) schedule(a *actor) {
	delay := s.config.Delay.Draw(s.t, "delay")
	heap.PushOrderable(&s.events, actorEvent{
		Time:  s.now + delay,
		Actor: a,
	})
}

// next returns the next actor to run. Actors that wake at the same virtual
// time are released in an order drawn by rapid.
func (s *Scheduler) next() (actorEvent, bool) {
	if len(s.ready) == 0 {
		e, ok := heap.PopOrderable(&s.events)
		if !ok {
			return actorEvent{}, false
		}
		s.ready = append(s.ready, e)
		for {
			e, ok = heap.Peek(&s.events)
			if !ok || e.Time != s.ready[0].Time {
				break
			}
			_, _ = heap.PopOrderable(&s.events)
			s.ready = append(s.ready, e)
		}
		if len(s.ready) > 1 {
			s.ready = rapid.Permutation(s.ready).Draw(s.t, "ties")
		}
	}
	e := s.ready[0]
	s.ready = s.ready[1:]
	return e, true
}
