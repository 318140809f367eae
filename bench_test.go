// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/petenewcomb/bstack-go"
)

// blockingLIFO is what the benchmarks compare against.
type blockingLIFO interface {
	Push(int)
	Pop() int
}

// mutexStack is a slice guarded by a mutex, with a condition variable for
// pops that find it empty.
type mutexStack struct {
	mu       sync.Mutex
	nonEmpty sync.Cond
	elements []int
}

func newMutexStack() *mutexStack {
	s := &mutexStack{}
	s.nonEmpty.L = &s.mu
	return s
}

func (s *mutexStack) Push(v int) {
	s.mu.Lock()
	s.elements = append(s.elements, v)
	s.mu.Unlock()
	s.nonEmpty.Signal()
}

func (s *mutexStack) Pop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.elements) == 0 {
		s.nonEmpty.Wait()
	}
	v := s.elements[len(s.elements)-1]
	s.elements = s.elements[:len(s.elements)-1]
	return v
}

// chanQueue is FIFO rather than LIFO; it is here as the floor for what a
// blocking hand-off costs in Go.
type chanQueue chan int

func (q chanQueue) Push(v int) { q <- v }
func (q chanQueue) Pop() int   { return <-q }

// BenchmarkThroughput runs the given number of producer/consumer pairs, each
// producer pushing and each consumer popping b.N elements in total between
// them. The completed/s metric counts pops.
func BenchmarkThroughput(b *testing.B) {
	impls := []struct {
		name string
		new  func() blockingLIFO
	}{
		{"mutex", func() blockingLIFO { return newMutexStack() }},
		{"channel", func() blockingLIFO { return make(chanQueue, 1024) }},
		{"bstack", func() blockingLIFO { return bstack.New[int]() }},
		{"bstack-cond", func() blockingLIFO {
			s, err := bstack.NewWithConfig(bstack.Config[int]{
				NewContinuation: bstack.CondContinuations[int](),
			})
			if err != nil {
				panic(err)
			}
			return s
		}},
	}
	for _, pairs := range []int{1, 2, 4, 8, 16} {
		for _, impl := range impls {
			b.Run(fmt.Sprintf("impl=%s/pairs=%d", impl.name, pairs), func(b *testing.B) {
				b.ReportAllocs()
				s := impl.new()
				var produced, consumed atomic.Int64
				var wg sync.WaitGroup
				b.ResetTimer()
				for range pairs {
					wg.Add(2)
					go func() {
						defer wg.Done()
						for produced.Add(1) <= int64(b.N) {
							s.Push(1)
						}
					}()
					go func() {
						defer wg.Done()
						for consumed.Add(1) <= int64(b.N) {
							s.Pop()
						}
					}()
				}
				wg.Wait()
				b.StopTimer()
				b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "completed/s")
			})
		}
	}
}
