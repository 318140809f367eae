// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package waitq_test

import (
	"testing"

	"github.com/petenewcomb/bstack-go/internal/waitq"
	"github.com/stretchr/testify/require"
)

func factories() map[string]waitq.Factory[int] {
	return map[string]waitq.Factory[int]{
		"Waiter":     waitq.DefaultFactory[int](),
		"CondWaiter": waitq.CondFactory[int](),
	}
}

func TestResumeBeforeAwait(t *testing.T) {
	for name, newContinuation := range factories() {
		t.Run(name, func(t *testing.T) {
			c := newContinuation()
			c.Resume(42)
			require.Equal(t, 42, c.Await())
		})
	}
}

func TestResumeAfterAwait(t *testing.T) {
	for name, newContinuation := range factories() {
		t.Run(name, func(t *testing.T) {
			c := newContinuation()
			got := make(chan int)
			go func() {
				got <- c.Await()
			}()
			c.Resume(9)
			require.Equal(t, 9, <-got)
		})
	}
}

func TestDoubleResumePanics(t *testing.T) {
	for name, newContinuation := range factories() {
		t.Run(name, func(t *testing.T) {
			c := newContinuation()
			c.Resume(1)
			require.PanicsWithValue(t, waitq.ErrAlreadyResumed, func() {
				c.Resume(2)
			})
			require.Equal(t, 1, c.Await())
		})
	}
}
