// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package state_test

import (
	"testing"

	"github.com/petenewcomb/bstack-go/internal/state"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBalanceBasics(t *testing.T) {
	chk := require.New(t)
	var b state.Balance
	chk.Equal(int64(0), b.Load())

	// A pop on an empty balance must suspend.
	chk.True(b.Consume())
	chk.Equal(int64(-1), b.Load())

	// The next push owes that consumer a hand-off.
	chk.True(b.Produce())
	chk.Equal(int64(0), b.Load())

	// Now the balance is neutral again, so a push buffers its element.
	chk.False(b.Produce())
	chk.Equal(int64(1), b.Load())

	// And a pop finds it.
	chk.False(b.Consume())
	chk.Equal(int64(0), b.Load())
}

// TestBalanceWithRapid checks the counter against a pair of model counts: the
// number of buffered elements and the number of suspended consumers.
func TestBalanceWithRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var b state.Balance
		var buffered, waiting int64

		t.Repeat(map[string]func(*rapid.T){
			"produce": func(t *rapid.T) {
				handoff := b.Produce()
				if waiting > 0 {
					require.True(t, handoff, "push must hand off while consumers wait")
					waiting--
				} else {
					require.False(t, handoff, "push must buffer when nobody waits")
					buffered++
				}
			},
			"consume": func(t *rapid.T) {
				suspend := b.Consume()
				if buffered > 0 {
					require.False(t, suspend, "pop must not suspend while elements are buffered")
					buffered--
				} else {
					require.True(t, suspend, "pop must suspend when nothing is buffered")
					waiting++
				}
			},
			"": func(t *rapid.T) {
				require.Equal(t, buffered-waiting, b.Load())
				require.True(t, buffered == 0 || waiting == 0)
			},
		})
	})
}
