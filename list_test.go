// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestListPlaceholdersStayOnTop(t *testing.T) {
	chk := require.New(t)
	var l list[int]

	chk.Nil(l.top())
	first := &node[int]{placeholder: true}
	chk.True(l.replaceTop(nil, first))
	second := &node[int]{placeholder: true, next: first}
	chk.True(l.replaceTop(first, second))
	chk.False(l.replaceTop(first, nil), "stale top must not be replaced")

	elements, placeholders := l.count()
	chk.Equal(0, elements)
	chk.Equal(2, placeholders)
}

// TestBalanceMatchesListWhenQuiescent checks that, whenever no push or pop is
// in flight, the balance counter equals the number of real elements in the list
// and no placeholders are left over.
func TestBalanceMatchesListWhenQuiescent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New[int]()
		workers := rapid.IntRange(1, 4).Draw(t, "workers")
		rounds := rapid.IntRange(1, 5).Draw(t, "rounds")

		for round := range rounds {
			pushes := rapid.IntRange(0, 50).Draw(t, "pushes")
			// Never pop more than will have been pushed so that every pop
			// completes and the round ends quiescent.
			pops := rapid.IntRange(0, s.Len()+pushes*workers).Draw(t, "pops")

			var wg sync.WaitGroup
			for w := range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range pushes {
						s.Push(round*1_000_000 + w*1_000 + i)
						if i%7 == 0 {
							runtime.Gosched()
						}
					}
				}()
			}
			var popWg sync.WaitGroup
			for range pops {
				popWg.Add(1)
				go func() {
					defer popWg.Done()
					s.Pop()
				}()
			}
			wg.Wait()
			popWg.Wait()

			elements, placeholders := s.list.count()
			require.Equal(t, 0, placeholders, "placeholders left after round %d", round)
			require.Equal(t, int64(elements), s.Balance(), "balance does not match list after round %d", round)
			require.Equal(t, elements, s.Len())
		}
	})
}
