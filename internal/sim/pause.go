// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"runtime"
	"time"

	"github.com/valyala/fastrand"
)

// RandomPause returns a step hook for free-running goroutines, as opposed to
// actors of a [Scheduler]. At each step it yields the processor with
// probability 1/yieldOneIn and sleeps for a microsecond with probability
// 1/sleepOneIn, widening the windows between atomic steps in which other
// goroutines can interfere. A zero argument disables that kind of pause.
func RandomPause(yieldOneIn, sleepOneIn uint32) func() {
	return func() {
		switch {
		case sleepOneIn > 0 && fastrand.Uint32n(sleepOneIn) == 0:
			time.Sleep(time.Microsecond)
		case yieldOneIn > 0 && fastrand.Uint32n(yieldOneIn) == 0:
			runtime.Gosched()
		}
	}
}
