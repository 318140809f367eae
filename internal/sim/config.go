// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

var DefaultConfig = Config{
	Delay:    BiasedIntConfig{Min: 1, Med: 1, Max: 8},
	MaxSteps: 20_000,
}

type Config struct {
	// Delay is the distribution of virtual time an actor sleeps at each step.
	// Min must be at least one so that a spinning actor cannot starve the
	// actor it is waiting on.
	Delay BiasedIntConfig

	// MaxSteps bounds the number of grants in a single Run. Exceeding it fails
	// the test as a livelock.
	MaxSteps int

	Debug bool
}
