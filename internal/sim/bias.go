// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"

	"pgregory.net/rapid"
)

type BiasedIntConfig struct {
	Min int
	Med int
	Max int
}

func (c *BiasedIntConfig) Draw(t *rapid.T, name string) int {
	if c.Med < c.Min || c.Max < c.Med {
		panic(fmt.Sprint("invalid BiasedIntConfig:", *c))
	}
	// Generate a value in the range [min-med, max-med] instead of [min, max] to
	// take advantage of rapid's bias toward generating numbers near zero as
	// well as at the provided bounds.
	return c.Med + rapid.IntRange(c.Min-c.Med, c.Max-c.Med).Draw(t, name)
}
