// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

import (
	"github.com/petenewcomb/bstack-go/internal/sqs"
	"github.com/petenewcomb/bstack-go/internal/waitq"
)

// ErrInvalidSegmentSize is returned by [NewWithConfig] for a negative
// [Config.SegmentSize].
const ErrInvalidSegmentSize = sqs.ErrInvalidSegmentSize

// ErrAlreadyResumed is the panic value raised by the built-in continuations
// when resumed twice. Custom continuations are encouraged to use it too.
const ErrAlreadyResumed = waitq.ErrAlreadyResumed
