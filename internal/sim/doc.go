// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim provides a discrete-event scheduler for exploring the
// interleavings of concurrent operations on lock-free structures. Each
// operation runs in its own goroutine, called an actor, but only one actor runs
// at a time. An actor gives up control at every step hook, when it parks on a
// continuation, and when it finishes; the scheduler then resumes whichever
// runnable actor has the earliest virtual wake time. Wake times and
// tie-breaking orders are drawn with rapid, so failing interleavings shrink to
// minimal ones.
package sim
