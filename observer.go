// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

// Event identifies which path a push or pop took through a [Stack].
type Event int

const (
	// EventBuffered means a push linked its element into the list.
	EventBuffered Event = iota + 1
	// EventHandedOff means a push found a consumer committed to waiting via
	// the balance counter and handed its element straight to a waiter.
	EventHandedOff
	// EventPlaceholderMatched means a push removed a placeholder left in the
	// list by a waiting consumer and handed its element to a waiter.
	EventPlaceholderMatched
	// EventPopped means a pop took an element off the list.
	EventPopped
	// EventSuspended means a pop found nothing promised by the balance
	// counter and parked.
	EventSuspended
	// EventPlaceholderPublished means a pop was promised an element that was
	// not yet in the list, recorded a placeholder there, and parked.
	EventPlaceholderPublished
	// EventResumed means a parked pop received its value.
	EventResumed
)

var eventNames = [...]string{
	EventBuffered:             "buffered",
	EventHandedOff:            "handed-off",
	EventPlaceholderMatched:   "placeholder-matched",
	EventPopped:               "popped",
	EventSuspended:            "suspended",
	EventPlaceholderPublished: "placeholder-published",
	EventResumed:              "resumed",
}

func (e Event) String() string {
	if e > 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Waiting reports whether the event marks a consumer starting to wait.
func (e Event) Waiting() bool {
	return e == EventSuspended || e == EventPlaceholderPublished
}

// An Observer is told about every event on the goroutine that caused it, while
// the push or pop is still in progress. Implementations must be safe for
// concurrent use and should return quickly.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the [Observer] interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// MultiObserver returns an [Observer] that forwards every event to each of the
// given observers in order. Nil observers are skipped.
func MultiObserver(observers ...Observer) Observer {
	var nonNil multiObserver
	for _, o := range observers {
		if o != nil {
			nonNil = append(nonNil, o)
		}
	}
	return nonNil
}

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}
