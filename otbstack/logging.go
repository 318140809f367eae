// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otbstack

import (
	"github.com/petenewcomb/bstack-go"
	"go.uber.org/zap"
)

// LoggingObserver returns an observer that writes one debug line per stack
// event to the global zap logger. The logger is looked up on every event, so
// a later [zap.ReplaceGlobals] takes effect immediately.
func LoggingObserver(name string) bstack.Observer {
	return bstack.ObserverFunc(func(e bstack.Event) {
		zap.L().Debug("Stack event",
			zap.String("stack", name),
			zap.String("component", "otbstack"),
			zap.Stringer("event", e),
			zap.Bool("waiting", e.Waiting()))
	})
}
