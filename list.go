// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack

import (
	"sync/atomic"
)

// node is either a real element or a placeholder standing for a consumer that
// is waiting for a direct hand-off. Its next link is fixed once the node has
// been published as the top of a list.
type node[E any] struct {
	element     E
	placeholder bool
	next        *node[E]
}

// list is a Treiber stack of nodes. Placeholders only ever sit above all real
// elements: they are pushed only onto an empty list or onto another
// placeholder, and a real element is pushed only onto a non-placeholder.
//
// Nodes are never reused, so a successful CAS on head always means that head
// was not changed since it was loaded.
type list[E any] struct {
	head atomic.Pointer[node[E]]
}

func (l *list[E]) top() *node[E] {
	return l.head.Load()
}

func (l *list[E]) replaceTop(old, new *node[E]) bool {
	return l.head.CompareAndSwap(old, new)
}

// count walks the list. It is only meaningful when no push or pop is in
// flight.
func (l *list[E]) count() (elements, placeholders int) {
	for n := l.head.Load(); n != nil; n = n.next {
		if n.placeholder {
			placeholders++
		} else {
			elements++
		}
	}
	return elements, placeholders
}
