// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bstack_test

import (
	"fmt"
	"sync"

	// Superfluous alias needed to work around
	// https://github.com/golang/go/issues/12794
	bstack "github.com/petenewcomb/bstack-go"
)

// Buffered elements come back most recent first.
func Example_lifo() {
	s := bstack.New[string]()
	s.Push("first")
	s.Push("second")
	s.Push("third")
	fmt.Println(s.Len(), "buffered")

	for s.Len() > 0 {
		fmt.Println(s.Pop())
	}

	// Output:
	// 3 buffered
	// third
	// second
	// first
}

// A consumer that finds the stack empty waits for the next push, which hands
// its element over directly.
func Example_handOff() {
	parked := make(chan struct{})
	s, err := bstack.NewWithConfig(bstack.Config[string]{
		Observer: bstack.ObserverFunc(func(e bstack.Event) {
			if e.Waiting() {
				close(parked)
			}
		}),
	})
	if err != nil {
		panic(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("received", s.Pop())
	}()

	<-parked
	fmt.Println("balance while waiting:", s.Balance())
	s.Push("hello")
	wg.Wait()
	fmt.Println("balance afterwards:", s.Balance())

	// Output:
	// balance while waiting: -1
	// received hello
	// balance afterwards: 0
}

// An observer sees which path every push and pop took.
func Example_observer() {
	s, err := bstack.NewWithConfig(bstack.Config[int]{
		Observer: bstack.ObserverFunc(func(e bstack.Event) {
			fmt.Println("event:", e)
		}),
	})
	if err != nil {
		panic(err)
	}
	s.Push(1)
	s.Push(2)
	fmt.Println(s.Pop())

	// Output:
	// event: buffered
	// event: buffered
	// event: popped
	// 2
}
