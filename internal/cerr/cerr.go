// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr provides a string-backed error type so that sentinel errors can
// be declared as constants and compared with [errors.Is].
package cerr

type Error string

func (e Error) Error() string {
	return string(e)
}
