// Package thread pins SDL and OpenGL calls to the main OS thread.
// SDL event polling and GL contexts are bound to the thread that created them,
// so every call into those libraries goes through Call.
// See: https://github.com/golang/go/wiki/LockOSThread
package thread

import "github.com/faiface/mainthread"

// Wrap runs f in a separate goroutine while the main thread serves
// the queued Call functions. Wrap returns when f returns.
// Must be called from the main function.
func Wrap(f func()) { mainthread.Run(f) }

// Call executes f on the main thread and blocks until it finishes.
func Call(f func()) { mainthread.Call(f) }

// CallErr executes f on the main thread and returns its error.
func CallErr(f func() error) error { return mainthread.CallErr(f) }
