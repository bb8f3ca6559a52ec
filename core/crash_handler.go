package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Finisher is a display that must be restored before a crash report is printed
type Finisher interface {
	Fini()
}

type finisherBox struct {
	f Finisher
}

var crashTerminal atomic.Pointer[finisherBox]

// exit is swapped in tests
var (
	osExit = os.Exit
	exit   = osExit
)

// SetCrashTerminal registers the screen finalized by HandleCrash, nil unregisters
func SetCrashTerminal(f Finisher) {
	if f == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&finisherBox{f: f})
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if box := crashTerminal.Load(); box != nil {
		box.f.Fini()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
