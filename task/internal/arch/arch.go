package arch

import "unsafe"

// entryHook is the Go half of the trampoline. Installed exactly once by
// the task layer before any context is prepared.
var entryHook func(ctx unsafe.Pointer)

// OnEntry installs the function the trampoline hands control to on a
// context's first run. fn receives the ctx pointer given to Prepare and
// must never return: its final act has to be a Switch away from the
// context.
func OnEntry(fn func(ctx unsafe.Pointer)) {
	entryHook = fn
}

// enter is called by the trampoline stub, on the fresh context's own
// stack, with the pointer stashed by Prepare.
func enter(ctx unsafe.Pointer) {
	entryHook(ctx)
	panic("arch: context entry hook returned")
}

// Force a compile error here, not in a dependent package, when the target
// architecture ships no switch primitive.
var _ = unsafe.Sizeof(Snapshot{})
