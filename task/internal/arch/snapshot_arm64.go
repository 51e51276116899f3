//go:build arm64

package arch

import "unsafe"

// Name identifies the switch implementation compiled into this build.
const Name = "arm64"

// stackGuard is the reserve kept between a context's stack base and the
// split guard installed into g.stackguard0 while the context runs. It
// mirrors the runtime's own guard, sized for the deepest nosplit chain
// the toolchain allows.
const stackGuard = 928

// Snapshot holds the register state of a suspended context: the
// callee-saved general-purpose registers, the frame pointer, the link
// register (doubling as the resume address) and the stack pointer, plus
// the goroutine stack bounds the runtime must see while the context runs.
//
// Field order and offsets are known to switch_arm64.s; keep them in sync.
type Snapshot struct {
	x19 uintptr // offset 0; scratch slot read by the trampoline
	x20 uintptr // 8
	x21 uintptr // 16
	x22 uintptr // 24
	x23 uintptr // 32
	x24 uintptr // 40
	x25 uintptr // 48
	x26 uintptr // 56
	x27 uintptr // 64
	fp  uintptr // 72, x29
	lr  uintptr // 80, x30; Switch branches here on load
	sp  uintptr // 88

	// g.stack.lo, g.stack.hi and g.stackguard0 for the duration of the
	// context. Swapped through the g register by Switch.
	gLo    uintptr // 96
	gHi    uintptr // 104
	gGuard uintptr // 112
}

// Prepare builds the initial snapshot of a fresh context: the resume
// address is the trampoline stub, the stack pointer sits at the aligned
// top of the context's stack, the recorded stack bounds cover [lo, top]
// with a split guard above lo, and ctx is stashed in the x19 slot, which
// the first Switch restores and the stub forwards to the entry hook.
//
// ctx is stored as a bare address; the pointee must stay reachable
// through the owning context for the snapshot's lifetime.
func Prepare(snap *Snapshot, lo, sp uintptr, ctx unsafe.Pointer) {
	sp &^= 15
	*snap = Snapshot{
		x19:    uintptr(ctx),
		lr:     trampolinePC(),
		sp:     sp,
		gLo:    lo,
		gHi:    sp,
		gGuard: lo + stackGuard,
	}
}

// Switch saves the calling context's registers and the current g's stack
// bounds into from, loads the set recorded in to, installs to's bounds
// into g and branches to its resume address. It returns when some later
// Switch names from as its to. Implemented in switch_arm64.s.
//
//go:noescape
func Switch(from, to *Snapshot)

// trampolinePC returns the address of the trampoline stub, recorded by
// Prepare as the resume address of every fresh context. Implemented in
// switch_arm64.s.
func trampolinePC() uintptr

// trampoline is the fixed entry stub. Declared for the toolchain; only
// ever reached through a Switch into a prepared snapshot.
func trampoline()
