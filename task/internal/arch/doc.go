// Package arch implements the per-architecture context-switch primitive.
//
// The whole package reduces to three operations with identical pre- and
// post-conditions on every architecture, so no other package ever branches
// on GOARCH:
//
//	Prepare(snap, lo, sp, ctx)  build the initial snapshot of a fresh context
//	Switch(from, to)            save the caller into from, resume to
//	OnEntry(fn)                 install the Go half of the entry trampoline
//
// # Switch contract
//
// Switch is one indivisible assembly sequence that calls nothing else. It
// stores the callee-saved general-purpose registers, the frame pointer,
// the return address, the current stack pointer and the current g's stack
// bounds into from, then loads the identical set from to and branches to
// the recorded address. Caller-saved registers are the caller's
// responsibility under the platform calling convention and are not
// touched. A snapshot is meaningful only between a completed save and the
// next load.
//
// # Runtime stack bounds
//
// Go function prologues compare the stack pointer against the current
// g's stackguard0, and the runtime's preemption and traceback paths trust
// g.stack.lo and g.stack.hi. After a switch the stack pointer points into
// a region the scheduler never handed out, so Switch swaps those three g
// fields alongside the register set: every context records the bounds the
// runtime must see while it runs, and Prepare seeds a fresh context's
// bounds from its own stack with a guard reserve above the base. The g
// field offsets (stack.lo at 0, stack.hi at 8, stackguard0 at 16) are the
// leading fields of runtime.g and have been stable across Go releases.
//
// Two hard limits follow. The runtime cannot grow one of these stacks: a
// frame that trips the split guard asks the runtime to move a stack it
// does not own, which is fatal, so a context must fit its fixed stack.
// And the collector never scans a suspended context's frames; pointers
// held only there must stay reachable from elsewhere across a suspension.
//
// # Trampoline
//
// Prepare records the trampoline stub as the resume address of a fresh
// context and stashes ctx in a callee-saved scratch slot that survives the
// first Switch. On first entry the stub forwards ctx to the function
// installed with OnEntry, which must never return; there is no second
// first-entry.
//
// # Architectures
//
// arm64 is the only implementation. It saves x19-x27, the frame pointer
// (x29), the link register (x30) and sp. x18 is the platform register and
// x28 holds the runtime's g; both sides of any switch run on the same
// goroutine, so neither is part of a context's identity — the g register
// is only dereferenced for the bounds swap, never reassigned.
//
// x86-64 is planned: it will save rbx, rbp, r12-r15, rsp and a return
// address. Until that exists, building for any GOARCH other than arm64
// fails at compile time — Snapshot, Prepare and Switch are simply not
// declared — rather than producing a primitive that misbehaves at run
// time.
package arch
