// Package stack manages the contiguous memory regions used as call stacks
// by execution contexts.
//
// A Stack is exclusively owned by one execution context for its entire
// lifetime and is released exactly once, when that context is destroyed,
// regardless of the context's lifecycle state at that time. Stacks are
// ordinary heap allocations pinned by the Stack value itself; the base and
// top addresses are exposed so the context builder can compute an initial,
// correctly aligned stack pointer for a downward-growing stack.
//
// # Overflow policy
//
// Nothing detects a stack overflow before it corrupts adjacent memory; the
// region has no guard page. As a cheap tripwire, a canary word is written
// at the lowest address of every Stack and checked by the task layer at
// each suspension. A clobbered canary proves an overflow already happened;
// an intact canary proves nothing. Size stacks generously.
//
// The package keeps global allocation accounting (see Stats) so callers
// can observe that destroying a generator actually returned its stack.
package stack
