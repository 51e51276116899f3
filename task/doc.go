// Package task implements cooperative, single-threaded execution contexts:
// units of execution with their own call stack that run until they
// explicitly suspend or finish.
//
// A Task combines an owned stack region, a saved register snapshot and a
// lifecycle state:
//
//	Ready ──(first Resume)──> Running ──(Suspend)──> Suspended
//	Suspended ──(Resume)──> Running ──(entry returns)──> Finished
//
// Resume is synchronous and blocking: it transfers control into the task
// and returns only once the task suspends or finishes. Resuming a
// Finished task is a permanent no-op, not an error. Resuming a Running
// task fails with a reentrancy error, and driving a task from a goroutine
// other than its creator fails with a cross-domain error.
//
// # Scheduling domains
//
// A scheduling domain is a goroutine. Each domain has its own
// active-context registry — a stack of the tasks currently entered on
// that goroutine, innermost last — so independent goroutines can drive
// independent tasks without sharing any mutable switch state. The
// registry is updated before control transfers on every switch. Current
// returns the innermost running task of the calling domain and is how a
// yield issued deep inside user code finds where to send its value.
//
// Tasks never move between goroutines, and nothing here is preemptive:
// a task that neither suspends nor returns blocks its resumer forever.
//
// # Abandonment
//
// Abandon releases a task's stack without resuming it. Frames suspended
// inside the task are discarded, not unwound; deferred calls in them
// never run. This is the documented destruction semantics for suspended
// tasks, not a defect.
package task
