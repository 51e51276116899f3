// Package spindle provides Python-style generators for Go, built on
// cooperative, single-threaded user-mode task switching: ordinary
// functions that suspend mid-execution, hand a value to their caller and
// later resume exactly where they left off, with no extra OS thread and
// no hand-written state machine.
//
// # Architecture Overview
//
// The library is organized into a small set of packages, leaves first:
//
//	spindle/            Root package: Generator[T], Yeet, YeetAll, Seq
//	├── task/           Execution contexts, lifecycle, active-context registry
//	│   └── internal/arch/  Register snapshots and the per-GOARCH switch primitive
//	├── stack/          Owned call-stack regions and allocation accounting
//	└── errors/         Structured error types
//
// Only the root package is needed to write generators; task and stack are
// exported for callers who want raw cooperative contexts without the
// value-transfer layer.
//
// # Quick Start
//
//	gen, err := spindle.New[int](func() {
//	    a, b := 0, 1
//	    for i := 0; i < 10; i++ {
//	        spindle.Yeet(a)
//	        a, b = b, a+b
//	    }
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	for v, ok := gen.Next(); ok; v, ok = gen.Next() {
//	    fmt.Println(v)
//	}
//
// Calling Next switches into the generator's context; the body runs until
// it calls Yeet, which hands the value back and suspends, or until it
// returns, after which every further Next reports exhaustion. Exhaustion
// is not an error and polling an exhausted generator is always safe.
//
// # Execution Model
//
// Each generator owns an execution context: a private, fixed-size call
// stack plus a saved register snapshot. Next and Yeet are synchronous
// context switches — there is no parallelism between a generator and its
// caller, and a body that neither yields nor returns blocks its caller
// forever. A generator body may create and drive generators of its own;
// the per-goroutine active-context registry is a stack, so nested yields
// always route to the correct consumer.
//
// A generator is bound to the goroutine that created it. Driving it from
// another goroutine fails with a cross-domain error; independent
// goroutines can freely run independent generators.
//
// # Caveats
//
// Closing a generator whose body is suspended releases its stack without
// resuming it: the suspended frames are abandoned, not unwound, and their
// deferred calls never run. Generator stacks are fixed-size with no guard
// page; a canary word at the stack base turns an overflow that reaches it
// into a panic, but an overflow is corruption that has already happened.
// Size stacks generously (NewWithStackSize) for deeply recursive bodies.
//
// Generator stacks live outside the runtime's stack allocator. The
// runtime sees consistent bounds while a body runs — ordinary calls,
// allocation and preemption all work — but it cannot grow such a stack,
// so frames that outgrow the fixed size are fatal rather than
// recoverable. The garbage collector does not scan the frames of a
// suspended body: a pointer held only in a body-local variable across a
// Yeet may be collected before the next resume. Keep such values
// reachable from outside the body — closure-captured variables, yielded
// values and anything the consumer holds are all safe.
//
// A panic must not escape a generator body: above the entry trampoline
// there is no consumer frame left to recover it. Recover inside the body
// and return, or yield a sentinel the consumer understands.
package spindle
