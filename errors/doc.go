// Package errors provides structured error types for the spindle library.
//
// Errors are categorized by Phase (where in the task lifecycle the error
// occurred) and Kind (error category). The Error type carries the id of the
// task involved, a human-readable detail string, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResume, errors.KindReentrancy).
//		Task(id).
//		Detail("context is already running").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Allocation(size, cause)
//	err := errors.NotInGenerator()
//
// All errors implement the standard error interface and support errors.Is.
// Two *Error values match under errors.Is when Phase and Kind are equal,
// so callers can test for a category without constructing the exact error:
//
//	if errors.Is(err, errors.New(errors.PhaseResume, errors.KindCrossDomain).Build()) { ... }
//
// Misuse of the cooperative protocol (yielding outside a generator, resuming
// a running context, driving a generator from a foreign goroutine) is
// reported by panicking with an *Error; recover and inspect Kind if such a
// boundary has to be survived.
package errors
