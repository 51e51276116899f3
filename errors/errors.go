package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the task lifecycle the error occurred
type Phase string

const (
	PhaseAlloc  Phase = "alloc"  // stack allocation
	PhaseCreate Phase = "create" // context construction
	PhaseResume Phase = "resume" // entering a context
	PhaseYield  Phase = "yield"  // suspending out of a context
	PhaseClose  Phase = "close"  // releasing a generator
)

// Kind categorizes the error
type Kind string

const (
	KindAllocation     Kind = "allocation"       // stack memory unavailable or undersized
	KindReentrancy     Kind = "reentrancy"       // resume of an already-running context
	KindNotInGenerator Kind = "not_in_generator" // yield with no generator context active
	KindCrossDomain    Kind = "cross_domain"     // generator driven from a foreign goroutine
	KindTypeMismatch   Kind = "type_mismatch"    // yielded value type differs from the generator's
	KindStackOverflow  Kind = "stack_overflow"   // canary at the stack base was clobbered
	KindInvalidInput   Kind = "invalid_input"    // caller passed something unusable
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	TaskID string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.TaskID != "" {
		b.WriteString(" task ")
		b.WriteString(e.TaskID)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Task sets the id of the task involved
func (b *Builder) Task(id string) *Builder {
	b.err.TaskID = id
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Allocation creates an error for a stack request that could not be satisfied
func Allocation(size int, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("cannot allocate %d-byte stack", size),
		Cause:  cause,
	}
}

// Reentrancy creates an error for a resume of a context that is already running
func Reentrancy(taskID string) *Error {
	return &Error{
		Phase:  PhaseResume,
		Kind:   KindReentrancy,
		TaskID: taskID,
		Detail: "context is already running",
	}
}

// NotInGenerator creates an error for a yield with no generator context active
func NotInGenerator() *Error {
	return &Error{
		Phase:  PhaseYield,
		Kind:   KindNotInGenerator,
		Detail: "yield called outside any generator",
	}
}

// CrossDomain creates an error for a generator driven from a goroutine other
// than the one that created it
func CrossDomain(taskID string, created, current uint64) *Error {
	return &Error{
		Phase:  PhaseResume,
		Kind:   KindCrossDomain,
		TaskID: taskID,
		Detail: fmt.Sprintf("created on goroutine %d, driven from goroutine %d", created, current),
	}
}

// TypeMismatch creates an error for a yielded value whose type differs from
// the driving generator's value type
func TypeMismatch(taskID, got string) *Error {
	return &Error{
		Phase:  PhaseYield,
		Kind:   KindTypeMismatch,
		TaskID: taskID,
		Detail: fmt.Sprintf("yielded %s into a generator of a different value type", got),
	}
}

// StackOverflow creates an error for a clobbered stack canary
func StackOverflow(taskID string) *Error {
	return &Error{
		Phase:  PhaseYield,
		Kind:   KindStackOverflow,
		TaskID: taskID,
		Detail: "stack canary clobbered; the context overflowed its stack",
	}
}
