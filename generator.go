package spindle

import (
	"iter"

	"github.com/spindleworks/spindle/errors"
	"github.com/spindleworks/spindle/stack"
	"github.com/spindleworks/spindle/task"
)

// Generator wraps an execution context running an entry function and
// pulls the values it yields, one per Next. Create generators with New or
// NewWithStackSize; the zero value is not usable.
//
// A Generator must only ever be driven from the goroutine that created
// it. It is not safe for concurrent use.
type Generator[T any] struct {
	task     *task.Task
	cell     transferCell[T]
	finished bool
	closed   bool
}

// New creates a generator with a default-sized stack. entry runs inside
// the generator's own execution context on the first call to Next and
// yields values by calling Yeet[T].
func New[T any](entry func()) (*Generator[T], error) {
	return NewWithStackSize[T](entry, stack.DefaultSize)
}

// NewWithStackSize creates a generator whose context gets a stack of at
// least stackSize bytes. Bodies with deep call chains or large frames
// need more room than the default; see the package caveats.
func NewWithStackSize[T any](entry func(), stackSize int) (*Generator[T], error) {
	if entry == nil {
		return nil, errors.New(errors.PhaseCreate, errors.KindInvalidInput).
			Detail("nil entry function").
			Build()
	}
	stk, err := stack.New(stackSize)
	if err != nil {
		return nil, err
	}

	g := &Generator[T]{}
	g.task = task.New(entry, stk)
	g.cell.owner = g.task.ID()
	// The transfer cell rides in the task's scratch slot so the yield
	// path can reach it through the active-context registry.
	g.task.Payload = &g.cell
	return g, nil
}

// Next resumes the generator until it yields or its body returns. It
// returns the yielded value and true, or the zero value and false once
// the body has returned. Next on an exhausted or closed generator never
// resumes anything and always reports exhaustion.
//
// Next panics with a structured error on protocol misuse: resuming the
// generator from inside its own body, or driving it from a goroutine
// other than its creator.
func (g *Generator[T]) Next() (T, bool) {
	var zero T
	if g.closed || g.finished {
		return zero, false
	}

	if err := g.task.Resume(); err != nil {
		panic(err)
	}

	if v, ok := g.cell.take(); ok {
		return v, true
	}
	// Control came back without a value: the body returned.
	g.finished = true
	return zero, false
}

// Seq adapts the generator for range-over-func iteration:
//
//	for v := range gen.Seq() { ... }
//
// Breaking out of the range leaves the generator suspended; it can be
// pulled again or closed.
func (g *Generator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := g.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close destroys the generator and releases its stack. If the body is
// suspended mid-execution, its frames are abandoned, not unwound:
// deferred calls inside them never run. Close is idempotent and closing
// an exhausted generator is a no-op beyond releasing the stack. It must
// not be called from inside the generator's own body.
func (g *Generator[T]) Close() error {
	if g.closed {
		return nil
	}
	if g.task.State() == task.Running {
		return errors.New(errors.PhaseClose, errors.KindReentrancy).
			Task(g.task.ID()).
			Detail("close called from inside the generator body").
			Build()
	}
	g.closed = true
	g.task.Abandon()
	return nil
}

// transferCell is the one-slot value handoff between a generator's
// context and its consumer. The producer writes immediately before
// switching out; the consumer reads and clears immediately after
// switching in. The cooperative protocol is the only synchronization —
// the two sides never run at the same time.
type transferCell[T any] struct {
	value T
	owner string
	full  bool
}

// yieldSink marks a task payload as a generator transfer cell. A running
// task whose payload lacks the marker is not a generator context at all,
// which the yield path distinguishes from a cell of the wrong value type.
type yieldSink interface{ yieldSink() }

func (c *transferCell[T]) yieldSink() {}

func (c *transferCell[T]) put(v T) {
	if c.full {
		// A second write before the consumer's read breaks the
		// handoff invariant; nothing sane can continue from here.
		panic(errors.New(errors.PhaseYield, errors.KindInvalidInput).
			Task(c.owner).
			Detail("transfer cell overrun").
			Build())
	}
	c.value = v
	c.full = true
}

func (c *transferCell[T]) take() (T, bool) {
	var zero T
	if !c.full {
		return zero, false
	}
	v := c.value
	c.value = zero // drop the reference
	c.full = false
	return v, true
}
