package task

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/spindleworks/spindle/errors"
	"github.com/spindleworks/spindle/stack"
	"github.com/spindleworks/spindle/task/internal/arch"
)

// State is the lifecycle state of a Task.
type State uint8

const (
	// Ready means the task was created but never resumed; its snapshot
	// points at the entry trampoline.
	Ready State = iota
	// Running means control is currently inside the task.
	Running
	// Suspended means the task yielded and can be resumed where it
	// left off.
	Suspended
	// Finished means the entry function returned; terminal.
	Finished
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Finished:
		return "finished"
	default:
		return "invalid"
	}
}

// Task is an execution context: an owned stack, a saved register snapshot
// and a lifecycle state. The snapshot is meaningful only in Ready and
// Suspended.
type Task struct {
	// Payload is a scratch slot for the layer above; the generator
	// wrapper stashes its transfer cell here so the yield path can find
	// it through the registry.
	Payload any

	id     string
	entry  func()
	stk    *stack.Stack
	state  State
	domain uint64 // goroutine the task was created on

	own     arch.Snapshot // this task's saved registers
	resumer arch.Snapshot // registers of whoever last resumed it
}

func init() {
	arch.OnEntry(entered)
}

// New creates a task in state Ready that will run entry on stk when first
// resumed. The task takes ownership of stk.
func New(entry func(), stk *stack.Stack) *Task {
	t := &Task{
		id:     uuid.NewString()[:8],
		entry:  entry,
		stk:    stk,
		state:  Ready,
		domain: currentDomainID(),
	}
	arch.Prepare(&t.own, stk.Base(), stk.Top(), unsafe.Pointer(t))
	debugf("task %s created: stack %d bytes, domain %d", t.id, stk.Size(), t.domain)
	return t
}

// ID returns the task's short identifier, used in logs and errors.
func (t *Task) ID() string { return t.id }

// State returns the task's lifecycle state.
func (t *Task) State() State { return t.state }

// StackSize returns the size of the task's stack in bytes.
func (t *Task) StackSize() int { return t.stk.Size() }

// Resume transfers control into the task and blocks until it suspends or
// finishes. Resuming a Finished task is a permanent no-op. It fails with
// a reentrancy error if the task is already Running, and with a
// cross-domain error when called from a goroutine other than the task's
// creator.
func (t *Task) Resume() error {
	switch t.state {
	case Running:
		return errors.Reentrancy(t.id)
	case Finished:
		return nil
	}
	if cur := currentDomainID(); cur != t.domain {
		return errors.CrossDomain(t.id, t.domain, cur)
	}

	d := domainOf(t.domain)
	d.push(t)
	t.state = Running
	debugf("task %s resumed", t.id)

	arch.Switch(&t.resumer, &t.own)

	d.pop(t)
	if !t.stk.CanaryOK() {
		panic(errors.StackOverflow(t.id))
	}
	debugf("task %s handed back control: %s", t.id, t.state)
	return nil
}

// Suspend switches from the task back to its last resumer. It must only
// be called from code running inside t; the yield path is its only
// legitimate caller. Control returns here when the task is next resumed.
func (t *Task) Suspend() {
	if !t.stk.CanaryOK() {
		panic(errors.StackOverflow(t.id))
	}
	t.state = Suspended
	arch.Switch(&t.own, &t.resumer)
}

// Abandon releases the task's stack without resuming it. If the task is
// Suspended, the frames on its stack are discarded, not unwound: deferred
// calls in them never run. Abandon must not be called from inside the
// task itself. Only the first call releases the stack.
func (t *Task) Abandon() {
	if t.state != Finished {
		debugf("task %s abandoned while %s", t.id, t.state)
		t.state = Finished
	}
	t.stk.Release()
}

// entered is the Go half of the entry trampoline. It runs on the fresh
// task's own stack, calls the entry function as an ordinary call and,
// once that returns, marks the task Finished and performs one final
// switch back to the resumer. Control never reaches the end.
func entered(p unsafe.Pointer) {
	t := (*Task)(p)
	t.entry()
	t.state = Finished
	arch.Switch(&t.own, &t.resumer)
	panic("task: finished context resumed")
}
