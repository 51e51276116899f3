package task

import (
	"errors"
	"testing"

	spinerrors "github.com/spindleworks/spindle/errors"
	"github.com/spindleworks/spindle/stack"
)

func newTestStack(t *testing.T) *stack.Stack {
	t.Helper()
	s, err := stack.New(stack.DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Ready, "ready"},
		{Running, "running"},
		{Suspended, "suspended"},
		{Finished, "finished"},
		{State(42), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNew_StartsReady(t *testing.T) {
	tk := New(func() {}, newTestStack(t))
	defer tk.Abandon()

	if tk.State() != Ready {
		t.Errorf("state = %s, want ready", tk.State())
	}
	if tk.ID() == "" {
		t.Error("task should have an id")
	}
}

func TestResume_RunsToCompletion(t *testing.T) {
	ran := false
	tk := New(func() { ran = true }, newTestStack(t))
	defer tk.Abandon()

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("entry function did not run")
	}
	if tk.State() != Finished {
		t.Errorf("state = %s, want finished", tk.State())
	}

	// Finished is terminal; further resumes are permanent no-ops.
	ran = false
	if err := tk.Resume(); err != nil {
		t.Fatalf("resume of finished task: %v", err)
	}
	if ran {
		t.Error("finished task must not run again")
	}
}

func TestSuspendResume_RoundTrips(t *testing.T) {
	var tk *Task
	steps := 0
	tk = New(func() {
		for i := 0; i < 3; i++ {
			steps++
			tk.Suspend()
		}
	}, newTestStack(t))
	defer tk.Abandon()

	for want := 1; want <= 3; want++ {
		if err := tk.Resume(); err != nil {
			t.Fatal(err)
		}
		if steps != want {
			t.Fatalf("after resume %d: steps = %d", want, steps)
		}
		if tk.State() != Suspended {
			t.Fatalf("after resume %d: state = %s, want suspended", want, tk.State())
		}
	}

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if tk.State() != Finished {
		t.Errorf("state = %s, want finished", tk.State())
	}
}

func TestResume_DeepCallChain(t *testing.T) {
	// Every non-leaf frame below runs a stack-split prologue on the
	// task's own stack; the chain suspends at the bottom and unwinds
	// after the second resume.
	var tk *Task
	var descend func(n int) int
	descend = func(n int) int {
		var pad [64]byte
		pad[0] = byte(n)
		if n == 0 {
			tk.Suspend()
			return 0
		}
		return descend(n-1) + int(pad[0])
	}

	sum := -1
	tk = New(func() { sum = descend(64) }, newTestStack(t))
	defer tk.Abandon()

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if tk.State() != Suspended {
		t.Fatalf("state = %s, want suspended at the bottom of the chain", tk.State())
	}
	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if want := 64 * 65 / 2; sum != want {
		t.Errorf("sum = %d, want %d", sum, want)
	}
}

func TestResume_Reentrancy(t *testing.T) {
	var tk *Task
	var inner error
	tk = New(func() {
		inner = tk.Resume()
	}, newTestStack(t))
	defer tk.Abandon()

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if inner == nil {
		t.Fatal("resuming a running task should fail")
	}
	if !errors.Is(inner, &spinerrors.Error{Phase: spinerrors.PhaseResume, Kind: spinerrors.KindReentrancy}) {
		t.Errorf("error = %v, want reentrancy kind", inner)
	}
}

func TestCurrent(t *testing.T) {
	if cur := Current(); cur != nil {
		t.Fatalf("Current outside any task = %v, want nil", cur)
	}

	var tk *Task
	var observed *Task
	tk = New(func() {
		observed = Current()
	}, newTestStack(t))
	defer tk.Abandon()

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if observed != tk {
		t.Errorf("Current inside the task = %v, want the task itself", observed)
	}
	if cur := Current(); cur != nil {
		t.Errorf("Current after the task finished = %v, want nil", cur)
	}
}

func TestResume_CrossDomain(t *testing.T) {
	var tk *Task
	tk = New(func() { tk.Suspend() }, newTestStack(t))
	defer tk.Abandon()

	errc := make(chan error, 1)
	go func() {
		errc <- tk.Resume()
	}()
	err := <-errc
	if err == nil {
		t.Fatal("resume from a foreign goroutine should fail")
	}
	if !errors.Is(err, &spinerrors.Error{Phase: spinerrors.PhaseResume, Kind: spinerrors.KindCrossDomain}) {
		t.Errorf("error = %v, want cross_domain kind", err)
	}
	if tk.State() != Ready {
		t.Errorf("state = %s, want ready (never entered)", tk.State())
	}
}

func TestAbandon_SuspendedTask(t *testing.T) {
	var tk *Task
	cleaned := false
	tk = New(func() {
		defer func() { cleaned = true }()
		tk.Suspend()
	}, newTestStack(t))

	if err := tk.Resume(); err != nil {
		t.Fatal(err)
	}
	if tk.State() != Suspended {
		t.Fatalf("state = %s, want suspended", tk.State())
	}

	tk.Abandon()
	if tk.State() != Finished {
		t.Errorf("state after abandon = %s, want finished", tk.State())
	}
	if cleaned {
		t.Error("abandonment must not run deferred calls in suspended frames")
	}

	// A second abandon is a no-op.
	tk.Abandon()
}

func TestNestedTasks(t *testing.T) {
	var outer, inner *Task
	var order []string

	inner = New(func() {
		order = append(order, "inner-a")
		inner.Suspend()
		order = append(order, "inner-b")
	}, newTestStack(t))
	defer inner.Abandon()

	outer = New(func() {
		order = append(order, "outer-a")
		if Current() != outer {
			t.Error("outer body should be the current task")
		}
		if err := inner.Resume(); err != nil {
			t.Errorf("inner resume: %v", err)
		}
		if Current() != outer {
			t.Error("current should be outer again after inner suspends")
		}
		outer.Suspend()
		if err := inner.Resume(); err != nil {
			t.Errorf("inner resume: %v", err)
		}
		order = append(order, "outer-b")
	}, newTestStack(t))
	defer outer.Abandon()

	if err := outer.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := outer.Resume(); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer-a", "inner-a", "inner-b", "outer-b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
