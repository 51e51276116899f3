package spindle

import (
	"fmt"
	"iter"

	"github.com/spindleworks/spindle/errors"
	"github.com/spindleworks/spindle/task"
)

// Yeet yields v to the consumer of the generator the caller is running
// inside, suspending the current context until the next Next. It is
// usable only from code reached through a Generator[T] with a matching
// value type.
//
// Yeet panics with a not_in_generator error when no generator context is
// active — no running context at all, or a raw task with no value cell —
// because silently dropping the value would corrupt the yield/resume
// protocol. It panics with a type_mismatch error when the driving
// generator declares a different value type. In both cases the
// active-context registry is left untouched.
func Yeet[T any](v T) {
	cur := task.Current()
	if cur == nil {
		panic(errors.NotInGenerator())
	}
	cell, ok := cur.Payload.(*transferCell[T])
	if !ok {
		if _, isCell := cur.Payload.(yieldSink); !isCell {
			panic(errors.NotInGenerator())
		}
		panic(errors.TypeMismatch(cur.ID(), fmt.Sprintf("%T", v)))
	}
	cell.put(v)
	cur.Suspend()
}

// YeetAll yields every value of seq in order, suspending at each one.
func YeetAll[T any](seq iter.Seq[T]) {
	for v := range seq {
		Yeet(v)
	}
}
