package stack

import (
	"sync/atomic"
	"unsafe"

	"github.com/spindleworks/spindle/errors"
)

const (
	// MinSize is the smallest stack this package will allocate. Below
	// this the entry trampoline and a shallow call chain already risk
	// running past the base.
	MinSize = 16 * 1024

	// DefaultSize is the stack size used when the caller expresses no
	// preference.
	DefaultSize = 256 * 1024

	// Align is the required alignment of the initial stack pointer.
	// AAPCS64 demands a 16-byte aligned sp at every public interface.
	Align = 16

	// canaryWord is written at the lowest address of every stack.
	canaryWord uint64 = 0x5afe57ac5afe57ac
)

// Global allocation accounting.
var (
	liveCount      atomic.Int64
	liveBytes      atomic.Int64
	allocatedBytes atomic.Int64
	releasedBytes  atomic.Int64
)

// Stats is a snapshot of the package's allocation accounting.
type Stats struct {
	Live           int64 // stacks allocated and not yet released
	LiveBytes      int64 // bytes held by live stacks
	AllocatedBytes int64 // cumulative bytes ever allocated
	ReleasedBytes  int64 // cumulative bytes ever released
}

// ReadStats returns the current allocation accounting.
func ReadStats() Stats {
	return Stats{
		Live:           liveCount.Load(),
		LiveBytes:      liveBytes.Load(),
		AllocatedBytes: allocatedBytes.Load(),
		ReleasedBytes:  releasedBytes.Load(),
	}
}

// Stack is a contiguous region of memory used as a task's call stack.
// The zero value is not usable; obtain stacks from New.
type Stack struct {
	buf      []byte
	released atomic.Bool
}

// New allocates a stack of at least size bytes. The size is rounded up to
// the alignment granule. It fails with an allocation error if size is
// below MinSize.
func New(size int) (*Stack, error) {
	if size < MinSize {
		return nil, errors.Allocation(size, nil)
	}
	size = (size + Align - 1) &^ (Align - 1)

	s := &Stack{buf: make([]byte, size)}
	*(*uint64)(unsafe.Pointer(&s.buf[0])) = canaryWord

	liveCount.Add(1)
	liveBytes.Add(int64(size))
	allocatedBytes.Add(int64(size))
	return s, nil
}

// Size returns the usable size of the stack in bytes.
func (s *Stack) Size() int {
	return len(s.buf)
}

// Base returns the lowest address of the stack region.
func (s *Stack) Base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s.buf)))
}

// Top returns the initial stack pointer: the highest address of the
// region, rounded down to the required alignment. The stack grows from
// Top toward Base.
func (s *Stack) Top() uintptr {
	return (s.Base() + uintptr(len(s.buf))) &^ (Align - 1)
}

// CanaryOK reports whether the canary word at the base of the stack is
// intact. A false return means some frame already ran past the base.
func (s *Stack) CanaryOK() bool {
	if s.released.Load() {
		return true
	}
	return *(*uint64)(unsafe.Pointer(&s.buf[0])) == canaryWord
}

// Release returns the region to the allocator. Only the first call has an
// effect; subsequent calls are no-ops, so an owner torn down along
// multiple paths cannot double-release.
func (s *Stack) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	size := int64(len(s.buf))
	s.buf = nil

	liveCount.Add(-1)
	liveBytes.Add(-size)
	releasedBytes.Add(size)
}

// Released reports whether Release has been called.
func (s *Stack) Released() bool {
	return s.released.Load()
}
