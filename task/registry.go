package task

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unsafe"
)

// domain is the active-context registry of one scheduling domain
// (one goroutine): the stack of tasks currently entered there, innermost
// last. Entries are pushed and popped by Resume on the owning goroutine
// only; the map holding the domains is the sole shared structure.
type domain struct {
	gid   uint64
	tasks []*Task
}

var (
	registryMu sync.RWMutex
	domains    = make(map[uint64]*domain)
	running    []*Task // every Running task, across all domains
)

func domainOf(gid uint64) *domain {
	registryMu.Lock()
	defer registryMu.Unlock()
	d := domains[gid]
	if d == nil {
		d = &domain{gid: gid}
		domains[gid] = d
	}
	return d
}

// push records t as the domain's innermost task. Called by Resume before
// control transfers, so the registry is already consistent when the task
// starts running.
func (d *domain) push(t *Task) {
	registryMu.Lock()
	d.tasks = append(d.tasks, t)
	running = append(running, t)
	registryMu.Unlock()
}

// pop removes t once control has come back to its resumer. An emptied
// domain is dropped from the map so short-lived goroutines don't
// accumulate.
func (d *domain) pop(t *Task) {
	registryMu.Lock()
	defer registryMu.Unlock()

	n := len(d.tasks)
	d.tasks[n-1] = nil
	d.tasks = d.tasks[:n-1]
	if n == 1 {
		delete(domains, d.gid)
	}
	for i := len(running) - 1; i >= 0; i-- {
		if running[i] == t {
			running = append(running[:i], running[i+1:]...)
			break
		}
	}
}

// top returns the domain's innermost task.
func (d *domain) top() *Task {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if len(d.tasks) == 0 {
		return nil
	}
	return d.tasks[len(d.tasks)-1]
}

// Current returns the task the caller is executing inside, or nil when
// the caller is on a plain goroutine stack. This is the lookup the yield
// path uses to find where to send its value.
func Current() *Task {
	t := callerTask()
	if t == nil {
		return nil
	}
	// Route through the registry: the innermost entry of the task's
	// domain is authoritative for where a yield belongs.
	return domainOf(t.domain).top()
}

// callerTask finds the running task whose stack region contains the
// caller's stack pointer. Task stacks are disjoint heap regions, so the
// match is unambiguous, and probing an address of a local works no matter
// which stack the caller is on.
func callerTask() *Task {
	var probe byte
	sp := uintptr(unsafe.Pointer(&probe))

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, t := range running {
		if sp >= t.stk.Base() && sp < t.stk.Top() {
			return t
		}
	}
	return nil
}

// currentDomainID identifies the calling scheduling domain. Inside a
// running task the domain is inherited from that task — tasks never move
// between goroutines, so this is exact and avoids walking the foreign
// stack. On a plain goroutine stack the goroutine id is used directly.
func currentDomainID() uint64 {
	if t := callerTask(); t != nil {
		return t.domain
	}
	return goroutineID()
}

// goroutineID parses the goroutine id out of the runtime.Stack header
// ("goroutine N [running]: ..."). There is no exported accessor for it;
// this is the same identity goroutine-local-storage packages key on.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
