package display

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfMemory is returned when a buffer would exceed the budget.
var ErrOutOfMemory = errors.New("display: out of memory")

// Allocator hands out screen buffers against a fixed byte budget. A zero
// budget means unlimited.
type Allocator struct {
	mu     sync.Mutex
	budget int
	inUse  int
	live   map[*byte]int
}

func NewAllocator(budget int) *Allocator {
	return &Allocator{budget: budget, live: make(map[*byte]int)}
}

// Alloc returns a zeroed buffer of n bytes.
func (a *Allocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("display: invalid buffer size %d", n)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.budget > 0 && a.inUse+n > a.budget {
		return nil, fmt.Errorf("%w: need 0x%X bytes, 0x%X of 0x%X in use", ErrOutOfMemory, n, a.inUse, a.budget)
	}
	buf := make([]byte, n)
	a.live[&buf[0]] = n
	a.inUse += n
	return buf, nil
}

// Free returns buf to the budget. Freeing nil or an unknown buffer is a
// no-op, so release paths can call it unconditionally.
func (a *Allocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.live[&buf[0]]
	if !ok {
		return
	}
	delete(a.live, &buf[0])
	a.inUse -= n
}

// InUse reports the bytes currently handed out.
func (a *Allocator) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}
