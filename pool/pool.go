// Package pool provides fixed-capacity object pools. Every instance a pool
// will ever hand out is allocated when the pool is built; Allocate and
// Release never touch the heap afterwards.
package pool

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Pool hands out pointers into a pre-sized backing array. It never grows.
type Pool[T any] struct {
	name      string
	items     []T
	free      []int32
	inUse     []bool
	index     map[*T]int32
	reset     func(*T)
	logger    *log.Logger
	highWater int
	exhausted int
}

// New builds a pool of capacity instances. reset is called on every instance
// up front and again on each Release; it must drop every reference the
// instance holds. A nil reset zeroes the instance.
func New[T any](name string, capacity int, reset func(*T), logger *log.Logger) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	if reset == nil {
		reset = func(item *T) {
			var zero T
			*item = zero
		}
	}
	if logger == nil {
		logger = log.Default()
	}

	p := &Pool[T]{
		name:   name,
		items:  make([]T, capacity),
		free:   make([]int32, capacity),
		inUse:  make([]bool, capacity),
		index:  make(map[*T]int32, capacity),
		reset:  reset,
		logger: logger,
	}

	// Free list is a stack; fill it so slot 0 is handed out first.
	for i := range p.items {
		item := &p.items[i]
		reset(item)
		p.index[item] = int32(i)
		p.free[capacity-1-i] = int32(i)
	}
	return p
}

// Allocate returns a free instance, or false when the pool is exhausted.
func (p *Pool[T]) Allocate() (*T, bool) {
	n := len(p.free)
	if n == 0 {
		p.exhausted++
		p.logger.Warn("pool exhausted", "pool", p.name, "capacity", len(p.items))
		return nil, false
	}
	slot := p.free[n-1]
	p.free = p.free[:n-1]
	p.inUse[slot] = true

	if allocated := p.Allocated(); allocated > p.highWater {
		p.highWater = allocated
	}
	return &p.items[slot], true
}

// Release resets item and returns it to the free list. Releasing nil, a
// pointer this pool does not own, or an instance twice is logged and ignored.
func (p *Pool[T]) Release(item *T) {
	if item == nil {
		return
	}
	slot, ok := p.index[item]
	if !ok {
		p.logger.Error("release of foreign instance", "pool", p.name)
		return
	}
	if !p.inUse[slot] {
		p.logger.Error("double release", "pool", p.name, "slot", slot)
		return
	}
	p.reset(item)
	p.inUse[slot] = false
	p.free = append(p.free, slot)
}

// Owns reports whether item points into this pool's storage.
func (p *Pool[T]) Owns(item *T) bool {
	_, ok := p.index[item]
	return ok
}

// Each calls fn for every instance currently handed out.
func (p *Pool[T]) Each(fn func(*T)) {
	for i := range p.items {
		if p.inUse[i] {
			fn(&p.items[i])
		}
	}
}

func (p *Pool[T]) Name() string   { return p.name }
func (p *Pool[T]) Capacity() int  { return len(p.items) }
func (p *Pool[T]) Available() int { return len(p.free) }
func (p *Pool[T]) Allocated() int { return len(p.items) - len(p.free) }
func (p *Pool[T]) HighWater() int { return p.highWater }
func (p *Pool[T]) Exhausted() int { return p.exhausted }
func (p *Pool[T]) String() string { return fmt.Sprintf("%s %d/%d", p.name, p.Allocated(), p.Capacity()) }
func (p *Pool[T]) Stats() Stats   { return statsOf(p) }
