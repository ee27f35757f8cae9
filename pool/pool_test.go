package pool

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

type foo struct {
	value int
	owner *foo
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPoolExhaustion(t *testing.T) {
	p := New[foo]("foo", 2, nil, quietLogger())

	a, ok := p.Allocate()
	if !ok || a == nil {
		t.Fatal("first Allocate() failed")
	}
	b, ok := p.Allocate()
	if !ok || b == nil {
		t.Fatal("second Allocate() failed")
	}
	if a == b {
		t.Fatal("Allocate() returned the same instance twice")
	}
	if c, ok := p.Allocate(); ok || c != nil {
		t.Fatalf("third Allocate() = %v, %v; expected exhaustion", c, ok)
	}
	if p.Exhausted() != 1 {
		t.Errorf("Exhausted() = %d, expected 1", p.Exhausted())
	}

	p.Release(a)
	d, ok := p.Allocate()
	if !ok {
		t.Fatal("Allocate() after Release() failed")
	}
	if d != a {
		t.Errorf("expected released slot to be reused")
	}
}

func TestPoolResetOnRelease(t *testing.T) {
	resets := 0
	p := New[foo]("foo", 1, func(f *foo) {
		resets++
		*f = foo{}
	}, quietLogger())
	if resets != 1 {
		t.Fatalf("reset called %d times at construction, expected 1", resets)
	}

	f, _ := p.Allocate()
	f.value = 42
	f.owner = f
	p.Release(f)

	if f.value != 0 || f.owner != nil {
		t.Errorf("Release() did not clear references: %+v", *f)
	}
	if resets != 2 {
		t.Errorf("reset called %d times, expected 2", resets)
	}
}

func TestPoolConservation(t *testing.T) {
	const capacity = 8
	p := New[foo]("foo", capacity, nil, quietLogger())
	var held []*foo

	// Interleave allocations and releases; outstanding never exceeds capacity.
	for i := 0; i < 50; i++ {
		if i%3 == 2 && len(held) > 0 {
			p.Release(held[0])
			held = held[1:]
		} else if f, ok := p.Allocate(); ok {
			held = append(held, f)
		}
		if p.Allocated() > capacity {
			t.Fatalf("Allocated() = %d exceeds capacity", p.Allocated())
		}
		if p.Allocated() != len(held) {
			t.Fatalf("Allocated() = %d, expected %d", p.Allocated(), len(held))
		}
	}
	for _, f := range held {
		p.Release(f)
	}
	if p.Allocated() != 0 {
		t.Errorf("Allocated() = %d after releasing everything", p.Allocated())
	}
	if p.HighWater() != capacity {
		t.Errorf("HighWater() = %d, expected %d", p.HighWater(), capacity)
	}
}

func TestPoolInvalidRelease(t *testing.T) {
	p := New[foo]("foo", 2, nil, quietLogger())
	f, _ := p.Allocate()

	p.Release(f)
	p.Release(f)
	if p.Available() != 2 {
		t.Errorf("double release changed free count: Available() = %d", p.Available())
	}

	stranger := &foo{}
	p.Release(stranger)
	p.Release(nil)
	if p.Available() != 2 {
		t.Errorf("foreign release changed free count: Available() = %d", p.Available())
	}
	if p.Owns(stranger) {
		t.Error("Owns() true for a pointer outside the pool")
	}
}

func TestLeakCheck(t *testing.T) {
	a := New[foo]("a", 2, nil, quietLogger())
	b := New[foo]("b", 2, nil, quietLogger())

	if err := LeakCheck(a, b); err != nil {
		t.Fatalf("LeakCheck() on idle pools = %v", err)
	}

	f, _ := b.Allocate()
	err := LeakCheck(a, b)
	var leak *LeakError
	if !errors.As(err, &leak) {
		t.Fatalf("LeakCheck() = %v, expected LeakError", err)
	}
	if leak.Pool != "b" || leak.Outstanding != 1 {
		t.Errorf("leak = %+v", leak)
	}

	b.Release(f)
	if err := LeakCheck(a, b); err != nil {
		t.Errorf("LeakCheck() after release = %v", err)
	}
}

func TestEachVisitsOnlyAllocated(t *testing.T) {
	p := New[foo]("foo", 4, nil, quietLogger())
	x, _ := p.Allocate()
	y, _ := p.Allocate()
	x.value, y.value = 1, 2
	p.Release(x)

	seen := 0
	p.Each(func(f *foo) {
		seen++
		if f.value != 2 {
			t.Errorf("Each() visited %+v", *f)
		}
	})
	if seen != 1 {
		t.Errorf("Each() visited %d instances, expected 1", seen)
	}
}
