package pool

import (
	"errors"
	"fmt"
)

// Auditor is the read-only view of a pool used for capacity reports and
// leak checks.
type Auditor interface {
	Name() string
	Capacity() int
	Allocated() int
	HighWater() int
	Exhausted() int
}

// Stats is a snapshot of one pool's counters.
type Stats struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Allocated int    `json:"allocated"`
	HighWater int    `json:"highWater"`
	Exhausted int    `json:"exhausted"`
}

func statsOf(a Auditor) Stats {
	return Stats{
		Name:      a.Name(),
		Capacity:  a.Capacity(),
		Allocated: a.Allocated(),
		HighWater: a.HighWater(),
		Exhausted: a.Exhausted(),
	}
}

// Snapshot collects stats for every auditor in order.
func Snapshot(auditors ...Auditor) []Stats {
	out := make([]Stats, 0, len(auditors))
	for _, a := range auditors {
		out = append(out, statsOf(a))
	}
	return out
}

// LeakError reports a pool that still has outstanding allocations.
type LeakError struct {
	Pool        string
	Outstanding int
}

func (e *LeakError) Error() string {
	return fmt.Sprintf("pool %s: %d instances still allocated", e.Pool, e.Outstanding)
}

// LeakCheck returns nil when every pool is back to zero outstanding
// allocations, otherwise one joined LeakError per leaking pool.
func LeakCheck(auditors ...Auditor) error {
	var errs []error
	for _, a := range auditors {
		if n := a.Allocated(); n != 0 {
			errs = append(errs, &LeakError{Pool: a.Name(), Outstanding: n})
		}
	}
	return errors.Join(errs...)
}
