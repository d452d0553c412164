package pipeline

import (
	"sort"
	"sync"
)

// Outcome is the per-task result wrapper. Index is the task's position in
// the input sequence so callers can restore input order regardless of
// completion order.
type Outcome[R any] struct {
	Index    int
	Value    R
	Attempts int
	Err      error
}

// Collector gathers outcomes from concurrently running workers. Writes are
// serialized; Outcomes returns them re-sorted by original index.
type Collector[R any] struct {
	mu       sync.Mutex
	outcomes []Outcome[R]
}

func NewCollector[R any](capacity int) *Collector[R] {
	return &Collector[R]{outcomes: make([]Outcome[R], 0, capacity)}
}

func (c *Collector[R]) Add(o Outcome[R]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

func (c *Collector[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.outcomes)
}

// Outcomes returns the collected outcomes ordered by input index.
func (c *Collector[R]) Outcomes() []Outcome[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Outcome[R], len(c.outcomes))
	copy(out, c.outcomes)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
