package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"eln-go/internal/eln"
)

// StubClock is an eln.Clock frozen at a settable instant.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ eln.Clock = (*StubClock)(nil)

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock at 2024-01-15 10:30:00 UTC, the instant
// baked into fixture expectations (backup names, timestamps).
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StubIDGenerator hands out "id-1", "id-2", ... so attachment stored names
// are predictable in tests.
type StubIDGenerator struct {
	counter atomic.Int64
}

var _ eln.IDGenerator = (*StubIDGenerator)(nil)

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	return fmt.Sprintf("id-%d", g.counter.Add(1))
}
