package backing

import "sync/atomic"

// Counting wraps a Backing and counts calls to it.
//
// Tests use it to observe I/O behavior that the namespace store promises but
// cannot expose directly: that disabling the read cache makes every get hit
// the medium again, and that saving an empty buffer performs no writes.
type Counting struct {
	// Inner is the wrapped backing every call is forwarded to.
	Inner Backing

	// loads counts Load calls. Read with Loads().
	loads atomic.Int64

	// stores counts Store calls. Read with Stores().
	stores atomic.Int64
}

// NewCounting wraps inner with call counters starting at zero.
func NewCounting(inner Backing) *Counting {
	return &Counting{Inner: inner}
}

// Load forwards to the wrapped backing and increments the load counter.
func (c *Counting) Load(field string) (string, error) {
	c.loads.Add(1)
	return c.Inner.Load(field)
}

// Store forwards to the wrapped backing and increments the store counter.
func (c *Counting) Store(field, text string) error {
	c.stores.Add(1)
	return c.Inner.Store(field, text)
}

// Loads returns the number of Load calls seen so far.
func (c *Counting) Loads() int64 { return c.loads.Load() }

// Stores returns the number of Store calls seen so far.
func (c *Counting) Stores() int64 { return c.stores.Load() }

// Reset zeroes both counters.
func (c *Counting) Reset() {
	c.loads.Store(0)
	c.stores.Store(0)
}
