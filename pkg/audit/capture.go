package audit

import (
	"context"
	"sync"
)

// Capture is a Recorder that keeps entries in memory.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Capture) Record(_ context.Context, entries ...Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entries...)
}

func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Stream returns the captured entries of s in submission order.
func (c *Capture) Stream(s Stream) []Entry {
	var out []Entry
	for _, e := range c.Entries() {
		if e.Stream == s {
			out = append(out, e)
		}
	}
	return out
}

func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}
