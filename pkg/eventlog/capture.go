package eventlog

import "sync"

// Capture records entries for assertions in tests.
type Capture struct {
	Entries []Entry
	Err     error
	mu      sync.Mutex
}

// Post records the entry and returns any configured error.
func (c *Capture) Post(entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries = append(c.Entries, Normalize(entry))
	return c.Err
}

// Messages returns the recorded message strings in posting order.
func (c *Capture) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.Entries))
	for i, entry := range c.Entries {
		out[i] = entry.Message
	}
	return out
}
