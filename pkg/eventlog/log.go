package eventlog

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Config controls how a Log surfaces entries as they arrive.
type Config struct {
	// Out receives non-silent messages immediately. Leave nil to keep
	// history without live output.
	Out io.Writer
}

// Log is the reference sink: an append-only history that echoes non-silent
// messages to a writer as they are posted. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	out     io.Writer
	entries []Entry
}

// NewLog constructs a log from configuration.
func NewLog(cfg Config) *Log {
	return &Log{out: cfg.Out}
}

// Post records the entry and, when it is not silent, writes the message to
// the configured output.
func (l *Log) Post(entry Entry) error {
	normalized := Normalize(entry)
	if normalized.Message == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, normalized)
	if l.out != nil && !normalized.Silent {
		if _, err := fmt.Fprintln(l.out, normalized.Message); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns a copy of the recorded history in posting order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports how many entries have been recorded.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Show renders the full history, silent entries included, one timestamped
// line per entry.
func (l *Log) Show() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	for _, entry := range l.entries {
		b.WriteString(entry.Time.Format(time.RFC3339))
		b.WriteString("  ")
		b.WriteString(entry.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

func (l *Log) String() string { return l.Show() }

// Reset discards the recorded history.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
