package eventlog

import "errors"

// Sink receives bookkeeping entries as a parameter store produces them.
type Sink interface {
	Post(entry Entry) error
}

// SinkFunc allows plain functions to satisfy Sink.
type SinkFunc func(entry Entry) error

// Post dispatches to the underlying function.
func (fn SinkFunc) Post(entry Entry) error {
	if fn == nil {
		return nil
	}
	return fn(entry)
}

// Nop returns a sink that discards every entry.
func Nop() Sink {
	return SinkFunc(func(Entry) error { return nil })
}

// Sinks fans out entries to zero or more sinks.
type Sinks []Sink

// Enabled reports whether there is anything to post to.
func (s Sinks) Enabled() bool {
	return len(s) > 0
}

// Post normalizes the entry once and forwards it to all sinks, returning a
// joined error if any fail. Entries with an empty message are dropped.
func (s Sinks) Post(entry Entry) error {
	if len(s) == 0 {
		return nil
	}

	normalized := Normalize(entry)
	if normalized.Message == "" {
		return nil
	}

	var errs []error
	for _, sink := range s {
		if sink == nil {
			continue
		}
		if err := sink.Post(normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
