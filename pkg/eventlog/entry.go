// Package eventlog carries the bookkeeping events a parameter store emits:
// timestamped entries fanned out to pluggable sinks.
package eventlog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a single bookkeeping event. Silent entries record history without
// demanding immediate display; sinks decide what that means for them.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
	Silent  bool      `json:"silent,omitempty"`
}

// NewEntry stamps a message with a fresh ID and the current time.
func NewEntry(message string, silent bool) Entry {
	return Entry{
		ID:      uuid.New(),
		Time:    time.Now(),
		Message: strings.TrimSpace(message),
		Silent:  silent,
	}
}

// Normalize trims the message and fills in a missing ID or timestamp. It is
// idempotent, so entries passing through several sinks are stamped once.
func Normalize(entry Entry) Entry {
	entry.Message = strings.TrimSpace(entry.Message)
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	return entry
}

// ToJSON serialises the entry for archival or transport.
func (e Entry) ToJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(alias(e))
}

// EntryFromJSON deserialises a payload previously generated via ToJSON.
func EntryFromJSON(payload []byte) (Entry, error) {
	type alias Entry
	var entry alias
	if err := json.Unmarshal(payload, &entry); err != nil {
		return Entry{}, err
	}
	return Entry(entry), nil
}
