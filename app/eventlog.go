package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	remittance "github.com/iov-one/remittance"
)

// LogEntry is one recorded state transition. Entries are never modified or
// removed once appended.
type LogEntry struct {
	// ID is a unique identifier assigned at append time.
	ID string `json:"id"`
	// Time the transaction was executed.
	Time time.Time `json:"time"`
	// Type names the operation, eg. "remit".
	Type string `json:"type"`
	// Attributes carry the operation payload.
	Attributes []remittance.EventAttribute `json:"attributes"`
}

// EventLog is the append-only record of everything the ledger did. It exists
// for external consumers; ledger state never depends on it.
type EventLog struct {
	mu      sync.RWMutex
	entries []LogEntry
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records all events of a delivered transaction.
func (l *EventLog) Append(now time.Time, events []remittance.Event) {
	if len(events) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ev := range events {
		l.entries = append(l.entries, LogEntry{
			ID:         uuid.NewString(),
			Time:       now,
			Type:       ev.Type,
			Attributes: ev.Attributes,
		})
	}
}

// Entries returns a copy of the whole log, oldest first.
func (l *EventLog) Entries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	res := make([]LogEntry, len(l.entries))
	copy(res, l.entries)
	return res
}
