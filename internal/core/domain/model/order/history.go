package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// HistoryEntry records one status change.
type HistoryEntry struct {
	Status    Status
	ChangedBy kernel.UUID
	ChangedAt time.Time
}

// StatusHistory is the append-only log of an order's status changes. The
// zero value is an empty log. Entries can be appended and read, never edited.
type StatusHistory struct {
	entries []HistoryEntry
}

// NewStatusHistory rebuilds a log from persisted entries.
func NewStatusHistory(entries ...HistoryEntry) StatusHistory {
	h := StatusHistory{entries: make([]HistoryEntry, len(entries))}
	copy(h.entries, entries)
	return h
}

func (h *StatusHistory) append(status Status, by kernel.UUID, at time.Time) {
	h.entries = append(h.entries, HistoryEntry{Status: status, ChangedBy: by, ChangedAt: at})
}

// Entries returns a copy of the log, oldest first.
func (h StatusHistory) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len is the number of recorded changes.
func (h StatusHistory) Len() int {
	return len(h.entries)
}

// Last returns the most recent entry.
func (h StatusHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
