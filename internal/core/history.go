package core

import (
	"sync"
	"time"
)

// DefaultImportHistorySize is the number of import records kept.
const DefaultImportHistorySize = 50

// ImportRecord is one entry of the import history. Failed and rejected
// imports are recorded too.
type ImportRecord struct {
	ImportID  string        `json:"importId"`
	FileName  string        `json:"fileName"`
	Imported  int           `json:"imported"`
	Bytes     int64         `json:"bytes"`
	Error     string        `json:"error,omitempty"`
	Code      string        `json:"code,omitempty"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ImportHistory is a fixed-size ring of recent imports.
type ImportHistory struct {
	mu      sync.Mutex
	records []ImportRecord
	next    int
	full    bool
}

// NewImportHistory creates a history keeping the last limit records.
// A limit <= 0 uses DefaultImportHistorySize.
func NewImportHistory(limit int) *ImportHistory {
	if limit <= 0 {
		limit = DefaultImportHistorySize
	}
	return &ImportHistory{records: make([]ImportRecord, limit)}
}

// Add records an import, evicting the oldest record when full.
func (h *ImportHistory) Add(rec ImportRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records[h.next] = rec
	h.next = (h.next + 1) % len(h.records)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns up to limit records, newest first. A limit <= 0 returns all.
func (h *ImportHistory) Recent(limit int) []ImportRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.size()
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]ImportRecord, n)
	for i := range out {
		idx := (h.next - 1 - i + len(h.records)) % len(h.records)
		out[i] = h.records[idx]
	}
	return out
}

// size returns the number of stored records. The caller holds mu.
func (h *ImportHistory) size() int {
	if h.full {
		return len(h.records)
	}
	return h.next
}
