package parallel

import (
	"sync"

	"shogi/internal/shogi"
)

// Entry is one scored line.
type Entry struct {
	Path  []shogi.Move
	Score int
}

// resultLog keeps the most recent entries up to a fixed capacity. Adding to a
// full log drops the oldest entry.
type resultLog struct {
	mu      sync.Mutex
	entries []Entry
	head    int // index of the newest entry
	size    int
}

func newResultLog(capacity int) *resultLog {
	if capacity < 1 {
		capacity = 1
	}
	return &resultLog{entries: make([]Entry, capacity), head: -1}
}

func (l *resultLog) add(e Entry) {
	l.mu.Lock()
	l.head = (l.head + 1) % len(l.entries)
	l.entries[l.head] = e
	if l.size < len(l.entries) {
		l.size++
	}
	l.mu.Unlock()
}

func (l *resultLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// snapshot copies the entries out, newest first.
func (l *resultLog) snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, l.size)
	for i := 0; i < l.size; i++ {
		j := (l.head - i + len(l.entries)) % len(l.entries)
		out[i] = l.entries[j]
	}
	return out
}
