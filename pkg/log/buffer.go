package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferSize is used by [NewBuffer] for non-positive capacities.
const DefaultBufferSize = 100

// Buffer keeps the most recent log entries in memory. It is used while the
// terminal UI owns the screen, and flushed to stderr once the UI exits.
// Each call to Write is one entry. It is safe for concurrent use.
type Buffer struct {
	entries [][]byte
	next    int
	count   int
	mu      sync.Mutex
}

// NewBuffer creates a [Buffer] holding up to capacity entries.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}

	return &Buffer{entries: make([][]byte, capacity)}
}

// Write implements [io.Writer]. Once the buffer is full, the oldest entry is
// dropped.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = append([]byte(nil), p...)
	b.next = (b.next + 1) % len(b.entries)
	b.count = min(b.count+1, len(b.entries))

	return len(p), nil
}

// Entries returns copies of the buffered entries, oldest first.
func (b *Buffer) Entries() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}

	out := make([][]byte, 0, b.count)

	start := (b.next - b.count + len(b.entries)) % len(b.entries)
	for i := range b.count {
		entry := b.entries[(start+i)%len(b.entries)]
		out = append(out, append([]byte(nil), entry...))
	}

	return out
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.count
}

// Cap returns the maximum number of entries.
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// Dropped reports whether entries may have been overwritten.
func (b *Buffer) Dropped() bool {
	return b.Len() == b.Cap()
}

// WriteTo writes the buffered entries to w, oldest first.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range b.Entries() {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}
