package mocks

import (
	"fmt"

	"github.com/squadup/squadup/internal/dependencies/ident"
)

// MockIDs is a mock implementation of the ID generator for testing.
// IDs are deterministic: queued values are returned first, then
// sequentially numbered fallbacks.
type MockIDs struct {
	queued []string
	next   int
	seq    int
}

// Ensure MockIDs implements Generator
var _ ident.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID, or prefix + a sequence number
func (m *MockIDs) NewID(prefix string) string {
	if m.next < len(m.queued) {
		id := m.queued[m.next]
		m.next++
		return id
	}
	m.seq++
	return fmt.Sprintf("%s%04d", prefix, m.seq)
}

// Queue adds IDs to be returned before the sequential fallback
func (m *MockIDs) Queue(ids ...string) {
	m.queued = append(m.queued, ids...)
}

// Reset clears queued IDs and the sequence counter
func (m *MockIDs) Reset() {
	m.queued = nil
	m.next = 0
	m.seq = 0
}
