// Package storage implements the reference-counted, interior-mutable dense
// buffer that backs every TensorData. Many strided views may share one
// Storage; the evaluator consults the share count to decide whether a
// kernel may mutate a buffer in place.
package storage

import "sync"

type shared struct {
	mu   sync.RWMutex
	data []float64
	refs int32
}

// Storage is a shared handle onto a dense []float64 buffer, guarded by a
// reader/writer discipline: many concurrent readers xor one writer.
// Cloning a Storage by reference (CloneReference) shares the buffer and
// increments the share count; cloning by value (CloneValue) allocates and
// copies.
type Storage struct {
	s *shared
}

// New wraps buf directly (no copy) as a Storage with a single share.
func New(buf []float64) Storage {
	return Storage{s: &shared{data: buf, refs: 1}}
}

// NewScalar allocates a buffer of n elements all set to v.
func NewScalar(v float64, n int) Storage {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = v
	}
	return New(buf)
}

// NewZeros allocates a zero-initialized buffer of n elements.
func NewZeros(n int) Storage {
	return New(make([]float64, n))
}

// CloneReference returns a new handle to the same underlying buffer,
// incrementing the share count. Cheap: no allocation, no copy.
func (s Storage) CloneReference() Storage {
	s.s.mu.Lock()
	s.s.refs++
	s.s.mu.Unlock()
	return s
}

// CloneValue allocates a fresh buffer and deep-copies the data into it,
// returning a Storage with a single share.
func (s Storage) CloneValue() Storage {
	s.s.mu.RLock()
	cp := make([]float64, len(s.s.data))
	copy(cp, s.s.data)
	s.s.mu.RUnlock()
	return New(cp)
}

// Release decrements the share count. Callers that have taken a buffer out
// of circulation (e.g. the evaluator, when a refcount-zero entry is dropped
// from its cache) should call Release exactly once per CloneReference.
func (s Storage) Release() {
	s.s.mu.Lock()
	s.s.refs--
	s.s.mu.Unlock()
}

// Unique reports whether this is the sole share of the underlying buffer —
// the evaluator's authorization test for in-place kernel dispatch.
func (s Storage) Unique() bool {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	return s.s.refs == 1
}

// Len returns the number of elements in the underlying buffer.
func (s Storage) Len() int {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	return len(s.s.data)
}

// WithRead executes fn with read-only access to the underlying buffer,
// holding the reader lock for the duration.
func (s Storage) WithRead(fn func(buf []float64)) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	fn(s.s.data)
}

// WithWrite executes fn with mutable access to the underlying buffer,
// holding the writer lock for the duration. Callers must have established
// Unique() (or otherwise own the sole reference) before calling WithWrite;
// Storage itself does not re-check uniqueness, matching the evaluator's
// "provably taken uniquely from the cache" contract (spec §5).
func (s Storage) WithWrite(fn func(buf []float64)) {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	fn(s.s.data)
}

// SameBuffer reports whether two Storage handles share the same underlying
// buffer — used by cache-idempotence tests (spec §8 property 6).
func SameBuffer(a, b Storage) bool {
	return a.s == b.s
}
