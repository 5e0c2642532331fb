package memory

import "sync/atomic"

// TrackingAllocator wraps another Allocator and keeps atomic counters of the
// bytes currently allocated and the high-water mark. Counters may be read
// from any goroutine.
type TrackingAllocator struct {
	mem       Allocator
	allocated atomic.Int64
	peak      atomic.Int64
}

// NewTrackingAllocator wraps mem with byte accounting. A nil mem uses
// DefaultAllocator.
func NewTrackingAllocator(mem Allocator) *TrackingAllocator {
	if mem == nil {
		mem = DefaultAllocator
	}

	return &TrackingAllocator{mem: mem}
}

// AllocatedBytes returns the number of bytes currently allocated.
func (t *TrackingAllocator) AllocatedBytes() int64 {
	return t.allocated.Load()
}

// MaxAllocatedBytes returns the high-water mark of allocated bytes.
func (t *TrackingAllocator) MaxAllocatedBytes() int64 {
	return t.peak.Load()
}

func (t *TrackingAllocator) Allocate(size int) []byte {
	b := t.mem.Allocate(size)
	if b != nil {
		t.add(int64(len(b)))
	}

	return b
}

func (t *TrackingAllocator) Reallocate(size int, b []byte) []byte {
	out := t.mem.Reallocate(size, b)
	if out != nil {
		t.add(int64(len(out) - len(b)))
	}

	return out
}

func (t *TrackingAllocator) Free(b []byte) {
	t.allocated.Add(-int64(len(b)))
	t.mem.Free(b)
}

func (t *TrackingAllocator) add(delta int64) {
	cur := t.allocated.Add(delta)
	for {
		peak := t.peak.Load()
		if cur <= peak || t.peak.CompareAndSwap(peak, cur) {
			return
		}
	}
}

// LimitAllocator wraps another Allocator with a hard byte budget. Requests
// that would push the outstanding total above the limit return nil, which
// Buffer allocation surfaces as an out-of-memory error.
type LimitAllocator struct {
	mem   Allocator
	limit int64
	used  atomic.Int64
}

// NewLimitAllocator wraps mem with a budget of limit bytes. A nil mem uses
// DefaultAllocator.
func NewLimitAllocator(mem Allocator, limit int64) *LimitAllocator {
	if mem == nil {
		mem = DefaultAllocator
	}

	return &LimitAllocator{mem: mem, limit: limit}
}

// Remaining returns the number of budget bytes still available.
func (l *LimitAllocator) Remaining() int64 {
	return l.limit - l.used.Load()
}

func (l *LimitAllocator) Allocate(size int) []byte {
	if l.used.Add(int64(size)) > l.limit {
		l.used.Add(-int64(size))
		return nil
	}

	b := l.mem.Allocate(size)
	if b == nil {
		l.used.Add(-int64(size))
	}

	return b
}

func (l *LimitAllocator) Reallocate(size int, b []byte) []byte {
	delta := int64(size - len(b))
	if delta > 0 && l.used.Add(delta) > l.limit {
		l.used.Add(-delta)
		return nil
	}
	if delta <= 0 {
		l.used.Add(delta)
	}

	out := l.mem.Reallocate(size, b)
	if out == nil && delta > 0 {
		l.used.Add(-delta)
	}

	return out
}

func (l *LimitAllocator) Free(b []byte) {
	l.used.Add(-int64(len(b)))
	l.mem.Free(b)
}
