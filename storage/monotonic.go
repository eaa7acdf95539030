package storage

import (
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"unsafe"
)

const (
	// DefaultInitialSize is the size of the first grown block when no seed
	// buffer or size hint is given.
	DefaultInitialSize = 1024
	// MinBlockSize is the lower bound applied to caller size hints.
	MinBlockSize = 1024
)

// Monotonic is an arena resource: a bump allocator that hands out memory from
// growing, never-individually-freed blocks. Deallocate is a no-op; all owned
// blocks are dropped at once by Release. A caller-supplied seed buffer is
// used verbatim as the first block and is never owned by the resource.
//
// Monotonic is not safe for concurrent use.
type Monotonic struct {
	cur      block
	owned    [][]byte
	seed     []byte
	next     int // size of the next grown block, always a power of two
	initNext int // value next resets to on Release
	noGrow   bool
	limiter  Limiter
	logger   *slog.Logger
	reserved int64
	stats    Stats
}

type block struct {
	buf []byte
	off int
}

// MonotonicOption configures a Monotonic resource.
type MonotonicOption func(*Monotonic)

// WithInitialBuffer seeds the resource with buf as its first block. The
// resource never frees or zeroes buf; the caller keeps ownership and must
// keep it alive for the life of the resource.
func WithInitialBuffer(buf []byte) MonotonicOption {
	return func(m *Monotonic) { m.seed = buf }
}

// WithInitialSize pre-sizes the first grown block. The hint is rounded up to
// a power of two and to at least MinBlockSize.
func WithInitialSize(n int) MonotonicOption {
	return func(m *Monotonic) {
		if n > 0 {
			m.initNext = roundBlockSize(n)
		}
	}
}

// WithGrowthDisabled prevents the resource from acquiring new blocks. An
// allocation that does not fit the current block fails with
// ErrAllocationFailure. Combine with WithInitialBuffer for a fixed-capacity
// arena.
func WithGrowthDisabled() MonotonicOption {
	return func(m *Monotonic) { m.noGrow = true }
}

// WithLimiter makes the resource reserve block memory from l before growth
// and return it on Release. A denied reservation surfaces as allocation
// failure.
func WithLimiter(l Limiter) MonotonicOption {
	return func(m *Monotonic) { m.limiter = l }
}

// WithLogger enables debug logging of block growth and release.
func WithLogger(logger *slog.Logger) MonotonicOption {
	return func(m *Monotonic) { m.logger = logger }
}

// NewMonotonic creates a Monotonic resource. With no options the first block
// is created lazily with size DefaultInitialSize, doubling thereafter.
func NewMonotonic(opts ...MonotonicOption) *Monotonic {
	m := &Monotonic{initNext: DefaultInitialSize}
	for _, opt := range opts {
		opt(m)
	}
	if m.seed != nil {
		m.cur = block{buf: m.seed}
		m.initNext = roundBlockSize(len(m.seed) + 1)
	}
	m.next = m.initNext
	return m
}

// Allocate returns n bytes aligned to align, bumping the cursor of the
// current block. When the block is exhausted the resource grows: oversized
// requests get a dedicated block sized to the request, anything else doubles
// the block size. O(1) amortized.
func (m *Monotonic) Allocate(n, align int) ([]byte, error) {
	if !validAlign(align) {
		return nil, ErrInvalidAlignment
	}
	if n < 0 {
		return nil, ErrAllocationFailure
	}

	if b, ok := m.carve(&m.cur, n, align); ok {
		return b, nil
	}
	if m.noGrow {
		return nil, fmt.Errorf("%w: request of %d bytes exceeds fixed arena capacity", ErrAllocationFailure, n)
	}

	// A request larger than the next grown block gets its own block sized to
	// the request, leaving the growth sequence undisturbed.
	if worst := n + align - 1; worst > m.next {
		buf, err := m.newBlock(worst)
		if err != nil {
			return nil, err
		}
		ded := block{buf: buf}
		b, ok := m.carve(&ded, n, align)
		if !ok {
			return nil, ErrAllocationFailure
		}
		return b, nil
	}

	buf, err := m.newBlock(m.next)
	if err != nil {
		return nil, err
	}
	m.cur = block{buf: buf}
	m.next *= 2
	b, ok := m.carve(&m.cur, n, align)
	if !ok {
		return nil, ErrAllocationFailure
	}
	return b, nil
}

// Deallocate is a no-op: capacity is reclaimed only by Release.
func (m *Monotonic) Deallocate(b []byte, n, align int) {}

// IsEqual reports whether other is this exact instance.
func (m *Monotonic) IsEqual(other Resource) bool {
	o, ok := other.(*Monotonic)
	return ok && o == m
}

// Release drops every owned block and resets the resource to its freshly
// constructed state: the seed buffer (if any) becomes the current block again
// and the growth sequence restarts. Reserved limiter memory is returned.
//
// Regions handed out before Release must no longer be used through the
// resource, though slices already held by callers remain reachable until they
// drop them.
func (m *Monotonic) Release() {
	if m.limiter != nil && m.reserved > 0 {
		m.limiter.ReleaseMemory(m.reserved)
	}
	if m.logger != nil {
		m.logger.Debug("arena released",
			"blocks", len(m.owned),
			"bytes_reserved", m.stats.BytesReserved,
			"bytes_used", m.stats.BytesUsed,
		)
	}
	m.owned = nil
	m.reserved = 0
	m.cur = block{}
	if m.seed != nil {
		m.cur = block{buf: m.seed}
	}
	m.next = m.initNext
	m.stats = Stats{}
}

// Stats returns a snapshot of the resource's usage counters.
func (m *Monotonic) Stats() Stats { return m.stats }

func (m *Monotonic) newBlock(size int) ([]byte, error) {
	if m.limiter != nil {
		if err := m.limiter.AcquireMemory(context.Background(), int64(size)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
		}
		m.reserved += int64(size)
	}
	buf := make([]byte, size)
	m.owned = append(m.owned, buf)
	m.stats.BlocksAllocated++
	m.stats.BytesReserved += uint64(size)
	if m.logger != nil {
		m.logger.Debug("arena block allocated", "size", size, "blocks", len(m.owned))
	}
	return buf, nil
}

// carve bumps the cursor of b past any alignment padding and returns the
// region. Padding is computed from the actual address so the requested
// alignment holds even when it exceeds the block's natural alignment.
func (m *Monotonic) carve(b *block, n, align int) ([]byte, bool) {
	if b.buf == nil {
		return nil, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	off := uintptr(b.off)
	pad := (uintptr(align) - (base+off)&uintptr(align-1)) & uintptr(align-1)
	start := off + pad
	end := start + uintptr(n)
	if end > uintptr(len(b.buf)) {
		return nil, false
	}
	b.off = int(end)
	m.stats.BytesUsed += uint64(n)
	m.stats.BytesWasted += uint64(pad)
	m.stats.Allocations++
	return b.buf[start:end:end], true
}

// roundBlockSize rounds n up to a power of two no smaller than MinBlockSize.
func roundBlockSize(n int) int {
	if n < MinBlockSize {
		return MinBlockSize
	}
	return 1 << bits.Len(uint(n-1))
}
