package storage

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter bounds the memory a resource may hold. Monotonic reserves block
// memory before growing and returns it when released.
type Limiter interface {
	// AcquireMemory reserves n bytes or fails. Implementations must not
	// block indefinitely: an allocation either succeeds or fails
	// synchronously from the caller's point of view.
	AcquireMemory(ctx context.Context, n int64) error

	// ReleaseMemory returns previously reserved bytes.
	ReleaseMemory(n int64)
}

// MemoryLimiter enforces a hard byte budget across the arenas that share it,
// with an optional allocation-rate bound for background document building.
type MemoryLimiter struct {
	sem     *semaphore.Weighted // nil if unlimited
	limiter *rate.Limiter       // nil if unlimited
	used    atomic.Int64
}

// LimiterOption configures a MemoryLimiter.
type LimiterOption func(*MemoryLimiter)

// WithAllocationRate bounds block acquisition to bytesPerSec. Acquisitions
// wait for rate tokens, honoring ctx cancellation.
func WithAllocationRate(bytesPerSec int64) LimiterOption {
	return func(l *MemoryLimiter) {
		if bytesPerSec > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec))
		}
	}
}

// NewMemoryLimiter creates a limiter with a hard budget of limitBytes. A
// non-positive limit means tracking only.
func NewMemoryLimiter(limitBytes int64, opts ...LimiterOption) *MemoryLimiter {
	l := &MemoryLimiter{}
	if limitBytes > 0 {
		l.sem = semaphore.NewWeighted(limitBytes)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AcquireMemory reserves n bytes. The hard budget is checked without
// blocking: exceeding it fails immediately rather than waiting for another
// arena to release.
func (l *MemoryLimiter) AcquireMemory(ctx context.Context, n int64) error {
	if l == nil || n <= 0 {
		return nil
	}
	if l.limiter != nil {
		if err := l.limiter.WaitN(ctx, int(n)); err != nil {
			return fmt.Errorf("storage: allocation rate wait: %w", err)
		}
	}
	if l.sem != nil && !l.sem.TryAcquire(n) {
		return fmt.Errorf("storage: memory budget exceeded by %d bytes", n)
	}
	l.used.Add(n)
	return nil
}

// ReleaseMemory returns reserved bytes to the budget.
func (l *MemoryLimiter) ReleaseMemory(n int64) {
	if l == nil || n <= 0 {
		return
	}
	if l.sem != nil {
		l.sem.Release(n)
	}
	l.used.Add(-n)
}

// MemoryUsage returns the bytes currently reserved through the limiter.
func (l *MemoryLimiter) MemoryUsage() int64 {
	if l == nil {
		return 0
	}
	return l.used.Load()
}
