package storage

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrAllocationFailure is returned when the underlying resource cannot
	// satisfy an allocation request. It is never retried internally.
	ErrAllocationFailure = errors.New("storage: allocation failure")
	// ErrInvalidAlignment is returned when the requested alignment is not a
	// power of two.
	ErrInvalidAlignment = errors.New("storage: alignment must be a power of two")
)

// Resource is a pluggable allocation policy.
//
// Implementations are identified by IsEqual: two resources are considered the
// same if and only if IsEqual reports so. Containers use this test to decide
// between O(1) ownership transfer and deep copy.
type Resource interface {
	// Allocate returns a byte region of length n whose first byte satisfies
	// the requested alignment. align must be a power of two.
	Allocate(n, align int) ([]byte, error)

	// Deallocate returns a region previously obtained from Allocate with the
	// same n and align. Arena-style resources may treat this as a no-op.
	Deallocate(b []byte, n, align int)

	// IsEqual reports whether other is interchangeable with this resource.
	IsEqual(other Resource) bool
}

// Releaser is implemented by resources that hold memory requiring explicit
// release, such as Monotonic. A counted Handle calls Release when its
// reference count reaches zero.
type Releaser interface {
	Release()
}

// Handle is a shared, copyable reference to a Resource.
//
// The zero Handle refers to the process-wide default resource and carries no
// reference count. A Handle created by NewCounted shares ownership of its
// resource: copies made through Acquire increment an atomic count, Release
// decrements it, and the count reaching zero releases the resource.
//
// A Handle always resolves to a live resource; it is never reseated after a
// container binds to it.
type Handle struct {
	res Resource
	cnt *counted
}

type counted struct {
	res  Resource
	refs atomic.Int64
}

// Default returns a handle to the process-wide default resource. Equivalent
// to the zero Handle.
func Default() Handle { return Handle{} }

// WithResource returns a non-owning handle to res. The caller must keep res
// alive and usable for as long as any container bound to the handle exists.
// A nil res yields the default handle.
func WithResource(res Resource) Handle {
	return Handle{res: res}
}

// NewCounted returns an owning handle to res with a reference count of one.
// The resource must not be released independently by the caller while any
// counted copy of the handle remains.
func NewCounted(res Resource) Handle {
	c := &counted{res: res}
	c.refs.Store(1)
	return Handle{res: res, cnt: c}
}

// NewCountedMonotonic constructs a Monotonic resource and returns a counted
// handle owning it. This is the convenience path for building a whole
// document from one arena and releasing it in one step.
func NewCountedMonotonic(opts ...MonotonicOption) Handle {
	return NewCounted(NewMonotonic(opts...))
}

// Resource returns the resource the handle resolves to.
func (h Handle) Resource() Resource {
	if h.res == nil {
		return defaultResource
	}
	return h.res
}

// IsCounted reports whether the handle shares ownership of its resource.
func (h Handle) IsCounted() bool { return h.cnt != nil }

// Refs returns the current shared reference count, or zero for a handle that
// is not counted.
func (h Handle) Refs() int64 {
	if h.cnt == nil {
		return 0
	}
	return h.cnt.refs.Load()
}

// Allocate delegates to the underlying resource.
func (h Handle) Allocate(n, align int) ([]byte, error) {
	return h.Resource().Allocate(n, align)
}

// Deallocate delegates to the underlying resource.
func (h Handle) Deallocate(b []byte, n, align int) {
	h.Resource().Deallocate(b, n, align)
}

// IsSame reports whether both handles resolve to resources considered equal.
// Containers use this test pervasively: a transfer between same-storage
// containers is O(1), anything else is a deep copy.
func (h Handle) IsSame(other Handle) bool {
	return h.Resource().IsEqual(other.Resource())
}

// Acquire returns a copy of the handle, incrementing the shared reference
// count when the handle is counted. Acquiring a default or non-owning handle
// is a plain copy.
func (h Handle) Acquire() Handle {
	if h.cnt != nil {
		h.cnt.refs.Add(1)
	}
	return h
}

// Release decrements the shared reference count. When the count reaches zero
// the resource is released (if it implements Releaser) on the calling
// goroutine. Release on a default or non-owning handle is a no-op.
func (h Handle) Release() {
	if h.cnt == nil {
		return
	}
	if h.cnt.refs.Add(-1) == 0 {
		if r, ok := h.cnt.res.(Releaser); ok {
			r.Release()
		}
	}
}

func validAlign(align int) bool {
	return align > 0 && align&(align-1) == 0
}
