package storage

import "unsafe"

// defaultResource is the process-wide default: every allocation is an
// individual garbage-collected buffer. Deallocate is a no-op because the
// collector reclaims regions once unreferenced.
var defaultResource Resource = heapResource{}

type heapResource struct{}

func (heapResource) Allocate(n, align int) ([]byte, error) {
	if !validAlign(align) {
		return nil, ErrInvalidAlignment
	}
	if n < 0 {
		return nil, ErrAllocationFailure
	}
	if align <= 1 {
		return make([]byte, n), nil
	}
	// Over-allocate so an aligned start can always be found.
	buf := make([]byte, n+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := (uintptr(align) - addr&uintptr(align-1)) & uintptr(align-1)
	return buf[off : off+uintptr(n) : off+uintptr(n)], nil
}

func (heapResource) Deallocate(b []byte, n, align int) {}

// IsEqual reports true only for the default resource itself; there is one
// such resource per process.
func (heapResource) IsEqual(other Resource) bool {
	_, ok := other.(heapResource)
	return ok
}
