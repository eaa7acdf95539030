// Package json provides a JSON document model with pluggable storage.
//
// A document is a tree of Values (null, bool, number, string, array,
// object). Every node is bound to a storage handle at construction; children
// created through a node share that handle, so a whole document can allocate
// from one arena and be released in one step:
//
//	sp := storage.NewCountedMonotonic()
//	defer sp.Release()
//
//	doc, err := json.Parse(`{"name":"example","tags":["a","b"]}`,
//	    json.WithStorage(sp))
//	if err != nil {
//	    panic(err)
//	}
//	out := json.Serialize(doc)
//
// The zero storage.Handle selects the process-wide default storage, which
// allocates individually and relies on the garbage collector.
//
// # The container protocol
//
// String, Array, Object, and Value all follow one ownership contract:
//
//   - The storage handle is fixed at construction and never reseated.
//   - Pilfer* transfers a container's internals in O(1) with no failure
//     path; the source becomes an empty shell that may only be dropped.
//   - Move* with an explicit destination handle transfers in O(1) and resets
//     the source when both sides share storage, and otherwise deep-copies,
//     leaving the source UNCHANGED.
//   - Swap between same-storage containers exchanges buffers in O(1);
//     cross-storage Swap copies and can fail.
//   - Fallible operations follow the strong guarantee: on error the receiver
//     is observably unchanged.
//
// # Errors
//
// Operations report three distinguishable error kinds, matchable with
// errors.Is: ErrAllocationFailure (the bound storage rejected a request),
// ErrLengthExceeded (a result would pass a container's fixed maximum), and
// ErrOutOfRange (a position argument outside the valid bound).
//
// Containers are not safe for concurrent mutation; callers sharing a
// container or an arena across goroutines must synchronize externally.
package json
