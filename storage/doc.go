// Package storage provides the pluggable memory-allocation layer used by the
// json value tree.
//
// # Resources and Handles
//
// A Resource is an allocation policy: it hands out byte regions and decides
// whether two resources are interchangeable. A Handle is a small, copyable
// reference to a resource. The zero Handle refers to the process-wide default
// resource, which allocates individually and relies on the garbage collector.
// NewCounted wraps a custom resource with a shared atomic reference count so
// that a whole document tree can keep one arena alive and release it in one
// step.
//
// # Monotonic resource
//
// Monotonic is a bump allocator. It carves allocations out of growing blocks
// and never frees them individually; all capacity is reclaimed at once by
// Release. It can be seeded with a caller-supplied buffer, in which case that
// buffer becomes the first block and is never owned by the resource.
//
// # Concurrency
//
// Resources and handles follow a single-threaded-per-object model: the only
// shared mutable state is the reference count of a counted handle, which is
// updated atomically. Containers bound to the same handle must be externally
// synchronized.
package storage
