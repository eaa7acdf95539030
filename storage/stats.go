package storage

import "fmt"

// Stats tracks a Monotonic resource's usage counters.
//
// Semantics:
//   - BlocksAllocated: blocks grown since construction or the last Release,
//     including dedicated oversized blocks but not a caller seed buffer
//   - BytesReserved: total size of grown blocks
//   - BytesUsed: bytes handed out to callers, before alignment padding
//   - BytesWasted: alignment padding skipped by the cursor
//   - Allocations: number of Allocate calls satisfied
type Stats struct {
	BlocksAllocated uint64
	BytesReserved   uint64
	BytesUsed       uint64
	BytesWasted     uint64
	Allocations     uint64
}

// Utilization returns BytesUsed as a fraction of BytesReserved, or zero when
// nothing has been reserved.
func (s Stats) Utilization() float64 {
	if s.BytesReserved == 0 {
		return 0
	}
	return float64(s.BytesUsed) / float64(s.BytesReserved)
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"Stats{blocks: %d, reserved: %d B, used: %d B, wasted: %d B, allocs: %d, utilization: %.1f%%}",
		s.BlocksAllocated, s.BytesReserved, s.BytesUsed, s.BytesWasted,
		s.Allocations, s.Utilization()*100,
	)
}
