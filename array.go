package json

import "github.com/sdkrystian/json/storage"

// Array is an ordered sequence of Values sharing one storage handle.
//
// It follows the owning-container protocol of String: the handle is fixed at
// construction, element payloads allocate from it, and transfers between
// arrays on the same storage are O(1) while cross-storage transfers deep
// copy. Element headers live in a Go slice; pointers returned by At are
// invalidated when an insertion reallocates, and never otherwise.
//
// Array is not safe for concurrent mutation.
type Array struct {
	sp    storage.Handle
	elems []Value
}

// NewArray returns an empty Array bound to sp. No allocation is performed.
func NewArray(sp storage.Handle) *Array {
	return &Array{sp: sp}
}

// PilferArray transfers src's elements and handle into a new Array in O(1)
// with no allocation and no failure path. src is left as a valid empty shell
// whose only legal subsequent use is being dropped.
func PilferArray(src *Array) *Array {
	dst := &Array{sp: src.sp, elems: src.elems}
	src.elems = nil
	return dst
}

// MoveArray transfers src into a new Array bound to sp.
//
// Same storage: O(1) transfer, src reset empty on its original handle.
// Different storage: deep copy into sp, src left UNCHANGED.
func MoveArray(src *Array, sp storage.Handle) (*Array, error) {
	if sp.IsSame(src.sp) {
		dst := &Array{sp: src.sp, elems: src.elems}
		src.elems = nil
		return dst, nil
	}
	return src.CloneInto(sp)
}

// Storage returns the handle the array is bound to.
func (a *Array) Storage() storage.Handle { return a.sp }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.elems) }

// Capacity returns the number of elements the array can hold without
// reallocating its element headers.
func (a *Array) Capacity() int { return cap(a.elems) }

// IsEmpty reports whether the array holds no elements.
func (a *Array) IsEmpty() bool { return len(a.elems) == 0 }

// At returns a pointer to the element at position i.
func (a *Array) At(i int) (*Value, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, outOfRange(i, len(a.elems))
	}
	return &a.elems[i], nil
}

// PushBack appends v with move semantics: on the same storage v's payload is
// transferred and v is reset to null; on different storage the payload is
// deep-copied into the array's storage and v is left unchanged.
func (a *Array) PushBack(v *Value) error {
	mv, err := MoveValue(v, a.sp)
	if err != nil {
		return err
	}
	a.elems = append(a.elems, *mv)
	return nil
}

// AppendNull appends a null element.
func (a *Array) AppendNull() {
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindNull})
}

// AppendBool appends a boolean element.
func (a *Array) AppendBool(b bool) {
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindBool, b: b})
}

// AppendInt64 appends a signed integer element.
func (a *Array) AppendInt64(n int64) {
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindInt64, i64: n})
}

// AppendUint64 appends an unsigned integer element.
func (a *Array) AppendUint64(n uint64) {
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindUint64, u64: n})
}

// AppendDouble appends a floating-point element.
func (a *Array) AppendDouble(n float64) {
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindDouble, f64: n})
}

// AppendString appends a string element allocated from the array's storage.
// On failure the array is unchanged.
func (a *Array) AppendString(s string) error {
	str, err := NewStringFrom(s, a.sp)
	if err != nil {
		return err
	}
	a.elems = append(a.elems, Value{sp: a.sp, kind: KindString, str: str})
	return nil
}

// InsertAt inserts v before position pos with the same move semantics as
// PushBack. pos == Size() appends.
func (a *Array) InsertAt(pos int, v *Value) error {
	if pos < 0 || pos > len(a.elems) {
		return outOfRange(pos, len(a.elems))
	}
	mv, err := MoveValue(v, a.sp)
	if err != nil {
		return err
	}
	a.elems = append(a.elems, Value{})
	copy(a.elems[pos+1:], a.elems[pos:])
	a.elems[pos] = *mv
	return nil
}

// EraseAt removes the element at position pos, shifting later elements down.
func (a *Array) EraseAt(pos int) error {
	if pos < 0 || pos >= len(a.elems) {
		return outOfRange(pos, len(a.elems))
	}
	copy(a.elems[pos:], a.elems[pos+1:])
	a.elems[len(a.elems)-1] = Value{}
	a.elems = a.elems[:len(a.elems)-1]
	return nil
}

// PopBack removes the last element. Calling it on an empty array is a
// precondition violation and panics.
func (a *Array) PopBack() {
	if len(a.elems) == 0 {
		panic("json: Array.PopBack on empty array")
	}
	a.elems[len(a.elems)-1] = Value{}
	a.elems = a.elems[:len(a.elems)-1]
}

// Reserve guarantees capacity for at least n element headers. Existing
// element pointers are invalidated when a reallocation occurs, and never
// otherwise.
func (a *Array) Reserve(n int) {
	if n <= cap(a.elems) {
		return
	}
	elems := make([]Value, len(a.elems), n)
	copy(elems, a.elems)
	a.elems = elems
}

// Clear removes all elements, keeping capacity.
func (a *Array) Clear() {
	for i := range a.elems {
		a.elems[i] = Value{}
	}
	a.elems = a.elems[:0]
}

// Range calls fn for each element in order until fn returns false.
func (a *Array) Range(fn func(i int, v *Value) bool) {
	for i := range a.elems {
		if !fn(i, &a.elems[i]) {
			return
		}
	}
}

// Clone returns a deep copy sharing the receiver's handle.
func (a *Array) Clone() (*Array, error) {
	return a.CloneInto(a.sp)
}

// CloneInto returns a deep copy bound to sp.
func (a *Array) CloneInto(sp storage.Handle) (*Array, error) {
	dst := &Array{sp: sp, elems: make([]Value, 0, len(a.elems))}
	for i := range a.elems {
		cp, err := a.elems[i].CloneInto(sp)
		if err != nil {
			return nil, err
		}
		dst.elems = append(dst.elems, *cp)
	}
	return dst, nil
}

// Swap exchanges contents with other. Swapping an array with itself is a
// precondition violation and panics.
//
// Same storage: element slices are exchanged in O(1) with no failure path
// and no allocation. Different storage: contents are swapped via temporary
// deep copies, which can fail; on failure both arrays are unchanged.
func (a *Array) Swap(other *Array) error {
	if a == other {
		panic("json: Array.Swap with itself")
	}
	if a.sp.IsSame(other.sp) {
		a.elems, other.elems = other.elems, a.elems
		return nil
	}
	intoOther, err := a.CloneInto(other.sp)
	if err != nil {
		return err
	}
	intoSelf, err := other.CloneInto(a.sp)
	if err != nil {
		return err
	}
	a.elems = intoSelf.elems
	other.elems = intoOther.elems
	return nil
}

// Equal reports deep element-wise equality.
func (a *Array) Equal(other *Array) bool {
	if len(a.elems) != len(other.elems) {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].Equal(&other.elems[i]) {
			return false
		}
	}
	return true
}
