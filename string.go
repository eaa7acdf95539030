package json

import (
	"bytes"
	"math"

	"github.com/sdkrystian/json/storage"
)

// MaxStringSize is the maximum number of bytes a String can hold.
const MaxStringSize = math.MaxInt32 - 1

// minStringCapacity avoids reallocation churn from byte-at-a-time growth.
const minStringCapacity = 16

// emptyStringMem is the shared buffer backing every empty String. It holds
// only the terminator and must never be written.
var emptyStringMem = make([]byte, 1)

// String is a contiguous byte container bound to a storage handle.
//
// It is the exemplar of the owning-container protocol followed by every node
// in the value tree: the handle is fixed at construction and never reseated,
// all growth routes through it, transfers between containers on the same
// storage are O(1), and transfers across storages degrade to deep copies.
//
// The backing buffer always carries one terminator byte past the reported
// size. A default-constructed String points at a shared immutable sentinel
// and owns no allocation.
//
// String is not safe for concurrent mutation.
type String struct {
	sp   storage.Handle
	mem  []byte // len(mem) == capacity+1; mem[size] is the terminator
	size int
}

// NewString returns an empty String bound to sp. The zero Handle binds the
// string to the default storage. No allocation is performed.
func NewString(sp storage.Handle) *String {
	return &String{sp: sp, mem: emptyStringMem}
}

// NewStringFrom returns a String holding s, with capacity sized exactly to
// the content. On failure no partial state is observable.
func NewStringFrom(s string, sp storage.Handle) (*String, error) {
	out := NewString(sp)
	if err := out.Assign(s); err != nil {
		return nil, err
	}
	return out, nil
}

// NewStringFromBytes returns a String holding a copy of b.
func NewStringFromBytes(b []byte, sp storage.Handle) (*String, error) {
	out := NewString(sp)
	if err := out.assignBytes(b); err != nil {
		return nil, err
	}
	return out, nil
}

// NewStringRepeat returns a String holding count copies of ch.
func NewStringRepeat(count int, ch byte, sp storage.Handle) (*String, error) {
	if count > MaxStringSize {
		return nil, lengthExceeded("construction", count, MaxStringSize)
	}
	out := NewString(sp)
	if count == 0 {
		return out, nil
	}
	mem, err := out.sp.Allocate(count+1, 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		mem[i] = ch
	}
	mem[count] = 0
	out.mem, out.size = mem, count
	return out, nil
}

// PilferString transfers src's buffer and handle into a new String in O(1)
// with no allocation and no failure path. src is left as a valid empty shell
// whose only legal subsequent use is being dropped.
func PilferString(src *String) *String {
	dst := &String{sp: src.sp, mem: src.mem, size: src.size}
	src.mem, src.size = emptyStringMem, 0
	return dst
}

// MoveString transfers src into a new String bound to sp.
//
// If sp refers to the same storage as src, the buffer is transferred in O(1)
// and src is reset to an empty, independently usable string on its original
// handle. Otherwise the content is deep-copied into sp and src is left
// UNCHANGED — the one case where a move is non-destructive.
func MoveString(src *String, sp storage.Handle) (*String, error) {
	if sp.IsSame(src.sp) {
		dst := &String{sp: src.sp, mem: src.mem, size: src.size}
		src.mem, src.size = emptyStringMem, 0
		return dst, nil
	}
	return NewStringFromBytes(src.Bytes(), sp)
}

// Storage returns the handle the string is bound to.
func (s *String) Storage() storage.Handle { return s.sp }

// Size returns the number of bytes, excluding the terminator.
func (s *String) Size() int { return s.size }

// Capacity returns the number of bytes the string can hold without
// reallocating.
func (s *String) Capacity() int { return len(s.mem) - 1 }

// IsEmpty reports whether the string holds no bytes.
func (s *String) IsEmpty() bool { return s.size == 0 }

// Bytes returns a view of the contents. The view is invalidated by any
// operation that reallocates.
func (s *String) Bytes() []byte { return s.mem[:s.size:s.size] }

// String returns a copy of the contents.
func (s *String) String() string { return string(s.mem[:s.size]) }

// At returns the byte at position i.
func (s *String) At(i int) (byte, error) {
	if i < 0 || i >= s.size {
		return 0, outOfRange(i, s.size)
	}
	return s.mem[i], nil
}

// SetAt stores ch at position i.
func (s *String) SetAt(i int, ch byte) error {
	if i < 0 || i >= s.size {
		return outOfRange(i, s.size)
	}
	s.mem[i] = ch
	return nil
}

// SubString returns a copy of count bytes starting at pos. A negative count
// means through the end.
func (s *String) SubString(pos, count int) (string, error) {
	if pos < 0 || pos > s.size {
		return "", outOfRange(pos, s.size)
	}
	if count < 0 || count > s.size-pos {
		count = s.size - pos
	}
	return string(s.mem[pos : pos+count]), nil
}

// CopyInto copies up to len(dst) bytes starting at pos into dst and returns
// the number copied.
func (s *String) CopyInto(dst []byte, pos int) (int, error) {
	if pos < 0 || pos > s.size {
		return 0, outOfRange(pos, s.size)
	}
	return copy(dst, s.mem[pos:s.size]), nil
}

// Assign replaces the contents with v. Existing capacity is reused when it
// suffices; otherwise a new exact-fit buffer is allocated before the old one
// is released.
func (s *String) Assign(v string) error {
	if len(v) > MaxStringSize {
		return lengthExceeded("assign", len(v), MaxStringSize)
	}
	if len(v) <= s.Capacity() {
		copy(s.mem, v)
		s.term(len(v))
		return nil
	}
	mem, err := s.sp.Allocate(len(v)+1, 1)
	if err != nil {
		return err
	}
	copy(mem, v)
	mem[len(v)] = 0
	s.replaceBuffer(mem, len(v))
	return nil
}

func (s *String) assignBytes(b []byte) error {
	if len(b) > MaxStringSize {
		return lengthExceeded("assign", len(b), MaxStringSize)
	}
	if len(b) <= s.Capacity() {
		copy(s.mem, b)
		s.term(len(b))
		return nil
	}
	mem, err := s.sp.Allocate(len(b)+1, 1)
	if err != nil {
		return err
	}
	copy(mem, b)
	mem[len(b)] = 0
	s.replaceBuffer(mem, len(b))
	return nil
}

// AssignString deep-copies other's contents, regardless of storage.
func (s *String) AssignString(other *String) error {
	if s == other {
		return nil
	}
	return s.assignBytes(other.Bytes())
}

// AssignMoved transfers other's contents in place.
//
// Same storage: O(1) buffer transfer, other reset empty, no failure path.
// Different storage: deep copy into the receiver's storage; other is left
// unchanged, and on failure the receiver is unchanged too.
func (s *String) AssignMoved(other *String) error {
	if s == other {
		return nil
	}
	if s.sp.IsSame(other.sp) {
		s.releaseBuffer()
		s.mem, s.size = other.mem, other.size
		other.mem, other.size = emptyStringMem, 0
		return nil
	}
	return s.assignBytes(other.Bytes())
}

// Clone returns a deep copy sharing the receiver's handle.
func (s *String) Clone() (*String, error) {
	return NewStringFromBytes(s.Bytes(), s.sp)
}

// CloneInto returns a deep copy bound to sp.
func (s *String) CloneInto(sp storage.Handle) (*String, error) {
	return NewStringFromBytes(s.Bytes(), sp)
}

// Reserve guarantees capacity for at least n bytes. Shrinking never happens
// here; see ShrinkToFit. All views are invalidated when a reallocation
// occurs, and only then.
func (s *String) Reserve(n int) error {
	if n > MaxStringSize {
		return lengthExceeded("reserve", n, MaxStringSize)
	}
	if n <= s.Capacity() {
		return nil
	}
	return s.reallocate(n)
}

// ShrinkToFit reallocates to an exact-fit buffer when capacity exceeds size.
// On allocation failure the string is unchanged.
func (s *String) ShrinkToFit() error {
	if s.Capacity() == s.size {
		return nil
	}
	if s.size == 0 {
		s.releaseBuffer()
		s.mem = emptyStringMem
		return nil
	}
	return s.reallocate(s.size)
}

// Resize sets the size to n, appending copies of ch when growing.
func (s *String) Resize(n int, ch byte) error {
	if n > MaxStringSize {
		return lengthExceeded("resize", n, MaxStringSize)
	}
	if n <= s.size {
		s.term(n)
		return nil
	}
	if err := s.ensure(n - s.size); err != nil {
		return err
	}
	for i := s.size; i < n; i++ {
		s.mem[i] = ch
	}
	s.term(n)
	return nil
}

// Grow bumps the size by n without touching capacity, exposing bytes between
// the old size and the new one for direct writes. The caller must have
// reserved room: n > Capacity()-Size() is a precondition violation and
// panics. Never fails otherwise.
func (s *String) Grow(n int) {
	if n < 0 || n > s.Capacity()-s.size {
		panic("json: String.Grow past capacity")
	}
	s.term(s.size + n)
}

// Append adds v at the end.
func (s *String) Append(v string) error {
	if err := s.ensure(len(v)); err != nil {
		return err
	}
	copy(s.mem[s.size:], v)
	s.term(s.size + len(v))
	return nil
}

// AppendBytes adds b at the end. b must not alias the string's own buffer.
func (s *String) AppendBytes(b []byte) error {
	if err := s.ensure(len(b)); err != nil {
		return err
	}
	copy(s.mem[s.size:], b)
	s.term(s.size + len(b))
	return nil
}

// PushBack adds a single byte at the end.
func (s *String) PushBack(ch byte) error {
	if err := s.ensure(1); err != nil {
		return err
	}
	s.mem[s.size] = ch
	s.term(s.size + 1)
	return nil
}

// PopBack removes the last byte. Calling it on an empty string is a
// precondition violation and panics.
func (s *String) PopBack() {
	if s.size == 0 {
		panic("json: String.PopBack on empty string")
	}
	s.term(s.size - 1)
}

// InsertAt inserts v before position pos. pos == Size() appends.
func (s *String) InsertAt(pos int, v string) error {
	if pos < 0 || pos > s.size {
		return outOfRange(pos, s.size)
	}
	return s.splice(pos, 0, v)
}

// EraseAt removes the byte at position pos.
func (s *String) EraseAt(pos int) error {
	if pos < 0 || pos >= s.size {
		return outOfRange(pos, s.size)
	}
	return s.EraseRange(pos, 1)
}

// EraseRange removes count bytes starting at pos. A negative count, or one
// reaching past the end, erases through the end.
func (s *String) EraseRange(pos, count int) error {
	if pos < 0 || pos > s.size {
		return outOfRange(pos, s.size)
	}
	if count < 0 || count > s.size-pos {
		count = s.size - pos
	}
	copy(s.mem[pos:], s.mem[pos+count:s.size])
	s.term(s.size - count)
	return nil
}

// ReplaceRange replaces count bytes starting at pos with v. A negative
// count, or one reaching past the end, replaces through the end.
func (s *String) ReplaceRange(pos, count int, v string) error {
	if pos < 0 || pos > s.size {
		return outOfRange(pos, s.size)
	}
	if count < 0 || count > s.size-pos {
		count = s.size - pos
	}
	return s.splice(pos, count, v)
}

// Clear removes all bytes, keeping capacity.
func (s *String) Clear() { s.term(0) }

// Swap exchanges contents with other. Swapping a string with itself is a
// precondition violation and panics.
//
// Same storage: buffers are exchanged in O(1) with no failure path and all
// views stay valid. Different storage: contents are swapped via temporary
// deep copies, which can fail; on failure both strings are unchanged. Views
// of both strings are invalidated.
func (s *String) Swap(other *String) error {
	if s == other {
		panic("json: String.Swap with itself")
	}
	if s.sp.IsSame(other.sp) {
		s.mem, other.mem = other.mem, s.mem
		s.size, other.size = other.size, s.size
		return nil
	}
	intoOther, err := other.sp.Allocate(s.size+1, 1)
	if err != nil {
		return err
	}
	intoSelf, err := s.sp.Allocate(other.size+1, 1)
	if err != nil {
		other.sp.Deallocate(intoOther, s.size+1, 1)
		return err
	}
	n := copy(intoOther, s.mem[:s.size])
	intoOther[n] = 0
	n = copy(intoSelf, other.mem[:other.size])
	intoSelf[n] = 0
	newSelfSize, newOtherSize := other.size, s.size
	s.replaceBuffer(intoSelf, newSelfSize)
	other.replaceBuffer(intoOther, newOtherSize)
	return nil
}

// Compare orders the receiver against other byte-wise.
func (s *String) Compare(other *String) int {
	return bytes.Compare(s.Bytes(), other.Bytes())
}

// EqualString reports whether the contents equal v.
func (s *String) EqualString(v string) bool {
	return string(s.mem[:s.size]) == v
}

// Equal reports whether the contents equal other's.
func (s *String) Equal(other *String) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// Index returns the byte offset of the first occurrence of sub, or -1.
func (s *String) Index(sub string) int {
	return bytes.Index(s.Bytes(), []byte(sub))
}

// term sets the size and maintains the terminator. The shared empty sentinel
// already terminates at zero and is never written.
func (s *String) term(n int) {
	s.size = n
	if s.Capacity() > 0 {
		s.mem[n] = 0
	}
}

// ensure makes room for extra additional bytes, growing geometrically.
func (s *String) ensure(extra int) error {
	needed := s.size + extra
	if needed > MaxStringSize {
		return lengthExceeded("growth", needed, MaxStringSize)
	}
	if needed <= s.Capacity() {
		return nil
	}
	newCap := s.Capacity() * 2
	if newCap < needed {
		newCap = needed
	}
	if newCap < minStringCapacity {
		newCap = minStringCapacity
	}
	if newCap > MaxStringSize {
		newCap = MaxStringSize
	}
	return s.reallocate(newCap)
}

// reallocate moves the contents into a fresh buffer of the given capacity,
// releasing the old buffer only after the copy. The strong guarantee follows:
// a failed allocation leaves the string untouched.
func (s *String) reallocate(newCap int) error {
	mem, err := s.sp.Allocate(newCap+1, 1)
	if err != nil {
		return err
	}
	copy(mem, s.mem[:s.size])
	mem[s.size] = 0
	s.replaceBuffer(mem, s.size)
	return nil
}

// splice replaces the range [pos, pos+count) with v, preserving the strong
// guarantee: when growth is needed the result is built in a fresh buffer
// before the old one is released.
func (s *String) splice(pos, count int, v string) error {
	newSize := s.size - count + len(v)
	if newSize > MaxStringSize {
		return lengthExceeded("replacement", newSize, MaxStringSize)
	}
	if newSize <= s.Capacity() {
		copy(s.mem[pos+len(v):], s.mem[pos+count:s.size])
		copy(s.mem[pos:], v)
		s.term(newSize)
		return nil
	}
	newCap := s.Capacity() * 2
	if newCap < newSize {
		newCap = newSize
	}
	mem, err := s.sp.Allocate(newCap+1, 1)
	if err != nil {
		return err
	}
	n := copy(mem, s.mem[:pos])
	n += copy(mem[n:], v)
	copy(mem[n:], s.mem[pos+count:s.size])
	mem[newSize] = 0
	s.replaceBuffer(mem, newSize)
	return nil
}

// replaceBuffer installs a new buffer, releasing the old one through the
// handle. The sentinel is never released.
func (s *String) replaceBuffer(mem []byte, size int) {
	s.releaseBuffer()
	s.mem, s.size = mem, size
}

func (s *String) releaseBuffer() {
	if c := s.Capacity(); c > 0 {
		s.sp.Deallocate(s.mem, c+1, 1)
	}
}
