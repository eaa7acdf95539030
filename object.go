package json

import "github.com/sdkrystian/json/storage"

// smallObjectLimit is the member count above which lookups build a map
// index. Small objects scan linearly, which is faster and avoids duplicating
// keys on the Go heap.
const smallObjectLimit = 16

// Member is one key/value entry of an Object. The key is an arena-backed
// String on the object's storage.
type Member struct {
	Key   *String
	Value Value
}

// Object is an insertion-ordered collection of key/value members sharing one
// storage handle, following the same owning-container protocol as String and
// Array. Keys are unique; setting an existing key replaces its value in
// place.
//
// Object is not safe for concurrent mutation.
type Object struct {
	sp      storage.Handle
	members []Member
	index   map[string]int // lazily built past smallObjectLimit
}

// NewObject returns an empty Object bound to sp. No allocation is performed.
func NewObject(sp storage.Handle) *Object {
	return &Object{sp: sp}
}

// PilferObject transfers src's members and handle into a new Object in O(1)
// with no allocation and no failure path. src is left as a valid empty shell
// whose only legal subsequent use is being dropped.
func PilferObject(src *Object) *Object {
	dst := &Object{sp: src.sp, members: src.members, index: src.index}
	src.members, src.index = nil, nil
	return dst
}

// MoveObject transfers src into a new Object bound to sp.
//
// Same storage: O(1) transfer, src reset empty on its original handle.
// Different storage: deep copy into sp, src left UNCHANGED.
func MoveObject(src *Object, sp storage.Handle) (*Object, error) {
	if sp.IsSame(src.sp) {
		dst := &Object{sp: src.sp, members: src.members, index: src.index}
		src.members, src.index = nil, nil
		return dst, nil
	}
	return src.CloneInto(sp)
}

// Storage returns the handle the object is bound to.
func (o *Object) Storage() storage.Handle { return o.sp }

// Size returns the number of members.
func (o *Object) Size() int { return len(o.members) }

// IsEmpty reports whether the object holds no members.
func (o *Object) IsEmpty() bool { return len(o.members) == 0 }

// At returns a pointer to the member at insertion position i.
func (o *Object) At(i int) (*Member, error) {
	if i < 0 || i >= len(o.members) {
		return nil, outOfRange(i, len(o.members))
	}
	return &o.members[i], nil
}

// Get returns a pointer to the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	i := o.find(key)
	if i < 0 {
		return nil, false
	}
	return &o.members[i].Value, true
}

// Contains reports whether key is present.
func (o *Object) Contains(key string) bool { return o.find(key) >= 0 }

// Set stores v under key with move semantics: on the same storage v's
// payload is transferred and v is reset to null; on different storage the
// payload is deep-copied and v is left unchanged. An existing key keeps its
// insertion position. On failure the object is unchanged.
func (o *Object) Set(key string, v *Value) error {
	mv, err := MoveValue(v, o.sp)
	if err != nil {
		return err
	}
	if i := o.find(key); i >= 0 {
		o.members[i].Value = *mv
		return nil
	}
	k, err := NewStringFrom(key, o.sp)
	if err != nil {
		return err
	}
	o.members = append(o.members, Member{Key: k, Value: *mv})
	if o.index != nil {
		o.index[key] = len(o.members) - 1
	}
	return nil
}

// SetNull stores a null value under key.
func (o *Object) SetNull(key string) error {
	return o.Set(key, NullValue(o.sp))
}

// SetBool stores a boolean under key.
func (o *Object) SetBool(key string, b bool) error {
	return o.Set(key, BoolValue(b, o.sp))
}

// SetInt64 stores a signed integer under key.
func (o *Object) SetInt64(key string, n int64) error {
	return o.Set(key, Int64Value(n, o.sp))
}

// SetUint64 stores an unsigned integer under key.
func (o *Object) SetUint64(key string, n uint64) error {
	return o.Set(key, Uint64Value(n, o.sp))
}

// SetDouble stores a floating-point number under key.
func (o *Object) SetDouble(key string, n float64) error {
	return o.Set(key, DoubleValue(n, o.sp))
}

// SetString stores a string under key, allocated from the object's storage.
func (o *Object) SetString(key, s string) error {
	v, err := StringValue(s, o.sp)
	if err != nil {
		return err
	}
	return o.Set(key, v)
}

// Delete removes key, preserving the order of the remaining members, and
// reports whether it was present.
func (o *Object) Delete(key string) bool {
	i := o.find(key)
	if i < 0 {
		return false
	}
	copy(o.members[i:], o.members[i+1:])
	o.members[len(o.members)-1] = Member{}
	o.members = o.members[:len(o.members)-1]
	o.index = nil // positions shifted
	return true
}

// Clear removes all members, keeping capacity.
func (o *Object) Clear() {
	for i := range o.members {
		o.members[i] = Member{}
	}
	o.members = o.members[:0]
	o.index = nil
}

// Reserve guarantees capacity for at least n member headers.
func (o *Object) Reserve(n int) {
	if n <= cap(o.members) {
		return
	}
	members := make([]Member, len(o.members), n)
	copy(members, o.members)
	o.members = members
}

// Range calls fn for each member in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v *Value) bool) {
	for i := range o.members {
		if !fn(o.members[i].Key.String(), &o.members[i].Value) {
			return
		}
	}
}

// Clone returns a deep copy sharing the receiver's handle.
func (o *Object) Clone() (*Object, error) {
	return o.CloneInto(o.sp)
}

// CloneInto returns a deep copy bound to sp.
func (o *Object) CloneInto(sp storage.Handle) (*Object, error) {
	dst := &Object{sp: sp, members: make([]Member, 0, len(o.members))}
	for i := range o.members {
		k, err := o.members[i].Key.CloneInto(sp)
		if err != nil {
			return nil, err
		}
		v, err := o.members[i].Value.CloneInto(sp)
		if err != nil {
			return nil, err
		}
		dst.members = append(dst.members, Member{Key: k, Value: *v})
	}
	return dst, nil
}

// Swap exchanges contents with other. Swapping an object with itself is a
// precondition violation and panics.
//
// Same storage: O(1), no failure path. Different storage: logical swap via
// temporary deep copies; on failure both objects are unchanged.
func (o *Object) Swap(other *Object) error {
	if o == other {
		panic("json: Object.Swap with itself")
	}
	if o.sp.IsSame(other.sp) {
		o.members, other.members = other.members, o.members
		o.index, other.index = other.index, o.index
		return nil
	}
	intoOther, err := o.CloneInto(other.sp)
	if err != nil {
		return err
	}
	intoSelf, err := other.CloneInto(o.sp)
	if err != nil {
		return err
	}
	o.members, o.index = intoSelf.members, nil
	other.members, other.index = intoOther.members, nil
	return nil
}

// Equal reports whether both objects hold the same keys with deeply equal
// values, regardless of insertion order.
func (o *Object) Equal(other *Object) bool {
	if len(o.members) != len(other.members) {
		return false
	}
	for i := range o.members {
		v, ok := other.Get(o.members[i].Key.String())
		if !ok || !o.members[i].Value.Equal(v) {
			return false
		}
	}
	return true
}

// find returns the position of key, building the map index for large
// objects.
func (o *Object) find(key string) int {
	if len(o.members) <= smallObjectLimit {
		for i := range o.members {
			if o.members[i].Key.EqualString(key) {
				return i
			}
		}
		return -1
	}
	if o.index == nil {
		o.index = make(map[string]int, len(o.members))
		for i := range o.members {
			o.index[o.members[i].Key.String()] = i
		}
	}
	if i, ok := o.index[key]; ok {
		return i
	}
	return -1
}
