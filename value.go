package json

import (
	"fmt"
	"math"

	"github.com/sdkrystian/json/storage"
)

// Value is a node of the JSON document tree: null, bool, number (signed,
// unsigned, or double), string, array, or object.
//
// Every Value is bound to a storage handle at construction. Children created
// through a Value share its handle, so a whole document allocates from, and
// keeps alive, one storage. The handle is never reseated; transfers follow
// the same same-storage/cross-storage contract as String.
//
// Value is not safe for concurrent mutation.
type Value struct {
	sp   storage.Handle
	kind Kind
	b    bool
	i64  int64
	u64  uint64
	f64  float64
	str  *String
	arr  *Array
	obj  *Object
}

// NullValue returns a null Value bound to sp.
func NullValue(sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindNull}
}

// BoolValue returns a boolean Value bound to sp.
func BoolValue(b bool, sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindBool, b: b}
}

// Int64Value returns a signed integer Value bound to sp.
func Int64Value(v int64, sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindInt64, i64: v}
}

// Uint64Value returns an unsigned integer Value bound to sp.
func Uint64Value(v uint64, sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindUint64, u64: v}
}

// DoubleValue returns a floating-point Value bound to sp.
func DoubleValue(v float64, sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindDouble, f64: v}
}

// StringValue returns a string Value bound to sp, allocating the contents
// from it.
func StringValue(s string, sp storage.Handle) (*Value, error) {
	str, err := NewStringFrom(s, sp)
	if err != nil {
		return nil, err
	}
	return &Value{sp: sp, kind: KindString, str: str}, nil
}

// EmptyArrayValue returns a Value holding an empty array bound to sp.
func EmptyArrayValue(sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindArray, arr: NewArray(sp)}
}

// EmptyObjectValue returns a Value holding an empty object bound to sp.
func EmptyObjectValue(sp storage.Handle) *Value {
	return &Value{sp: sp, kind: KindObject, obj: NewObject(sp)}
}

// PilferValue transfers src's payload and handle into a new Value in O(1)
// with no allocation and no failure path. src is left as a null shell whose
// only legal subsequent use is being dropped.
func PilferValue(src *Value) *Value {
	dst := *src
	src.reset(KindNull)
	return &dst
}

// MoveValue transfers src into a new Value bound to sp.
//
// Same storage: O(1) payload transfer, src reset to null on its original
// handle. Different storage: deep copy into sp, src left UNCHANGED.
func MoveValue(src *Value, sp storage.Handle) (*Value, error) {
	if sp.IsSame(src.sp) {
		dst := *src
		src.reset(KindNull)
		return &dst, nil
	}
	return src.CloneInto(sp)
}

// Storage returns the handle the value is bound to. Callers building trees
// use it to propagate one arena through every child node.
func (v *Value) Storage() storage.Handle { return v.sp }

// Kind returns the value's kind.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload if the kind is KindBool.
func (v *Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt64 returns the signed integer payload if the kind is KindInt64.
func (v *Value) AsInt64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i64, true
}

// AsUint64 returns the unsigned integer payload if the kind is KindUint64.
func (v *Value) AsUint64() (uint64, bool) {
	if v.kind != KindUint64 {
		return 0, false
	}
	return v.u64, true
}

// AsDouble returns the floating-point payload if the kind is KindDouble.
func (v *Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f64, true
}

// GetString returns the string payload if the kind is KindString.
func (v *Value) GetString() (*String, bool) {
	if v.kind != KindString {
		return nil, false
	}
	return v.str, true
}

// GetArray returns the array payload if the kind is KindArray.
func (v *Value) GetArray() (*Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// GetObject returns the object payload if the kind is KindObject.
func (v *Value) GetObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AtIndex returns a pointer to array element i. A non-array value yields a
// KindError, a position outside the array an OutOfRangeError.
func (v *Value) AtIndex(i int) (*Value, error) {
	if v.kind != KindArray {
		return nil, &KindError{Op: "index", Kind: v.kind}
	}
	return v.arr.At(i)
}

// AtKey returns a pointer to the object member stored under key. A non-object
// value yields a KindError, a missing key an OutOfRangeError.
func (v *Value) AtKey(key string) (*Value, error) {
	if v.kind != KindObject {
		return nil, &KindError{Op: "key lookup", Kind: v.kind}
	}
	mv, ok := v.obj.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: no member %q", ErrOutOfRange, key)
	}
	return mv, nil
}

// Number returns the numeric payload as a float64 for any of the three
// number kinds.
func (v *Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt64:
		return float64(v.i64), true
	case KindUint64:
		return float64(v.u64), true
	case KindDouble:
		return v.f64, true
	default:
		return 0, false
	}
}

// SetNull replaces the payload with null, keeping the handle.
func (v *Value) SetNull() { v.reset(KindNull) }

// SetBool replaces the payload with a boolean.
func (v *Value) SetBool(b bool) {
	v.reset(KindBool)
	v.b = b
}

// SetInt64 replaces the payload with a signed integer.
func (v *Value) SetInt64(n int64) {
	v.reset(KindInt64)
	v.i64 = n
}

// SetUint64 replaces the payload with an unsigned integer.
func (v *Value) SetUint64(n uint64) {
	v.reset(KindUint64)
	v.u64 = n
}

// SetDouble replaces the payload with a float.
func (v *Value) SetDouble(n float64) {
	v.reset(KindDouble)
	v.f64 = n
}

// SetString replaces the payload with s, allocated from the value's handle.
// On failure the value is unchanged.
func (v *Value) SetString(s string) error {
	str, err := NewStringFrom(s, v.sp)
	if err != nil {
		return err
	}
	v.reset(KindString)
	v.str = str
	return nil
}

// SetEmptyArray replaces the payload with an empty array on the value's
// handle and returns it.
func (v *Value) SetEmptyArray() *Array {
	v.reset(KindArray)
	v.arr = NewArray(v.sp)
	return v.arr
}

// SetEmptyObject replaces the payload with an empty object on the value's
// handle and returns it.
func (v *Value) SetEmptyObject() *Object {
	v.reset(KindObject)
	v.obj = NewObject(v.sp)
	return v.obj
}

// adoptString installs str as the payload. str must be bound to the value's
// storage.
func (v *Value) adoptString(str *String) {
	v.reset(KindString)
	v.str = str
}

func (v *Value) adoptArray(arr *Array) {
	v.reset(KindArray)
	v.arr = arr
}

func (v *Value) adoptObject(obj *Object) {
	v.reset(KindObject)
	v.obj = obj
}

// Clone returns a deep copy sharing the receiver's handle.
func (v *Value) Clone() (*Value, error) {
	return v.CloneInto(v.sp)
}

// CloneInto returns a deep copy bound to sp; every node of the copy
// allocates from sp.
func (v *Value) CloneInto(sp storage.Handle) (*Value, error) {
	dst := &Value{sp: sp, kind: v.kind, b: v.b, i64: v.i64, u64: v.u64, f64: v.f64}
	var err error
	switch v.kind {
	case KindString:
		dst.str, err = v.str.CloneInto(sp)
	case KindArray:
		dst.arr, err = v.arr.CloneInto(sp)
	case KindObject:
		dst.obj, err = v.obj.CloneInto(sp)
	}
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Swap exchanges payloads with other. Swapping a value with itself is a
// precondition violation and panics.
//
// Same storage: O(1), no failure path. Different storage: logical swap via
// temporary deep copies; on failure both values are unchanged.
func (v *Value) Swap(other *Value) error {
	if v == other {
		panic("json: Value.Swap with itself")
	}
	if v.sp.IsSame(other.sp) {
		v.swapPayload(other)
		return nil
	}
	intoOther, err := v.CloneInto(other.sp)
	if err != nil {
		return err
	}
	intoSelf, err := other.CloneInto(v.sp)
	if err != nil {
		return err
	}
	v.installPayload(intoSelf)
	other.installPayload(intoOther)
	return nil
}

// Equal reports deep equality. Numbers compare by numeric value across the
// three number kinds.
func (v *Value) Equal(other *Value) bool {
	if v.isNumber() && other.isNumber() {
		return numberEqual(v, other)
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.str.Equal(other.str)
	case KindArray:
		return v.arr.Equal(other.arr)
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

func (v *Value) isNumber() bool {
	return v.kind == KindInt64 || v.kind == KindUint64 || v.kind == KindDouble
}

func numberEqual(a, b *Value) bool {
	if a.kind == b.kind {
		switch a.kind {
		case KindInt64:
			return a.i64 == b.i64
		case KindUint64:
			return a.u64 == b.u64
		default:
			return a.f64 == b.f64
		}
	}
	// Mixed kinds: compare through float64 unless both are integral and
	// exactly representable.
	if a.kind == KindInt64 && b.kind == KindUint64 {
		return a.i64 >= 0 && uint64(a.i64) == b.u64
	}
	if a.kind == KindUint64 && b.kind == KindInt64 {
		return b.i64 >= 0 && uint64(b.i64) == a.u64
	}
	af, _ := a.Number()
	bf, _ := b.Number()
	return af == bf && !math.IsNaN(af)
}

// reset clears the payload, keeping the handle.
func (v *Value) reset(kind Kind) {
	v.kind = kind
	v.b = false
	v.i64, v.u64, v.f64 = 0, 0, 0
	v.str, v.arr, v.obj = nil, nil, nil
}

// swapPayload exchanges everything except the handles.
func (v *Value) swapPayload(other *Value) {
	v.kind, other.kind = other.kind, v.kind
	v.b, other.b = other.b, v.b
	v.i64, other.i64 = other.i64, v.i64
	v.u64, other.u64 = other.u64, v.u64
	v.f64, other.f64 = other.f64, v.f64
	v.str, other.str = other.str, v.str
	v.arr, other.arr = other.arr, v.arr
	v.obj, other.obj = other.obj, v.obj
}

// installPayload adopts src's payload, keeping the receiver's handle. src
// must already be bound to the receiver's storage.
func (v *Value) installPayload(src *Value) {
	v.kind = src.kind
	v.b = src.b
	v.i64, v.u64, v.f64 = src.i64, src.u64, src.f64
	v.str, v.arr, v.obj = src.str, src.arr, src.obj
}
