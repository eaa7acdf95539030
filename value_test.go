package json

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkrystian/json/storage"
)

func TestValue_Kinds(t *testing.T) {
	sp := storage.Default()

	v := NullValue(sp)
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.IsNull())

	v = BoolValue(true, sp)
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.True(t, b)
	_, ok = v.AsInt64()
	assert.False(t, ok)

	v = Int64Value(-7, sp)
	i, ok := v.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(-7), i)

	v = Uint64Value(math.MaxUint64, sp)
	u, ok := v.AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), u)

	v = DoubleValue(1.5, sp)
	f, ok := v.AsDouble()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	sv, err := StringValue("text", sp)
	require.NoError(t, err)
	s, ok := sv.GetString()
	require.True(t, ok)
	assert.Equal(t, "text", s.String())
}

func TestValue_Number(t *testing.T) {
	sp := storage.Default()
	for _, v := range []*Value{Int64Value(3, sp), Uint64Value(3, sp), DoubleValue(3, sp)} {
		f, ok := v.Number()
		require.True(t, ok)
		assert.Equal(t, 3.0, f)
	}
	_, ok := NullValue(sp).Number()
	assert.False(t, ok)
}

func TestValue_AtIndexAtKey(t *testing.T) {
	v, err := Parse(`{"items":[10,20]}`)
	require.NoError(t, err)

	items, err := v.AtKey("items")
	require.NoError(t, err)
	el, err := items.AtIndex(1)
	require.NoError(t, err)
	n, _ := el.AsInt64()
	assert.Equal(t, int64(20), n)

	_, err = items.AtIndex(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = v.AtKey("missing")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = v.AtIndex(0)
	var ke *KindError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, KindObject, ke.Kind)
	_, err = items.AtKey("x")
	assert.ErrorAs(t, err, &ke)
}

func TestValue_SetKeepsHandle(t *testing.T) {
	sp := arenaHandle(t)
	v := NullValue(sp)

	v.SetBool(true)
	assert.Equal(t, KindBool, v.Kind())
	v.SetInt64(1)
	v.SetUint64(2)
	v.SetDouble(3)
	require.NoError(t, v.SetString("s"))
	assert.Equal(t, KindString, v.Kind())

	arr := v.SetEmptyArray()
	assert.Equal(t, KindArray, v.Kind())
	assert.True(t, arr.Storage().IsSame(sp), "children adopt the parent's handle")

	obj := v.SetEmptyObject()
	assert.Equal(t, KindObject, v.Kind())
	assert.True(t, obj.Storage().IsSame(sp))

	v.SetNull()
	assert.True(t, v.IsNull())
	assert.True(t, v.Storage().IsSame(sp), "mutation never reseats the handle")
}

func TestValue_Pilfer(t *testing.T) {
	sp := arenaHandle(t)
	src, err := StringValue("payload", sp)
	require.NoError(t, err)

	dst := PilferValue(src)
	s, ok := dst.GetString()
	require.True(t, ok)
	assert.Equal(t, "payload", s.String())
	assert.True(t, dst.Storage().IsSame(sp))
	assert.True(t, src.IsNull(), "pilfered source is a null shell")
}

func TestValue_MoveCrossStorage(t *testing.T) {
	spA := arenaHandle(t)
	spB := arenaHandle(t)
	src, err := StringValue("payload", spA)
	require.NoError(t, err)

	dst, err := MoveValue(src, spB)
	require.NoError(t, err)
	s, _ := dst.GetString()
	assert.Equal(t, "payload", s.String())
	assert.True(t, dst.Storage().IsSame(spB))

	srcStr, ok := src.GetString()
	require.True(t, ok, "cross-storage move leaves the source unchanged")
	assert.Equal(t, "payload", srcStr.String())
}

func TestValue_CloneIsDeep(t *testing.T) {
	sp := arenaHandle(t)
	v := EmptyObjectValue(sp)
	obj, _ := v.GetObject()
	require.NoError(t, obj.SetString("name", "original"))
	inner := EmptyArrayValue(sp)
	ia, _ := inner.GetArray()
	ia.AppendInt64(1)
	require.NoError(t, obj.Set("items", inner))

	cp, err := v.Clone()
	require.NoError(t, err)
	assert.True(t, cp.Equal(v))

	cpObj, _ := cp.GetObject()
	require.NoError(t, cpObj.SetString("name", "changed"))
	got, _ := obj.Get("name")
	gotStr, _ := got.GetString()
	assert.Equal(t, "original", gotStr.String(), "clone must not alias the source")
}

func TestValue_SwapSameStorage(t *testing.T) {
	sp := arenaHandle(t)
	a := Int64Value(1, sp)
	b, err := StringValue("two", sp)
	require.NoError(t, err)

	require.NoError(t, a.Swap(b))
	s, ok := a.GetString()
	require.True(t, ok)
	assert.Equal(t, "two", s.String())
	i, ok := b.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(1), i)
}

func TestValue_SwapCrossStorage(t *testing.T) {
	spA := arenaHandle(t)
	spB := arenaHandle(t)
	a, err := StringValue("left", spA)
	require.NoError(t, err)
	b, err := StringValue("right", spB)
	require.NoError(t, err)

	require.NoError(t, a.Swap(b))
	as, _ := a.GetString()
	bs, _ := b.GetString()
	assert.Equal(t, "right", as.String())
	assert.Equal(t, "left", bs.String())
	assert.True(t, a.Storage().IsSame(spA), "handles are not exchanged")
	assert.True(t, b.Storage().IsSame(spB))
}

func TestValue_SwapSelfPanics(t *testing.T) {
	v := Int64Value(1, storage.Default())
	assert.Panics(t, func() { _ = v.Swap(v) })
}

func TestValue_NumericEquality(t *testing.T) {
	sp := storage.Default()
	cases := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"int/uint same", Int64Value(5, sp), Uint64Value(5, sp), true},
		{"int/double same", Int64Value(5, sp), DoubleValue(5, sp), true},
		{"uint/double same", Uint64Value(5, sp), DoubleValue(5, sp), true},
		{"negative int vs uint", Int64Value(-1, sp), Uint64Value(math.MaxUint64, sp), false},
		{"different values", Int64Value(5, sp), Int64Value(6, sp), false},
		{"nan is not equal to itself", DoubleValue(math.NaN(), sp), DoubleValue(math.NaN(), sp), false},
		{"number vs string", Int64Value(5, sp), NullValue(sp), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
			assert.Equal(t, tc.want, tc.b.Equal(tc.a))
		})
	}

	// Same-kind doubles compare exactly.
	assert.True(t, DoubleValue(0.1, sp).Equal(DoubleValue(0.1, sp)))
}
