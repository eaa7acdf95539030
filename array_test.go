package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkrystian/json/storage"
)

func TestArray_Basics(t *testing.T) {
	sp := arenaHandle(t)
	a := NewArray(sp)
	assert.True(t, a.IsEmpty())

	a.AppendNull()
	a.AppendBool(true)
	a.AppendInt64(-1)
	a.AppendUint64(2)
	a.AppendDouble(3.5)
	require.NoError(t, a.AppendString("four"))
	assert.Equal(t, 6, a.Size())

	v, err := a.At(5)
	require.NoError(t, err)
	s, ok := v.GetString()
	require.True(t, ok)
	assert.Equal(t, "four", s.String())
	assert.True(t, v.Storage().IsSame(sp), "elements adopt the array's handle")

	_, err = a.At(6)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = a.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestArray_PushBackMoveSemantics(t *testing.T) {
	sp := arenaHandle(t)
	a := NewArray(sp)

	t.Run("same storage transfers", func(t *testing.T) {
		v, err := StringValue("moved", sp)
		require.NoError(t, err)
		require.NoError(t, a.PushBack(v))
		assert.True(t, v.IsNull(), "same-storage push resets the source")
	})

	t.Run("cross storage copies", func(t *testing.T) {
		other := arenaHandle(t)
		v, err := StringValue("copied", other)
		require.NoError(t, err)
		require.NoError(t, a.PushBack(v))
		s, ok := v.GetString()
		require.True(t, ok, "cross-storage push leaves the source unchanged")
		assert.Equal(t, "copied", s.String())

		elem, err := a.At(a.Size() - 1)
		require.NoError(t, err)
		assert.True(t, elem.Storage().IsSame(sp))
	})
}

func TestArray_InsertErase(t *testing.T) {
	sp := arenaHandle(t)
	a := NewArray(sp)
	a.AppendInt64(1)
	a.AppendInt64(3)

	require.NoError(t, a.InsertAt(1, Int64Value(2, sp)))
	require.NoError(t, a.InsertAt(a.Size(), Int64Value(4, sp)))
	assert.ErrorIs(t, a.InsertAt(10, Int64Value(0, sp)), ErrOutOfRange)

	var got []int64
	a.Range(func(_ int, v *Value) bool {
		n, _ := v.AsInt64()
		got = append(got, n)
		return true
	})
	assert.Equal(t, []int64{1, 2, 3, 4}, got)

	require.NoError(t, a.EraseAt(0))
	v, err := a.At(0)
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.Equal(t, int64(2), n)
	assert.ErrorIs(t, a.EraseAt(3), ErrOutOfRange)

	a.PopBack()
	assert.Equal(t, 2, a.Size())
	a.Clear()
	assert.True(t, a.IsEmpty())
	assert.Panics(t, func() { a.PopBack() })
}

func TestArray_ReservePreservesPointers(t *testing.T) {
	a := NewArray(storage.Default())
	a.AppendInt64(1)
	a.Reserve(64)
	v, err := a.At(0)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		a.AppendInt64(int64(i))
	}
	v2, err := a.At(0)
	require.NoError(t, err)
	assert.Same(t, v, v2, "growth within reserved capacity keeps element pointers valid")
	assert.GreaterOrEqual(t, a.Capacity(), 64)
}

func TestArray_PilferAndMove(t *testing.T) {
	sp := arenaHandle(t)
	src := NewArray(sp)
	src.AppendInt64(1)
	src.AppendInt64(2)

	dst := PilferArray(src)
	assert.Equal(t, 2, dst.Size())
	assert.True(t, src.IsEmpty())

	other := arenaHandle(t)
	moved, err := MoveArray(dst, other)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Size())
	assert.True(t, moved.Storage().IsSame(other))
	assert.Equal(t, 2, dst.Size(), "cross-storage move leaves the source unchanged")

	same, err := MoveArray(dst, sp)
	require.NoError(t, err)
	assert.Equal(t, 2, same.Size())
	assert.True(t, dst.IsEmpty(), "same-storage move resets the source")
}

func TestArray_SwapAndEqual(t *testing.T) {
	sp := arenaHandle(t)
	a := NewArray(sp)
	a.AppendInt64(1)
	b := NewArray(sp)
	require.NoError(t, b.AppendString("x"))

	require.NoError(t, a.Swap(b))
	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())

	other := arenaHandle(t)
	c := NewArray(other)
	require.NoError(t, c.AppendString("x"))
	assert.True(t, a.Equal(c), "equality ignores storage")

	require.NoError(t, a.Swap(c))
	assert.True(t, a.Storage().IsSame(sp))
	assert.Panics(t, func() { _ = a.Swap(a) })

	d := NewArray(sp)
	d.AppendInt64(1)
	e := NewArray(sp)
	e.AppendUint64(1)
	assert.True(t, d.Equal(e), "numeric elements compare by value across kinds")
}
