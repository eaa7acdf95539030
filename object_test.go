package json

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkrystian/json/storage"
)

func TestObject_Basics(t *testing.T) {
	sp := arenaHandle(t)
	o := NewObject(sp)
	assert.True(t, o.IsEmpty())

	require.NoError(t, o.SetNull("n"))
	require.NoError(t, o.SetBool("b", true))
	require.NoError(t, o.SetInt64("i", -1))
	require.NoError(t, o.SetUint64("u", 2))
	require.NoError(t, o.SetDouble("d", 3.5))
	require.NoError(t, o.SetString("s", "text"))
	assert.Equal(t, 6, o.Size())

	v, ok := o.Get("s")
	require.True(t, ok)
	s, _ := v.GetString()
	assert.Equal(t, "text", s.String())
	assert.True(t, v.Storage().IsSame(sp), "members adopt the object's handle")

	_, ok = o.Get("missing")
	assert.False(t, ok)
	assert.True(t, o.Contains("b"))
	assert.False(t, o.Contains("missing"))
}

func TestObject_InsertionOrder(t *testing.T) {
	o := NewObject(storage.Default())
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		require.NoError(t, o.SetInt64(k, int64(i)))
	}

	// Replacing a value keeps the key's original position.
	require.NoError(t, o.SetInt64("a", 99))

	var got []string
	o.Range(func(key string, _ *Value) bool {
		got = append(got, key)
		return true
	})
	assert.Equal(t, keys, got)

	m, err := o.At(1)
	require.NoError(t, err)
	assert.Equal(t, "a", m.Key.String())
	n, _ := m.Value.AsInt64()
	assert.Equal(t, int64(99), n)

	_, err = o.At(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestObject_Delete(t *testing.T) {
	o := NewObject(storage.Default())
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, o.SetInt64(k, 0))
	}

	assert.True(t, o.Delete("b"))
	assert.False(t, o.Delete("b"))
	assert.Equal(t, 2, o.Size())

	var got []string
	o.Range(func(key string, _ *Value) bool {
		got = append(got, key)
		return true
	})
	assert.Equal(t, []string{"a", "c"}, got, "delete preserves the remaining order")
}

func TestObject_SetMoveSemantics(t *testing.T) {
	sp := arenaHandle(t)
	o := NewObject(sp)

	same, err := StringValue("moved", sp)
	require.NoError(t, err)
	require.NoError(t, o.Set("k1", same))
	assert.True(t, same.IsNull(), "same-storage set resets the source")

	other := arenaHandle(t)
	cross, err := StringValue("copied", other)
	require.NoError(t, err)
	require.NoError(t, o.Set("k2", cross))
	s, ok := cross.GetString()
	require.True(t, ok, "cross-storage set leaves the source unchanged")
	assert.Equal(t, "copied", s.String())
}

func TestObject_LargeObjectLookup(t *testing.T) {
	// Push past the linear-scan threshold so lookups go through the index.
	o := NewObject(storage.Default())
	const n = smallObjectLimit * 4
	for i := 0; i < n; i++ {
		require.NoError(t, o.SetInt64(fmt.Sprintf("key-%03d", i), int64(i)))
	}

	for i := 0; i < n; i++ {
		v, ok := o.Get(fmt.Sprintf("key-%03d", i))
		require.True(t, ok)
		got, _ := v.AsInt64()
		assert.Equal(t, int64(i), got)
	}
	_, ok := o.Get("key-999")
	assert.False(t, ok)

	// Mutation after the index is built stays consistent.
	require.NoError(t, o.SetInt64("late", -1))
	v, ok := o.Get("late")
	require.True(t, ok)
	got, _ := v.AsInt64()
	assert.Equal(t, int64(-1), got)

	assert.True(t, o.Delete(fmt.Sprintf("key-%03d", n/2)))
	assert.False(t, o.Contains(fmt.Sprintf("key-%03d", n/2)))
	v, ok = o.Get(fmt.Sprintf("key-%03d", n-1))
	require.True(t, ok)
	got, _ = v.AsInt64()
	assert.Equal(t, int64(n-1), got)
}

func TestObject_PilferAndMove(t *testing.T) {
	sp := arenaHandle(t)
	src := NewObject(sp)
	require.NoError(t, src.SetInt64("a", 1))

	dst := PilferObject(src)
	assert.Equal(t, 1, dst.Size())
	assert.True(t, src.IsEmpty())

	other := arenaHandle(t)
	moved, err := MoveObject(dst, other)
	require.NoError(t, err)
	assert.True(t, moved.Contains("a"))
	assert.True(t, moved.Storage().IsSame(other))
	assert.Equal(t, 1, dst.Size(), "cross-storage move leaves the source unchanged")

	same, err := MoveObject(dst, sp)
	require.NoError(t, err)
	assert.True(t, same.Contains("a"))
	assert.True(t, dst.IsEmpty(), "same-storage move resets the source")
}

func TestObject_SwapAndEqual(t *testing.T) {
	sp := arenaHandle(t)
	a := NewObject(sp)
	require.NoError(t, a.SetInt64("x", 1))
	b := NewObject(sp)
	require.NoError(t, b.SetString("y", "two"))

	require.NoError(t, a.Swap(b))
	assert.True(t, a.Contains("y"))
	assert.True(t, b.Contains("x"))
	assert.Panics(t, func() { _ = a.Swap(a) })

	// Equality is order-insensitive.
	p := NewObject(sp)
	require.NoError(t, p.SetInt64("one", 1))
	require.NoError(t, p.SetInt64("two", 2))
	q := NewObject(storage.Default())
	require.NoError(t, q.SetInt64("two", 2))
	require.NoError(t, q.SetInt64("one", 1))
	assert.True(t, p.Equal(q))

	require.NoError(t, q.SetInt64("two", 3))
	assert.False(t, p.Equal(q))
}

func TestObject_CloneInto(t *testing.T) {
	sp := arenaHandle(t)
	other := arenaHandle(t)
	o := NewObject(sp)
	require.NoError(t, o.SetString("k", "v"))

	cp, err := o.CloneInto(other)
	require.NoError(t, err)
	assert.True(t, cp.Equal(o))
	assert.True(t, cp.Storage().IsSame(other))

	m, err := cp.At(0)
	require.NoError(t, err)
	assert.True(t, m.Key.Storage().IsSame(other), "cloned keys live on the destination storage")
}
