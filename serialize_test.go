package json

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkrystian/json/storage"
)

func TestSerialize_RoundTrip(t *testing.T) {
	cases := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-42`,
		`9223372036854775807`,
		`18446744073709551615`,
		`0.5`,
		`1e+100`,
		`""`,
		`"hello"`,
		`[]`,
		`[1,2,3]`,
		`{}`,
		`{"a":1,"b":[true,null],"c":{"d":"e"}}`,
	}
	sp := arenaHandle(t)
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			v, err := Parse(in, WithStorage(sp))
			require.NoError(t, err)
			assert.Equal(t, in, SerializeString(v))
		})
	}
}

func TestSerialize_PreservesInsertionOrder(t *testing.T) {
	o := NewObject(storage.Default())
	require.NoError(t, o.SetInt64("zebra", 1))
	require.NoError(t, o.SetInt64("alpha", 2))
	v := EmptyObjectValue(storage.Default())
	v.adoptObject(o)

	assert.Equal(t, `{"zebra":1,"alpha":2}`, SerializeString(v))
}

func TestSerialize_Escaping(t *testing.T) {
	sp := storage.Default()
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"with \"quotes\"", `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{"\b\f\r", `"\b\f\r"`},
		{"ctl\x01", `"ctl\u0001"`},
		{"héllo", `"héllo"`},
		{"😀", `"😀"`},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			v, err := StringValue(tc.in, sp)
			require.NoError(t, err)
			assert.Equal(t, tc.want, SerializeString(v))
		})
	}
}

func TestSerialize_NonFiniteDoubles(t *testing.T) {
	sp := storage.Default()
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, "null", SerializeString(DoubleValue(f, sp)))
	}
}

func TestSerialize_DoubleShortestForm(t *testing.T) {
	sp := storage.Default()
	assert.Equal(t, "0.1", SerializeString(DoubleValue(0.1, sp)))
	assert.Equal(t, "-2.5", SerializeString(DoubleValue(-2.5, sp)))

	// Any finite double survives a serialize/parse round trip exactly.
	for _, f := range []float64{0.1, 1.0 / 3.0, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		v, err := Parse(SerializeString(DoubleValue(f, sp)))
		require.NoError(t, err)
		got, ok := v.AsDouble()
		require.True(t, ok)
		assert.Equal(t, f, got)
	}
}

func TestSerialize_Indent(t *testing.T) {
	v, err := Parse(`{"name":"x","items":[1,2],"empty":{},"none":[]}`)
	require.NoError(t, err)

	want := `{
  "name": "x",
  "items": [
    1,
    2
  ],
  "empty": {},
  "none": []
}`
	assert.Equal(t, want, string(SerializeIndent(v, "  ")))

	// Indented output parses back to an equal tree.
	back, err := ParseBytes(SerializeIndent(v, "\t"))
	require.NoError(t, err)
	assert.True(t, v.Equal(back))
}

func TestSerialize_To(t *testing.T) {
	v, err := Parse(`[1,"two"]`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SerializeTo(&buf, v))
	assert.Equal(t, `[1,"two"]`, buf.String())
}
