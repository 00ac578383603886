package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"null", Null{}, "null"},
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"zero", Int(0), "0"},
		{"max int64", Int(9223372036854775807), "9223372036854775807"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"empty list", List{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"list of ints", List{Int(1), Int(2), Int(3)}, "[1,2,3]"},
		{"simple object", Object{"a": Int(1)}, `{"a":1}`},
		{"go string", "raw", `"raw"`},
		{"go int", 7, "7"},
		{"go bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"zebra": Int(1),
		"alpha": Int(2),
		"beta":  Int(3),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonicalNestedSortedKeys(t *testing.T) {
	obj := Object{
		"z": Object{
			"b": Int(1),
			"a": Int(2),
		},
		"a": Int(3),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"z":{"a":2,"b":1}}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+E000 vs U+10000 - UTF-16 order differs from UTF-8.
	obj := Object{
		"":     Int(1),
		"\U00010000": Int(2),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)

	// UTF-16: the surrogate pair 0xD800,0xDC00 sorts before 0xE000.
	expected := `{"` + "\U00010000" + `":2,"` + "" + `":1}`
	assert.Equal(t, expected, string(result))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	result, err := MarshalCanonical(String("<a>&</a>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a>&</a>"`, string(result))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to precomposed U+00E9.
	decomposed := String("é")
	precomposed := String("é")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalLineSeparatorsLiteral(t *testing.T) {
	// RFC 8785 wants U+2028/U+2029 literal, not escaped.
	result, err := MarshalCanonical(String("a b c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(result))
}

func TestMarshalCanonicalPreservesEscapedBackslashU(t *testing.T) {
	// A literal backslash followed by "u2028" text is NOT the escape
	// sequence and must stay as an escaped backslash.
	result, err := MarshalCanonical(String(`\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(result))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(3.14)
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": 1.5})
	require.Error(t, err)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	obj := Object{
		"state": Object{"name": String("turn"), "player": String("x")},
		"seq":   Int(12),
		"tags":  List{String("a"), String("b")},
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
