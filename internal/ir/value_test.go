package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null vs null", Null{}, Null{}, true},
		{"null vs int", Null{}, Int(0), false},
		{"equal strings", String("x"), String("x"), true},
		{"different strings", String("x"), String("y"), false},
		{"equal ints", Int(7), Int(7), true},
		{"different ints", Int(7), Int(8), false},
		{"int vs string", Int(7), String("7"), false},
		{"equal bools", Bool(true), Bool(true), true},
		{"different bools", Bool(true), Bool(false), false},
		{"equal lists", List{Int(1), Int(2)}, List{Int(1), Int(2)}, true},
		{"list order matters", List{Int(1), Int(2)}, List{Int(2), Int(1)}, false},
		{"list length differs", List{Int(1)}, List{Int(1), Int(2)}, false},
		{"equal objects", Object{"a": Int(1)}, Object{"a": Int(1)}, true},
		{"object key differs", Object{"a": Int(1)}, Object{"b": Int(1)}, false},
		{"object value differs", Object{"a": Int(1)}, Object{"a": Int(2)}, false},
		{"nested equal", Object{"a": List{Object{"b": Int(1)}}}, Object{"a": List{Object{"b": Int(1)}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "Equal must be symmetric")
		})
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	coords := []int{2, 0, 1}
	v := Coords(coords)
	assert.Equal(t, List{Int(2), Int(0), Int(1)}, v)

	back, ok := CoordsOf(v)
	require.True(t, ok)
	assert.Equal(t, coords, back)
}

func TestCoordsOfRejectsNonCoords(t *testing.T) {
	_, ok := CoordsOf(String("nope"))
	assert.False(t, ok)

	_, ok = CoordsOf(List{Int(1), String("x")})
	assert.False(t, ok)
}

func TestObjectCloneIsDeep(t *testing.T) {
	orig := Object{
		"name": String("card"),
		"tags": List{String("red")},
		"meta": Object{"cost": Int(3)},
	}

	clone := orig.Clone()
	require.True(t, Equal(orig, clone))

	// Mutating the clone must not leak into the original.
	clone["name"] = String("changed")
	clone["meta"].(Object)["cost"] = Int(9)
	assert.Equal(t, String("card"), orig["name"])
	assert.Equal(t, Int(3), orig["meta"].(Object)["cost"])
}

func TestObjectCloneNil(t *testing.T) {
	var obj Object
	assert.Nil(t, obj.Clone())
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+10000 encodes as the surrogate pair 0xD800 0xDC00 in UTF-16, which
	// sorts BEFORE U+E000. UTF-8 byte order would say the opposite.
	obj := Object{
		"":     Int(1),
		"\U00010000": Int(2),
	}
	assert.Equal(t, []string{"\U00010000", ""}, obj.SortedKeys())
}

func TestFromGo(t *testing.T) {
	v, err := FromGo(map[string]any{
		"name":  "board",
		"count": 3,
		"flag":  true,
		"list":  []any{1, "two", nil},
	})
	require.NoError(t, err)

	want := Object{
		"name":  String("board"),
		"count": Int(3),
		"flag":  Bool(true),
		"list":  List{Int(1), String("two"), Null{}},
	}
	assert.True(t, Equal(want, v))
}

func TestFromGoRejectsFloats(t *testing.T) {
	_, err := FromGo(3.14)
	require.Error(t, err)

	_, err = FromGo(map[string]any{"x": 1.5})
	require.Error(t, err)
}

func TestObjectUnmarshalJSON(t *testing.T) {
	var obj Object
	err := json.Unmarshal([]byte(`{"n":42,"s":"hi","b":false,"l":[1,2],"o":{"k":null}}`), &obj)
	require.NoError(t, err)

	want := Object{
		"n": Int(42),
		"s": String("hi"),
		"b": Bool(false),
		"l": List{Int(1), Int(2)},
		"o": Object{"k": Null{}},
	}
	assert.True(t, Equal(want, obj))
}

func TestObjectUnmarshalJSONRejectsFractions(t *testing.T) {
	var obj Object
	err := json.Unmarshal([]byte(`{"x":1.5}`), &obj)
	require.Error(t, err)
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "turn", StateName(State{"name": String("turn"), "player": String("x")}))
	assert.Equal(t, "", StateName(State{}))
	assert.Equal(t, "", StateName(State{"name": Int(1)}))
}

func TestTokenDefInstances(t *testing.T) {
	assert.Equal(t, 1, (&TokenDef{}).Instances())
	assert.Equal(t, 1, (&TokenDef{Count: 1}).Instances())
	assert.Equal(t, 5, (&TokenDef{Count: 5}).Instances())
	assert.Equal(t, 1, (&TokenDef{Count: -2}).Instances())
}
