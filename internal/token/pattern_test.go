package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tabula/internal/ir"
)

func TestNamePattern(t *testing.T) {
	props := ir.Props{"name": ir.String("card"), "rank": ir.Int(5)}

	assert.True(t, Name("card").Match(props))
	assert.False(t, Name("board").Match(props))
	assert.False(t, Name("card").Match(ir.Props{}))
	assert.False(t, Name("5").Match(ir.Props{"name": ir.Int(5)}))
}

func TestSubsetPattern(t *testing.T) {
	props := ir.Props{
		"name": ir.String("piece"),
		"mark": ir.String("x"),
		"used": ir.Bool(false),
	}

	assert.True(t, Subset{}.Match(props))
	assert.True(t, Subset{"mark": ir.String("x")}.Match(props))
	assert.True(t, Subset{"name": ir.String("piece"), "mark": ir.String("x")}.Match(props))
	assert.False(t, Subset{"mark": ir.String("o")}.Match(props))
	assert.False(t, Subset{"missing": ir.Null{}}.Match(props))
}

func TestFuncPattern(t *testing.T) {
	even := Func(func(props ir.Props) bool {
		n, ok := props["rank"].(ir.Int)
		return ok && n%2 == 0
	})

	assert.True(t, even.Match(ir.Props{"rank": ir.Int(4)}))
	assert.False(t, even.Match(ir.Props{"rank": ir.Int(3)}))
	assert.False(t, even.Match(ir.Props{}))
}

func TestMatchesNilPattern(t *testing.T) {
	assert.True(t, Matches(nil, ir.Props{}))
	assert.True(t, Matches(nil, nil))
}
