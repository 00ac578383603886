// Package field implements the generic addressable container that backs
// every token field: either one flat ordered sequence ("single") or an
// N-dimensional grid of ordered sequences ("array").
//
// Order inside a cell is significant - it represents hand, deck, or stack
// order. Cells hold token IDs only; the token layer owns the mapping from
// ID to token.
//
// Coordinates are nil for single fields and an exact-arity []int for array
// fields. The token layer always supplies the right arity; arity and range
// errors here signal a caller bug and fail fast.
package field

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/roach88/tabula/internal/ir"
)

// Field is one runtime container. The grid (if any) is fully materialized
// at creation: every cell exists from the start, shape fixed for the
// field's lifetime.
type Field struct {
	def     ir.FieldDef
	cells   [][]int // single: exactly one cell; array: product(dims) cells
	strides []int   // array only: row-major strides per dimension
}

// New creates an empty container matching the definition's shape.
func New(def ir.FieldDef) *Field {
	f := &Field{def: def}

	switch def.Kind {
	case ir.FieldArray:
		total := 1
		f.strides = make([]int, len(def.Dims))
		for i := len(def.Dims) - 1; i >= 0; i-- {
			f.strides[i] = total
			total *= def.Dims[i]
		}
		f.cells = make([][]int, total)
	default:
		f.cells = make([][]int, 1)
	}

	return f
}

// Def returns the shared field definition.
func (f *Field) Def() ir.FieldDef {
	return f.def
}

// offset resolves coordinates to a cell index, descending one coordinate
// per dimension.
func (f *Field) offset(coords []int) (int, error) {
	if f.def.Kind != ir.FieldArray {
		if coords != nil {
			return 0, fmt.Errorf("single field takes no coordinates, got %v", coords)
		}
		return 0, nil
	}

	if len(coords) != len(f.def.Dims) {
		return 0, fmt.Errorf("field wants %d coordinates, got %d", len(f.def.Dims), len(coords))
	}

	off := 0
	for i, c := range coords {
		if c < 0 || c >= f.def.Dims[i] {
			return 0, fmt.Errorf("coordinate %d out of range [0,%d): %d", i, f.def.Dims[i], c)
		}
		off += c * f.strides[i]
	}
	return off, nil
}

// Cell returns a copy of the ordered ID sequence at coords. Mutation goes
// through Append, Remove, Insert, and Shuffle so the field always knows its
// own contents.
func (f *Field) Cell(coords []int) ([]int, error) {
	off, err := f.offset(coords)
	if err != nil {
		return nil, err
	}
	return slices.Clone(f.cells[off]), nil
}

// Len returns the number of IDs at coords.
func (f *Field) Len(coords []int) (int, error) {
	off, err := f.offset(coords)
	if err != nil {
		return 0, err
	}
	return len(f.cells[off]), nil
}

// Append adds id to the end of the cell at coords.
func (f *Field) Append(coords []int, id int) error {
	off, err := f.offset(coords)
	if err != nil {
		return err
	}
	f.cells[off] = append(f.cells[off], id)
	return nil
}

// Remove deletes the first occurrence of id from the cell at coords.
// Returns false if id was not present.
func (f *Field) Remove(coords []int, id int) (bool, error) {
	off, err := f.offset(coords)
	if err != nil {
		return false, err
	}
	cell := f.cells[off]
	for i, v := range cell {
		if v == id {
			f.cells[off] = append(cell[:i], cell[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// IndexOf returns the position of id in the cell at coords, or -1.
func (f *Field) IndexOf(coords []int, id int) (int, error) {
	off, err := f.offset(coords)
	if err != nil {
		return -1, err
	}
	return slices.Index(f.cells[off], id), nil
}

// Insert places id at index within the cell at coords, shifting later
// entries right. Index must already be normalized to [0, len].
func (f *Field) Insert(coords []int, index, id int) error {
	off, err := f.offset(coords)
	if err != nil {
		return err
	}
	cell := f.cells[off]
	if index < 0 || index > len(cell) {
		return fmt.Errorf("insert index out of range [0,%d]: %d", len(cell), index)
	}
	f.cells[off] = slices.Insert(cell, index, id)
	return nil
}

// Shuffle randomly permutes the cell at coords in place.
func (f *Field) Shuffle(coords []int, rng *rand.Rand) error {
	off, err := f.offset(coords)
	if err != nil {
		return err
	}
	cell := f.cells[off]
	rng.Shuffle(len(cell), func(i, j int) {
		cell[i], cell[j] = cell[j], cell[i]
	})
	return nil
}

// All returns every ID in the field regardless of coordinates, flattened in
// nested iteration order (cell by cell, in-cell order preserved).
func (f *Field) All() []int {
	var out []int
	for _, cell := range f.cells {
		out = append(out, cell...)
	}
	return out
}

// ValidCoords reports whether coords address a cell of this field: nil for
// single, exact arity with every component in [0, dims[i]) for array.
func (f *Field) ValidCoords(coords []int) bool {
	if f.def.Kind != ir.FieldArray {
		return coords == nil
	}
	if len(coords) != len(f.def.Dims) {
		return false
	}
	for i, c := range coords {
		if c < 0 || c >= f.def.Dims[i] {
			return false
		}
	}
	return true
}

// AllCoords enumerates every valid coordinate tuple exactly once. For
// single fields this is the singleton sequence holding the absent marker
// (nil). For array fields it is the cartesian product of range(dims[i]),
// lexicographic over dimension index.
func (f *Field) AllCoords() [][]int {
	if f.def.Kind != ir.FieldArray {
		return [][]int{nil}
	}

	total := 1
	for _, d := range f.def.Dims {
		total *= d
	}

	out := make([][]int, 0, total)
	coords := make([]int, len(f.def.Dims))
	for i := 0; i < total; i++ {
		out = append(out, slices.Clone(coords))
		// advance odometer, last dimension fastest
		for d := len(coords) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < f.def.Dims[d] {
				break
			}
			coords[d] = 0
		}
	}
	return out
}
