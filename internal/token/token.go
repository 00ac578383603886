package token

import (
	"fmt"
	"slices"

	"github.com/roach88/tabula/internal/field"
	"github.com/roach88/tabula/internal/ir"
)

// parentLink records where a token currently lives: which parent, which of
// its fields, at which coordinates.
type parentLink struct {
	id     int
	field  string
	coords []int
}

// Token is one node of the game tree. Construction goes through
// Tree.Spawn; the zero value is not usable.
type Token struct {
	tree   *Tree
	id     int
	def    *ir.TokenDef
	props  ir.Props
	fields map[string]*field.Field
	parent *parentLink // nil only for the root
}

// ID returns the token's stable sequential identifier.
func (t *Token) ID() int {
	return t.id
}

// Def returns the shared token definition.
func (t *Token) Def() *ir.TokenDef {
	return t.def
}

// Props returns the token's mutable prop bag. Rules mutate it directly.
func (t *Token) Props() ir.Props {
	return t.props
}

// Prop looks up one prop value.
func (t *Token) Prop(key string) (ir.Value, bool) {
	v, ok := t.props[key]
	return v, ok
}

// SetProp sets one prop value.
func (t *Token) SetProp(key string, v ir.Value) {
	t.props[key] = v
}

// FieldNames returns the declared field names in sorted order, so every
// whole-tree walk is deterministic.
func (t *Token) FieldNames() []string {
	names := make([]string, 0, len(t.fields))
	for name := range t.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Field returns the named field container, or nil if not declared.
func (t *Token) Field(name string) *field.Field {
	return t.fields[name]
}

// IsRoot reports whether this is the synthesized root.
func (t *Token) IsRoot() bool {
	return t.parent == nil
}

// MoveTo atomically detaches this token from its current cell, appends its
// ID to targetToken's field cell at coords, and updates the parent link.
// Missing target or field name is a caller-contract violation and fails
// immediately. No structural cycle check is performed - the caller must not
// move a token underneath its own subtree.
func (t *Token) MoveTo(target *Token, fieldName string, coords []int) error {
	if target == nil {
		return fmt.Errorf("move token %d: target token is required", t.id)
	}
	if fieldName == "" {
		return fmt.Errorf("move token %d: field name is required", t.id)
	}
	if t.parent == nil {
		return fmt.Errorf("move token %d: root token cannot move", t.id)
	}
	tf, ok := target.fields[fieldName]
	if !ok {
		return fmt.Errorf("move token %d: target %d has no field %q", t.id, target.id, fieldName)
	}

	if err := tf.Append(coords, t.id); err != nil {
		return fmt.Errorf("move token %d: %w", t.id, err)
	}

	// Destination accepted the ID; detaching from the old cell cannot fail
	// because the parent link always names a live cell.
	old := t.tree.Get(t.parent.id).fields[t.parent.field]
	if _, err := old.Remove(t.parent.coords, t.id); err != nil {
		return fmt.Errorf("move token %d: detach: %w", t.id, err)
	}

	t.parent = &parentLink{id: target.id, field: fieldName, coords: cloneCoords(coords)}
	return nil
}

// ParentToken returns the parent, or nil for the root.
func (t *Token) ParentToken() *Token {
	if t.parent == nil {
		return nil
	}
	return t.tree.Get(t.parent.id)
}

// ParentField returns the name of the parent field holding this token, or
// "" for the root.
func (t *Token) ParentField() string {
	if t.parent == nil {
		return ""
	}
	return t.parent.field
}

// Coords returns the coordinates of the cell holding this token, or nil.
func (t *Token) Coords() []int {
	if t.parent == nil {
		return nil
	}
	return cloneCoords(t.parent.coords)
}

// ValidCoords delegates to the field abstraction for this token's field.
// Opt-in check: nothing in the tree enforces it.
func (t *Token) ValidCoords(fieldName string, coords []int) bool {
	f, ok := t.fields[fieldName]
	if !ok {
		return false
	}
	return f.ValidCoords(coords)
}

// Children returns the direct children at the addressed cell, in field
// order. Unknown fields and bad coordinates yield no children.
func (t *Token) Children(fieldName string, coords []int) []*Token {
	f, ok := t.fields[fieldName]
	if !ok {
		return nil
	}
	ids, err := f.Cell(coords)
	if err != nil {
		return nil
	}
	out := make([]*Token, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.tree.Get(id))
	}
	return out
}

// FindAll searches the subtree rooted here, depth-first. The field and
// coords arguments restrict only the first level: direct children are taken
// from the named field (or all declared fields) at the given coordinates
// (or all coordinates), and each child's entire subtree is then re-searched
// with no restriction. Returns every descendant matching pattern; a nil
// pattern matches everything.
func (t *Token) FindAll(pattern Pattern, fieldName string, coords []int) []*Token {
	var out []*Token
	t.findAll(pattern, fieldName, coords, &out)
	return out
}

// Find returns the first match of FindAll, or nil.
func (t *Token) Find(pattern Pattern, fieldName string, coords []int) *Token {
	all := t.FindAll(pattern, fieldName, coords)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (t *Token) findAll(pattern Pattern, fieldName string, coords []int, out *[]*Token) {
	names := t.FieldNames()
	if fieldName != "" {
		if _, ok := t.fields[fieldName]; !ok {
			return
		}
		names = []string{fieldName}
	}

	for _, name := range names {
		f := t.fields[name]

		var ids []int
		if fieldName != "" && coords != nil {
			cell, err := f.Cell(coords)
			if err != nil {
				continue
			}
			ids = cell
		} else {
			ids = f.All()
		}

		for _, id := range ids {
			child := t.tree.Get(id)
			if Matches(pattern, child.props) {
				*out = append(*out, child)
			}
			child.findAll(pattern, "", nil, out)
		}
	}
}

// Order returns this token's index within its parent's addressed cell, or
// -1 for the root.
func (t *Token) Order() int {
	if t.parent == nil {
		return -1
	}
	pf := t.tree.Get(t.parent.id).fields[t.parent.field]
	idx, err := pf.IndexOf(t.parent.coords, t.id)
	if err != nil {
		return -1
	}
	return idx
}

// Reorder removes this token's ID from its current position in the parent
// cell and reinserts it at index. Negative indices count from the end,
// Python-style: -1 is the last position.
func (t *Token) Reorder(index int) error {
	if t.parent == nil {
		return fmt.Errorf("reorder token %d: root token has no order", t.id)
	}
	pf := t.tree.Get(t.parent.id).fields[t.parent.field]

	if _, err := pf.Remove(t.parent.coords, t.id); err != nil {
		return fmt.Errorf("reorder token %d: %w", t.id, err)
	}

	n, err := pf.Len(t.parent.coords)
	if err != nil {
		return fmt.Errorf("reorder token %d: %w", t.id, err)
	}
	if index < 0 {
		index += n + 1
	}
	if index < 0 || index > n {
		// Put it back at the end rather than losing the token.
		_ = pf.Append(t.parent.coords, t.id)
		return fmt.Errorf("reorder token %d: index out of range [%d,%d]: %d", t.id, -n-1, n, index)
	}

	if err := pf.Insert(t.parent.coords, index, t.id); err != nil {
		return fmt.Errorf("reorder token %d: %w", t.id, err)
	}
	return nil
}

// ShuffleField randomly permutes the ordered sequence at the addressed cell
// of this token's field.
func (t *Token) ShuffleField(fieldName string, coords []int) error {
	f, ok := t.fields[fieldName]
	if !ok {
		return fmt.Errorf("shuffle: token %d has no field %q", t.id, fieldName)
	}
	if err := f.Shuffle(coords, t.tree.rng); err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}
	return nil
}

// Owner walks up the parent chain, self first, and returns the first
// "owner" prop found. The root itself never has an owner: reaching it
// without a hit reports no owner.
func (t *Token) Owner() (string, bool) {
	for cur := t; cur != nil && cur.parent != nil; cur = cur.ParentToken() {
		if v, ok := cur.props["owner"]; ok {
			if s, ok := v.(ir.String); ok {
				return string(s), true
			}
		}
	}
	return "", false
}
