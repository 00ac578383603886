// Package compiler turns CUE game definitions into ir.GameDef values.
//
// A game definition covers the data half of a game: its name, opaque
// metadata, and the ordered token templates (field shapes, props, counts).
// Rule predicates and handlers are Go code and are never expressed in CUE.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tabula/internal/ir"
)

// CompileError reports a structural problem in a CUE game definition.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError converts a CUE error into a readable Go error, keeping the
// first position if one is available.
func formatCUEError(err error) error {
	if cueErr, ok := err.(errors.Error); ok {
		pos := cueErr.Position()
		if pos.IsValid() {
			return fmt.Errorf("%s:%d:%d: %s", pos.Filename(), pos.Line(), pos.Column(), cueErr.Error())
		}
	}
	return err
}

// CompileGame parses a CUE value into a GameDef. Uses the CUE SDK's Go API
// directly (not a CLI subprocess).
//
// The CUE value should be the game struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`game: { name: "tictactoe", ... }`)
//	def, err := CompileGame(v.LookupPath(cue.ParsePath("game")))
func CompileGame(v cue.Value) (*ir.GameDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &ir.GameDef{}

	// Parse name (required)
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	def.Name = name

	// Parse meta (optional struct of scalars, passed through untouched)
	metaVal := v.LookupPath(cue.ParsePath("meta"))
	if metaVal.Exists() {
		meta, err := parseObject(metaVal, "meta")
		if err != nil {
			return nil, err
		}
		def.Meta = meta
	}

	// Parse tokens (required, at least one), preserving declaration order
	tokensVal := v.LookupPath(cue.ParsePath("tokens"))
	if !tokensVal.Exists() {
		return nil, &CompileError{
			Field:   "tokens",
			Message: "at least one token definition is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := tokensVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		tok, err := parseTokenDef(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		def.Tokens = append(def.Tokens, *tok)
	}
	if len(def.Tokens) == 0 {
		return nil, &CompileError{
			Field:   "tokens",
			Message: "at least one token definition is required",
			Pos:     tokensVal.Pos(),
		}
	}

	return def, nil
}

// parseTokenDef parses one token template. The struct label becomes the
// definition name and, unless overridden, the "name" prop used by pattern
// matching.
func parseTokenDef(label string, v cue.Value) (*ir.TokenDef, error) {
	def := &ir.TokenDef{Name: label}

	countVal := v.LookupPath(cue.ParsePath("count"))
	if countVal.Exists() {
		count, err := countVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Count = int(count)
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Fields = make(map[string]ir.FieldDef)
		for iter.Next() {
			fd, err := parseFieldDef(iter.Value())
			if err != nil {
				return nil, err
			}
			def.Fields[iter.Selector().Unquoted()] = *fd
		}
	}

	propsVal := v.LookupPath(cue.ParsePath("props"))
	if propsVal.Exists() {
		props, err := parseObject(propsVal, fmt.Sprintf("tokens.%s.props", label))
		if err != nil {
			return nil, err
		}
		def.Props = props
	}
	if def.Props == nil {
		def.Props = ir.Props{}
	}
	if _, ok := def.Props["name"]; !ok {
		def.Props["name"] = ir.String(label)
	}

	return def, nil
}

// parseFieldDef parses one field shape: kind plus dims for arrays.
func parseFieldDef(v cue.Value) (*ir.FieldDef, error) {
	fd := &ir.FieldDef{}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, &CompileError{
			Field:   "kind",
			Message: `field kind is required ("single" or "array")`,
			Pos:     v.Pos(),
		}
	}
	kind, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	fd.Kind = ir.FieldKind(kind)

	dimsVal := v.LookupPath(cue.ParsePath("dims"))
	if dimsVal.Exists() {
		iter, err := dimsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			d, err := iter.Value().Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			fd.Dims = append(fd.Dims, int(d))
		}
	}

	return fd, nil
}

// parseObject converts a CUE struct of scalar or nested values into an
// ir.Object. Floats are rejected.
func parseObject(v cue.Value, path string) (ir.Object, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	obj := ir.Object{}
	for iter.Next() {
		val, err := parseValue(iter.Value(), fmt.Sprintf("%s.%s", path, iter.Selector().Unquoted()))
		if err != nil {
			return nil, err
		}
		obj[iter.Selector().Unquoted()] = val
	}
	return obj, nil
}

// parseValue converts one CUE value into the closed prop-value union.
func parseValue(v cue.Value, path string) (ir.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return ir.Null{}, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.String(s), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Int(n), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Bool(b), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var out ir.List
		for iter.Next() {
			elem, err := parseValue(iter.Value(), path)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case cue.StructKind:
		return parseObject(v, path)
	case cue.FloatKind, cue.NumberKind:
		return nil, &CompileError{
			Field:   path,
			Message: "float values are forbidden in props",
			Pos:     v.Pos(),
		}
	default:
		return nil, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("unsupported value kind %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}
