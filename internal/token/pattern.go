package token

import "github.com/roach88/tabula/internal/ir"

// Pattern is a capability interface over a token's props: implementations
// decide whether a prop bag matches. A nil Pattern matches everything.
type Pattern interface {
	Match(props ir.Props) bool
}

// Matches applies a pattern, treating nil as match-all.
func Matches(p Pattern, props ir.Props) bool {
	if p == nil {
		return true
	}
	return p.Match(props)
}

// Name matches tokens whose "name" prop equals the given string. Shorthand
// for Subset(ir.Props{"name": ir.String(name)}).
type Name string

// Match implements Pattern.
func (n Name) Match(props ir.Props) bool {
	v, ok := props["name"]
	if !ok {
		return false
	}
	s, ok := v.(ir.String)
	return ok && string(s) == string(n)
}

// Subset matches iff every key in the pattern is present in props with an
// equal value. Extra props are ignored.
type Subset ir.Props

// Match implements Pattern.
func (s Subset) Match(props ir.Props) bool {
	for k, want := range s {
		got, ok := props[k]
		if !ok || !ir.Equal(want, got) {
			return false
		}
	}
	return true
}

// Func adapts a predicate function to the Pattern interface.
type Func func(props ir.Props) bool

// Match implements Pattern.
func (f Func) Match(props ir.Props) bool {
	return f(props)
}
