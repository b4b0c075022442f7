package lang

import (
	"encoding/json"
	"io"
	"log/slog"
)

// Value is any node that can appear on the right-hand side of an assignment:
// a [Primitive], an [Array], a [Set], or a [Variable]. The set of
// implementations is closed.
type Value interface {
	value()
}

func (Primitive) value() {}
func (Array) value()     {}
func (Set) value()       {}
func (Variable) value()  {}

// Array is an ordered list of primitives, possibly of mixed types.
type Array struct {
	Values []Primitive
}

// Set is an ordered list of named variables. Duplicate names are kept.
// The grammar never produces an empty Set: "{ }" is an empty [Array].
type Set struct {
	Variables []Variable
}

// Variable binds a name to a value.
type Variable struct {
	Name  string
	Value Value
}

// Scope is a top-level block named by a scope identifier.
type Scope struct {
	Name      string
	Variables []Variable
}

// Program is the root of a parsed document.
type Program struct {
	Scopes []Scope
}

// Scope returns the first scope with the given name.
func (p *Program) Scope(name string) (*Scope, bool) {
	for i := range p.Scopes {
		if p.Scopes[i].Name == name {
			return &p.Scopes[i], true
		}
	}

	return nil, false
}

// Lookup returns the value of the last variable with the given name, which is
// the one that wins in a projection.
func (s Set) Lookup(name string) (Value, bool) { return lookup(s.Variables, name) }

// Lookup returns the value of the last variable with the given name, which is
// the one that wins in a projection.
func (s Scope) Lookup(name string) (Value, bool) { return lookup(s.Variables, name) }

func lookup(vars []Variable, name string) (Value, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].Name == name {
			return vars[i].Value, true
		}
	}

	return nil, false
}

// LogValue implements slog.LogValuer.
func (p *Program) LogValue() slog.Value {
	names := make([]string, len(p.Scopes))
	for i, s := range p.Scopes {
		names[i] = s.Name
	}

	return slog.GroupValue(
		slog.Int("scope_count", len(p.Scopes)),
		slog.Any("scopes", names),
	)
}

// Print writes the tree as indented, tagged JSON.
func (p *Program) Print(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}

// JSON shapes of the tree. Every node carries a "kind" tag except the
// program root.

const (
	kindPrimitive = "PrimitiveType"
	kindArray     = "ArrayType"
	kindSet       = "SetType"
	kindVariable  = "VariableType"
	kindScope     = "ScopeType"
)

type (
	primitiveJSON struct {
		Kind  string `json:"kind"`
		Name  string `json:"name"`
		Value any    `json:"value"`
	}

	arrayJSON struct {
		Kind   string      `json:"kind"`
		Values []Primitive `json:"values"`
	}

	setJSON struct {
		Kind      string     `json:"kind"`
		Variables []Variable `json:"variables"`
	}

	variableJSON struct {
		Kind  string `json:"kind"`
		Name  string `json:"name"`
		Value Value  `json:"value"`
	}

	scopeJSON struct {
		Kind      string     `json:"kind"`
		Name      string     `json:"name"`
		Variables []Variable `json:"variables"`
	}

	programJSON struct {
		Scopes []Scope `json:"scopes"`
	}
)

// MarshalJSON implements json.Marshaler.
func (p Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(primitiveJSON{
		Kind:  kindPrimitive,
		Name:  p.typ.String(),
		Value: p.Interface(),
	})
}

// MarshalJSON implements json.Marshaler.
func (a Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(arrayJSON{Kind: kindArray, Values: nonNil(a.Values)})
}

// MarshalJSON implements json.Marshaler.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{Kind: kindSet, Variables: nonNil(s.Variables)})
}

// MarshalJSON implements json.Marshaler.
func (v Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(variableJSON{Kind: kindVariable, Name: v.Name, Value: v.Value})
}

// MarshalJSON implements json.Marshaler.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(scopeJSON{
		Kind:      kindScope,
		Name:      s.Name,
		Variables: nonNil(s.Variables),
	})
}

// MarshalJSON implements json.Marshaler.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(programJSON{Scopes: nonNil(p.Scopes)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
