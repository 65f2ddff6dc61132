package card

import (
	"fmt"
	"maps"
	"sort"
)

// Definition represents one distinct card as written by the deck author
type Definition struct {
	Type        string         // Card type, e.g. unit or spell
	Count       int            // Number of printed copies, 0 means 1
	Description string         // Free text, may contain {{placeholders}}
	Fields      map[string]any // Every other display field, passed through
}

// Copies returns the number of physical cards the definition expands to
func (d Definition) Copies() int {
	if d.Count <= 0 {
		return 1
	}
	return d.Count
}

// Expanded represents one physical printed card.
// Replicas of a definition share their field map, which is never written
// after expansion.
type Expanded struct {
	Type        string
	Count       int
	Description string
	fields      map[string]any
}

// Field returns a pass-through display field
func (e Expanded) Field(name string) (any, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Is returns the type flags of the card: exactly its own type set true
func (e Expanded) Is() map[string]bool {
	return map[string]bool{e.Type: true}
}

// Map flattens the card into the shape templates consume.
// The returned map is a fresh copy.
func (e Expanded) Map() map[string]any {
	m := make(map[string]any, len(e.fields)+4)
	maps.Copy(m, e.fields)
	m["type"] = e.Type
	m["count"] = e.Count
	m["description"] = e.Description
	m["is"] = e.Is()
	return m
}

// TypeSet is the closed, sorted list of card types a deck knows about
type TypeSet struct {
	types []string
}

// NewTypeSet builds a type set, dropping duplicates and empty names
func NewTypeSet(types ...string) TypeSet {
	seen := make(map[string]bool, len(types))
	var out []string
	for _, t := range types {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return TypeSet{types: out}
}

// TypesOf derives the type set from the definitions themselves
func TypesOf(defs []Definition) TypeSet {
	types := make([]string, 0, len(defs))
	for _, d := range defs {
		types = append(types, d.Type)
	}
	return NewTypeSet(types...)
}

// Empty reports whether no type was declared
func (s TypeSet) Empty() bool { return len(s.types) == 0 }

// Contains reports whether t is one of the known types
func (s TypeSet) Contains(t string) bool {
	i := sort.SearchStrings(s.types, t)
	return i < len(s.types) && s.types[i] == t
}

// Types returns a copy of the sorted type names
func (s TypeSet) Types() []string {
	return append([]string(nil), s.types...)
}

// Index returns the position of t in the set, or -1
func (s TypeSet) Index(t string) int {
	i := sort.SearchStrings(s.types, t)
	if i < len(s.types) && s.types[i] == t {
		return i
	}
	return -1
}

// Expander turns definitions into printed cards
type Expander struct {
	// Types restricts the accepted card types. Empty accepts any type.
	Types TypeSet
	// Vars is the substitution context for descriptions. When nil,
	// descriptions pass through untouched.
	Vars map[string]any
}

// Expand replicates every definition Copies() times, in input order.
// Any failure aborts the whole expansion; no partial deck is returned.
func (x Expander) Expand(defs []Definition) ([]Expanded, error) {
	total := 0
	for i, d := range defs {
		if err := x.check(i, d); err != nil {
			return nil, err
		}
		total += d.Copies()
	}

	out := make([]Expanded, 0, total)
	for i, d := range defs {
		desc := d.Description
		if x.Vars != nil && desc != "" {
			var err error
			desc, err = Substitute(desc, x.Vars)
			if err != nil {
				return nil, wrapSubstitution(i, d.Type, err)
			}
		}

		fields := make(map[string]any, len(d.Fields))
		maps.Copy(fields, d.Fields)

		replica := Expanded{
			Type:        d.Type,
			Count:       d.Copies(),
			Description: desc,
			fields:      fields,
		}
		for n := 0; n < d.Copies(); n++ {
			out = append(out, replica)
		}
	}

	return out, nil
}

func (x Expander) check(i int, d Definition) error {
	if d.Type == "" {
		return &InputShapeError{Index: i, Reason: "card has no type"}
	}
	if d.Count < 0 {
		return &InputShapeError{Index: i, Reason: fmt.Sprintf("count must not be negative, got %d", d.Count)}
	}
	if !x.Types.Empty() && !x.Types.Contains(d.Type) {
		return &InputShapeError{Index: i, Reason: fmt.Sprintf("unknown card type %q", d.Type)}
	}
	return nil
}

// Expand is Expander{Vars: vars}.Expand(defs)
func Expand(defs []Definition, vars map[string]any) ([]Expanded, error) {
	return Expander{Vars: vars}.Expand(defs)
}
