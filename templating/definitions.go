package templating

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
)

var namePattern = regexp.MustCompile(`^[-\w]+$`)

// Definition is a named text value substituted for its
// <<Name>> placeholder.
type Definition struct {
	Name  string
	Value string
}

// Definitions is an insertion-ordered table of
// definitions. Names can be added but never redefined.
// The zero value is an empty table ready to use.
type Definitions struct {
	names  []string
	values map[string]string
}

// NewDefinitions builds a table from pairs, in order.
func NewDefinitions(defs ...Definition) (*Definitions, error) {
	const errCtx = "building definitions"

	ta := &Definitions{}

	for _, de := range defs {
		if err := ta.Add(de.Name, de.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return ta, nil
}

// FromMap builds a table from a map. Names are inserted in
// sorted order so that the table does not depend on map
// iteration.
func FromMap(m map[string]string) (*Definitions, error) {
	defs := make([]Definition, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		defs = append(defs, Definition{Name: name, Value: m[name]})
	}

	return NewDefinitions(defs...)
}

// Add inserts name with value. It fails if name is not a
// valid placeholder identifier or is already defined.
func (ta *Definitions) Add(name, value string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if _, ok := ta.values[name]; ok {
		return &DuplicateDefinitionError{Name: name}
	}

	if ta.values == nil {
		ta.values = make(map[string]string)
	}

	ta.names = append(ta.names, name)
	ta.values[name] = value

	return nil
}

// Lookup returns the value bound to name.
func (ta *Definitions) Lookup(name string) (string, bool) {
	if ta == nil {
		return "", false
	}

	val, ok := ta.values[name]

	return val, ok
}

// Has reports whether name is defined.
func (ta *Definitions) Has(name string) bool {
	_, ok := ta.Lookup(name)

	return ok
}

// Names returns the defined names in insertion order.
func (ta *Definitions) Names() []string {
	if ta == nil {
		return nil
	}

	out := make([]string, len(ta.names))
	copy(out, ta.names)

	return out
}

// Len returns the number of definitions.
func (ta *Definitions) Len() int {
	if ta == nil {
		return 0
	}

	return len(ta.names)
}

// Clone returns an independent copy of the table.
func (ta *Definitions) Clone() *Definitions {
	cl := &Definitions{}
	if ta == nil {
		return cl
	}

	cl.names = make([]string, len(ta.names))
	copy(cl.names, ta.names)

	cl.values = make(map[string]string, len(ta.values))
	for key, val := range ta.values {
		cl.values[key] = val
	}

	return cl
}
