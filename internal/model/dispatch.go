package model

import (
	"fmt"

	"xmlbind/internal/meta"
)

// PolymorphismTable maps incoming element names to the concrete type to
// instantiate at one binding site. Every element binding site owns
// exactly one table, so the runtime always dispatches the same way
// whether or not polymorphism was declared.
type PolymorphismTable struct {
	names []string
	types map[string]meta.TypeName
}

// NewPolymorphismTable creates an empty dispatch table.
func NewPolymorphismTable() *PolymorphismTable {
	return &PolymorphismTable{types: make(map[string]meta.TypeName)}
}

// SingleEntry builds the implicit table for a non-polymorphic binding
// site: one element name, one concrete type.
func SingleEntry(name string, typ meta.TypeName) *PolymorphismTable {
	t := NewPolymorphismTable()
	t.names = append(t.names, name)
	t.types[name] = typ

	return t
}

// Add registers one element-name/type association. Element names must be
// unique within the table.
func (t *PolymorphismTable) Add(name string, typ meta.TypeName) error {
	if prev, ok := t.types[name]; ok {
		return fmt.Errorf("element name %q is already mapped to type %q", name, prev)
	}

	t.names = append(t.names, name)
	t.types[name] = typ

	return nil
}

// Lookup returns the concrete type for an element name.
func (t *PolymorphismTable) Lookup(name string) (meta.TypeName, bool) {
	typ, ok := t.types[name]
	return typ, ok
}

// Names returns the dispatch element names in declaration order.
func (t *PolymorphismTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)

	return out
}

// Len returns the number of entries.
func (t *PolymorphismTable) Len() int {
	return len(t.names)
}
