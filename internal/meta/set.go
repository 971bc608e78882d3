package meta

import "fmt"

// DescriptorSet is the closed collection of type descriptors one
// resolution pass operates on. Declaration order is preserved.
type DescriptorSet struct {
	order []TypeName
	types map[TypeName]*TypeDescriptor
}

// NewDescriptorSet creates an empty descriptor set.
func NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{types: make(map[TypeName]*TypeDescriptor)}
}

// Add registers a type descriptor. Duplicate names are rejected.
func (s *DescriptorSet) Add(t *TypeDescriptor) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("type descriptor must carry a name")
	}

	if _, ok := s.types[t.Name]; ok {
		return fmt.Errorf("duplicate type descriptor %q", t.Name)
	}

	s.types[t.Name] = t
	s.order = append(s.order, t.Name)

	return nil
}

// Lookup returns the descriptor for name, if present.
func (s *DescriptorSet) Lookup(name TypeName) (*TypeDescriptor, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns all type names in declaration order.
func (s *DescriptorSet) Names() []TypeName {
	out := make([]TypeName, len(s.order))
	copy(out, s.order)

	return out
}

// Bound returns the names of all types that opted into binding, in
// declaration order. These are the roots of a resolution pass.
func (s *DescriptorSet) Bound() []TypeName {
	var out []TypeName

	for _, n := range s.order {
		if s.types[n].Bound {
			out = append(out, n)
		}
	}

	return out
}

// Len returns the number of registered descriptors.
func (s *DescriptorSet) Len() int {
	return len(s.order)
}
