package model

import "xmlbind/internal/meta"

// BindingModel is the complete output of one resolution pass: every
// reachable type's AnnotatedClass plus the global type-default
// converter table. A model is only ever published whole; a failed pass
// yields no model at all.
type BindingModel struct {
	classes    map[meta.TypeName]*AnnotatedClass
	order      []meta.TypeName
	converters map[string]string
}

// NewBindingModel assembles a model from resolved classes. The order
// slice fixes the iteration order; the converter table maps declared
// type names to converter references.
func NewBindingModel(classes map[meta.TypeName]*AnnotatedClass, order []meta.TypeName, converters map[string]string) *BindingModel {
	cs := make(map[meta.TypeName]*AnnotatedClass, len(classes))
	for k, v := range classes {
		cs[k] = v
	}

	ord := make([]meta.TypeName, len(order))
	copy(ord, order)

	conv := make(map[string]string, len(converters))
	for k, v := range converters {
		conv[k] = v
	}

	return &BindingModel{classes: cs, order: ord, converters: conv}
}

// Class returns the resolved class for a type.
func (m *BindingModel) Class(name meta.TypeName) (*AnnotatedClass, bool) {
	c, ok := m.classes[name]
	return c, ok
}

// Field returns the field a type binds under the given XML name; the
// deserialization dispatch query.
func (m *BindingModel) Field(typeName meta.TypeName, xmlName string) (*Field, bool) {
	c, ok := m.classes[typeName]
	if !ok {
		return nil, false
	}

	return c.FieldByName(xmlName)
}

// Types returns all resolved type names in resolution order.
func (m *BindingModel) Types() []meta.TypeName {
	out := make([]meta.TypeName, len(m.order))
	copy(out, m.order)

	return out
}

// Len returns the number of resolved classes.
func (m *BindingModel) Len() int {
	return len(m.classes)
}

// DefaultConverter returns the type-default converter reference for a
// declared type name.
func (m *BindingModel) DefaultConverter(typeName string) (string, bool) {
	c, ok := m.converters[typeName]
	return c, ok
}

// ConverterFor resolves the converter for a field: the field-level
// override when present, otherwise the type-default table keyed by the
// field's declared type. Empty means the runtime's built-in handling.
func (m *BindingModel) ConverterFor(f *Field) string {
	if f.Converter != "" {
		return f.Converter
	}

	if c, ok := m.converters[f.Type.String()]; ok {
		return c
	}

	return ""
}
