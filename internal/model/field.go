package model

import (
	"xmlbind/internal/access"
	"xmlbind/internal/meta"
)

// Category is the semantic category of a resolved field.
type Category int

const (
	// CategoryAttribute - bound to an XML attribute of the owner element.
	CategoryAttribute Category = iota
	// CategoryPropertyElement - bound to a simple child element whose
	// text content carries the value.
	CategoryPropertyElement
	// CategoryElement - bound to a child element materialized as an
	// object (or a list of them).
	CategoryElement
	// CategoryTextContent - bound to the owner element's own text.
	CategoryTextContent
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryAttribute:
		return "attribute"
	case CategoryPropertyElement:
		return "propertyElement"
	case CategoryElement:
		return "element"
	case CategoryTextContent:
		return "textContent"
	default:
		return "unknown"
	}
}

// Field is one resolved binding unit. A Field belongs to exactly one
// AnnotatedClass and is never shared.
type Field struct {
	// XMLName is the resolved attribute or element name. For text
	// content it is empty.
	XMLName string
	// Category of the binding site.
	Category Category
	// Member is the originating member name, kept for diagnostics and
	// for the runtime accessor tables.
	Member string
	// Owner is the type the member was declared on. For inherited
	// fields this is the ancestor, not the composed subtype.
	Owner meta.TypeName
	// Type is the member's declared type.
	Type meta.TypeRef
	// Access is how the runtime reads and writes the member.
	Access access.Policy
	// Converter is the explicit converter reference; empty means the
	// runtime falls back to the model's type-default converter table.
	Converter string
	// Dispatch is the element-name dispatch table. Present on every
	// CategoryElement field: declared polymorphism yields a multi-entry
	// table, everything else an implicit single-entry table keyed by
	// XMLName.
	Dispatch *PolymorphismTable
	// InlineList marks a list bound without a wrapper element.
	InlineList bool
	// ItemType is the element type of list bindings, or the referenced
	// type of single-object bindings. Empty for scalar fields.
	ItemType meta.TypeName
}

// IsList reports whether the field binds a collection.
func (f *Field) IsList() bool {
	return f.Type.IsList()
}
