package model

import "xmlbind/internal/meta"

// AnnotatedClass is the fully resolved binding of one type: its fields
// keyed by XML name (unique across the whole composed hierarchy), the
// root element name, at most one text-content field and the virtual
// path tree wrapping relocated binding sites.
type AnnotatedClass struct {
	// Type is the resolved type's name.
	Type meta.TypeName
	// RootName is the element name used when the type is a document root.
	RootName string

	fields   map[string]*Field
	ordered  []*Field
	text     *Field
	pathRoot *VirtualNode
}

// NewAnnotatedClass creates an empty resolved class.
func NewAnnotatedClass(name meta.TypeName, rootName string) *AnnotatedClass {
	return &AnnotatedClass{
		Type:     name,
		RootName: rootName,
		fields:   make(map[string]*Field),
	}
}

// AddField registers a field under its XML name. On a name collision
// the already-registered field is returned and the new one is not
// added; nil means the name was free.
func (c *AnnotatedClass) AddField(f *Field) *Field {
	if prev, ok := c.fields[f.XMLName]; ok {
		return prev
	}

	c.fields[f.XMLName] = f
	c.ordered = append(c.ordered, f)

	return nil
}

// SetTextContent registers the text-content field. Returns the
// previously registered one if the slot is already taken.
func (c *AnnotatedClass) SetTextContent(f *Field) *Field {
	if c.text != nil {
		return c.text
	}

	c.text = f
	c.ordered = append(c.ordered, f)

	return nil
}

// FieldByName returns the field bound to the given XML name.
func (c *AnnotatedClass) FieldByName(name string) (*Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// OrderedFields returns all fields in serialization order: declaration
// order, subtype fields before inherited ancestor fields.
func (c *AnnotatedClass) OrderedFields() []*Field {
	out := make([]*Field, len(c.ordered))
	copy(out, c.ordered)

	return out
}

// TextContent returns the text-content field, or nil.
func (c *AnnotatedClass) TextContent() *Field {
	return c.text
}

// PathRoot returns the virtual path tree root, or nil when no member of
// the type declared a path directive.
func (c *AnnotatedClass) PathRoot() *VirtualNode {
	return c.pathRoot
}

// EnsurePathRoot returns the virtual path tree root, creating it on
// first use.
func (c *AnnotatedClass) EnsurePathRoot() *VirtualNode {
	if c.pathRoot == nil {
		c.pathRoot = NewVirtualNode("")
	}

	return c.pathRoot
}

// Len returns the number of resolved fields, text content included.
func (c *AnnotatedClass) Len() int {
	return len(c.ordered)
}
