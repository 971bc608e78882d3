package meta

import (
	"fmt"
	"strings"
)

// TypeName uniquely identifies a bindable type within one descriptor set.
type TypeName string

// ScanMode is the policy controlling whether members without an explicit
// mapping directive participate in binding.
type ScanMode int

const (
	// ScanModeDefault - the type defers to the process-wide default.
	ScanModeDefault ScanMode = iota
	// ScanModeCommonCase - unmarked scalar members bind as attributes,
	// unmarked object and list members bind as child elements.
	ScanModeCommonCase
	// ScanModeExplicitOnly - only members carrying a directive bind.
	ScanModeExplicitOnly
)

// String returns a human-readable scan mode name.
func (m ScanMode) String() string {
	switch m {
	case ScanModeDefault:
		return "default"
	case ScanModeCommonCase:
		return "common"
	case ScanModeExplicitOnly:
		return "explicit"
	default:
		return "unknown"
	}
}

// Visibility of a member or method from the runtime's vantage point.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPackage
	VisibilityPrivate
)

// String returns a human-readable visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPackage:
		return "package"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Sufficient reports whether the runtime may touch a member or method
// with this visibility.
func (v Visibility) Sufficient() bool {
	return v != VisibilityPrivate
}

// TypeKind represents the shape of a referenced type.
type TypeKind int

const (
	KindScalar TypeKind = iota // string, numbers, bool
	KindObject                 // another bindable (or at least named) type
	KindList                   // ordered collection of an element type
)

// String returns a human-readable kind name.
func (k TypeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// TypeRef references a declared type from a member or method signature.
type TypeRef struct {
	// Name of the referenced type. For lists this is empty; the element
	// type carries the name.
	Name TypeName
	// Kind of the reference.
	Kind TypeKind
	// Elem is the element type for lists, nil otherwise.
	Elem *TypeRef
}

// IsScalar reports whether the reference is a scalar type.
func (t TypeRef) IsScalar() bool { return t.Kind == KindScalar }

// IsList reports whether the reference is a list type.
func (t TypeRef) IsList() bool { return t.Kind == KindList }

// ItemName returns the element type name for lists and the referenced
// name otherwise.
func (t TypeRef) ItemName() TypeName {
	if t.Kind == KindList && t.Elem != nil {
		return t.Elem.Name
	}

	return t.Name
}

// String returns the declaration form of the reference, e.g. "Author"
// or "Author[]".
func (t TypeRef) String() string {
	if t.Kind == KindList {
		if t.Elem == nil {
			return "[]"
		}

		return t.Elem.String() + "[]"
	}

	return string(t.Name)
}

// scalarNames are the recognized scalar type names.
var scalarNames = map[string]struct{}{
	"string": {}, "bool": {}, "byte": {}, "rune": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"float32": {}, "float64": {},
}

// IsScalarName reports whether name denotes a recognized scalar type.
func IsScalarName(name string) bool {
	_, ok := scalarNames[name]
	return ok
}

// ParseTypeRef parses the declaration form of a type reference.
// Supports "string", "Author", "Author[]".
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type reference")
	}

	if strings.HasSuffix(s, "[]") {
		inner := strings.TrimSuffix(s, "[]")
		if inner == "" {
			return TypeRef{}, fmt.Errorf("invalid type reference %q: list without element type", s)
		}

		elem, err := ParseTypeRef(inner)
		if err != nil {
			return TypeRef{}, err
		}

		if elem.Kind == KindList {
			return TypeRef{}, fmt.Errorf("invalid type reference %q: nested lists are not supported", s)
		}

		return TypeRef{Kind: KindList, Elem: &elem}, nil
	}

	if IsScalarName(s) {
		return TypeRef{Name: TypeName(s), Kind: KindScalar}, nil
	}

	return TypeRef{Name: TypeName(s), Kind: KindObject}, nil
}

// Directive is the raw mapping directive declared on a member.
type Directive int

const (
	// DirectiveNone - no directive; the scan mode decides.
	DirectiveNone Directive = iota
	DirectiveAttribute
	DirectivePropertyElement
	DirectiveElement
	DirectiveTextContent
	DirectiveIgnore
)

// String returns a human-readable directive name.
func (d Directive) String() string {
	switch d {
	case DirectiveNone:
		return "none"
	case DirectiveAttribute:
		return "attribute"
	case DirectivePropertyElement:
		return "propertyElement"
	case DirectiveElement:
		return "element"
	case DirectiveTextContent:
		return "textContent"
	case DirectiveIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// DispatchPair is one element-name to concrete-type association of a
// polymorphism directive.
type DispatchPair struct {
	Name string
	Type TypeName
}

// MemberDescriptor describes one data member of a bindable type together
// with its raw mapping directives.
type MemberDescriptor struct {
	// Name is the member's own name in the host type.
	Name string
	// Type is the member's declared type.
	Type TypeRef
	// Directive is the raw mapping directive, DirectiveNone if absent.
	Directive Directive
	// XMLName overrides the XML name; empty means "use the member name".
	XMLName string
	// Converter is an explicit converter reference; empty means "use the
	// type default".
	Converter string
	// Dispatch holds the polymorphism directive, if any.
	Dispatch []DispatchPair
	// InlineList marks a list bound without a wrapper element.
	InlineList bool
	// Path is the raw skip-path directive, e.g. "meta/info[origin]".
	Path string
	// Access is the member's visibility.
	Access Visibility
	// Static marks a class-level member; never bindable.
	Static bool
	// Constant marks an immutable member; never bindable.
	Constant bool
}

// MethodDescriptor describes one method of a bindable type, reduced to
// what accessor-pair discovery needs.
type MethodDescriptor struct {
	Name    string
	Params  []TypeRef
	Returns *TypeRef
	Access  Visibility
}

// TypeDescriptor is the opaque handle to one bindable type.
type TypeDescriptor struct {
	// Name of the type.
	Name TypeName
	// RootName is the explicitly declared root element name; empty means
	// "lower-cased type name".
	RootName string
	// ScanMode declared on the type; ScanModeDefault defers to the
	// process-wide default.
	ScanMode ScanMode
	// InheritanceEnabled controls whether ancestor members compose in.
	InheritanceEnabled bool
	// Ancestors lists ancestor type names, nearest first.
	Ancestors []TypeName
	// Members in declaration order.
	Members []MemberDescriptor
	// Methods in declaration order; accessor-pair candidates.
	Methods []MethodDescriptor
	// HasNoArgConstructor reports a no-argument constructor with
	// sufficient visibility.
	HasNoArgConstructor bool
	// Bound reports whether the type opted into binding. Unbound types
	// may appear as ancestors; their members are skipped entirely.
	Bound bool
}

// EffectiveRootName returns the declared root element name, defaulting
// to the lower-cased type name.
func (t *TypeDescriptor) EffectiveRootName() string {
	if t.RootName != "" {
		return t.RootName
	}

	return strings.ToLower(string(t.Name))
}

// EffectiveScanMode returns the type's scan mode, falling back to the
// given process-wide default.
func (t *TypeDescriptor) EffectiveScanMode(def ScanMode) ScanMode {
	if t.ScanMode == ScanModeDefault {
		return def
	}

	return t.ScanMode
}
