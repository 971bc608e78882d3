// Package introspect is the reflect-backed introspection provider: it
// builds type descriptors from live Go structs and implements the
// runtime read/write contract of access policies. It exists so the
// compiler can be fed without a manifest; the resolution pipeline is
// identical either way.
package introspect

import (
	"fmt"
	"reflect"
	"strings"

	"xmlbind/internal/meta"
)

// FromStructs builds a descriptor set from struct values or pointers to
// them. Embedded structs become ancestors (nearest first) and are
// registered as bindable types of their own; referenced struct types
// are registered transitively.
//
// Recognized field tags:
//
//	xml:"-"            ignore the field
//	xml:"name"         explicit XML name, scan mode decides the category
//	xml:"name,attr"    bind as attribute
//	xml:",chardata"    bind as text content
//	bind:"element"     force child-element binding
//	bind:"inline"      inline list, no wrapper element
//	converter:"ref"    explicit converter reference
//	path:"a/b[attr]"   skip-path directive
func FromStructs(vs ...any) (*meta.DescriptorSet, error) {
	set := meta.NewDescriptorSet()

	for _, v := range vs {
		t := reflect.TypeOf(v)
		if t == nil {
			return nil, fmt.Errorf("nil value is not a struct")
		}

		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%s is not a struct type", t)
		}

		if err := registerStruct(set, t); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func registerStruct(set *meta.DescriptorSet, t reflect.Type) error {
	name := meta.TypeName(t.Name())
	if name == "" {
		return fmt.Errorf("anonymous struct types cannot be registered")
	}

	if _, seen := set.Lookup(name); seen {
		return nil
	}

	td := &meta.TypeDescriptor{
		Name:                name,
		InheritanceEnabled:  true,
		HasNoArgConstructor: true, // zero value construction always works
		Bound:               true,
	}

	// Reserve the slot before recursing so self-references terminate.
	if err := set.Add(td); err != nil {
		return err
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			td.Ancestors = append(td.Ancestors, meta.TypeName(sf.Type.Name()))

			if err := registerStruct(set, sf.Type); err != nil {
				return err
			}

			continue
		}

		if !sf.IsExported() {
			continue
		}

		md, refs, ok := memberOf(sf)
		if !ok {
			continue
		}

		td.Members = append(td.Members, md)

		for _, ref := range refs {
			if err := registerStruct(set, ref); err != nil {
				return err
			}
		}
	}

	return nil
}

// memberOf translates one struct field into a member descriptor plus
// the struct types it references. Fields of unrepresentable kinds are
// skipped.
func memberOf(sf reflect.StructField) (meta.MemberDescriptor, []reflect.Type, bool) {
	md := meta.MemberDescriptor{
		Name:      sf.Name,
		Converter: sf.Tag.Get("converter"),
		Path:      sf.Tag.Get("path"),
		Access:    meta.VisibilityPublic,
	}

	ref, refs, ok := typeRefOf(sf.Type)
	if !ok {
		return md, nil, false
	}

	md.Type = ref

	xmlTag := sf.Tag.Get("xml")
	if xmlTag == "-" {
		md.Directive = meta.DirectiveIgnore
		return md, refs, true
	}

	name, opts, _ := strings.Cut(xmlTag, ",")
	md.XMLName = name

	switch opts {
	case "attr":
		md.Directive = meta.DirectiveAttribute
	case "chardata":
		md.Directive = meta.DirectiveTextContent
	}

	switch sf.Tag.Get("bind") {
	case "element":
		md.Directive = meta.DirectiveElement
	case "inline":
		md.Directive = meta.DirectiveElement
		md.InlineList = true
	}

	return md, refs, true
}

func typeRefOf(t reflect.Type) (meta.TypeRef, []reflect.Type, bool) {
	switch t.Kind() {
	case reflect.Pointer:
		return typeRefOf(t.Elem())

	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return meta.TypeRef{Name: meta.TypeName(t.Kind().String()), Kind: meta.KindScalar}, nil, true

	case reflect.Struct:
		if t.Name() == "" {
			return meta.TypeRef{}, nil, false
		}

		return meta.TypeRef{Name: meta.TypeName(t.Name()), Kind: meta.KindObject}, []reflect.Type{t}, true

	case reflect.Slice, reflect.Array:
		elem, refs, ok := typeRefOf(t.Elem())
		if !ok || elem.Kind == meta.KindList {
			return meta.TypeRef{}, nil, false
		}

		return meta.TypeRef{Kind: meta.KindList, Elem: &elem}, refs, true

	default:
		return meta.TypeRef{}, nil, false
	}
}
