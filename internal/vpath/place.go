package vpath

import (
	"xmlbind/internal/diagnostic"
	"xmlbind/internal/model"
)

// Place wires one field's path directive into the owner class's virtual
// tree. Paths from different fields sharing a prefix share the same
// virtual nodes; the tree grows, it is never duplicated. Incompatible
// uses of one tree position are reported as path_conflict diagnostics.
//
// Returns false when the field could not be placed.
func Place(owner *model.AnnotatedClass, rawPath string, f *model.Field, diags *diagnostic.Diagnostics) bool {
	segments, err := Parse(rawPath)
	if err != nil {
		diags.AddError(diagnostic.CodeManifest, err.Error(), string(owner.Type), f.Member)
		return false
	}

	node := owner.EnsurePathRoot()

	for _, seg := range segments {
		if _, taken := node.Elements[seg.Name]; taken {
			diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
				"path %q: element %q is already a real binding site, it cannot also be a virtual level",
				rawPath, seg.Name)

			return false
		}

		if _, taken := node.Attributes[seg.Name]; taken {
			diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
				"path %q: segment %q is already bound as an attribute, it cannot also be a child element",
				rawPath, seg.Name)

			return false
		}

		node = node.EnsureChild(seg.Name)

		if seg.Attr != "" {
			return placeAttr(owner, node, rawPath, seg.Attr, f, diags)
		}
	}

	return placeBinding(owner, node, rawPath, f, diags)
}

// placeAttr hangs the field on the attribute slot of the terminal
// virtual element, the "name[attr]" form.
func placeAttr(owner *model.AnnotatedClass, node *model.VirtualNode, rawPath, attr string, f *model.Field, diags *diagnostic.Diagnostics) bool {
	if prev, taken := node.Attributes[attr]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: attribute %q of virtual element %q is already bound by member %q",
			rawPath, attr, node.Name, prev.Member)

		return false
	}

	if _, taken := node.Children[attr]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: %q is a child element of %q, it cannot also be one of its attributes",
			rawPath, attr, node.Name)

		return false
	}

	if _, taken := node.Elements[attr]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: %q is an element binding under %q, it cannot also be an attribute",
			rawPath, attr, node.Name)

		return false
	}

	node.Attributes[attr] = f

	return true
}

// placeBinding hangs the field under the terminal virtual element using
// the field's own resolved name and category.
func placeBinding(owner *model.AnnotatedClass, node *model.VirtualNode, rawPath string, f *model.Field, diags *diagnostic.Diagnostics) bool {
	name := f.XMLName

	if f.Category == model.CategoryAttribute {
		return placeAttr(owner, node, rawPath, name, f, diags)
	}

	if _, taken := node.Children[name]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: element %q is already a virtual level, it cannot also be a binding site",
			rawPath, name)

		return false
	}

	if _, taken := node.Attributes[name]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: %q is already bound as an attribute of %q, it cannot also be a child element",
			rawPath, name, node.Name)

		return false
	}

	if prev, taken := node.Elements[name]; taken {
		diags.Errorf(diagnostic.CodePathConflict, string(owner.Type), f.Member,
			"path %q: element %q under %q is already bound by member %q",
			rawPath, name, node.Name, prev.Member)

		return false
	}

	node.Elements[name] = f

	return true
}
