package scan

import (
	"xmlbind/internal/diagnostic"
	"xmlbind/internal/meta"
	"xmlbind/internal/model"
	"xmlbind/internal/vpath"
)

// Binding couples a resolved field with the member descriptor it came
// from. The assembler still needs the raw descriptor to build dispatch
// tables and validate type references.
type Binding struct {
	Field  *model.Field
	Member *meta.MemberDescriptor
}

// Composition is the result of scanning one type hierarchy: the
// composed class plus its bindings in field order.
type Composition struct {
	Class    *model.AnnotatedClass
	Bindings []Binding
}

// Composer runs the field classifier over a type and its opted-in
// ancestors and merges the results into one composed class.
type Composer struct {
	set         *meta.DescriptorSet
	defaultMode meta.ScanMode
}

// NewComposer creates a composer over the given descriptor set. The
// default scan mode applies to types that do not declare their own.
func NewComposer(set *meta.DescriptorSet, defaultMode meta.ScanMode) *Composer {
	return &Composer{set: set, defaultMode: defaultMode}
}

// Compose scans t and, when inheritance is enabled, its ancestors
// nearest-first. Ancestors that did not opt into binding are skipped
// entirely: not merged, not inspected. Name conflicts are detected
// across the whole accumulated set, not per level.
//
// The second result is false when composition reported errors.
func (c *Composer) Compose(t *meta.TypeDescriptor, diags *diagnostic.Diagnostics) (*Composition, bool) {
	before := len(diags.Errors)

	comp := &Composition{Class: model.NewAnnotatedClass(t.Name, t.EffectiveRootName())}
	claimed := make(map[string]claimant)

	// The instantiation requirement is local to each level; opted-in
	// ancestors are bindable types themselves and get checked in their
	// own resolution.
	if !t.HasNoArgConstructor {
		diags.Errorf(diagnostic.CodeAccess, string(t.Name), "",
			"type %q must provide a no-argument constructor with sufficient visibility", t.Name)
	}

	c.scanLevel(t, comp, claimed, diags)

	if t.InheritanceEnabled {
		for _, name := range t.Ancestors {
			ancestor, known := c.set.Lookup(name)
			if !known || !ancestor.Bound {
				continue
			}

			c.scanLevel(ancestor, comp, claimed, diags)
		}
	}

	if comp.Class.Len() == 0 && len(t.Members) > 0 &&
		t.EffectiveScanMode(c.defaultMode) == meta.ScanModeExplicitOnly {
		diags.AddWarning(diagnostic.CodeManifest,
			"no member carries a mapping directive; the type binds nothing in explicit-only mode",
			string(t.Name), "")
	}

	return comp, len(diags.Errors) == before
}

// scanLevel classifies every member of one hierarchy level and merges
// the surviving fields into the composition.
func (c *Composer) scanLevel(level *meta.TypeDescriptor, comp *Composition, claimed map[string]claimant, diags *diagnostic.Diagnostics) {
	mode := level.EffectiveScanMode(c.defaultMode)

	for i := range level.Members {
		m := &level.Members[i]

		f := classify(level, m, mode, claimed, diags)
		if f == nil {
			continue
		}

		if f.Category == model.CategoryTextContent {
			if prev := comp.Class.SetTextContent(f); prev != nil {
				diags.Errorf(diagnostic.CodeMultipleTextContent, string(comp.Class.Type), m.Name,
					"text content is already bound by %s.%s; a composed type may bind at most one text-content member",
					prev.Owner, prev.Member)
			}

			comp.Bindings = append(comp.Bindings, Binding{Field: f, Member: m})

			continue
		}

		if prev := comp.Class.AddField(f); prev != nil {
			// The claimed map already spans the whole composition, so
			// reaching this means the class was fed outside Compose.
			diags.Errorf(diagnostic.CodeNameConflict, string(comp.Class.Type), m.Name,
				"XML name %q is already bound by %s.%s", f.XMLName, prev.Owner, prev.Member)

			continue
		}

		if m.Path != "" {
			vpath.Place(comp.Class, m.Path, f, diags)
		}

		comp.Bindings = append(comp.Bindings, Binding{Field: f, Member: m})
	}
}
