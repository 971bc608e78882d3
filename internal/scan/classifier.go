package scan

import (
	"xmlbind/internal/access"
	"xmlbind/internal/diagnostic"
	"xmlbind/internal/meta"
	"xmlbind/internal/model"
)

// claimant records which member of which type claimed an XML name, for
// conflict messages.
type claimant struct {
	Type   meta.TypeName
	Member string
}

// classify decides whether and how one member participates in binding.
// Returns the resolved field, or nil when the member is excluded
// (explicit ignore, explicit-only scan mode, or a reported error).
func classify(
	owner *meta.TypeDescriptor,
	m *meta.MemberDescriptor,
	mode meta.ScanMode,
	claimed map[string]claimant,
	diags *diagnostic.Diagnostics,
) *model.Field {
	category, participates := decideCategory(m, mode)
	if !participates {
		return nil
	}

	ownerName := string(owner.Name)

	if !directivesFit(m, category, diags, ownerName) {
		return nil
	}

	policy, err := access.ResolvePolicy(*m, owner.Methods)
	if err != nil {
		diags.AddError(diagnostic.CodeAccess, err.Error(), ownerName, m.Name)
		return nil
	}

	f := &model.Field{
		Category:   category,
		Member:     m.Name,
		Owner:      owner.Name,
		Type:       m.Type,
		Access:     policy,
		Converter:  m.Converter,
		InlineList: m.InlineList,
	}

	if category == model.CategoryElement && !itemIsScalar(m.Type) {
		f.ItemType = m.Type.ItemName()
	}

	if category != model.CategoryTextContent {
		f.XMLName = resolveXMLName(m)

		if prev, taken := claimed[f.XMLName]; taken {
			diags.Errorf(diagnostic.CodeNameConflict, ownerName, m.Name,
				"XML name %q is claimed by both %s.%s and %s.%s; use an explicit name override on one of them",
				f.XMLName, prev.Type, prev.Member, owner.Name, m.Name)

			return nil
		}

		claimed[f.XMLName] = claimant{Type: owner.Name, Member: m.Name}
	}

	return f
}

// decideCategory applies the directive, falling back to the scan-mode
// policy for unmarked members. The second result is false when the
// member does not participate at all.
func decideCategory(m *meta.MemberDescriptor, mode meta.ScanMode) (model.Category, bool) {
	switch m.Directive {
	case meta.DirectiveIgnore:
		return 0, false
	case meta.DirectiveAttribute:
		return model.CategoryAttribute, true
	case meta.DirectivePropertyElement:
		return model.CategoryPropertyElement, true
	case meta.DirectiveElement:
		return model.CategoryElement, true
	case meta.DirectiveTextContent:
		return model.CategoryTextContent, true
	}

	// No directive: the scan mode decides.
	if mode != meta.ScanModeCommonCase {
		return 0, false
	}

	if m.Type.IsScalar() {
		return model.CategoryAttribute, true
	}

	return model.CategoryElement, true
}

// directivesFit rejects directive combinations the wire format cannot
// express.
func directivesFit(m *meta.MemberDescriptor, category model.Category, diags *diagnostic.Diagnostics, ownerName string) bool {
	switch category {
	case model.CategoryAttribute, model.CategoryPropertyElement, model.CategoryTextContent:
		if !m.Type.IsScalar() {
			diags.Errorf(diagnostic.CodeManifest, ownerName, m.Name,
				"%s binding requires a scalar type, member is declared as %q", category, m.Type)

			return false
		}
	}

	if m.InlineList && !m.Type.IsList() {
		diags.Errorf(diagnostic.CodeManifest, ownerName, m.Name,
			"inline-list directive on non-list type %q", m.Type)

		return false
	}

	if len(m.Dispatch) > 0 && category != model.CategoryElement {
		diags.Errorf(diagnostic.CodeManifest, ownerName, m.Name,
			"polymorphism directive requires an element binding, member is bound as %s", category)

		return false
	}

	if m.Path != "" && category == model.CategoryTextContent {
		diags.Errorf(diagnostic.CodeManifest, ownerName, m.Name,
			"text content cannot be relocated with a path directive")

		return false
	}

	return true
}

// resolveXMLName picks the explicit name override when given, else the
// member's own name as-is. Lower-casing applies only to the type-level
// root name default, never here.
func resolveXMLName(m *meta.MemberDescriptor) string {
	if m.XMLName != "" {
		return m.XMLName
	}

	return m.Name
}

func itemIsScalar(t meta.TypeRef) bool {
	if t.Kind == meta.KindList && t.Elem != nil {
		return t.Elem.IsScalar()
	}

	return t.IsScalar()
}
