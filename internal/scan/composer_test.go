package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind/internal/diagnostic"
	"xmlbind/internal/meta"
	"xmlbind/internal/model"
)

func strRef() meta.TypeRef {
	return meta.TypeRef{Name: "string", Kind: meta.KindScalar}
}

func objRef(name string) meta.TypeRef {
	return meta.TypeRef{Name: meta.TypeName(name), Kind: meta.KindObject}
}

func member(name string, ref meta.TypeRef) meta.MemberDescriptor {
	return meta.MemberDescriptor{Name: name, Type: ref, Access: meta.VisibilityPublic}
}

func newSet(t *testing.T, types ...*meta.TypeDescriptor) *meta.DescriptorSet {
	t.Helper()

	set := meta.NewDescriptorSet()
	for _, td := range types {
		require.NoError(t, set.Add(td))
	}

	return set
}

func compose(t *testing.T, set *meta.DescriptorSet, name meta.TypeName) (*Composition, *diagnostic.Diagnostics, bool) {
	t.Helper()

	td, found := set.Lookup(name)
	require.True(t, found)

	diags := &diagnostic.Diagnostics{}
	comp, ok := NewComposer(set, meta.ScanModeCommonCase).Compose(td, diags)

	return comp, diags, ok
}

func TestComposeCommonCase(t *testing.T) {
	// Explicit attribute directive plus common-case fallback: scalars
	// become attributes, objects become elements.
	id := member("id", strRef())
	id.Directive = meta.DirectiveAttribute

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{id, member("title", strRef()), member("author", objRef("Author"))},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok, "unexpected: %v", diags.Error())
	require.Equal(t, 3, comp.Class.Len())

	idField, found := comp.Class.FieldByName("id")
	require.True(t, found)
	assert.Equal(t, model.CategoryAttribute, idField.Category)

	title, found := comp.Class.FieldByName("title")
	require.True(t, found)
	assert.Equal(t, model.CategoryAttribute, title.Category)

	author, found := comp.Class.FieldByName("author")
	require.True(t, found)
	assert.Equal(t, model.CategoryElement, author.Category)
	assert.Equal(t, meta.TypeName("Author"), author.ItemType)

	assert.Equal(t, "book", comp.Class.RootName)
}

func TestComposeExplicitOnlyMode(t *testing.T) {
	id := member("id", strRef())
	id.Directive = meta.DirectiveAttribute

	book := &meta.TypeDescriptor{
		Name:                "Book",
		ScanMode:            meta.ScanModeExplicitOnly,
		Members:             []meta.MemberDescriptor{id, member("title", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok, "unexpected: %v", diags.Error())
	assert.Equal(t, 1, comp.Class.Len())

	_, found := comp.Class.FieldByName("title")
	assert.False(t, found, "unmarked member must not bind in explicit-only mode")
}

func TestComposeMemberlessTypeDrawsNoWarning(t *testing.T) {
	// The explicit-only "no member carries a directive" hint is about
	// forgotten directives; a type declaring no members at all has none
	// to forget.
	book := &meta.TypeDescriptor{
		Name:                "Book",
		ScanMode:            meta.ScanModeExplicitOnly,
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok)
	assert.Empty(t, diags.Warnings)
}

func TestComposeExplicitOnlyUndirectedMembersWarn(t *testing.T) {
	book := &meta.TypeDescriptor{
		Name:                "Book",
		ScanMode:            meta.ScanModeExplicitOnly,
		Members:             []meta.MemberDescriptor{member("title", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeManifest, diags.Warnings[0].Code)
}

func TestComposeIgnoreDirectiveAlwaysWins(t *testing.T) {
	ignored := member("internal", strRef())
	ignored.Directive = meta.DirectiveIgnore

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{ignored, member("title", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, _, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok)
	assert.Equal(t, 1, comp.Class.Len())
}

func TestComposeExplicitNameOverride(t *testing.T) {
	id := member("identifier", strRef())
	id.Directive = meta.DirectiveAttribute
	id.XMLName = "id"

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{id},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, _, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok)

	_, found := comp.Class.FieldByName("id")
	assert.True(t, found)

	// Member names are used as-is, never lower-cased; only the root
	// element name defaults to the lower-cased type name.
	assert.Equal(t, "book", comp.Class.RootName)
}

func TestComposeInheritance(t *testing.T) {
	author := &meta.TypeDescriptor{
		Name:                "Author",
		Members:             []meta.MemberDescriptor{member("name", strRef()), member("email", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}
	journalist := &meta.TypeDescriptor{
		Name:                "Journalist",
		InheritanceEnabled:  true,
		Ancestors:           []meta.TypeName{"Author"},
		Members:             []meta.MemberDescriptor{member("column", strRef()), member("paper", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, author, journalist), "Journalist")
	require.True(t, ok, "unexpected: %v", diags.Error())

	// own count + ancestor count
	assert.Equal(t, 4, comp.Class.Len())

	// subtype fields come before inherited ones
	ordered := comp.Class.OrderedFields()
	assert.Equal(t, "column", ordered[0].XMLName)
	assert.Equal(t, meta.TypeName("Journalist"), ordered[0].Owner)
	assert.Equal(t, "name", ordered[2].XMLName)
	assert.Equal(t, meta.TypeName("Author"), ordered[2].Owner)
}

func TestComposeInheritanceDisabled(t *testing.T) {
	author := &meta.TypeDescriptor{
		Name:                "Author",
		Members:             []meta.MemberDescriptor{member("name", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}
	journalist := &meta.TypeDescriptor{
		Name:                "Journalist",
		InheritanceEnabled:  false,
		Ancestors:           []meta.TypeName{"Author"},
		Members:             []meta.MemberDescriptor{member("column", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, _, ok := compose(t, newSet(t, author, journalist), "Journalist")
	require.True(t, ok)
	assert.Equal(t, 1, comp.Class.Len())
}

func TestComposeSkipsNonOptedInAncestors(t *testing.T) {
	// The ancestor declares a member that would collide, but it never
	// opted into binding, so it is not inspected at all.
	base := &meta.TypeDescriptor{
		Name:                "Base",
		Members:             []meta.MemberDescriptor{member("column", strRef())},
		HasNoArgConstructor: true,
		Bound:               false,
	}
	journalist := &meta.TypeDescriptor{
		Name:                "Journalist",
		InheritanceEnabled:  true,
		Ancestors:           []meta.TypeName{"Base"},
		Members:             []meta.MemberDescriptor{member("column", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, base, journalist), "Journalist")
	require.True(t, ok, "unexpected: %v", diags.Error())
	assert.Equal(t, 1, comp.Class.Len())
}

func TestComposeNameConflictAcrossHierarchy(t *testing.T) {
	author := &meta.TypeDescriptor{
		Name:                "Author",
		Members:             []meta.MemberDescriptor{member("name", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}
	journalist := &meta.TypeDescriptor{
		Name:                "Journalist",
		InheritanceEnabled:  true,
		Ancestors:           []meta.TypeName{"Author"},
		Members:             []meta.MemberDescriptor{member("name", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, author, journalist), "Journalist")
	assert.False(t, ok)

	conflicts := diags.ByCode(diagnostic.CodeNameConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Message, "Journalist.name")
	assert.Contains(t, conflicts[0].Message, "Author.name")
}

func TestComposeNameConflictWithinType(t *testing.T) {
	a := member("title", strRef())
	b := member("heading", strRef())
	b.XMLName = "title"

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{a, b},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	assert.False(t, ok)
	assert.Len(t, diags.ByCode(diagnostic.CodeNameConflict), 1)
}

func TestComposeMultipleTextContent(t *testing.T) {
	a := member("body", strRef())
	a.Directive = meta.DirectiveTextContent
	b := member("summary", strRef())
	b.Directive = meta.DirectiveTextContent

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{a, b},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	assert.False(t, ok)

	errs := diags.ByCode(diagnostic.CodeMultipleTextContent)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Book.body")

	require.NotNil(t, comp.Class.TextContent())
	assert.Equal(t, "body", comp.Class.TextContent().Member)
}

func TestComposeMissingConstructor(t *testing.T) {
	book := &meta.TypeDescriptor{
		Name:    "Book",
		Members: []meta.MemberDescriptor{member("title", strRef())},
		Bound:   true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	assert.False(t, ok)
	require.Len(t, diags.ByCode(diagnostic.CodeAccess), 1)
	assert.Contains(t, diags.Errors[0].Message, "no-argument constructor")
}

func TestComposeConstructorRequirementIsPerLevel(t *testing.T) {
	// An ancestor's missing constructor does not fail the subtype; the
	// ancestor is reported in its own resolution.
	author := &meta.TypeDescriptor{
		Name:    "Author",
		Members: []meta.MemberDescriptor{member("name", strRef())},
		Bound:   true,
	}
	journalist := &meta.TypeDescriptor{
		Name:                "Journalist",
		InheritanceEnabled:  true,
		Ancestors:           []meta.TypeName{"Author"},
		Members:             []meta.MemberDescriptor{member("column", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, author, journalist), "Journalist")
	require.True(t, ok, "unexpected: %v", diags.Error())
}

func TestComposeInaccessibleMember(t *testing.T) {
	hidden := meta.MemberDescriptor{Name: "title", Type: strRef(), Access: meta.VisibilityPrivate}

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{hidden},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	assert.False(t, ok)

	errs := diags.ByCode(diagnostic.CodeAccess)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "getTitle() string")
}

func TestComposeAccessorPairMember(t *testing.T) {
	str := strRef()
	hidden := meta.MemberDescriptor{Name: "mTitle", Type: str, Access: meta.VisibilityPrivate}

	book := &meta.TypeDescriptor{
		Name:    "Book",
		Members: []meta.MemberDescriptor{hidden},
		Methods: []meta.MethodDescriptor{
			{Name: "getTitle", Returns: &str, Access: meta.VisibilityPublic},
			{Name: "setTitle", Params: []meta.TypeRef{str}, Access: meta.VisibilityPublic},
		},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok, "unexpected: %v", diags.Error())

	f, found := comp.Class.FieldByName("mTitle")
	require.True(t, found)
	assert.Equal(t, "accessors(mTitle: getTitle/setTitle)", f.Access.Describe())
}

func TestComposeAttributeRequiresScalar(t *testing.T) {
	bad := member("author", objRef("Author"))
	bad.Directive = meta.DirectiveAttribute

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{bad},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	_, diags, ok := compose(t, newSet(t, book), "Book")
	assert.False(t, ok)
	assert.Len(t, diags.ByCode(diagnostic.CodeManifest), 1)
}

func TestComposePathDirectiveBuildsVirtualTree(t *testing.T) {
	relocated := member("origin", strRef())
	relocated.Directive = meta.DirectiveAttribute
	relocated.Path = "meta/info"

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{relocated, member("title", strRef())},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok, "unexpected: %v", diags.Error())

	root := comp.Class.PathRoot()
	require.NotNil(t, root)

	metaNode, found := root.Child("meta")
	require.True(t, found)
	info, found := metaNode.Child("info")
	require.True(t, found)
	assert.Contains(t, info.Attributes, "origin")

	// the relocated field still claims its name class-wide
	_, found = comp.Class.FieldByName("origin")
	assert.True(t, found)
}

func TestComposeListMember(t *testing.T) {
	authorElem := objRef("Author")
	list := meta.MemberDescriptor{
		Name:       "authors",
		Type:       meta.TypeRef{Kind: meta.KindList, Elem: &authorElem},
		Access:     meta.VisibilityPublic,
		InlineList: true,
	}

	book := &meta.TypeDescriptor{
		Name:                "Book",
		Members:             []meta.MemberDescriptor{list},
		HasNoArgConstructor: true,
		Bound:               true,
	}

	comp, diags, ok := compose(t, newSet(t, book), "Book")
	require.True(t, ok, "unexpected: %v", diags.Error())

	f, found := comp.Class.FieldByName("authors")
	require.True(t, found)
	assert.Equal(t, model.CategoryElement, f.Category)
	assert.True(t, f.InlineList)
	assert.Equal(t, meta.TypeName("Author"), f.ItemType)
}
