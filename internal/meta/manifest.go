package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"xmlbind/internal/diagnostic"
)

// LoadManifest loads a binding manifest from the given path. The format
// is chosen by file extension: .yaml/.yml or .json.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported manifest extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// ParseYAML parses YAML data into a Manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&m)

	return &m, nil
}

// ParseJSON parses JSON data into a Manifest.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest

	if err := gojson.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}

	applyDefaults(&m)

	return &m, nil
}

// DefaultScanMode returns the manifest's process-wide scan mode default.
// An unset mode means CommonCase. Declaring "default" at manifest level
// is rejected: the manifest is where the default is decided.
func (m *Manifest) DefaultScanMode() (ScanMode, error) {
	switch m.ScanMode {
	case "":
		return ScanModeCommonCase, nil
	case "default":
		return ScanModeDefault, fmt.Errorf(
			"scanMode 'default' is not allowed at manifest level; must be %q or %q",
			ScanModeCommonCase, ScanModeExplicitOnly)
	default:
		return parseScanMode(m.ScanMode)
	}
}

// Descriptors converts the manifest into a DescriptorSet, validating
// every declared string along the way. Problems are reported as
// invalid_manifest diagnostics; the returned set contains every type
// that converted cleanly.
func (m *Manifest) Descriptors() (*DescriptorSet, *diagnostic.Diagnostics) {
	set := NewDescriptorSet()
	diags := &diagnostic.Diagnostics{}

	for i := range m.Types {
		td, ok := convertType(&m.Types[i], diags)
		if !ok {
			continue
		}

		if err := set.Add(td); err != nil {
			diags.AddError(diagnostic.CodeManifest, err.Error(), m.Types[i].Name, "")
		}
	}

	return set, diags
}

func convertType(decl *TypeDecl, diags *diagnostic.Diagnostics) (*TypeDescriptor, bool) {
	if decl.Name == "" {
		diags.AddError(diagnostic.CodeManifest, "type declaration without a name", "", "")
		return nil, false
	}

	ok := true

	mode := ScanModeDefault

	if decl.ScanMode != "" {
		var err error

		mode, err = parseScanMode(decl.ScanMode)
		if err != nil {
			diags.AddError(diagnostic.CodeManifest, err.Error(), decl.Name, "")

			ok = false
		}
	}

	td := &TypeDescriptor{
		Name:                TypeName(decl.Name),
		RootName:            decl.Root,
		ScanMode:            mode,
		InheritanceEnabled:  decl.Inherit == nil || *decl.Inherit,
		HasNoArgConstructor: decl.Constructor == nil || *decl.Constructor,
		Bound:               decl.Bind == nil || *decl.Bind,
	}

	for _, a := range decl.Extends {
		td.Ancestors = append(td.Ancestors, TypeName(a))
	}

	for i := range decl.Members {
		md, mok := convertMember(decl.Name, &decl.Members[i], diags)
		if !mok {
			ok = false
			continue
		}

		td.Members = append(td.Members, md)
	}

	for i := range decl.Methods {
		meth, mok := convertMethod(decl.Name, &decl.Methods[i], diags)
		if !mok {
			ok = false
			continue
		}

		td.Methods = append(td.Methods, meth)
	}

	return td, ok
}

func convertMember(typeName string, decl *MemberDecl, diags *diagnostic.Diagnostics) (MemberDescriptor, bool) {
	md := MemberDescriptor{
		Name:       decl.Name,
		XMLName:    decl.XML,
		Converter:  decl.Converter,
		InlineList: decl.Inline,
		Path:       decl.Path,
		Static:     decl.Static,
		Constant:   decl.Const,
	}

	if decl.Name == "" {
		diags.AddError(diagnostic.CodeManifest, "member declaration without a name", typeName, "")
		return md, false
	}

	ref, err := ParseTypeRef(decl.Type)
	if err != nil {
		diags.AddError(diagnostic.CodeManifest, err.Error(), typeName, decl.Name)
		return md, false
	}

	md.Type = ref

	md.Directive, err = parseDirective(decl.As)
	if err != nil {
		diags.AddError(diagnostic.CodeManifest, err.Error(), typeName, decl.Name)
		return md, false
	}

	md.Access, err = parseVisibility(decl.Access)
	if err != nil {
		diags.AddError(diagnostic.CodeManifest, err.Error(), typeName, decl.Name)
		return md, false
	}

	for _, p := range decl.Dispatch {
		if p.Name == "" || p.Type == "" {
			diags.AddError(diagnostic.CodeManifest,
				"dispatch pair needs both an element name and a type", typeName, decl.Name)

			return md, false
		}

		md.Dispatch = append(md.Dispatch, DispatchPair{Name: p.Name, Type: TypeName(p.Type)})
	}

	return md, true
}

func convertMethod(typeName string, decl *MethodDecl, diags *diagnostic.Diagnostics) (MethodDescriptor, bool) {
	meth := MethodDescriptor{Name: decl.Name}

	if decl.Name == "" {
		diags.AddError(diagnostic.CodeManifest, "method declaration without a name", typeName, "")
		return meth, false
	}

	var err error

	meth.Access, err = parseVisibility(decl.Access)
	if err != nil {
		diags.AddError(diagnostic.CodeManifest, err.Error(), typeName, decl.Name)
		return meth, false
	}

	for _, p := range decl.Params {
		ref, perr := ParseTypeRef(p)
		if perr != nil {
			diags.AddError(diagnostic.CodeManifest, perr.Error(), typeName, decl.Name)
			return meth, false
		}

		meth.Params = append(meth.Params, ref)
	}

	if decl.Returns != "" {
		ref, rerr := ParseTypeRef(decl.Returns)
		if rerr != nil {
			diags.AddError(diagnostic.CodeManifest, rerr.Error(), typeName, decl.Name)
			return meth, false
		}

		meth.Returns = &ref
	}

	return meth, true
}

func parseScanMode(s string) (ScanMode, error) {
	switch s {
	case "common", "commonCase":
		return ScanModeCommonCase, nil
	case "explicit", "explicitOnly":
		return ScanModeExplicitOnly, nil
	default:
		return ScanModeDefault, fmt.Errorf("unknown scan mode %q (want 'common' or 'explicit')", s)
	}
}

func parseDirective(s string) (Directive, error) {
	switch s {
	case "":
		return DirectiveNone, nil
	case "attribute":
		return DirectiveAttribute, nil
	case "propertyElement":
		return DirectivePropertyElement, nil
	case "element":
		return DirectiveElement, nil
	case "textContent":
		return DirectiveTextContent, nil
	case "ignore":
		return DirectiveIgnore, nil
	default:
		return DirectiveNone, fmt.Errorf("unknown mapping directive %q", s)
	}
}

func parseVisibility(s string) (Visibility, error) {
	switch s {
	case "", "public":
		return VisibilityPublic, nil
	case "package":
		return VisibilityPackage, nil
	case "private":
		return VisibilityPrivate, nil
	default:
		return VisibilityPublic, fmt.Errorf("unknown visibility %q", s)
	}
}
