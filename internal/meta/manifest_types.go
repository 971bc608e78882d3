package meta

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the declarative binding description loaded from a YAML or
// JSON file. It is the serialized form of one DescriptorSet plus the
// host configuration (default scan mode, type-default converters).
type Manifest struct {
	Version    string            `yaml:"version" json:"version"`
	ScanMode   string            `yaml:"scanMode" json:"scanMode"`
	Converters map[string]string `yaml:"converters" json:"converters"`
	Types      []TypeDecl        `yaml:"types" json:"types"`
}

// TypeDecl declares one bindable type in a manifest.
type TypeDecl struct {
	Name        string       `yaml:"name" json:"name"`
	Root        string       `yaml:"root" json:"root"`
	ScanMode    string       `yaml:"scanMode" json:"scanMode"`
	Inherit     *bool        `yaml:"inherit" json:"inherit"`
	Extends     []string     `yaml:"extends" json:"extends"`
	Constructor *bool        `yaml:"constructor" json:"constructor"`
	Bind        *bool        `yaml:"bind" json:"bind"`
	Members     []MemberDecl `yaml:"members" json:"members"`
	Methods     []MethodDecl `yaml:"methods" json:"methods"`
}

// MemberDecl declares one member and its mapping directives.
type MemberDecl struct {
	Name      string       `yaml:"name" json:"name"`
	Type      string       `yaml:"type" json:"type"`
	As        string       `yaml:"as" json:"as"`
	XML       string       `yaml:"xml" json:"xml"`
	Converter string       `yaml:"converter" json:"converter"`
	Dispatch  DispatchList `yaml:"dispatch" json:"dispatch"`
	Inline    bool         `yaml:"inline" json:"inline"`
	Path      string       `yaml:"path" json:"path"`
	Access    string       `yaml:"access" json:"access"`
	Static    bool         `yaml:"static" json:"static"`
	Const     bool         `yaml:"const" json:"const"`
}

// MethodDecl declares one accessor-candidate method.
type MethodDecl struct {
	Name    string   `yaml:"name" json:"name"`
	Params  []string `yaml:"params" json:"params"`
	Returns string   `yaml:"returns" json:"returns"`
	Access  string   `yaml:"access" json:"access"`
}

// DispatchPairDecl is one declared element-name/type pair.
type DispatchPairDecl struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// DispatchList is an ordered list of dispatch pairs. Declaration order
// and duplicates are preserved so duplicate names can be rejected
// during resolution instead of silently collapsing in a map.
type DispatchList []DispatchPairDecl

// UnmarshalYAML implements custom YAML unmarshaling for DispatchList.
// Accepts either a mapping (elementName: TypeName) or a sequence of
// {name, type} pairs. The mapping form reads the raw node content so
// duplicate keys survive into the list.
func (l *DispatchList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var out DispatchList

		for i := 0; i+1 < len(node.Content); i += 2 {
			var name, typ string

			if err := node.Content[i].Decode(&name); err != nil {
				return err
			}

			if err := node.Content[i+1].Decode(&typ); err != nil {
				return err
			}

			out = append(out, DispatchPairDecl{Name: name, Type: typ})
		}

		*l = out

		return nil

	case yaml.SequenceNode:
		var out []DispatchPairDecl

		if err := node.Decode(&out); err != nil {
			return err
		}

		*l = out

		return nil

	default:
		return fmt.Errorf("dispatch: expected mapping or sequence, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for DispatchList.
func (l DispatchList) MarshalYAML() (any, error) {
	return []DispatchPairDecl(l), nil
}

// applyDefaults fills in the optional flags a manifest may omit:
// inheritance and the no-arg constructor default to true, every
// declared type opts into binding unless it says otherwise.
func applyDefaults(m *Manifest) {
	on := true

	for i := range m.Types {
		t := &m.Types[i]

		if t.Inherit == nil {
			t.Inherit = &on
		}

		if t.Constructor == nil {
			t.Constructor = &on
		}

		if t.Bind == nil {
			t.Bind = &on
		}
	}
}
