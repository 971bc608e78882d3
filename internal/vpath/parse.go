// Package vpath expands skip-path directives into the virtual element
// trees hanging off resolved classes. A path like "meta/info[origin]"
// wraps a binding site in never-materialized elements meta and info,
// with the value carried by the origin attribute of info.
package vpath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Segment is one level of a path directive.
type Segment struct {
	// Name is the virtual element name of this level.
	Name string
	// Attr is the nested attribute hosted by this level, from the
	// "name[attr]" form. Only valid on the terminal segment.
	Attr string
}

// Parse parses a raw path directive into its segments.
// Supports: "wrapper", "a/b", "a/b[attr]".
func Parse(path string) ([]Segment, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	parts := strings.Split(path, "/")
	segments := make([]Segment, 0, len(parts))

	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg := Segment{Name: part}

		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("invalid path %q: unterminated attribute in segment %q", path, part)
			}

			seg.Name = part[:open]
			seg.Attr = part[open+1 : len(part)-1]

			if seg.Name == "" || seg.Attr == "" {
				return nil, fmt.Errorf("invalid path %q: attribute segment needs both element and attribute name", path)
			}

			if i != len(parts)-1 {
				return nil, fmt.Errorf("invalid path %q: attribute binding %q must be the last segment", path, part)
			}
		}

		if !isValidName(seg.Name) || (seg.Attr != "" && !isValidName(seg.Attr)) {
			return nil, fmt.Errorf("invalid path %q: invalid segment name %q", path, part)
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// isValidName checks an XML-ish name: a letter or underscore followed by
// letters, digits, underscores, hyphens or dots.
func isValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}

		if i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.') {
			continue
		}

		return false
	}

	return true
}
