package access

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"xmlbind/internal/common"
	"xmlbind/internal/meta"
)

// IsBindableMember reports whether the member can be read and written
// directly, without an accessor pair: sufficient visibility from the
// runtime's vantage point, not a class-level member, not a constant.
func IsBindableMember(m meta.MemberDescriptor) bool {
	return m.Access.Sufficient() && !m.Static && !m.Constant
}

// HasNoArgConstructor reports whether the type satisfies the
// instantiation requirement every bindable type carries.
func HasNoArgConstructor(t *meta.TypeDescriptor) bool {
	return t.HasNoArgConstructor
}

// ResolvePolicy decides the access policy for one member: direct access
// when the member is bindable on its own, otherwise a discovered
// accessor pair. The returned error carries the expected method
// signatures so the mapping author can fix the declaration.
func ResolvePolicy(m meta.MemberDescriptor, candidates []meta.MethodDescriptor) (Policy, error) {
	if IsBindableMember(m) {
		return Direct{Member: m.Name}, nil
	}

	return FindAccessorPair(m, candidates)
}

// FindAccessorPair searches the candidate methods for a getter/setter
// pair reaching the member. The member name is normalized by stripping
// the recognized mutable-prefix convention (a leading lower-case marker
// letter directly followed by an upper-case letter, e.g. "mTitle");
// the search tries, in order, the normalized name, the raw name with
// the prefix preserved, and the raw name with the marker upper-cased.
// Boolean members may use an "is" getter in place of "get".
//
// A valid getter takes no parameters, returns the member's exact type
// and has sufficient visibility. A valid setter takes exactly one
// parameter of the member's exact type and has sufficient visibility.
func FindAccessorPair(m meta.MemberDescriptor, candidates []meta.MethodDescriptor) (Policy, error) {
	for _, base := range accessorBases(m.Name) {
		getter := findGetter(base, m.Type, candidates)
		if getter == "" {
			continue
		}

		setter := findSetter(base, m.Type, candidates)
		if setter == "" {
			continue
		}

		return AccessorPair{Member: m.Name, Getter: getter, Setter: setter}, nil
	}

	return nil, fmt.Errorf("member %q is not directly accessible and no accessor pair was found; expected %s",
		m.Name, ExpectedSignatures(m))
}

// ExpectedSignatures renders the accessor signatures a member would need,
// used in access error messages.
func ExpectedSignatures(m meta.MemberDescriptor) string {
	base, _ := firstBase(m.Name)

	getPrefix := "get"
	if isBoolean(m.Type) {
		getPrefix = "is"
	}

	return fmt.Sprintf("%s%s() %s and set%s(value %s)", getPrefix, base, m.Type, base, m.Type)
}

// NormalizeMemberName strips the legacy mutable-prefix convention from
// a member name: one lower-case marker letter directly followed by an
// upper-case letter ("mTitle" becomes "Title"). Reports whether a
// prefix was stripped.
func NormalizeMemberName(name string) (string, bool) {
	runes := []rune(name)
	if len(runes) >= 2 && unicode.IsLower(runes[0]) && unicode.IsUpper(runes[1]) {
		return string(runes[1:]), true
	}

	return name, false
}

// accessorBases returns the accessor name bases to try, in search order.
func accessorBases(name string) []string {
	stripped, ok := NormalizeMemberName(name)
	if !ok {
		return []string{capitalize(name)}
	}

	// stripped already starts upper-case
	return []string{stripped, name, capitalize(name)}
}

func firstBase(name string) (string, bool) {
	bases := accessorBases(name)
	base, _ := common.First(bases)

	return base, len(bases) > 1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

func isBoolean(t meta.TypeRef) bool {
	return t.Kind == meta.KindScalar && t.Name == "bool"
}

func findGetter(base string, want meta.TypeRef, candidates []meta.MethodDescriptor) string {
	names := []string{"get" + base}
	if isBoolean(want) {
		names = append(names, "is"+base)
	}

	for _, c := range candidates {
		if !matchesAny(c.Name, names) {
			continue
		}

		if !c.Access.Sufficient() || len(c.Params) != 0 {
			continue
		}

		if c.Returns == nil || c.Returns.String() != want.String() {
			continue
		}

		return c.Name
	}

	return ""
}

func findSetter(base string, want meta.TypeRef, candidates []meta.MethodDescriptor) string {
	name := "set" + base

	for _, c := range candidates {
		if c.Name != name {
			continue
		}

		if !c.Access.Sufficient() || len(c.Params) != 1 {
			continue
		}

		if c.Params[0].String() != want.String() {
			continue
		}

		return c.Name
	}

	return ""
}

func matchesAny(name string, names []string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}

	return false
}
