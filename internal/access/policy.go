// Package access classifies how the binding runtime may reach a member:
// directly, or through a discovered getter/setter pair. It is the only
// place that knows the accessor naming conventions, including the
// legacy mutable-prefix ("Hungarian") member names.
package access

import "fmt"

// Policy is the uniform access contract a resolved field carries. The
// runtime reads and writes member values exclusively through the policy,
// never by inspecting the member again.
type Policy interface {
	// Describe returns a short human-readable description of the policy.
	Describe() string

	isPolicy()
}

// Direct is the policy for members the runtime touches without
// indirection.
type Direct struct {
	// Member is the member name read and written directly.
	Member string
}

func (d Direct) isPolicy() {}

// Describe returns a short human-readable description of the policy.
func (d Direct) Describe() string {
	return fmt.Sprintf("direct(%s)", d.Member)
}

// AccessorPair is the policy for members reached through a matched
// getter/setter pair.
type AccessorPair struct {
	// Member is the underlying member name.
	Member string
	// Getter is the zero-argument reader method.
	Getter string
	// Setter is the single-argument writer method.
	Setter string
}

func (a AccessorPair) isPolicy() {}

// Describe returns a short human-readable description of the policy.
func (a AccessorPair) Describe() string {
	return fmt.Sprintf("accessors(%s: %s/%s)", a.Member, a.Getter, a.Setter)
}
