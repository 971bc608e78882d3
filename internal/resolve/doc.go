// Package resolve assembles the binding model: it drives scanning for
// every bound type and everything transitively reachable through
// element and polymorphism references, builds the dispatch tables, and
// publishes the immutable model, or rejects the whole batch if any
// reachable type failed.
//
// A type descriptor is resolved at most once per resolver, no matter
// how many reference paths discover it, and concurrent discovery
// converges on a single result.
package resolve
