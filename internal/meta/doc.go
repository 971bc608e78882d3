// Package meta defines the declarative input model of the binding
// compiler: type descriptors, member descriptors and their mapping
// directives, plus the manifest loader that produces them.
//
// Descriptors are an opaque hand-off from whatever discovers mapping
// declarations (a manifest file, the reflect provider, a future source
// scanner). The resolution pipeline never looks behind them.
package meta
