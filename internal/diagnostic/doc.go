// Package diagnostic provides structured resolution-time errors and
// warnings for the binding compiler.
//
// Every mapping mistake (inaccessible member, duplicate XML name,
// conflicting virtual path, ...) becomes one coded Diagnostic carrying
// the type and member it originated from, so a single resolution pass
// can surface many independent problems at once.
package diagnostic
