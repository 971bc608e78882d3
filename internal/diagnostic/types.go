package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes for the resolution-time error kinds.
const (
	// CodeAccess - a member is not directly bindable and no valid
	// accessor pair exists, or a required no-arg constructor is missing.
	CodeAccess = "access_error"
	// CodeNameConflict - two fields of one composed type resolve to the
	// same XML name.
	CodeNameConflict = "name_conflict"
	// CodeMultipleTextContent - more than one text-content field in one
	// composed type.
	CodeMultipleTextContent = "multiple_text_content"
	// CodeDuplicateDispatchName - one binding site declares the same
	// dispatch element name twice.
	CodeDuplicateDispatchName = "duplicate_dispatch_name"
	// CodePathConflict - two path directives resolve one segment to
	// incompatible contexts.
	CodePathConflict = "path_conflict"
	// CodeUnresolvedReference - a referenced type is not itself bindable.
	CodeUnresolvedReference = "unresolved_reference"
	// CodeManifest - the declarative input itself is malformed.
	CodeManifest = "invalid_manifest"
)

// Diagnostics accumulates all diagnostic information from one
// resolution pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type identifies which bindable type this relates to (if any).
	Type string
	// Member identifies which member this relates to (if any).
	Member string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Member:   member,
	})
}

// Errorf adds an error diagnostic with a formatted message.
func (d *Diagnostics) Errorf(code, typeName, member, format string, args ...any) {
	d.AddError(code, fmt.Sprintf(format, args...), typeName, member)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// ByCode returns all error diagnostics carrying the given code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if e.Code == code {
			out = append(out, e)
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if
// the pass is valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
