package diagnostic

import (
	"fmt"
	"go/token"
	"strings"
)

// Code identifies a class of diagnostic.
type Code string

const (
	CodeBadLiteral       Code = "VT001" // directive argument is not an integer literal
	CodeDuplicate        Code = "VT002" // directive kind repeated on one member
	CodeCheckMismatch    Code = "VT003" // check(n) does not match the cursor
	CodeNegativeCursor   Code = "VT004" // cursor driven below zero
	CodeDataDirective    Code = "VT005" // directive attached to a data member
	CodeUnknownDirective Code = "VT006" // unrecognised //vtable: directive
	CodeOffsetCheck      Code = "VT007" // offset and check on the same member
	CodeReservedName     Code = "VT008" // name collides with generated identifiers
	CodeUnsupported      Code = "VT009" // declaration shape cannot be generated
	CodeNegativeOffset   Code = "VT010" // offset(n) with n < 0
	CodeBadOption        Code = "VT011" // invalid //vtable:generate option
	CodeSlotRange        Code = "VT012" // resolved slot beyond the addressable range
	CodeAliasedSlot      Code = "VT100" // two members share a slot
	CodeLayout           Code = "VT200" // data member layout concern
)

// Diagnostics holds all diagnostic information collected during a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// Pos is the source position of the offending declaration or member.
	Pos token.Position
	// Decl is the declaration name (if any).
	Decl string
	// Member is the member name (if any).
	Member string
	// Directive is the directive as written, e.g. "check(3)" (if any).
	Directive string
	// Expected and Actual describe a failed comparison.
	Expected string
	Actual   string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(diag Diagnostic) {
	diag.Severity = SeverityError
	d.Errors = append(d.Errors, diag)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(diag Diagnostic) {
	diag.Severity = SeverityWarning
	d.Warnings = append(d.Warnings, diag)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(diag Diagnostic) {
	diag.Severity = SeverityInfo
	d.Infos = append(d.Infos, diag)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err returns an *Error carrying the error diagnostics, or nil if there are none.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	return &Error{Diagnostics: append([]Diagnostic(nil), d.Errors...)}
}

// Error is returned when generation is aborted by one or more error diagnostics.
type Error struct {
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "; ")
}

// Has reports whether any diagnostic in the error carries the given code.
func (e *Error) Has(code Code) bool {
	for _, d := range e.Diagnostics {
		if d.Code == code {
			return true
		}
	}

	return false
}

// String returns a formatted diagnostic string:
//
//	file.go:12:2: Math.Add2: [VT003] check(3): cursor mismatch (expected 3, got 2)
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}

	subject := d.Decl
	if d.Member != "" {
		if subject != "" {
			subject += "."
		}

		subject += d.Member
	}

	if subject != "" {
		b.WriteString(subject)
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	if d.Directive != "" {
		b.WriteString(d.Directive)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)

	if d.Expected != "" || d.Actual != "" {
		fmt.Fprintf(&b, " (expected %s, got %s)", d.Expected, d.Actual)
	}

	return b.String()
}
